// Package logging configures log/slog for the unattend CLI.
//
// Diagnostics go to stderr so that stdout carries only the validation
// summary or its JSON form. The -v flag raises the level one step at a
// time from Warn through Info and Debug to [LevelTrace]; -q lowers it to
// Error. With --log-file, records are additionally written as JSON through
// a [MultiHandler].
//
// Answer files routinely hold administrator passwords and product keys.
// Both [Handler] and [NewJSONHandler] pass every attribute through
// [RedactAttr] before it is written.
//
// Loggers travel in the context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("loading answer file", "file", path)
//
// Tests route output through t.Log with [ForTest].
package logging
