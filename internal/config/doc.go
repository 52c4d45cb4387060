// Package config loads the validator's own settings using Viper.
//
// Settings come from, in increasing precedence: built-in defaults, a
// config.yaml in the current directory or in [paths.ConfigDir], UNATTEND_*
// environment variables, and finally command-line flags bound by the CLI.
//
//	version: 1
//	detailed: false
//	report:
//	  enabled: true
//	  path: unattend-validation-report.txt
//	  format: text   # text, json, yaml, toml
package config
