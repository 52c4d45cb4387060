// Package validator holds the result model for answer file validation and
// the console reporter that renders it.
//
// # Core Concepts
//
//   - [Severity]: Error, Warning or Info. Only errors affect the verdict.
//   - [Finding]: a single observation tagged with the component it came from.
//   - [Result]: the append-only aggregate of findings for one file.
//
// # Basic Usage
//
//	result := validator.NewResult("unattend.xml")
//	result.Add(validator.NewFinding(validator.SeverityError, "Microsoft-Windows-Shell-Setup", 42,
//		"Administrator password is empty", time.Now()))
//
//	if !result.Valid {
//		// gate the pipeline
//	}
//
// A Result starts valid and becomes invalid the moment an error finding is
// added. It never becomes valid again.
package validator
