// Package report prints the outcome of a version propagation run, either as
// a styled summary for people or as JSON or YAML for other tools.
package report
