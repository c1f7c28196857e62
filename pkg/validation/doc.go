// Package validation derives per-field error messages from a form record.
package validation
