// Package form implements the customer form session: the single source of
// truth for the record being edited, the per-field error map cleared as the
// user edits, and the validate, confirm, transmit and reset-or-report
// submission flow.
package form
