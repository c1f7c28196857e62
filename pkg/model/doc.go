// Package model defines the record edited by a customer form session: the
// scalar number/text values, the ordered checkbox set, the per-field error map
// and the submission state. Every mutating helper returns a new value and
// leaves its receiver untouched, so callers can compare the previous and next
// record with Equal to decide whether a redraw is needed.
package model
