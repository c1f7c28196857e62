package render

import (
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/validation"
)

// Snapshot is the tuple handed to renderers after each state change. Record
// and Errors are copies owned by the snapshot. Version increases with every
// change so renderers receiving snapshots out of order can drop stale ones.
type Snapshot struct {
	Version uint64
	Record  model.FormRecord
	Errors  model.ErrorMap
	State   model.SubmissionState
}

// Busy reports whether a submission is in flight; renderers disable the
// submit control while it is true.
func (s Snapshot) Busy() bool {
	return s.State.Status == model.StatusSubmitting
}

// SubmitLabel is the caption of the submit control.
func (s Snapshot) SubmitLabel() string {
	if s.Busy() {
		return "Submitting..."
	}
	return "Submit"
}

// AllSelected drives the checked state of the master checkbox.
func (s Snapshot) AllSelected() bool {
	return s.Record.Checkboxes.AllSelected()
}

// MasterLabel is the caption of the master checkbox.
func (s Snapshot) MasterLabel() string {
	return s.Record.Checkboxes.MasterLabel()
}

// ErrorFor returns the message attached to field, if any.
func (s Snapshot) ErrorFor(field model.Field) string {
	return s.Errors[field]
}

// Issues lists field errors in display order.
func (s Snapshot) Issues() []validation.Issue {
	return validation.Issues(s.Errors)
}

// SubmissionError is the submission-level failure message, empty unless the
// last attempt failed.
func (s Snapshot) SubmissionError() string {
	if s.State.Status != model.StatusFailed {
		return ""
	}
	return s.State.Message
}
