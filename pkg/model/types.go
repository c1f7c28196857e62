package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Field identifies an editable input of the form. The string values double as
// JSON keys of the transmitted record and as ErrorMap keys.
type Field string

const (
	FieldNumber     Field = "numberInput"
	FieldText       Field = "textInput"
	FieldCheckboxes Field = "checkboxes"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldNumber, FieldText, FieldCheckboxes}

// NumberValue holds the numeric input. The zero value is absent. A present
// value may be NaN when the raw text could not be parsed; rejecting it is the
// validator's job.
type NumberValue struct {
	Value   float64
	Present bool
}

// Number returns a present NumberValue.
func Number(v float64) NumberValue {
	return NumberValue{Value: v, Present: true}
}

// ParseNumber maps raw input text to a NumberValue. Empty (or blank) text is
// absent; anything else is parsed as a float and becomes NaN on failure so the
// user can keep typing. Infinities cannot travel as JSON and count as
// failures too.
func ParseNumber(raw string) NumberValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NumberValue{}
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(v, 0) {
		return Number(math.NaN())
	}
	return Number(v)
}

// IsNaN reports whether the value is present but not a number.
func (n NumberValue) IsNaN() bool {
	return n.Present && math.IsNaN(n.Value)
}

// Equal compares two values treating NaN as equal to NaN.
func (n NumberValue) Equal(other NumberValue) bool {
	if n.Present != other.Present {
		return false
	}
	if !n.Present {
		return true
	}
	if math.IsNaN(n.Value) || math.IsNaN(other.Value) {
		return math.IsNaN(n.Value) && math.IsNaN(other.Value)
	}
	return n.Value == other.Value
}

// String formats the value for display; absent values render empty.
func (n NumberValue) String() string {
	switch {
	case !n.Present:
		return ""
	case math.IsNaN(n.Value):
		return "NaN"
	default:
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	}
}

// MarshalJSON encodes absent and NaN values as null.
func (n NumberValue) MarshalJSON() ([]byte, error) {
	if !n.Present || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON decodes null as absent.
func (n *NumberValue) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*n = NumberValue{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// FormRecord is the complete set of values being edited.
type FormRecord struct {
	NumberInput NumberValue `json:"numberInput"`
	TextInput   string      `json:"textInput"`
	Checkboxes  CheckboxSet `json:"checkboxes"`
}

// NewRecord returns the initial record for a catalog: number absent, text
// empty and every option unchecked.
func NewRecord(catalog []CheckboxOption) FormRecord {
	set := make(CheckboxSet, len(catalog))
	for i, option := range catalog {
		set[i] = CheckboxOption{ID: option.ID, Label: option.Label}
	}
	return FormRecord{Checkboxes: set}
}

// WithNumber returns a copy of the record holding the parsed raw text.
func (r FormRecord) WithNumber(raw string) FormRecord {
	next := r.Clone()
	next.NumberInput = ParseNumber(raw)
	return next
}

// WithText returns a copy of the record holding value.
func (r FormRecord) WithText(value string) FormRecord {
	next := r.Clone()
	next.TextInput = value
	return next
}

// WithCheckboxes returns a copy of the record with op applied to its
// checkbox set.
func (r FormRecord) WithCheckboxes(op CheckboxOp) FormRecord {
	next := r.Clone()
	if op != nil {
		next.Checkboxes = op.apply(r.Checkboxes)
	}
	return next
}

// Clone returns a deep copy so the checkbox slice is never aliased.
func (r FormRecord) Clone() FormRecord {
	r.Checkboxes = r.Checkboxes.Clone()
	return r
}

// Equal reports whether two records hold identical values.
func (r FormRecord) Equal(other FormRecord) bool {
	return r.NumberInput.Equal(other.NumberInput) &&
		r.TextInput == other.TextInput &&
		r.Checkboxes.Equal(other.Checkboxes)
}

// ErrorMap maps a field to its current validation message. A missing key
// means the field has no reported error.
type ErrorMap map[Field]string

// Empty reports whether no field carries an error.
func (m ErrorMap) Empty() bool {
	return len(m) == 0
}

// Clone copies the map; nil stays nil.
func (m ErrorMap) Clone() ErrorMap {
	if m == nil {
		return nil
	}
	out := make(ErrorMap, len(m))
	for field, msg := range m {
		out[field] = msg
	}
	return out
}

// Without returns a copy lacking the entry for field.
func (m ErrorMap) Without(field Field) ErrorMap {
	if _, ok := m[field]; !ok {
		return m.Clone()
	}
	out := make(ErrorMap, len(m))
	for f, msg := range m {
		if f != field {
			out[f] = msg
		}
	}
	return out
}

// SubmissionStatus is the coarse state of the submission pipeline.
type SubmissionStatus int

const (
	StatusIdle SubmissionStatus = iota
	StatusSubmitting
	StatusFailed
)

func (s SubmissionStatus) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SubmissionState pairs the status with the failure message shown to the
// user. Message is only set when Status is StatusFailed.
type SubmissionState struct {
	Status  SubmissionStatus
	Message string
}

// Idle returns the idle state.
func Idle() SubmissionState { return SubmissionState{} }

// Submitting returns the in-flight state.
func Submitting() SubmissionState { return SubmissionState{Status: StatusSubmitting} }

// Failed returns a failure state carrying message.
func Failed(message string) SubmissionState {
	return SubmissionState{Status: StatusFailed, Message: message}
}
