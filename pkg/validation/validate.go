package validation

import (
	"math"
	"strings"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
)

// Messages reported for failing fields.
const (
	MessageTextRequired    = "You must provide some text."
	MessageNumberRequired  = "You must provide a number."
	MessageNumberInvalid   = "Please provide a valid number."
	MessageOptionsRequired = "At least one option must be selected."
)

// Issue is a single field failure in display order.
type Issue struct {
	Field   model.Field `json:"field"`
	Message string      `json:"message"`
}

// Validate checks every rule against record and returns all failures
// together. An empty map means the record may be submitted. Validate has no
// side effects.
func Validate(record model.FormRecord) model.ErrorMap {
	errs := make(model.ErrorMap)

	if strings.TrimSpace(record.TextInput) == "" {
		errs[model.FieldText] = MessageTextRequired
	}

	switch {
	case !record.NumberInput.Present:
		errs[model.FieldNumber] = MessageNumberRequired
	case record.NumberInput.IsNaN(), math.IsInf(record.NumberInput.Value, 0):
		errs[model.FieldNumber] = MessageNumberInvalid
	}

	if record.Checkboxes.CheckedCount() == 0 {
		errs[model.FieldCheckboxes] = MessageOptionsRequired
	}

	return errs
}

// Issues flattens errs into model.Fields order so renderers list messages
// deterministically.
func Issues(errs model.ErrorMap) []Issue {
	if len(errs) == 0 {
		return nil
	}
	out := make([]Issue, 0, len(errs))
	for _, field := range model.Fields {
		if msg, ok := errs[field]; ok {
			out = append(out, Issue{Field: field, Message: msg})
		}
	}
	return out
}
