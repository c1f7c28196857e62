package validation

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
)

func blankRecord() model.FormRecord {
	return model.NewRecord(model.DefaultCatalog())
}

func TestValidate_EmptyRecordReportsEveryField(t *testing.T) {
	got := Validate(blankRecord())
	want := model.ErrorMap{
		model.FieldText:       "You must provide some text.",
		model.FieldNumber:     "You must provide a number.",
		model.FieldCheckboxes: "At least one option must be selected.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_InvalidNumberOnly(t *testing.T) {
	for _, raw := range []string{"abc", "Infinity", "-inf", "1e400"} {
		record := blankRecord().
			WithNumber(raw).
			WithText("hello").
			WithCheckboxes(model.ToggleOption("option1"))

		got := Validate(record)
		want := model.ErrorMap{model.FieldNumber: "Please provide a valid number."}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Validate with number %q mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestValidate_InfiniteNumberValue(t *testing.T) {
	record := blankRecord().WithText("hello").WithCheckboxes(model.ToggleOption("option1"))
	record.NumberInput = model.Number(math.Inf(1))

	got := Validate(record)
	if got[model.FieldNumber] != MessageNumberInvalid {
		t.Fatalf("number error = %q, want %q", got[model.FieldNumber], MessageNumberInvalid)
	}
}

func TestValidate_WhitespaceTextIsEmpty(t *testing.T) {
	record := blankRecord().
		WithNumber("1").
		WithText(" \t\n").
		WithCheckboxes(model.SetAll(true))

	got := Validate(record)
	want := model.ErrorMap{model.FieldText: MessageTextRequired}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	record := blankRecord().
		WithNumber("0").
		WithText("x").
		WithCheckboxes(model.ToggleOption("option2"))

	if got := Validate(record); !got.Empty() {
		t.Fatalf("expected no errors, got %+v", got)
	}
}

func TestValidate_IsPure(t *testing.T) {
	record := blankRecord().WithNumber("abc")
	before := record.Clone()

	first := Validate(record)
	second := Validate(record)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validate not deterministic (-first +second):\n%s", diff)
	}
	if !record.Equal(before) {
		t.Fatalf("validate mutated the record")
	}
}

func TestIssues_FollowFieldOrder(t *testing.T) {
	issues := Issues(Validate(blankRecord()))
	want := []Issue{
		{Field: model.FieldNumber, Message: MessageNumberRequired},
		{Field: model.FieldText, Message: MessageTextRequired},
		{Field: model.FieldCheckboxes, Message: MessageOptionsRequired},
	}
	if diff := cmp.Diff(want, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if Issues(nil) != nil {
		t.Fatalf("expected nil issues for empty map")
	}
}
