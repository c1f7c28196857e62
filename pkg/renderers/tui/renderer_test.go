package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/form"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/submission"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selects      []string
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	rejected     []string
	menus        [][]string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
}

// Input answers with the next scripted value, skipping values the prompt's
// validator rejects the way survey re-asks.
func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	for {
		if s.inputPos >= len(s.inputs) {
			return "", errors.New("no input scripted")
		}
		val := s.inputs[s.inputPos]
		s.inputPos++
		if cfg.Validator != nil && cfg.Validator(val) != nil {
			s.rejected = append(s.rejected, val)
			continue
		}
		return val, nil
	}
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

// Select picks the scripted option by label; running out of script aborts.
func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.menus = append(s.menus, append([]string(nil), cfg.Options...))
	if s.selectPos >= len(s.selects) {
		return -1, ErrAborted
	}
	val := s.selects[s.selectPos]
	s.selectPos++
	return indexOf(cfg.Options, val), nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type stubSubmitter struct {
	sent []model.FormRecord
	err  error
}

func (s *stubSubmitter) Send(_ context.Context, record model.FormRecord) (submission.Response, error) {
	s.sent = append(s.sent, record)
	if s.err != nil {
		return submission.Response{}, s.err
	}
	return submission.Response{Status: 201, Body: map[string]any{}}, nil
}

func newTestRenderer(t *testing.T, driver PromptDriver) (*Renderer, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r, err := New(WithPromptDriver(driver), WithOutput(&out))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r, &out
}

func newTestSession(t *testing.T, r *Renderer, sub form.Submitter) *form.Session {
	t.Helper()
	s, err := form.New(
		form.WithSubmitter(sub),
		form.WithPrompter(r),
		form.WithOverlay(r),
		form.WithRenderer(r),
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestRenderer_ViewEmptyRecord(t *testing.T) {
	r, _ := newTestRenderer(t, &stubDriver{})
	snap := render.Snapshot{Record: model.NewRecord(model.DefaultCatalog())}

	want := strings.Join([]string{
		"Customer form",
		"Number:   (empty)",
		"Text:     (empty)",
		"Options:  [ ] First Option",
		"          [ ] Second Option",
		"          [ ] Third Option",
		"          [ ] Select all",
		"[Submit]",
		"",
	}, "\n")
	if diff := cmp.Diff(want, r.View(snap)); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_ViewShowsErrorsAndFailure(t *testing.T) {
	r, _ := newTestRenderer(t, &stubDriver{})
	record := model.NewRecord(model.DefaultCatalog()).
		WithNumber("abc").
		WithCheckboxes(model.SetAll(true))
	snap := render.Snapshot{
		Record: record,
		Errors: model.ErrorMap{
			model.FieldNumber: "Please provide a valid number.",
			model.FieldText:   "You must provide some text.",
		},
		State: model.Failed("Server Error: try later"),
	}

	view := r.View(snap)
	for _, want := range []string{
		"Number:   Not a number\n          ! Please provide a valid number.\n",
		"Text:     (empty)\n          ! You must provide some text.\n",
		"[x] Deselect all\n",
		"! Server Error: try later\n",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestRenderer_ViewBusyLabel(t *testing.T) {
	r, _ := newTestRenderer(t, &stubDriver{})
	snap := render.Snapshot{Record: model.NewRecord(model.DefaultCatalog()), State: model.Submitting()}
	if !strings.Contains(r.View(snap), "[Submitting...]") {
		t.Fatalf("expected busy submit label")
	}
}

func TestRenderer_DropsStaleSnapshots(t *testing.T) {
	r, out := newTestRenderer(t, &stubDriver{})
	ctx := context.Background()
	record := model.NewRecord(model.DefaultCatalog())

	if err := r.Render(ctx, render.Snapshot{Version: 2, Record: record}); err != nil {
		t.Fatalf("render: %v", err)
	}
	before := out.Len()
	if err := r.Render(ctx, render.Snapshot{Version: 1, Record: record}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.Len() != before {
		t.Fatalf("stale snapshot was drawn")
	}
}

func TestRun_FillAndSubmit(t *testing.T) {
	driver := &stubDriver{
		selects:  []string{ActionEditNumber, ActionEditText, ActionChooseOption, "Submit", ActionQuit},
		inputs:   []string{"42", "hello"},
		multiIdx: [][]int{{1}},
		confirm:  []bool{true},
	}
	r, out := newTestRenderer(t, driver)
	sub := &stubSubmitter{}
	session := newTestSession(t, r, sub)

	if err := r.Run(context.Background(), session); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sub.sent) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.sent))
	}
	got := sub.sent[0]
	if !got.NumberInput.Equal(model.Number(42)) || got.TextInput != "hello" {
		t.Fatalf("unexpected payload %+v", got)
	}
	if diff := cmp.Diff([]string{"Second Option"}, got.Checkboxes.SelectedLabels()); diff != "" {
		t.Fatalf("selected mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{form.SuccessMessage}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), form.SubmittingMessage) {
		t.Fatalf("loading overlay not shown:\n%s", out.String())
	}
	if !session.Record().Equal(model.NewRecord(model.DefaultCatalog())) {
		t.Fatalf("record not reset after success")
	}
}

func TestRun_InvalidSubmitShowsErrors(t *testing.T) {
	driver := &stubDriver{selects: []string{"Submit"}}
	r, out := newTestRenderer(t, driver)
	sub := &stubSubmitter{}
	session := newTestSession(t, r, sub)

	if err := r.Run(context.Background(), session); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sub.sent) != 0 {
		t.Fatalf("invalid record was transmitted")
	}
	for _, msg := range []string{
		"You must provide a number.",
		"You must provide some text.",
		"At least one option must be selected.",
	} {
		if !strings.Contains(out.String(), msg) {
			t.Fatalf("output missing %q", msg)
		}
	}
}

func TestRun_MasterToggleLabelFollowsSelection(t *testing.T) {
	driver := &stubDriver{selects: []string{"Select all", "Deselect all"}}
	r, _ := newTestRenderer(t, driver)
	session := newTestSession(t, r, &stubSubmitter{})

	if err := r.Run(context.Background(), session); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(driver.menus) != 3 {
		t.Fatalf("expected three menus, got %d", len(driver.menus))
	}
	if got := driver.menus[1][3]; got != "Deselect all" {
		t.Fatalf("master label after select all = %q", got)
	}
	if session.Record().Checkboxes.CheckedCount() != 0 {
		t.Fatalf("expected all options cleared")
	}
}

func TestRun_FailedSubmitKeepsRecord(t *testing.T) {
	driver := &stubDriver{
		selects: []string{ActionEditNumber, ActionEditText, "Select all", "Submit"},
		inputs:  []string{"7", "text"},
		confirm: []bool{true},
	}
	r, out := newTestRenderer(t, driver)
	sub := &stubSubmitter{err: &submission.Error{
		Kind:    submission.KindUnauthorized,
		Status:  401,
		Message: "Unauthorized: you are not allowed to submit this form.",
	}}
	session := newTestSession(t, r, sub)

	if err := r.Run(context.Background(), session); err != nil {
		t.Fatalf("run: %v", err)
	}
	if session.Record().TextInput != "text" {
		t.Fatalf("record lost after failure")
	}
	if !strings.Contains(out.String(), "! Unauthorized: you are not allowed to submit this form.") {
		t.Fatalf("failure message not drawn:\n%s", out.String())
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("unexpected info messages %v", driver.infoMessages)
	}
}

func TestRun_RequiresSession(t *testing.T) {
	r, _ := newTestRenderer(t, &stubDriver{})
	if err := r.Run(context.Background(), nil); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}
}

func TestMenuFor_HidesSubmitWhileBusy(t *testing.T) {
	snap := render.Snapshot{Record: model.NewRecord(model.DefaultCatalog()), State: model.Submitting()}
	for _, item := range menuFor(snap) {
		if item.action == actionSubmit {
			t.Fatalf("submit offered while busy")
		}
	}
}

func TestManifestSelector(t *testing.T) {
	selector := NewManifestSelector(DefaultManifest())

	selection, err := selector.Select("", "light")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	tokens := paletteTokens(selection)
	if tokens[TokenError] != "#D70000" {
		t.Fatalf("variant override not applied, got %q", tokens[TokenError])
	}

	selection, err = selector.Select(DefaultThemeName, "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := paletteTokens(selection)[TokenError]; got != "#FF5F87" {
		t.Fatalf("base token mismatch, got %q", got)
	}

	if _, err := selector.Select("missing", ""); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := selector.Select(DefaultThemeName, "sepia"); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme for variant, got %v", err)
	}
}

func TestNew_UsesThemeSelector(t *testing.T) {
	custom := &theme.Manifest{Name: "mono", Tokens: map[string]string{TokenError: "#FFFFFF"}}
	_, err := New(
		WithPromptDriver(&stubDriver{}),
		WithOutput(&bytes.Buffer{}),
		WithThemeSelector(NewManifestSelector(custom), "mono", ""),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_, err = New(
		WithPromptDriver(&stubDriver{}),
		WithThemeSelector(NewManifestSelector(custom), "acme", ""),
	)
	if !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestRun_NumberPromptRejectsInvalidInput(t *testing.T) {
	driver := &stubDriver{
		selects: []string{ActionEditNumber, ActionQuit},
		inputs:  []string{"abc", "Infinity", "7"},
	}
	r, _ := newTestRenderer(t, driver)
	session := newTestSession(t, r, &stubSubmitter{})

	if err := r.Run(context.Background(), session); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"abc", "Infinity"}, driver.rejected); diff != "" {
		t.Fatalf("rejected mismatch (-want +got):\n%s", diff)
	}
	if got := session.Record().NumberInput; !got.Equal(model.Number(7)) {
		t.Fatalf("number = %+v, want 7", got)
	}
}

func TestCheckNumber(t *testing.T) {
	for raw, ok := range map[string]bool{"": true, "  ": true, "3.5": true, "abc": false, "-inf": false} {
		err := checkNumber(raw)
		if (err == nil) != ok {
			t.Fatalf("checkNumber(%q) = %v, want ok=%v", raw, err, ok)
		}
		if err != nil && err.Error() != validation.MessageNumberInvalid {
			t.Fatalf("checkNumber(%q) message = %q", raw, err.Error())
		}
	}
}
