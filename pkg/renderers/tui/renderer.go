package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/form"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/validation"
)

// Menu captions.
const (
	MenuPrompt         = "What would you like to do?"
	ActionEditNumber   = "Edit number"
	ActionEditText     = "Edit text"
	ActionChooseOption = "Choose options"
	ActionShowData     = "Show current data"
	ActionQuit         = "Quit"
	InFlightMessage    = "A submission is already in progress."
)

// Renderer draws form snapshots to a terminal and drives the interactive
// menu. It implements render.Renderer, render.Prompter and render.Overlay so
// a single value can be handed to form.New for all three roles.
type Renderer struct {
	driver PromptDriver
	out    io.Writer
	logger *slog.Logger

	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	styles       Styles

	mu       sync.Mutex
	version  uint64
	rendered bool
}

var (
	_ render.Renderer = (*Renderer)(nil)
	_ render.Prompter = (*Renderer)(nil)
	_ render.Overlay  = (*Renderer)(nil)
)

// New constructs a TUI renderer with defaults (survey driver, stdout, the
// built-in dark palette).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		out:          os.Stdout,
		logger:       slog.New(slog.DiscardHandler),
		selector:     NewManifestSelector(DefaultManifest()),
		themeVariant: "dark",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}

	selection, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("tui: select theme: %w", err)
	}
	r.styles = newStyles(r.out, paletteTokens(selection))
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// Render draws snapshot unless a newer one was already drawn.
func (r *Renderer) Render(ctx context.Context, snapshot render.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rendered && snapshot.Version < r.version {
		return nil
	}
	r.version = snapshot.Version
	r.rendered = true
	_, err := io.WriteString(r.out, r.View(snapshot))
	return err
}

// View formats snapshot as a block of text.
func (r *Renderer) View(snap render.Snapshot) string {
	st := r.styles
	var b strings.Builder
	indent := strings.Repeat(" ", 10)

	b.WriteString(st.Title.Render("Customer form"))
	b.WriteString("\n")

	number := st.Muted.Render("(empty)")
	switch {
	case snap.Record.NumberInput.IsNaN():
		number = st.Value.Render(render.NotANumber)
	case snap.Record.NumberInput.Present:
		number = st.Value.Render(snap.Record.NumberInput.String())
	}
	writeRow(&b, st, "Number:", number)
	writeError(&b, st, indent, snap.ErrorFor(model.FieldNumber))

	text := st.Muted.Render("(empty)")
	if snap.Record.TextInput != "" {
		text = st.Value.Render(snap.Record.TextInput)
	}
	writeRow(&b, st, "Text:", text)
	writeError(&b, st, indent, snap.ErrorFor(model.FieldText))

	label := "Options:"
	for _, option := range snap.Record.Checkboxes {
		writeRow(&b, st, label, checkbox(st, option.Checked)+" "+option.Label)
		label = ""
	}
	writeRow(&b, st, label, checkbox(st, snap.AllSelected())+" "+snap.MasterLabel())
	writeError(&b, st, indent, snap.ErrorFor(model.FieldCheckboxes))

	b.WriteString(st.Accent.Render("[" + snap.SubmitLabel() + "]"))
	b.WriteString("\n")
	if msg := snap.SubmissionError(); msg != "" {
		b.WriteString(st.Error.Render("! " + msg))
		b.WriteString("\n")
	}
	return b.String()
}

func writeRow(b *strings.Builder, st Styles, label, value string) {
	b.WriteString(st.Label.Render(fmt.Sprintf("%-10s", label)))
	b.WriteString(value)
	b.WriteString("\n")
}

func writeError(b *strings.Builder, st Styles, indent, msg string) {
	if msg == "" {
		return
	}
	b.WriteString(indent)
	b.WriteString(st.Error.Render("! " + msg))
	b.WriteString("\n")
}

func checkbox(st Styles, checked bool) string {
	if checked {
		return st.Checked.Render("[x]")
	}
	return "[ ]"
}

// Confirm implements render.Prompter.
func (r *Renderer) Confirm(ctx context.Context, message string) (bool, error) {
	return r.driver.Confirm(ctx, ConfirmConfig{Message: message})
}

// Inform implements render.Prompter.
func (r *Renderer) Inform(ctx context.Context, message string) error {
	return r.driver.Info(ctx, message)
}

// SetLoading implements render.Overlay. Terminals cannot draw over earlier
// output, so only the appearance of the overlay is printed.
func (r *Renderer) SetLoading(visible bool, message string) {
	if !visible {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, r.styles.Accent.Render(message))
}

type action int

const (
	actionEditNumber action = iota
	actionEditText
	actionChooseOptions
	actionToggleAll
	actionShowData
	actionSubmit
	actionQuit
)

type menuItem struct {
	label  string
	action action
}

// menuFor lists the actions available for snap. Submit is omitted while a
// submission is in flight.
func menuFor(snap render.Snapshot) []menuItem {
	items := []menuItem{
		{ActionEditNumber, actionEditNumber},
		{ActionEditText, actionEditText},
		{ActionChooseOption, actionChooseOptions},
		{snap.MasterLabel(), actionToggleAll},
		{ActionShowData, actionShowData},
	}
	if !snap.Busy() {
		items = append(items, menuItem{snap.SubmitLabel(), actionSubmit})
	}
	return append(items, menuItem{ActionQuit, actionQuit})
}

// Run drives session from the terminal until the user quits or ctx ends.
// Aborting the menu prompt quits; aborting a field prompt returns to the
// menu.
func (r *Renderer) Run(ctx context.Context, session *form.Session) error {
	if session == nil {
		return ErrSessionRequired
	}
	if err := r.Render(ctx, session.Snapshot()); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap := session.Snapshot()
		items := menuFor(snap)
		labels := make([]string, len(items))
		for i, item := range items {
			labels[i] = item.label
		}

		idx, err := r.driver.Select(ctx, SelectConfig{Message: MenuPrompt, Options: labels})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(items) {
			continue
		}
		if items[idx].action == actionQuit {
			return nil
		}

		err = r.perform(ctx, session, snap, items[idx].action)
		if errors.Is(err, ErrAborted) {
			continue
		}
		if err != nil {
			return err
		}
	}
}

func (r *Renderer) perform(ctx context.Context, session *form.Session, snap render.Snapshot, act action) error {
	switch act {
	case actionEditNumber:
		current := snap.Record.NumberInput.String()
		if snap.Record.NumberInput.IsNaN() {
			current = ""
		}
		raw, err := r.driver.Input(ctx, InputConfig{
			Message:   "Number",
			Default:   current,
			Help:      snap.ErrorFor(model.FieldNumber),
			Validator: checkNumber,
		})
		if err != nil {
			return err
		}
		session.SetNumber(raw)
	case actionEditText:
		text, err := r.driver.Input(ctx, InputConfig{
			Message: "Text",
			Default: snap.Record.TextInput,
			Help:    snap.ErrorFor(model.FieldText),
		})
		if err != nil {
			return err
		}
		session.SetText(text)
	case actionChooseOptions:
		return r.chooseOptions(ctx, session, snap)
	case actionToggleAll:
		session.ToggleAll(!snap.AllSelected())
	case actionShowData:
		return session.ShowCurrentData(ctx)
	case actionSubmit:
		return r.submit(ctx, session)
	}
	return nil
}

// checkNumber rejects text that would store NaN. Blank input is accepted and
// reported as missing when the form is submitted.
func checkNumber(raw string) error {
	if model.ParseNumber(raw).IsNaN() {
		return errors.New(validation.MessageNumberInvalid)
	}
	return nil
}

func (r *Renderer) chooseOptions(ctx context.Context, session *form.Session, snap render.Snapshot) error {
	options := snap.Record.Checkboxes
	labels := make([]string, len(options))
	var defaults []int
	for i, option := range options {
		labels[i] = option.Label
		if option.Checked {
			defaults = append(defaults, i)
		}
	}
	chosen, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Options",
		Options:  labels,
		Defaults: defaults,
		Help:     snap.ErrorFor(model.FieldCheckboxes),
	})
	if err != nil {
		return err
	}
	want := make([]bool, len(options))
	for _, idx := range chosen {
		if idx >= 0 && idx < len(want) {
			want[idx] = true
		}
	}
	for i, option := range options {
		if want[i] != option.Checked {
			session.ToggleOption(option.ID)
		}
	}
	return nil
}

func (r *Renderer) submit(ctx context.Context, session *form.Session) error {
	result, err := session.Submit(ctx)
	if errors.Is(err, form.ErrSubmissionInFlight) {
		return r.Inform(ctx, InFlightMessage)
	}
	if err != nil {
		return err
	}
	r.logger.Debug("submit finished", "outcome", result.Outcome.String())
	return nil
}
