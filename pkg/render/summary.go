package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render/template"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render/template/gotemplate"
)

// Placeholders used by the summary when a value is missing.
const (
	NotProvided  = "Not provided"
	NotANumber   = "Not a number"
	NoneSelected = "None selected"
)

var (
	defaultEngineOnce sync.Once
	defaultEngine     template.TemplateRenderer
	defaultEngineErr  error
)

func summaryEngine() (template.TemplateRenderer, error) {
	defaultEngineOnce.Do(func() {
		defaultEngine, defaultEngineErr = NewSummaryEngine("")
	})
	return defaultEngine, defaultEngineErr
}

// NewSummaryEngine builds the pongo2 engine behind Summary. When dir is set,
// templates found there (e.g. summary.tpl) take precedence over the built-in
// ones. Every template sees the placeholders under "labels".
func NewSummaryEngine(dir string) (template.TemplateRenderer, error) {
	options := []gotemplate.Option{
		gotemplate.WithFS(Templates()),
		gotemplate.WithGlobalData(map[string]any{
			"labels": map[string]any{
				"not_provided":  NotProvided,
				"not_a_number":  NotANumber,
				"none_selected": NoneSelected,
			},
		}),
	}
	if dir != "" {
		options = append(options, gotemplate.WithBaseDir(dir))
	}
	engine, err := gotemplate.New(options...)
	if err != nil {
		return nil, fmt.Errorf("render: summary engine: %w", err)
	}
	return engine, nil
}

// SummaryData is the view model of the "show current data" summary.
type SummaryData struct {
	Number   string   `json:"number"`
	Text     string   `json:"text"`
	Selected []string `json:"selected"`
}

// NewSummaryData derives display strings from record.
func NewSummaryData(record model.FormRecord) SummaryData {
	data := SummaryData{
		Number:   NotProvided,
		Text:     NotProvided,
		Selected: record.Checkboxes.SelectedLabels(),
	}
	switch {
	case record.NumberInput.IsNaN():
		data.Number = NotANumber
	case record.NumberInput.Present:
		data.Number = record.NumberInput.String()
	}
	if strings.TrimSpace(record.TextInput) != "" {
		data.Text = record.TextInput
	}
	if data.Selected == nil {
		data.Selected = []string{}
	}
	return data
}

// Summary renders the human-readable summary of record using the built-in
// template. It reads nothing but the record.
func Summary(record model.FormRecord) (string, error) {
	engine, err := summaryEngine()
	if err != nil {
		return "", err
	}
	return SummaryWith(engine, record)
}

// SummaryWith renders the summary through engine, which must provide a
// "summary" template.
func SummaryWith(engine template.TemplateRenderer, record model.FormRecord) (string, error) {
	out, err := engine.RenderTemplate("summary", NewSummaryData(record))
	if err != nil {
		return "", fmt.Errorf("render: summary: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
