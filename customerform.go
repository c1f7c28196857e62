package customerform

import (
	"log/slog"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/form"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render/template"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/submission"
)

// Presenter is a presentation layer able to draw snapshots, ask for
// confirmation and show the loading overlay. *tui.Renderer satisfies it.
type Presenter interface {
	render.Renderer
	render.Prompter
	render.Overlay
}

// Session aliases form.Session for callers of the top-level package.
type Session = form.Session

// Result aliases form.Result.
type Result = form.Result

// NewSession wires ui into a form session transmitting through submitter.
// Additional options (catalog, extra renderers, logger) are applied after the
// presenter wiring.
func NewSession(ui Presenter, submitter form.Submitter, options ...form.Option) (*form.Session, error) {
	base := []form.Option{
		form.WithSubmitter(submitter),
		form.WithPrompter(ui),
		form.WithOverlay(ui),
		form.WithRenderer(ui),
	}
	return form.New(append(base, options...)...)
}

// NewClient exposes the submission client constructor from the top-level
// module.
func NewClient(options ...submission.Option) (*submission.Client, error) {
	return submission.New(options...)
}

// WithCatalog forwards form.WithCatalog.
func WithCatalog(catalog []model.CheckboxOption) form.Option {
	return form.WithCatalog(catalog)
}

// WithRenderers registers every renderer of registry except the one named
// skip, typically the presenter already wired by NewSession.
func WithRenderers(registry *render.Registry, skip string) form.Option {
	var extra []render.Renderer
	if registry != nil {
		for _, name := range registry.List() {
			if name == skip {
				continue
			}
			if r, err := registry.Get(name); err == nil {
				extra = append(extra, r)
			}
		}
	}
	return form.WithRenderer(extra...)
}

// WithSummary forwards form.WithSummary. Pair it with
// render.NewSummaryEngine to load summary.tpl overrides from a directory.
func WithSummary(engine template.TemplateRenderer) form.Option {
	return form.WithSummary(engine)
}

// WithLogger forwards form.WithLogger.
func WithLogger(logger *slog.Logger) form.Option {
	return form.WithLogger(logger)
}
