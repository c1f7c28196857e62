package form

import (
	"log/slog"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render/template"
)

// Option configures a Session.
type Option func(*Session)

// WithCatalog replaces the default checkbox catalog. An empty catalog is
// ignored and the default stays in place.
func WithCatalog(catalog []model.CheckboxOption) Option {
	return func(s *Session) {
		if len(catalog) > 0 {
			s.catalog = append([]model.CheckboxOption(nil), catalog...)
		}
	}
}

// WithSubmitter sets the transport used to transmit records.
func WithSubmitter(submitter Submitter) Option {
	return func(s *Session) {
		if submitter != nil {
			s.submitter = submitter
		}
	}
}

// WithPrompter sets the host dialogs used for confirmation and information.
func WithPrompter(prompter render.Prompter) Option {
	return func(s *Session) {
		if prompter != nil {
			s.prompter = prompter
		}
	}
}

// WithOverlay sets the busy indicator toggled around transmissions.
func WithOverlay(overlay render.Overlay) Option {
	return func(s *Session) {
		if overlay != nil {
			s.overlay = overlay
		}
	}
}

// WithRenderer registers renderers notified after every state change.
func WithRenderer(renderers ...render.Renderer) Option {
	return func(s *Session) {
		for _, r := range renderers {
			if r != nil {
				s.renderers = append(s.renderers, r)
			}
		}
	}
}

// WithSummary renders "show current data" through engine instead of the
// built-in summary template. engine must provide a "summary" template.
func WithSummary(engine template.TemplateRenderer) Option {
	return func(s *Session) {
		if engine != nil {
			s.summary = engine
		}
	}
}

// WithLogger routes session logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
