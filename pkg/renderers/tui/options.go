package tui

import (
	"io"
	"log/slog"

	theme "github.com/goliatone/go-theme"
)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput directs form views and messages to out instead of stdout.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		if out != nil {
			r.out = out
		}
	}
}

// WithThemeSelector resolves the palette through selector using the given
// theme name and variant.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Renderer) {
		if selector != nil {
			r.selector = selector
		}
		r.themeName = name
		r.themeVariant = variant
	}
}

// WithLogger routes renderer logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
