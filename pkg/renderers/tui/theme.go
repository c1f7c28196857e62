package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"
)

// Palette token names read from a theme manifest.
const (
	TokenError  = "error"
	TokenLabel  = "label"
	TokenMuted  = "muted"
	TokenAccent = "accent"
)

// DefaultThemeName is the built-in manifest resolved when no selector is
// configured.
const DefaultThemeName = "customerform"

// DefaultManifest returns the built-in palette with "dark" and "light"
// variants.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenError:  "#FF5F87",
			TokenLabel:  "#87AFFF",
			TokenMuted:  "#808080",
			TokenAccent: "#5FD7AF",
		},
		Variants: map[string]theme.Variant{
			"dark": {},
			"light": {
				Tokens: map[string]string{
					TokenError:  "#D70000",
					TokenLabel:  "#005FAF",
					TokenMuted:  "#6C6C6C",
					TokenAccent: "#008787",
				},
			},
		},
	}
}

// ManifestSelector resolves themes from a fixed set of manifests.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

// NewManifestSelector indexes manifests by name. The first manifest is used
// when Select is called with an empty name.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			continue
		}
		if s.fallback == "" {
			s.fallback = m.Name
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrUnknownTheme, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// paletteTokens merges the base manifest tokens with the selected variant's
// overrides.
func paletteTokens(selection *theme.Selection) map[string]string {
	tokens := make(map[string]string)
	if selection == nil || selection.Manifest == nil {
		return tokens
	}
	for k, v := range selection.Manifest.Tokens {
		tokens[k] = v
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for k, v := range variant.Tokens {
			tokens[k] = v
		}
	}
	return tokens
}

// Styles are the lipgloss styles used to draw the form.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Accent  lipgloss.Style
	Checked lipgloss.Style
}

func newStyles(out io.Writer, tokens map[string]string) Styles {
	r := lipgloss.NewRenderer(out)
	color := func(key string) lipgloss.Color {
		return lipgloss.Color(tokens[key])
	}
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(color(TokenAccent)),
		Label:   r.NewStyle().Bold(true).Foreground(color(TokenLabel)),
		Value:   r.NewStyle(),
		Muted:   r.NewStyle().Foreground(color(TokenMuted)),
		Error:   r.NewStyle().Foreground(color(TokenError)),
		Accent:  r.NewStyle().Foreground(color(TokenAccent)),
		Checked: r.NewStyle().Foreground(color(TokenAccent)),
	}
}
