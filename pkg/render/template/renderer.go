package template

import (
	"io"
)

// TemplateRenderer is the seam text views render through. Implementations
// resolve names against their configured template set.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
