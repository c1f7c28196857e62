package customerform

import (
	"io/fs"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render"
)

// EmbeddedTemplates exposes the built-in summary templates so callers can
// reuse or extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.Templates()
}
