// Package template defines the template engine contract used by the render
// package. The pongo2 implementation lives in the gotemplate subpackage.
package template
