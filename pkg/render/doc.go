// Package render holds the boundary between a form session and whatever
// presents it: the Snapshot handed to renderers after each change, the
// Prompter and Overlay host capabilities, a name-keyed Registry of renderers
// and the "show current data" summary.
package render
