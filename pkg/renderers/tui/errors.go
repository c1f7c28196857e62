package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrSessionRequired is returned by Run when no session is supplied.
	ErrSessionRequired = errors.New("tui: session is required")
	// ErrUnknownTheme is returned when the selected theme cannot be resolved.
	ErrUnknownTheme = errors.New("tui: unknown theme")
)
