package render

import (
	"context"
)

// Renderer presents a session snapshot. Sessions call Render after every
// state change; implementations must not mutate the snapshot.
type Renderer interface {
	Name() string
	Render(ctx context.Context, snapshot Snapshot) error
}

// Prompter is the host capability for blocking dialogs. Confirm presents a
// yes/no question and blocks until answered; Inform presents a message and
// blocks until dismissed.
type Prompter interface {
	Confirm(ctx context.Context, message string) (bool, error)
	Inform(ctx context.Context, message string) error
}

// Overlay shows or hides the busy indicator drawn over the form while a
// submission is in flight.
type Overlay interface {
	SetLoading(visible bool, message string)
}

// NopOverlay ignores loading updates.
type NopOverlay struct{}

// SetLoading implements Overlay.
func (NopOverlay) SetLoading(bool, string) {}
