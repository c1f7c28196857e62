package render

import (
	"context"
	"log/slog"
)

// LogRenderer writes each snapshot as a structured log record. It is useful
// for headless runs and for tracing state changes next to an interactive
// renderer.
type LogRenderer struct {
	logger *slog.Logger
}

// NewLogRenderer returns a renderer logging at debug level through logger.
func NewLogRenderer(logger *slog.Logger) *LogRenderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogRenderer{logger: logger}
}

// Name implements Renderer.
func (r *LogRenderer) Name() string { return "log" }

// Render implements Renderer.
func (r *LogRenderer) Render(ctx context.Context, snapshot Snapshot) error {
	attrs := []slog.Attr{
		slog.String("number", snapshot.Record.NumberInput.String()),
		slog.Int("text_len", len(snapshot.Record.TextInput)),
		slog.Any("selected", snapshot.Record.Checkboxes.SelectedLabels()),
		slog.Bool("all_selected", snapshot.AllSelected()),
		slog.String("state", snapshot.State.Status.String()),
	}
	for _, issue := range snapshot.Issues() {
		attrs = append(attrs, slog.String("error."+string(issue.Field), issue.Message))
	}
	if msg := snapshot.SubmissionError(); msg != "" {
		attrs = append(attrs, slog.String("submission_error", msg))
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "form snapshot", attrs...)
	return nil
}
