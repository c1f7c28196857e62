package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string { return string(n) }

func (namedRenderer) Render(context.Context, render.Snapshot) error { return nil }

func TestRegistry_RegisterAndList(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer("tui"))
	registry.MustRegister(render.NewLogRenderer(nil))

	if err := registry.Register(namedRenderer("tui")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	if diff := cmp.Diff([]string{"log", "tui"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	got, err := registry.Get("log")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "log" {
		t.Fatalf("unexpected renderer %q", got.Name())
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}
