package app

import (
	"testing"

	"spineview/internal/scene"
	"spineview/internal/viewport"
)

func TestWindowNotifiesOnChangeOnly(t *testing.T) {
	window := NewWindow(800, 600)
	calls := 0
	window.OnResize(func() { calls++ })
	window.Observe(800, 600)
	if calls != 0 {
		t.Errorf("calls = %d for an unchanged size", calls)
	}
	window.Observe(1024, 600)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if w, h := window.Size(); w != 1024 || h != 600 {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestLayoutDrivesViewport(t *testing.T) {
	window := NewWindow(1000, 500)
	surface := NewSurface(0, 0)
	root := scene.NewContainer()
	sizer := viewport.NewSizer(window, surface, root, nil)
	if err := sizer.CaptureBaseline(); err != nil {
		t.Fatal(err)
	}
	game := &Game{window: window, surface: surface, root: root}
	if w, h := game.Layout(1000, 500); w != 1000 || h != 500 {
		t.Errorf("layout before start = %dx%d", w, h)
	}
	if err := sizer.Start(); err != nil {
		t.Fatal(err)
	}
	if w, h := game.Layout(2000, 1000); w != 2000 || h != 1000 {
		t.Errorf("layout = %dx%d", w, h)
	}
	if x, y := root.Scale(); x != 2 || y != 2 {
		t.Errorf("root scale = %v,%v", x, y)
	}
}
