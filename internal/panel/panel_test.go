package panel

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type fakeCommands struct {
	skins, animations []string
	skin, animation   string
	plays             int
	err               error
}

func (f *fakeCommands) Skins() []string          { return f.skins }
func (f *fakeCommands) Animations() []string     { return f.animations }
func (f *fakeCommands) CurrentSkin() string      { return f.skin }
func (f *fakeCommands) CurrentAnimation() string { return f.animation }

func (f *fakeCommands) ChangeSkin(name string) error {
	if f.err != nil {
		return f.err
	}
	f.skin = name
	return nil
}

func (f *fakeCommands) ChangeAnimationSelection(name string) error {
	f.animation = name
	return nil
}

func (f *fakeCommands) PlayCurrentAnimation() error {
	f.plays++
	return nil
}

func newFake() *fakeCommands {
	return &fakeCommands{
		skins:      []string{"default", "gold"},
		animations: []string{"idle", "bonus", "win"},
		skin:       "default",
		animation:  "idle",
	}
}

func TestStepWraps(t *testing.T) {
	tests := []struct {
		current string
		delta   int
		want    string
	}{
		{"idle", 1, "bonus"},
		{"win", 1, "idle"},
		{"idle", -1, "win"},
		{"missing", 1, "bonus"},
		{"bonus", 4, "win"},
	}
	names := []string{"idle", "bonus", "win"}
	for _, tt := range tests {
		got, ok := step(names, tt.current, tt.delta)
		if !ok || got != tt.want {
			t.Errorf("step(%q, %d) = %q, want %q", tt.current, tt.delta, got, tt.want)
		}
	}
	if _, ok := step(nil, "", 1); ok {
		t.Error("empty catalog should not step")
	}
}

func TestKeysDriveCommands(t *testing.T) {
	cmds := newFake()
	p := New(cmds, nil)
	p.Press(ebiten.KeyK)
	p.Press(ebiten.KeyK)
	if cmds.animation != "win" || cmds.plays != 0 {
		t.Errorf("animation = %q plays = %d", cmds.animation, cmds.plays)
	}
	p.Press(ebiten.KeyM)
	if cmds.skin != "gold" {
		t.Errorf("skin = %q", cmds.skin)
	}
	p.Press(ebiten.KeySpace)
	p.Press(ebiten.KeyEnter)
	if cmds.plays != 2 {
		t.Errorf("plays = %d", cmds.plays)
	}
	if p.Press(ebiten.KeyQ) {
		t.Error("Q should not be bound")
	}
}

func TestClickHitsButtons(t *testing.T) {
	cmds := newFake()
	p := New(cmds, nil)
	buttons := p.Buttons()
	play := buttons[len(buttons)-1]
	if play.Label != "Play" {
		t.Fatalf("last button = %q", play.Label)
	}
	center := play.Rect.Min.Add(play.Rect.Size().Div(2))
	if !p.Click(center.X, center.Y) || cmds.plays != 1 {
		t.Errorf("play click missed, plays = %d", cmds.plays)
	}
	prevAnimation := buttons[2].Rect.Min
	p.Click(prevAnimation.X, prevAnimation.Y)
	if cmds.animation != "win" {
		t.Errorf("animation = %q, want win", cmds.animation)
	}
	if p.Click(-5, -5) {
		t.Error("click outside every button reported a hit")
	}
}

func TestCommandErrorsAreKept(t *testing.T) {
	cmds := newFake()
	boom := errors.New("not ready")
	cmds.err = boom
	p := New(cmds, nil)
	p.Press(ebiten.KeyN)
	if !errors.Is(p.Err(), boom) {
		t.Errorf("Err = %v", p.Err())
	}
	p.Press(ebiten.KeySpace)
	if p.Err() != nil {
		t.Errorf("successful command should clear the error, got %v", p.Err())
	}
}
