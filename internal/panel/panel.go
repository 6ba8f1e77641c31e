// Package panel is the on-screen control panel: a skin selector, an
// animation selector and a play button, driven by mouse and keyboard.
package panel

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"spineview/internal/logging"
)

// Commands is what the panel may ask of the controller.
type Commands interface {
	Skins() []string
	Animations() []string
	CurrentSkin() string
	CurrentAnimation() string
	ChangeSkin(name string) error
	ChangeAnimationSelection(name string) error
	PlayCurrentAnimation() error
}

const (
	margin    = 10
	rowHeight = 22
	arrowW    = 22
	labelW    = 220
	padding   = 4
)

var (
	face        = text.NewGoXFace(basicfont.Face7x13)
	buttonColor = color.RGBA{0x40, 0x40, 0x48, 0xe0}
	labelColor  = color.RGBA{0x20, 0x20, 0x24, 0xc0}
	errorColor  = color.RGBA{0xc0, 0x20, 0x20, 0xff}
)

// Button is a clickable rectangle in screen pixels.
type Button struct {
	Label  string
	Rect   image.Rectangle
	action func() error
}

type Panel struct {
	cmds    Commands
	logger  *slog.Logger
	buttons []*Button
	keys    map[ebiten.Key]func() error
	lastErr error
}

func New(cmds Commands, logger *slog.Logger) *Panel {
	res := &Panel{cmds: cmds, logger: logging.OrNop(logger)}
	res.buttons = res.layout()
	res.keys = map[ebiten.Key]func() error{
		ebiten.KeyN:     func() error { return res.StepSkin(-1) },
		ebiten.KeyM:     func() error { return res.StepSkin(1) },
		ebiten.KeyJ:     func() error { return res.StepAnimation(-1) },
		ebiten.KeyK:     func() error { return res.StepAnimation(1) },
		ebiten.KeySpace: res.Play,
		ebiten.KeyEnter: res.Play,
	}
	return res
}

func (p *Panel) layout() []*Button {
	row := func(i int) int { return margin + i*(rowHeight+padding) }
	rect := func(x, y, w int) image.Rectangle { return image.Rect(x, y, x+w, y+rowHeight) }
	labelX := margin + arrowW + padding
	nextX := labelX + labelW + padding
	return []*Button{
		{Label: "<", Rect: rect(margin, row(0), arrowW), action: func() error { return p.StepSkin(-1) }},
		{Label: ">", Rect: rect(nextX, row(0), arrowW), action: func() error { return p.StepSkin(1) }},
		{Label: "<", Rect: rect(margin, row(1), arrowW), action: func() error { return p.StepAnimation(-1) }},
		{Label: ">", Rect: rect(nextX, row(1), arrowW), action: func() error { return p.StepAnimation(1) }},
		{Label: "Play", Rect: rect(margin, row(2), nextX+arrowW-margin), action: p.Play},
	}
}

// Buttons lists the clickable areas.
func (p *Panel) Buttons() []*Button {
	return p.buttons
}

// step moves from current by delta inside names, wrapping around.
func step(names []string, current string, delta int) (string, bool) {
	if len(names) == 0 {
		return "", false
	}
	idx := slices.Index(names, current)
	if idx < 0 {
		idx = 0
	}
	n := len(names)
	return names[((idx+delta)%n+n)%n], true
}

// StepSkin selects the skin delta places away and applies it.
func (p *Panel) StepSkin(delta int) error {
	name, ok := step(p.cmds.Skins(), p.cmds.CurrentSkin(), delta)
	if !ok {
		return nil
	}
	return p.cmds.ChangeSkin(name)
}

// StepAnimation moves the animation selection without playing it.
func (p *Panel) StepAnimation(delta int) error {
	name, ok := step(p.cmds.Animations(), p.cmds.CurrentAnimation(), delta)
	if !ok {
		return nil
	}
	return p.cmds.ChangeAnimationSelection(name)
}

func (p *Panel) Play() error {
	return p.cmds.PlayCurrentAnimation()
}

// Click runs the button under (x, y). It reports whether a button was hit.
func (p *Panel) Click(x, y int) bool {
	pt := image.Pt(x, y)
	for _, button := range p.buttons {
		if pt.In(button.Rect) {
			p.record(button.action())
			return true
		}
	}
	return false
}

// Press runs the binding of key. It reports whether the key is bound.
func (p *Panel) Press(key ebiten.Key) bool {
	action, ok := p.keys[key]
	if !ok {
		return false
	}
	p.record(action())
	return true
}

// Err is the last command error, cleared by the next successful command.
func (p *Panel) Err() error {
	return p.lastErr
}

func (p *Panel) record(err error) {
	p.lastErr = err
	if err != nil {
		p.logger.Warn("panel command", "error", err)
	}
}

// Update polls the keyboard and mouse. Command errors are shown, not returned.
func (p *Panel) Update() error {
	for key := range p.keys {
		if inpututil.IsKeyJustPressed(key) {
			p.Press(key)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.Click(ebiten.CursorPosition())
	}
	return nil
}

func (p *Panel) Draw(dst *ebiten.Image) {
	for _, button := range p.buttons {
		drawBox(dst, button.Rect, buttonColor)
		drawText(dst, button.Label, button.Rect, color.White)
	}
	labelX := margin + arrowW + padding
	rows := []string{
		fmt.Sprintf("skin: %s", p.cmds.CurrentSkin()),
		fmt.Sprintf("animation: %s", p.cmds.CurrentAnimation()),
	}
	for i, label := range rows {
		y := margin + i*(rowHeight+padding)
		rect := image.Rect(labelX, y, labelX+labelW, y+rowHeight)
		drawBox(dst, rect, labelColor)
		drawText(dst, label, rect, color.White)
	}
	if p.lastErr != nil {
		y := margin + 3*(rowHeight+padding)
		drawText(dst, p.lastErr.Error(), image.Rect(margin, y, margin+labelW, y+rowHeight), errorColor)
	}
}

func drawBox(dst *ebiten.Image, rect image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(dst, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), clr, false)
}

func drawText(dst *ebiten.Image, label string, rect image.Rectangle, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(rect.Min.X+padding), float64(rect.Min.Y+padding))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, label, face, op)
}
