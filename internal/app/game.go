// Package app binds the viewer to the ebiten game loop.
package app

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"spineview/internal/logging"
	"spineview/internal/panel"
	"spineview/internal/scene"
)

// Mover is the entity node that WASD shifts around.
type Mover interface {
	Nudge(dx, dy float32)
}

type Game struct {
	window     *Window
	surface    *Surface
	root       *scene.Container
	panel      *panel.Panel
	mover      Mover
	background color.Color
	logger     *slog.Logger
}

func NewGame(window *Window, surface *Surface, root *scene.Container, controls *panel.Panel, mover Mover, background color.Color, logger *slog.Logger) *Game {
	return &Game{
		window:     window,
		surface:    surface,
		root:       root,
		panel:      controls,
		mover:      mover,
		background: background,
		logger:     logging.OrNop(logger),
	}
}

func (g *Game) Update() error {
	if err := g.panel.Update(); err != nil {
		return err
	}
	if g.mover != nil {
		if ebiten.IsKeyPressed(ebiten.KeyW) {
			g.mover.Nudge(0, -1)
		} else if ebiten.IsKeyPressed(ebiten.KeyS) {
			g.mover.Nudge(0, 1)
		} else if ebiten.IsKeyPressed(ebiten.KeyA) {
			g.mover.Nudge(-1, 0)
		} else if ebiten.IsKeyPressed(ebiten.KeyD) {
			g.mover.Nudge(1, 0)
		}
	}
	return g.root.Update(1 / float64(ebiten.TPS()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.root.Draw(screen, ebiten.GeoM{})
	g.panel.Draw(screen)
}

// Layout feeds the outside size to the window, which resizes the surface
// through its listeners, and reports the surface as the screen.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.window.Observe(outsideWidth, outsideHeight)
	w, h := g.surface.Size()
	if w <= 0 || h <= 0 {
		return outsideWidth, outsideHeight
	}
	return w, h
}
