package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"spineview/internal/app"
	"spineview/internal/assets"
	"spineview/internal/bootstrap"
	"spineview/internal/config"
	"spineview/internal/logging"
	"spineview/internal/panel"
	"spineview/internal/render"
	"spineview/internal/scene"
	"spineview/internal/spine"
	"spineview/internal/viewport"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		slog.Error("spineview failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	background, err := cfg.BackgroundColor()
	if err != nil {
		return err
	}
	manifest, err := cfg.Manifest()
	if err != nil {
		return err
	}

	window := app.NewWindow(cfg.WindowWidth, cfg.WindowHeight)
	surface := app.NewSurface(cfg.WindowWidth, cfg.WindowHeight)
	root := scene.NewContainer()
	sizer := viewport.NewSizer(window, surface, root, logger)
	loader := assets.NewLoader(cfg.Fetcher(nil), logger)

	var node *render.SkeletonNode
	newNode := func(entity *spine.Entity) scene.Node {
		node = render.NewSkeletonNode(entity, mgl32.Vec2{cfg.PosX, cfg.PosY}, cfg.Scale, logger)
		return node
	}
	controller := bootstrap.NewController(loader, sizer, root, newNode, bootstrap.Options{
		Manifest:   manifest,
		Bundle:     cfg.Bundle,
		DataAlias:  cfg.DataAlias,
		AtlasAlias: cfg.AtlasAlias,
		Loop:       cfg.Loop,
	}, logger)
	if err := controller.Start(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	game := app.NewGame(window, surface, root, panel.New(controller, logger), node, background, logger)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(cfg.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(game)
}
