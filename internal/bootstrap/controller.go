// Package bootstrap runs the viewer startup sequence and owns the skin and
// animation selection of the single displayed entity.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"spineview/internal/assets"
	"spineview/internal/logging"
	"spineview/internal/scene"
	"spineview/internal/spine"
	"spineview/internal/viewport"
)

// Stage receives the entity node once it is fully initialized.
type Stage interface {
	AddChild(node scene.Node)
}

// NodeFunc wraps an entity into the node attached to the stage.
type NodeFunc func(entity *spine.Entity) scene.Node

// Options names what Start loads and how it plays.
type Options struct {
	Manifest   assets.Manifest
	Bundle     string
	DataAlias  string
	AtlasAlias string
	Loop       bool
}

type Controller struct {
	loader  *assets.Loader
	sizer   *viewport.Sizer
	stage   Stage
	newNode NodeFunc
	opts    Options
	logger  *slog.Logger

	started          bool
	ready            bool
	entity           *spine.Entity
	node             scene.Node
	skins            []string
	animations       []string
	currentSkin      string
	currentAnimation string
}

func NewController(loader *assets.Loader, sizer *viewport.Sizer, stage Stage, newNode NodeFunc, opts Options, logger *slog.Logger) *Controller {
	return &Controller{
		loader:  loader,
		sizer:   sizer,
		stage:   stage,
		newNode: newNode,
		opts:    opts,
		logger:  logging.OrNop(logger),
	}
}

// Start captures the viewport baseline, loads the bundle, creates and
// attaches the entity, then applies the first resize and follows later ones.
// Any failure leaves the controller not ready.
func (c *Controller) Start(ctx context.Context) error {
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true
	if err := c.sizer.CaptureBaseline(); err != nil {
		return fmt.Errorf("capture baseline: %w", err)
	}
	if err := c.loader.Init(c.opts.Manifest); err != nil {
		return fmt.Errorf("init assets: %w", err)
	}
	if err := c.loader.LoadBundle(ctx, c.opts.Bundle); err != nil {
		return fmt.Errorf("load bundle %q: %w", c.opts.Bundle, err)
	}
	if err := c.createEntity(c.opts.DataAlias, c.opts.AtlasAlias); err != nil {
		return err
	}
	if err := c.sizer.Start(); err != nil {
		return fmt.Errorf("start viewport: %w", err)
	}
	c.ready = true
	c.logger.Info("viewer ready", "skin", c.currentSkin, "animation", c.currentAnimation)
	return nil
}

// createEntity builds the entity, selects the first animation and skin,
// applies the skin and starts playback. The node reaches the stage only if
// every step succeeded.
func (c *Controller) createEntity(dataAlias, atlasAlias string) error {
	data, err := assets.Lookup[*spine.SkeletonData](c.loader, dataAlias)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetResolution, err)
	}
	atlas, err := assets.Lookup[*spine.Atlas](c.loader, atlasAlias)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetResolution, err)
	}
	entity, err := spine.NewEntity(data, atlas)
	if err != nil {
		if errors.Is(err, spine.ErrRegionNotFound) {
			return fmt.Errorf("%w: %w", ErrAssetResolution, err)
		}
		return fmt.Errorf("create entity: %w", err)
	}

	animations := data.AnimationNames()
	if len(animations) == 0 {
		return fmt.Errorf("%w: %q has no animations", ErrEmptyCatalog, dataAlias)
	}
	skins := data.SkinNames()
	if len(skins) == 0 {
		return fmt.Errorf("%w: %q has no skins", ErrEmptyCatalog, dataAlias)
	}
	animation, skin := animations[0], skins[0]
	if err := entity.Skeleton.SetSkinByName(skin); err != nil {
		return fmt.Errorf("apply skin: %w", err)
	}
	entity.Skeleton.SetSlotsToSetupPose()
	if _, err := entity.State.SetAnimation(0, animation, c.opts.Loop); err != nil {
		return fmt.Errorf("start animation: %w", err)
	}
	entity.Pose()

	node := c.newNode(entity)
	c.stage.AddChild(node)
	c.entity, c.node = entity, node
	c.animations, c.skins = animations, skins
	c.currentAnimation, c.currentSkin = animation, skin
	return nil
}

// ChangeSkin applies name and resets slots to its setup pose. Playback is
// left alone.
func (c *Controller) ChangeSkin(name string) error {
	if !c.ready {
		return ErrNotReady
	}
	if !slices.Contains(c.skins, name) {
		return fmt.Errorf("%w: %q", ErrUnknownSkin, name)
	}
	if err := c.entity.Skeleton.SetSkinByName(name); err != nil {
		return fmt.Errorf("apply skin %q: %w", name, err)
	}
	c.entity.Skeleton.SetSlotsToSetupPose()
	c.currentSkin = name
	c.logger.Debug("skin changed", "skin", name)
	return nil
}

// ChangeAnimationSelection only records name; PlayCurrentAnimation starts it.
func (c *Controller) ChangeAnimationSelection(name string) error {
	if !c.ready {
		return ErrNotReady
	}
	if !slices.Contains(c.animations, name) {
		return fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	c.currentAnimation = name
	c.logger.Debug("animation selected", "animation", name)
	return nil
}

// PlayCurrentAnimation replaces track 0 with the selected animation from time 0.
func (c *Controller) PlayCurrentAnimation() error {
	if !c.ready {
		return ErrNotReady
	}
	if _, err := c.entity.State.SetAnimation(0, c.currentAnimation, c.opts.Loop); err != nil {
		return fmt.Errorf("play animation %q: %w", c.currentAnimation, err)
	}
	c.logger.Debug("animation played", "animation", c.currentAnimation)
	return nil
}

func (c *Controller) Ready() bool { return c.ready }

func (c *Controller) CurrentSkin() string { return c.currentSkin }

func (c *Controller) CurrentAnimation() string { return c.currentAnimation }

// Skins lists the skin catalog in file order.
func (c *Controller) Skins() []string { return slices.Clone(c.skins) }

// Animations lists the animation catalog in file order.
func (c *Controller) Animations() []string { return slices.Clone(c.animations) }

// Entity is nil until Start succeeded.
func (c *Controller) Entity() *spine.Entity { return c.entity }

// Node is the stage child built for the entity.
func (c *Controller) Node() scene.Node { return c.node }
