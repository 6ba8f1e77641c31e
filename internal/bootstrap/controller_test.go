package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"

	"spineview/internal/assets"
	"spineview/internal/scene"
	"spineview/internal/spine"
	"spineview/internal/viewport"
)

const bonusJSON = `{
  "skeleton": {"spine": "3.8.99"},
  "bones": [{"name": "root"}, {"name": "body", "parent": "root"}],
  "slots": [
    {"name": "body", "bone": "body", "attachment": "body"},
    {"name": "hat", "bone": "body", "attachment": "hat"}
  ],
  "skins": [
    {"name": "default", "attachments": {"body": {"body": {"width": 2, "height": 2}}}},
    {"name": "gold", "attachments": {"hat": {"hat": {"path": "hat_gold", "width": 2, "height": 2}}}}
  ],
  "animations": {
    "idle": {"bones": {"body": {"rotate": [{"time": 0, "angle": 0}, {"time": 1, "angle": 90}]}}},
    "bonus": {"bones": {"body": {"translate": [{"time": 0}, {"time": 1, "x": 5}]}}},
    "win": {"bones": {"body": {"scale": [{"time": 0}, {"time": 2, "x": 2, "y": 2}]}}}
  }
}`

const noAnimationsJSON = `{
  "bones": [{"name": "root"}],
  "slots": [{"name": "body", "bone": "root", "attachment": "body"}],
  "skins": [{"name": "default", "attachments": {"body": {"body": {"width": 2, "height": 2}}}}]
}`

const noSkinsJSON = `{
  "bones": [{"name": "root"}],
  "animations": {"idle": {}}
}`

const ftAtlas = `ft.png
size: 4,2
format: RGBA8888
filter: Linear,Linear
repeat: none
body
  rotate: false
  xy: 0, 0
  size: 2, 2
  orig: 2, 2
  offset: 0, 0
  index: -1
hat_gold
  rotate: false
  xy: 2, 0
  size: 2, 2
  orig: 2, 2
  offset: 0, 0
  index: -1
`

type fakeHost struct {
	w, h      int
	listeners []func()
}

func (h *fakeHost) Size() (int, int)   { return h.w, h.h }
func (h *fakeHost) OnResize(fn func()) { h.listeners = append(h.listeners, fn) }

func (h *fakeHost) resize(w, hh int) {
	h.w, h.h = w, hh
	for _, fn := range h.listeners {
		fn()
	}
}

type fakeSurface struct{ w, h int }

func (s *fakeSurface) Resize(w, h int) { s.w, s.h = w, h }

type entityNode struct{ entity *spine.Entity }

func (n *entityNode) Update(dt float64) error {
	n.entity.Update(float32(dt))
	return nil
}

func (n *entityNode) Draw(*ebiten.Image, ebiten.GeoM) {}

type fixture struct {
	host       *fakeHost
	root       *scene.Container
	controller *Controller
}

func pageBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newFixture(t *testing.T, skeletonJSON string, opts Options) *fixture {
	t.Helper()
	fsys := fstest.MapFS{
		"spine/bonus.json": {Data: []byte(skeletonJSON)},
		"spine/ft.atlas":   {Data: []byte(ftAtlas)},
		"spine/ft.png":     {Data: pageBytes(t)},
	}
	if opts.Bundle == "" {
		opts.Bundle = "spine-custom"
	}
	if opts.DataAlias == "" {
		opts.DataAlias = "spineData"
	}
	if opts.AtlasAlias == "" {
		opts.AtlasAlias = "spineAtlas"
	}
	opts.Manifest = assets.Manifest{Bundles: []assets.Bundle{{
		Name: "spine-custom",
		Assets: []assets.Asset{
			{Alias: "spineData", Src: "spine/bonus.json"},
			{Alias: "spineAtlas", Src: "spine/ft.atlas"},
		},
	}}}
	host := &fakeHost{w: 1000, h: 500}
	root := scene.NewContainer()
	sizer := viewport.NewSizer(host, &fakeSurface{}, root, nil)
	loader := assets.NewLoader(assets.FSFetcher{FS: fsys}, nil)
	newNode := func(entity *spine.Entity) scene.Node { return &entityNode{entity: entity} }
	return &fixture{
		host:       host,
		root:       root,
		controller: NewController(loader, sizer, root, newNode, opts, nil),
	}
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	if err := f.controller.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

func TestStartSelectsFirstCatalogEntries(t *testing.T) {
	f := newFixture(t, bonusJSON, Options{})
	f.start(t)
	c := f.controller
	if !c.Ready() {
		t.Fatal("controller not ready")
	}
	if c.CurrentAnimation() != "idle" || c.CurrentSkin() != "default" {
		t.Errorf("selection = %q/%q, want idle/default", c.CurrentAnimation(), c.CurrentSkin())
	}
	if got := c.Animations(); !slices.Equal(got, []string{"idle", "bonus", "win"}) {
		t.Errorf("animations = %v", got)
	}
	if got := c.Skins(); !slices.Equal(got, []string{"default", "gold"}) {
		t.Errorf("skins = %v", got)
	}
	if len(f.root.Children()) != 1 || f.root.Children()[0] != c.Node() {
		t.Errorf("stage children = %d", len(f.root.Children()))
	}
	entry := c.Entity().State.Current(0)
	if entry == nil || entry.Animation.Name != "idle" || entry.Loop {
		t.Errorf("track 0 = %+v", entry)
	}
	if c.Entity().Skeleton.Skin.Name != "default" {
		t.Errorf("skin = %q", c.Entity().Skeleton.Skin.Name)
	}
}

func TestStartFollowsResize(t *testing.T) {
	f := newFixture(t, bonusJSON, Options{})
	f.start(t)
	if x, y := f.root.Scale(); x != 1 || y != 1 {
		t.Errorf("initial scale = %v,%v", x, y)
	}
	f.host.resize(2000, 1000)
	if x, y := f.root.Scale(); x != 2 || y != 2 {
		t.Errorf("scale = %v,%v, want 2,2", x, y)
	}
}

func TestChangeAnimationSelectionDoesNotPlay(t *testing.T) {
	f := newFixture(t, bonusJSON, Options{})
	f.start(t)
	c := f.controller
	if err := f.root.Update(0.5); err != nil {
		t.Fatal(err)
	}
	playing := c.Entity().State.Current(0)

	if err := c.ChangeAnimationSelection("win"); err != nil {
		t.Fatalf("ChangeAnimationSelection: %v", err)
	}
	if c.CurrentAnimation() != "win" {
		t.Errorf("current animation = %q", c.CurrentAnimation())
	}
	if got := c.Entity().State.Current(0); got != playing || got.Animation.Name != "idle" || got.TrackTime != 0.5 {
		t.Errorf("selection changed playback: %+v", got)
	}

	if err := c.PlayCurrentAnimation(); err != nil {
		t.Fatalf("PlayCurrentAnimation: %v", err)
	}
	entry := c.Entity().State.Current(0)
	if entry.Animation.Name != "win" || entry.TrackTime != 0 {
		t.Errorf("track 0 = %s at %v, want win at 0", entry.Animation.Name, entry.TrackTime)
	}
}

func TestPlayCurrentAnimationRestarts(t *testing.T) {
	f := newFixture(t, bonusJSON, Options{Loop: true})
	f.start(t)
	if err := f.root.Update(0.75); err != nil {
		t.Fatal(err)
	}
	if err := f.controller.PlayCurrentAnimation(); err != nil {
		t.Fatal(err)
	}
	entry := f.controller.Entity().State.Current(0)
	if entry.Animation.Name != "idle" || entry.TrackTime != 0 || !entry.Loop {
		t.Errorf("track 0 = %+v", entry)
	}
}

func TestChangeSkinKeepsPlayback(t *testing.T) {
	f := newFixture(t, bonusJSON, Options{})
	f.start(t)
	c := f.controller
	if err := f.root.Update(0.25); err != nil {
		t.Fatal(err)
	}
	playing := c.Entity().State.Current(0)
	if err := c.ChangeSkin("gold"); err != nil {
		t.Fatalf("ChangeSkin: %v", err)
	}
	if c.CurrentSkin() != "gold" {
		t.Errorf("current skin = %q", c.CurrentSkin())
	}
	hat := c.Entity().Skeleton.FindSlot("hat").Attachment
	if hat == nil || hat.Path != "hat_gold" {
		t.Errorf("hat attachment = %+v", hat)
	}
	if c.Entity().State.Current(0) != playing || playing.TrackTime != 0.25 {
		t.Error("skin change touched playback")
	}
}

func TestCommandErrorsCarryContext(t *testing.T) {
	f := newFixture(t, bonusJSON, Options{})
	f.start(t)
	c := f.controller
	data := c.Entity().Skeleton.Data
	data.Skins, data.Animations = nil, nil

	err := c.ChangeSkin("gold")
	if !errors.Is(err, spine.ErrSkinNotFound) || !strings.Contains(err.Error(), `apply skin "gold"`) {
		t.Errorf("ChangeSkin err = %v", err)
	}
	if c.CurrentSkin() != "default" {
		t.Errorf("current skin = %q after failure", c.CurrentSkin())
	}
	err = c.PlayCurrentAnimation()
	if !errors.Is(err, spine.ErrAnimationNotFound) || !strings.Contains(err.Error(), `play animation "idle"`) {
		t.Errorf("PlayCurrentAnimation err = %v", err)
	}
}

func TestUnknownSelectionsAreRejected(t *testing.T) {
	f := newFixture(t, bonusJSON, Options{})
	f.start(t)
	c := f.controller
	if err := c.ChangeSkin("silver"); !errors.Is(err, ErrUnknownSkin) {
		t.Errorf("err = %v, want ErrUnknownSkin", err)
	}
	if err := c.ChangeAnimationSelection("lose"); !errors.Is(err, ErrUnknownAnimation) {
		t.Errorf("err = %v, want ErrUnknownAnimation", err)
	}
	if c.CurrentSkin() != "default" || c.CurrentAnimation() != "idle" {
		t.Errorf("selection = %q/%q", c.CurrentSkin(), c.CurrentAnimation())
	}
}

func TestCommandsBeforeStart(t *testing.T) {
	c := newFixture(t, bonusJSON, Options{}).controller
	if err := c.ChangeSkin("default"); !errors.Is(err, ErrNotReady) {
		t.Errorf("ChangeSkin err = %v", err)
	}
	if err := c.ChangeAnimationSelection("idle"); !errors.Is(err, ErrNotReady) {
		t.Errorf("ChangeAnimationSelection err = %v", err)
	}
	if err := c.PlayCurrentAnimation(); !errors.Is(err, ErrNotReady) {
		t.Errorf("PlayCurrentAnimation err = %v", err)
	}
	if c.CurrentSkin() != "" || c.CurrentAnimation() != "" {
		t.Error("selection must be empty before start")
	}
}

func TestStartFailures(t *testing.T) {
	tests := []struct {
		name string
		json string
		opts Options
		want error
	}{
		{"empty animation catalog", noAnimationsJSON, Options{}, ErrEmptyCatalog},
		{"empty skin catalog", noSkinsJSON, Options{}, ErrEmptyCatalog},
		{"unresolved data alias", bonusJSON, Options{DataAlias: "missing"}, ErrAssetResolution},
		{"alias of wrong type", bonusJSON, Options{AtlasAlias: "spineData"}, ErrAssetResolution},
		{"undeclared bundle", bonusJSON, Options{Bundle: "other"}, assets.ErrUnknownBundle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.json, tt.opts)
			err := f.controller.Start(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(f.root.Children()) != 0 {
				t.Error("failed start attached an entity")
			}
			if f.controller.Ready() || f.controller.Entity() != nil {
				t.Error("failed start left the controller ready")
			}
			if len(f.host.listeners) != 0 {
				t.Error("failed start subscribed to resizes")
			}
		})
	}
}

func TestStartMissingRegion(t *testing.T) {
	withHat := bytes.Replace([]byte(bonusJSON), []byte(`"hat_gold"`), []byte(`"hat_silver"`), 1)
	f := newFixture(t, string(withHat), Options{})
	if err := f.controller.Start(context.Background()); !errors.Is(err, ErrAssetResolution) {
		t.Errorf("err = %v, want ErrAssetResolution", err)
	}
}

func TestStartDegenerateWindow(t *testing.T) {
	f := newFixture(t, bonusJSON, Options{})
	f.host.w = 0
	err := f.controller.Start(context.Background())
	if !errors.Is(err, viewport.ErrDegenerateBaseline) {
		t.Fatalf("err = %v, want ErrDegenerateBaseline", err)
	}
	if len(f.root.Children()) != 0 {
		t.Error("entity attached without a baseline")
	}
}

func TestStartTwice(t *testing.T) {
	f := newFixture(t, bonusJSON, Options{})
	f.start(t)
	if err := f.controller.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("err = %v, want ErrAlreadyStarted", err)
	}
	if len(f.root.Children()) != 1 {
		t.Errorf("stage children = %d, want 1", len(f.root.Children()))
	}
}
