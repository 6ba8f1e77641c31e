package render

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"spineview/internal/spine"
)

const boxJSON = `{
  "bones": [{"name": "root"}],
  "slots": [{"name": "box", "bone": "root", "attachment": "box", "blend": "screen"}],
  "skins": [{"name": "default", "attachments": {"box": {"box": {"width": 10, "height": 10}}}}],
  "animations": {"idle": {}}
}`

func newBoxNode(t *testing.T) *SkeletonNode {
	t.Helper()
	data, err := spine.ParseSkeletonJSON([]byte(boxJSON))
	if err != nil {
		t.Fatal(err)
	}
	page := &spine.AtlasPage{Name: "box.png", W: 10, H: 10}
	atlas := &spine.Atlas{
		Pages:   []*spine.AtlasPage{page},
		Regions: []*spine.AtlasRegion{{Name: "box", Page: page, W: 10, H: 10, OrigW: 10, OrigH: 10}},
	}
	entity, err := spine.NewEntity(data, atlas)
	if err != nil {
		t.Fatal(err)
	}
	return NewSkeletonNode(entity, mgl32.Vec2{100, 200}, 1, nil)
}

func TestToScreenFlipsY(t *testing.T) {
	node := newBoxNode(t)
	node.Scale = 2
	geo := ebiten.GeoM{}
	geo.Scale(0.5, 0.5)
	x, y := node.ToScreen(geo, mgl32.Vec2{10, 10})
	if x != 60 || y != 90 {
		t.Errorf("ToScreen = (%v,%v), want (60,90)", x, y)
	}
}

func TestBoundsCoversRegion(t *testing.T) {
	node := newBoxNode(t)
	got := node.Bounds(ebiten.GeoM{})
	want := image.Rect(95, 195, 106, 206)
	if got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestUpdateAdvancesEntity(t *testing.T) {
	node := newBoxNode(t)
	entry, err := node.Entity.State.SetAnimation(0, "idle", true)
	if err != nil {
		t.Fatal(err)
	}
	if err := node.Update(0.25); err != nil {
		t.Fatal(err)
	}
	if entry.TrackTime != 0.25 {
		t.Errorf("track time = %v", entry.TrackTime)
	}
}

func TestBlendFallsBackToSourceOver(t *testing.T) {
	if Blend(spine.BlendAdditive) != ebiten.BlendLighter {
		t.Error("additive should map to lighter")
	}
	if Blend(spine.BlendMode(99)) != ebiten.BlendSourceOver {
		t.Error("unknown mode should map to source over")
	}
}

func TestNudgeMovesOrigin(t *testing.T) {
	node := newBoxNode(t)
	node.Nudge(-1, 2)
	if node.Pos != (mgl32.Vec2{99, 202}) {
		t.Errorf("pos = %v", node.Pos)
	}
}

const meshJSON = `{
  "bones": [{"name": "root"}],
  "slots": [{"name": "s", "bone": "root", "attachment": "m"}],
  "skins": [{"name": "default", "attachments": {"s": {"m": {"type": "mesh",
    "uvs": [0, 0, 1, 0, 1, 1], "vertices": [0, 0, 10, 0, 10, 10], "triangles": [0, 1, 2]}}}}],
  "animations": {"idle": {}}
}`

func TestMeshPointsSkipsMismatchedMesh(t *testing.T) {
	data, err := spine.ParseSkeletonJSON([]byte(meshJSON))
	if err != nil {
		t.Fatal(err)
	}
	page := &spine.AtlasPage{Name: "m.png", W: 10, H: 10}
	atlas := &spine.Atlas{
		Pages:   []*spine.AtlasPage{page},
		Regions: []*spine.AtlasRegion{{Name: "m", Page: page, W: 10, H: 10, OrigW: 10, OrigH: 10}},
	}
	entity, err := spine.NewEntity(data, atlas)
	if err != nil {
		t.Fatal(err)
	}
	node := NewSkeletonNode(entity, mgl32.Vec2{}, 1, nil)
	slot := entity.Skeleton.FindSlot("s")
	if points, ok := node.meshPoints(slot); !ok || len(points) != 3 {
		t.Fatalf("meshPoints = %v, %v", points, ok)
	}

	slot.Attachment.Vertices = slot.Attachment.Vertices[:2]
	if _, ok := node.meshPoints(slot); ok {
		t.Error("mesh with fewer vertices than uvs should be skipped")
	}
	slot.Attachment.Vertices = append(slot.Attachment.Vertices, mgl32.Vec2{10, 10})
	if _, ok := node.meshPoints(slot); ok {
		t.Error("a skipped mesh stays skipped")
	}
}
