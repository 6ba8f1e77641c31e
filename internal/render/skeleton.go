// Package render draws spine entities with ebiten.
package render

import (
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"

	"spineview/internal/logging"
	"spineview/internal/spine"
)

var regionIndices = []uint16{0, 1, 2, 0, 2, 3}

// SkeletonNode is the scene node of one entity. Spine space is y up; the
// node flips it and places the skeleton origin at Pos.
type SkeletonNode struct {
	Entity *spine.Entity
	Pos    mgl32.Vec2
	Scale  float32

	logger   *slog.Logger
	images   map[*spine.AtlasRegion]*ebiten.Image
	failed   map[*spine.AtlasRegion]bool
	broken   map[*spine.Attachment]bool
	vertices []ebiten.Vertex
	colorM   colorm.ColorM
	option   colorm.DrawTrianglesOptions
}

func NewSkeletonNode(entity *spine.Entity, pos mgl32.Vec2, scale float32, logger *slog.Logger) *SkeletonNode {
	return &SkeletonNode{
		Entity: entity,
		Pos:    pos,
		Scale:  scale,
		logger: logging.OrNop(logger),
		images: make(map[*spine.AtlasRegion]*ebiten.Image),
		failed: make(map[*spine.AtlasRegion]bool),
		broken: make(map[*spine.Attachment]bool),
	}
}

func (n *SkeletonNode) Update(dt float64) error {
	n.Entity.Update(float32(dt))
	return nil
}

func (n *SkeletonNode) Draw(dst *ebiten.Image, geo ebiten.GeoM) {
	for _, slot := range n.Entity.Skeleton.DrawOrder {
		n.drawSlot(dst, geo, slot)
	}
}

// ToScreen maps a skeleton space point through the node placement and geo.
func (n *SkeletonNode) ToScreen(geo ebiten.GeoM, v mgl32.Vec2) (float32, float32) {
	x := float64(n.Pos.X() + v.X()*n.Scale)
	y := float64(n.Pos.Y() - v.Y()*n.Scale)
	x, y = geo.Apply(x, y)
	return float32(x), float32(y)
}

func (n *SkeletonNode) drawSlot(dst *ebiten.Image, geo ebiten.GeoM, slot *spine.Slot) {
	attachment := slot.Attachment
	if attachment == nil || !attachment.Drawable() {
		return
	}
	region := n.Entity.Atlas.FindRegion(attachment.Path)
	if region == nil {
		return
	}
	img := n.regionImage(region)
	if img == nil {
		return
	}
	bound := img.Bounds()
	w, h := float32(bound.Dx()), float32(bound.Dy())

	n.vertices = n.vertices[:0]
	var indices []uint16
	switch attachment.Type {
	case spine.AttachmentRegion:
		corners := slot.RegionVertices()
		srcs := [4]mgl32.Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}
		for i, corner := range corners {
			x, y := n.ToScreen(geo, corner)
			n.vertices = append(n.vertices, newVertex(x, y, srcs[i].X(), srcs[i].Y()))
		}
		indices = regionIndices
	case spine.AttachmentMesh:
		points, ok := n.meshPoints(slot)
		if !ok {
			return
		}
		for i, uv := range attachment.UVs {
			x, y := n.ToScreen(geo, points[i])
			n.vertices = append(n.vertices, newVertex(x, y, uv.X()*w, uv.Y()*h))
		}
		indices = attachment.Indices
	}

	clr := spine.Vec4Mul(slot.Color, attachment.Color)
	n.colorM.Reset()
	n.colorM.Scale(float64(clr[0]), float64(clr[1]), float64(clr[2]), float64(clr[3]))
	n.option.Blend = Blend(slot.Data.BlendMode)
	colorm.DrawTriangles(dst, n.vertices, indices, img, n.colorM, &n.option)
}

// meshPoints returns the world vertices of the slot's mesh, or false when
// they do not line up with its uvs and triangles. A bad mesh is logged once.
func (n *SkeletonNode) meshPoints(slot *spine.Slot) ([]mgl32.Vec2, bool) {
	attachment := slot.Attachment
	if n.broken[attachment] {
		return nil, false
	}
	points := slot.MeshVertices()
	ok := len(points) == len(attachment.UVs) && len(attachment.Indices)%3 == 0
	for _, idx := range attachment.Indices {
		if int(idx) >= len(points) {
			ok = false
		}
	}
	if !ok {
		n.broken[attachment] = true
		n.logger.Warn("mesh skipped", "slot", slot.Data.Name, "attachment", attachment.Name,
			"vertices", len(points), "uvs", len(attachment.UVs), "indices", len(attachment.Indices))
		return nil, false
	}
	return points, true
}

// regionImage returns the cached texture of region, building it on first use.
func (n *SkeletonNode) regionImage(region *spine.AtlasRegion) *ebiten.Image {
	if img, ok := n.images[region]; ok {
		return img
	}
	if n.failed[region] {
		return nil
	}
	src, err := spine.RegionImage(region)
	if err != nil {
		n.failed[region] = true
		n.logger.Warn("region image", "region", region.Name, "error", err)
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	n.images[region] = img
	return img
}

// Bounds is the screen space box of every visible attachment under geo.
func (n *SkeletonNode) Bounds(geo ebiten.GeoM) image.Rectangle {
	var res image.Rectangle
	first := true
	add := func(v mgl32.Vec2) {
		x, y := n.ToScreen(geo, v)
		pt := image.Rect(int(x), int(y), int(x)+1, int(y)+1)
		if first {
			res, first = pt, false
			return
		}
		res = res.Union(pt)
	}
	for _, slot := range n.Entity.Skeleton.DrawOrder {
		attachment := slot.Attachment
		if attachment == nil || !attachment.Drawable() {
			continue
		}
		if attachment.Type == spine.AttachmentRegion {
			for _, corner := range slot.RegionVertices() {
				add(corner)
			}
			continue
		}
		for _, point := range slot.MeshVertices() {
			add(point)
		}
	}
	return res
}

func newVertex(dx, dy, sx, sy float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   dx,
		DstY:   dy,
		SrcX:   sx,
		SrcY:   sy,
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	}
}

// Nudge moves the skeleton origin by (dx, dy) screen pixels.
func (n *SkeletonNode) Nudge(dx, dy float32) {
	n.Pos = n.Pos.Add(mgl32.Vec2{dx, dy})
}
