package spine

import (
	"github.com/go-gl/mathgl/mgl32"
)

type TransformMode uint8

const (
	TransformNormal TransformMode = iota
	TransformOnlyTranslation
	TransformNoRotationOrReflection
	TransformNoScale
	TransformNoScaleOrReflection
)

type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdditive
	BlendMultiply
	BlendScreen
)

type BoneData struct {
	Name          string
	Index         int
	Parent        int // -1 for the root
	Length        float32
	Rotate        float32
	Pos           mgl32.Vec2
	Scale         mgl32.Vec2
	Shear         mgl32.Vec2
	TransformMode TransformMode
}

type SlotData struct {
	Name       string
	Index      int
	Bone       int
	Color      mgl32.Vec4
	DarkColor  mgl32.Vec4
	HasDark    bool
	Attachment string // setup pose attachment name
	BlendMode  BlendMode
}

type AttachmentType uint8

const (
	AttachmentRegion AttachmentType = iota
	AttachmentBoundBox
	AttachmentMesh
	AttachmentLinkedMesh
	AttachmentPath
	AttachmentPoint
	AttachmentClip
)

type WeightVertex struct {
	Bone   int        // influencing bone
	Offset mgl32.Vec2 // position in that bone's space
	Weight float32
}

// Attachment is shared by every attachment type; unused fields stay zero.
type Attachment struct {
	Name  string
	Slot  int
	Type  AttachmentType
	Path  string // atlas region name
	Color mgl32.Vec4
	// region
	Rotate float32
	Pos    mgl32.Vec2
	Scale  mgl32.Vec2
	Size   mgl32.Vec2
	// mesh, clipping, bounding box, path
	Weight         bool
	Vertices       []mgl32.Vec2
	WeightVertices [][]*WeightVertex
	UVs            []mgl32.Vec2
	Indices        []uint16
	HullLength     int
	EndSlot        int
	// linked mesh, resolved to the parent after parsing
	ParentName string
	ParentSkin string
}

// VertexCount is the number of deformable vertex offsets of a.
func (a *Attachment) VertexCount() int {
	if !a.Weight {
		return len(a.Vertices)
	}
	res := 0
	for _, items := range a.WeightVertices {
		res += len(items)
	}
	return res
}

func (a *Attachment) Drawable() bool {
	return a.Type == AttachmentRegion || a.Type == AttachmentMesh
}

type skinKey struct {
	Slot int
	Name string
}

type Skin struct {
	Name        string
	attachments map[skinKey]*Attachment
	keys        []skinKey // insertion order
}

func NewSkin(name string) *Skin {
	return &Skin{Name: name, attachments: make(map[skinKey]*Attachment)}
}

func (s *Skin) SetAttachment(slot int, name string, attachment *Attachment) {
	key := skinKey{Slot: slot, Name: name}
	if _, ok := s.attachments[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.attachments[key] = attachment
}

func (s *Skin) Attachment(slot int, name string) *Attachment {
	return s.attachments[skinKey{Slot: slot, Name: name}]
}

// Attachments lists the skin's attachments in declaration order.
func (s *Skin) Attachments() []*Attachment {
	res := make([]*Attachment, 0, len(s.keys))
	for _, key := range s.keys {
		res = append(res, s.attachments[key])
	}
	return res
}

type TransformConstraintData struct {
	Name      string
	Order     int
	Bones     []int
	Target    int
	Rotate    float32
	Offset    mgl32.Vec2
	Scale     mgl32.Vec2
	RotateMix float32
	OffsetMix float32
	ScaleMix  float32
}

type SkeletonData struct {
	Hash       string
	Version    string
	Pos        mgl32.Vec2
	Size       mgl32.Vec2
	Bones      []*BoneData
	Slots      []*SlotData
	Skins      []*Skin
	Animations []*Animation
	// DefaultSkin is the skin named "default", nil when absent.
	DefaultSkin          *Skin
	TransformConstraints []*TransformConstraintData
}

func (d *SkeletonData) FindBone(name string) *BoneData {
	for _, item := range d.Bones {
		if item.Name == name {
			return item
		}
	}
	return nil
}

func (d *SkeletonData) FindSlot(name string) *SlotData {
	for _, item := range d.Slots {
		if item.Name == name {
			return item
		}
	}
	return nil
}

func (d *SkeletonData) FindSkin(name string) *Skin {
	for _, item := range d.Skins {
		if item.Name == name {
			return item
		}
	}
	return nil
}

func (d *SkeletonData) FindAnimation(name string) *Animation {
	for _, item := range d.Animations {
		if item.Name == name {
			return item
		}
	}
	return nil
}

// SkinNames returns skin names in file order.
func (d *SkeletonData) SkinNames() []string {
	res := make([]string, 0, len(d.Skins))
	for _, item := range d.Skins {
		res = append(res, item.Name)
	}
	return res
}

// AnimationNames returns animation names in file order.
func (d *SkeletonData) AnimationNames() []string {
	res := make([]string, 0, len(d.Animations))
	for _, item := range d.Animations {
		res = append(res, item.Name)
	}
	return res
}
