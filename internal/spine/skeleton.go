package spine

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type Bone struct {
	Data     *BoneData
	Parent   *Bone
	Children []*Bone
	// local pose, reset from Data and then animated
	Rotate float32
	Pos    mgl32.Vec2
	Scale  mgl32.Vec2
	Shear  mgl32.Vec2
	// world pose
	WorldPos mgl32.Vec2
	Mat2     mgl32.Mat2
	dirty    bool
}

func (b *Bone) SetToSetupPose() {
	b.Rotate = b.Data.Rotate
	b.Pos = b.Data.Pos
	b.Scale = b.Data.Scale
	b.Shear = b.Data.Shear
}

func (b *Bone) updateWorld(sk *Skeleton) {
	if b.Parent == nil { // the root lives in skeleton space
		skMat := Scale(sk.Scale)
		b.WorldPos = skMat.Mul2x1(b.Pos).Add(sk.Pos)
		b.Mat2 = skMat.Mul2(LocalMat2(b.Rotate, b.Scale, b.Shear))
		return
	}
	parent := b.Parent
	b.WorldPos = parent.Mat2.Mul2x1(b.Pos).Add(parent.WorldPos)
	switch b.Data.TransformMode {
	case TransformOnlyTranslation:
		b.Mat2 = LocalMat2(b.Rotate, b.Scale, b.Shear)
	case TransformNoRotationOrReflection:
		rotate := GetRotate(parent.Mat2) // drop the inherited rotation
		b.Mat2 = parent.Mat2.Mul2(LocalMat2(b.Rotate-rotate, b.Scale, b.Shear))
	case TransformNoScale, TransformNoScaleOrReflection:
		scale := GetScale(parent.Mat2) // drop the inherited scale
		b.Mat2 = parent.Mat2.Mul2(LocalMat2(b.Rotate, Vec2Div(b.Scale, scale), b.Shear))
	default:
		b.Mat2 = parent.Mat2.Mul2(LocalMat2(b.Rotate, b.Scale, b.Shear))
	}
}

// LocalToWorld maps a point in the bone's space to skeleton world space.
func (b *Bone) LocalToWorld(v mgl32.Vec2) mgl32.Vec2 {
	return b.Mat2.Mul2x1(v).Add(b.WorldPos)
}

type Slot struct {
	Data       *SlotData
	Bone       *Bone
	Color      mgl32.Vec4
	DarkColor  mgl32.Vec4
	Attachment *Attachment
	// Deform offsets the current attachment's vertices, empty when undeformed
	Deform   []mgl32.Vec2
	skeleton *Skeleton
}

// SetAttachment switches the slot's attachment; deform offsets belong to the old one and are dropped.
func (s *Slot) SetAttachment(attachment *Attachment) {
	if s.Attachment == attachment {
		return
	}
	s.Attachment = attachment
	s.Deform = s.Deform[:0]
}

func (s *Slot) SetToSetupPose() {
	s.Color = s.Data.Color
	s.DarkColor = s.Data.DarkColor
	if s.Data.Attachment == "" {
		s.SetAttachment(nil)
		return
	}
	s.Attachment = nil
	s.SetAttachment(s.skeleton.Attachment(s.Data.Index, s.Data.Attachment))
}

// RegionVertices returns the world corners of a region attachment:
// top left, top right, bottom right, bottom left.
func (s *Slot) RegionVertices() [4]mgl32.Vec2 {
	attachment := s.Attachment
	w, h := attachment.Size.X(), attachment.Size.Y()
	worldPos := s.Bone.LocalToWorld(attachment.Pos)
	mat2 := s.Bone.Mat2.Mul2(Rotate(attachment.Rotate)).Mul2(Scale(attachment.Scale))
	return [4]mgl32.Vec2{
		mat2.Mul2x1(mgl32.Vec2{-w / 2, h / 2}).Add(worldPos),
		mat2.Mul2x1(mgl32.Vec2{w / 2, h / 2}).Add(worldPos),
		mat2.Mul2x1(mgl32.Vec2{w / 2, -h / 2}).Add(worldPos),
		mat2.Mul2x1(mgl32.Vec2{-w / 2, -h / 2}).Add(worldPos),
	}
}

// MeshVertices returns the world positions of a vertex attachment with the slot's deform applied.
func (s *Slot) MeshVertices() []mgl32.Vec2 {
	attachment := s.Attachment
	deform := s.Deform
	if !attachment.Weight {
		res := make([]mgl32.Vec2, 0, len(attachment.Vertices))
		for i, vertex := range attachment.Vertices {
			if i < len(deform) {
				vertex = vertex.Add(deform[i])
			}
			res = append(res, s.Bone.LocalToWorld(vertex))
		}
		return res
	}
	res := make([]mgl32.Vec2, 0, len(attachment.WeightVertices))
	k := 0 // deform offsets run over every bone influence
	for _, items := range attachment.WeightVertices {
		pos := mgl32.Vec2{}
		for _, item := range items {
			offset := item.Offset
			if k < len(deform) {
				offset = offset.Add(deform[k])
			}
			k++
			pos = pos.Add(s.skeleton.Bones[item.Bone].LocalToWorld(offset).Mul(item.Weight))
		}
		res = append(res, pos)
	}
	return res
}

type TransformConstraint struct {
	Data      *TransformConstraintData
	RotateMix float32
	OffsetMix float32
	ScaleMix  float32
}

func (c *TransformConstraint) SetToSetupPose() {
	c.RotateMix = c.Data.RotateMix
	c.OffsetMix = c.Data.OffsetMix
	c.ScaleMix = c.Data.ScaleMix
}

func (c *TransformConstraint) apply(bones []*Bone) {
	target := bones[c.Data.Target]
	targetRotate := GetRotate(target.Mat2) + c.Data.Rotate
	targetPos := target.LocalToWorld(c.Data.Offset)
	targetScale := GetScale(target.Mat2).Add(c.Data.Scale)
	for _, idx := range c.Data.Bones {
		bone := bones[idx]
		rotate := GetRotate(bone.Mat2)
		scale := GetScale(bone.Mat2)
		changed := false
		if c.RotateMix != 0 {
			rotate += WrapDegrees(targetRotate-rotate) * c.RotateMix
			changed = true
		}
		if c.ScaleMix != 0 {
			scale = Vec2Lerp(scale, targetScale, c.ScaleMix)
			changed = true
		}
		if changed {
			bone.Mat2 = Rotate(rotate).Mul2(Scale(scale))
		}
		if c.OffsetMix != 0 {
			bone.WorldPos = Vec2Lerp(bone.WorldPos, targetPos, c.OffsetMix)
			changed = true
		}
		bone.dirty = bone.dirty || changed
	}
}

// Skeleton is the posable instance of a SkeletonData.
type Skeleton struct {
	Data                 *SkeletonData
	Bones                []*Bone
	Slots                []*Slot
	DrawOrder            []*Slot
	Skin                 *Skin
	TransformConstraints []*TransformConstraint
	Pos                  mgl32.Vec2
	Scale                mgl32.Vec2
}

func NewSkeleton(data *SkeletonData) *Skeleton {
	res := &Skeleton{Data: data, Scale: mgl32.Vec2{1, 1}}
	for _, item := range data.Bones {
		bone := &Bone{Data: item}
		if item.Parent >= 0 {
			bone.Parent = res.Bones[item.Parent]
			bone.Parent.Children = append(bone.Parent.Children, bone)
		}
		res.Bones = append(res.Bones, bone)
	}
	for _, item := range data.Slots {
		res.Slots = append(res.Slots, &Slot{Data: item, Bone: res.Bones[item.Bone], skeleton: res})
	}
	res.DrawOrder = make([]*Slot, len(res.Slots))
	constraints := make([]*TransformConstraintData, len(data.TransformConstraints))
	copy(constraints, data.TransformConstraints)
	sort.SliceStable(constraints, func(i, j int) bool {
		return constraints[i].Order < constraints[j].Order
	})
	for _, item := range constraints {
		res.TransformConstraints = append(res.TransformConstraints, &TransformConstraint{Data: item})
	}
	res.SetToSetupPose()
	return res
}

// Attachment looks name up in the active skin first, then in the default skin.
func (s *Skeleton) Attachment(slot int, name string) *Attachment {
	if s.Skin != nil {
		if res := s.Skin.Attachment(slot, name); res != nil {
			return res
		}
	}
	if s.Data.DefaultSkin != nil {
		return s.Data.DefaultSkin.Attachment(slot, name)
	}
	return nil
}

func (s *Skeleton) SetSkinByName(name string) error {
	skin := s.Data.FindSkin(name)
	if skin == nil {
		return fmt.Errorf("%w: %q", ErrSkinNotFound, name)
	}
	s.SetSkin(skin)
	return nil
}

// SetSkin changes the active skin. Slots showing an attachment of the old skin
// take the same named attachment of the new one; with no old skin the setup
// pose attachments of the new skin are attached.
func (s *Skeleton) SetSkin(skin *Skin) {
	if skin == s.Skin {
		return
	}
	if skin != nil {
		if s.Skin != nil {
			for _, old := range s.Skin.Attachments() {
				slot := s.Slots[old.Slot]
				if slot.Attachment != old {
					continue
				}
				if res := skin.Attachment(old.Slot, old.Name); res != nil {
					slot.SetAttachment(res)
				}
			}
		} else {
			for _, slot := range s.Slots {
				if slot.Data.Attachment == "" {
					continue
				}
				if res := skin.Attachment(slot.Data.Index, slot.Data.Attachment); res != nil {
					slot.SetAttachment(res)
				}
			}
		}
	}
	s.Skin = skin
}

func (s *Skeleton) SetBonesToSetupPose() {
	for _, bone := range s.Bones {
		bone.SetToSetupPose()
	}
	for _, constraint := range s.TransformConstraints {
		constraint.SetToSetupPose()
	}
}

// SetSlotsToSetupPose restores draw order, colors and the setup attachment of every slot.
func (s *Skeleton) SetSlotsToSetupPose() {
	copy(s.DrawOrder, s.Slots)
	for _, slot := range s.Slots {
		slot.SetToSetupPose()
	}
}

func (s *Skeleton) SetToSetupPose() {
	s.SetBonesToSetupPose()
	s.SetSlotsToSetupPose()
}

// UpdateWorldTransform computes world poses from the local ones, then applies
// transform constraints and recomputes the bones below any constrained bone.
func (s *Skeleton) UpdateWorldTransform() {
	for _, bone := range s.Bones { // parents always precede children
		bone.updateWorld(s)
	}
	if len(s.TransformConstraints) == 0 {
		return
	}
	for _, constraint := range s.TransformConstraints {
		constraint.apply(s.Bones)
	}
	for _, bone := range s.Bones {
		if !bone.dirty && bone.Parent != nil && bone.Parent.dirty {
			bone.updateWorld(s)
			bone.dirty = true
		}
	}
	for _, bone := range s.Bones {
		bone.dirty = false
	}
}

// transformConstraint finds the instance of data; instances are kept in
// application order, not declaration order.
func (s *Skeleton) transformConstraint(data *TransformConstraintData) *TransformConstraint {
	for _, constraint := range s.TransformConstraints {
		if constraint.Data == data {
			return constraint
		}
	}
	return nil
}

func (s *Skeleton) FindBone(name string) *Bone {
	for _, bone := range s.Bones {
		if bone.Data.Name == name {
			return bone
		}
	}
	return nil
}

func (s *Skeleton) FindSlot(name string) *Slot {
	for _, slot := range s.Slots {
		if slot.Data.Name == name {
			return slot
		}
	}
	return nil
}
