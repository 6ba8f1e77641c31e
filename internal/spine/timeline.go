package spine

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type CurveType uint8

const (
	CurveLinear CurveType = iota
	CurveStepped
	CurveBezier
)

// Curve shapes the interpolation from a key frame to the next one.
// Data holds the two bezier control points, the ends are fixed at (0,0) and (1,1).
type Curve struct {
	Type CurveType
	Data [2]mgl32.Vec2
}

var linearCurve = &Curve{Type: CurveLinear}

type KeyFrame struct {
	Time  float32
	Curve *Curve // nil means linear
	// attachment
	Attachment string
	// color, two color
	Color     mgl32.Vec4
	DarkColor mgl32.Vec4
	// bone
	Rotate float32
	Offset mgl32.Vec2
	Scale  mgl32.Vec2
	Shear  mgl32.Vec2
	// DrawOrder maps draw position to slot index, nil restores the setup order
	DrawOrder []int
	// Deform holds per vertex offsets, one per weight entry for weighted meshes
	Deform []mgl32.Vec2
	// transform constraint mixes
	RotateMix float32
	OffsetMix float32
	ScaleMix  float32
}

// Timeline poses part of a skeleton at a point in time.
type Timeline interface {
	Apply(sk *Skeleton, curr float32)
	Frames() []*KeyFrame
}

type Animation struct {
	Name      string
	Timelines []Timeline
	Duration  float32
}

func (a *Animation) Apply(sk *Skeleton, curr float32) {
	for _, timeline := range a.Timelines {
		timeline.Apply(sk, curr)
	}
}

// GetIndexByTime returns the last frame at or before curr, -1 if curr precedes every frame.
func GetIndexByTime(frames []*KeyFrame, curr float32) int {
	for i := len(frames) - 1; i >= 0; i-- {
		if curr >= frames[i].Time {
			return i
		}
	}
	return -1
}

// frameRate locates the frames around curr and the curved progress between them.
// Outside the keyed range pre and next are the same frame.
func frameRate(frames []*KeyFrame, curr float32) (*KeyFrame, *KeyFrame, float32) {
	idx := GetIndexByTime(frames, curr)
	if idx < 0 {
		return frames[0], frames[0], 0
	}
	if idx+1 >= len(frames) {
		return frames[idx], frames[idx], 0
	}
	pre := frames[idx]
	next := frames[idx+1]
	span := next.Time - pre.Time
	if span <= 0 {
		return next, next, 0
	}
	return pre, next, CurveVal(pre.Curve, (curr-pre.Time)/span)
}

// steppedFrame returns the frame in effect at curr, nil before the first one.
func steppedFrame(frames []*KeyFrame, curr float32) *KeyFrame {
	idx := GetIndexByTime(frames, curr)
	if idx < 0 {
		return nil
	}
	return frames[idx]
}

func evalX(curve [2]mgl32.Vec2, rate float32) float32 {
	rate2 := rate * rate
	rate3 := rate2 * rate
	invRate := 1 - rate
	invRate2 := invRate * invRate
	return rate3 + 3*rate2*invRate*curve[1].X() + 3*rate*invRate2*curve[0].X()
}

func evalY(curve [2]mgl32.Vec2, rate float32) float32 {
	rate2 := rate * rate
	rate3 := rate2 * rate
	invRate := 1 - rate
	invRate2 := invRate * invRate
	return rate3 + 3*rate2*invRate*curve[1].Y() + 3*rate*invRate2*curve[0].Y()
}

// findX bisects for the bezier parameter whose x equals rate.
func findX(curve [2]mgl32.Vec2, rate float32) float32 {
	const e = 0.00001
	start := float32(0.0)
	stop := float32(1.0)
	res := float32(0.5)
	x := evalX(curve, res)
	for i := 0; i < 64 && math.Abs(float64(rate-x)) > e; i++ {
		if rate < x {
			stop = res
		} else {
			start = res
		}
		res = (stop + start) * 0.5
		x = evalX(curve, res)
	}
	return res
}

// CurveVal maps a linear rate in [0,1] through curve.
func CurveVal(curve *Curve, rate float32) float32 {
	if curve == nil {
		curve = linearCurve
	}
	switch curve.Type {
	case CurveStepped:
		return 0
	case CurveBezier:
		return evalY(curve.Data, findX(curve.Data, rate))
	default:
		return rate
	}
}

type RotateTimeline struct {
	Bone      int
	KeyFrames []*KeyFrame
}

func (t *RotateTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *RotateTimeline) Apply(sk *Skeleton, curr float32) {
	bone := sk.Bones[t.Bone]
	pre, next, rate := frameRate(t.KeyFrames, curr)
	bone.Rotate = bone.Data.Rotate + LerpRotation(pre.Rotate, next.Rotate, rate)
}

type TranslateTimeline struct {
	Bone      int
	KeyFrames []*KeyFrame
}

func (t *TranslateTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *TranslateTimeline) Apply(sk *Skeleton, curr float32) {
	bone := sk.Bones[t.Bone]
	pre, next, rate := frameRate(t.KeyFrames, curr)
	bone.Pos = bone.Data.Pos.Add(Vec2Lerp(pre.Offset, next.Offset, rate))
}

type ScaleTimeline struct {
	Bone      int
	KeyFrames []*KeyFrame
}

func (t *ScaleTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *ScaleTimeline) Apply(sk *Skeleton, curr float32) {
	bone := sk.Bones[t.Bone]
	pre, next, rate := frameRate(t.KeyFrames, curr)
	bone.Scale = Vec2Mul(bone.Data.Scale, Vec2Lerp(pre.Scale, next.Scale, rate))
}

type ShearTimeline struct {
	Bone      int
	KeyFrames []*KeyFrame
}

func (t *ShearTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *ShearTimeline) Apply(sk *Skeleton, curr float32) {
	bone := sk.Bones[t.Bone]
	pre, next, rate := frameRate(t.KeyFrames, curr)
	bone.Shear = bone.Data.Shear.Add(Vec2Lerp(pre.Shear, next.Shear, rate))
}

type AttachmentTimeline struct {
	Slot      int
	KeyFrames []*KeyFrame
}

func (t *AttachmentTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *AttachmentTimeline) Apply(sk *Skeleton, curr float32) {
	frame := steppedFrame(t.KeyFrames, curr)
	if frame == nil {
		return
	}
	name := frame.Attachment
	slot := sk.Slots[t.Slot]
	if name == "" {
		slot.SetAttachment(nil)
		return
	}
	slot.SetAttachment(sk.Attachment(t.Slot, name))
}

type ColorTimeline struct {
	Slot      int
	KeyFrames []*KeyFrame
}

func (t *ColorTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *ColorTimeline) Apply(sk *Skeleton, curr float32) {
	pre, next, rate := frameRate(t.KeyFrames, curr)
	sk.Slots[t.Slot].Color = Vec4Lerp(pre.Color, next.Color, rate)
}

type TwoColorTimeline struct {
	Slot      int
	KeyFrames []*KeyFrame
}

func (t *TwoColorTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *TwoColorTimeline) Apply(sk *Skeleton, curr float32) {
	slot := sk.Slots[t.Slot]
	pre, next, rate := frameRate(t.KeyFrames, curr)
	slot.Color = Vec4Lerp(pre.Color, next.Color, rate)
	slot.DarkColor = Vec4Lerp(pre.DarkColor, next.DarkColor, rate)
}

type DeformTimeline struct {
	Slot       int
	Attachment *Attachment
	KeyFrames  []*KeyFrame
}

func (t *DeformTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *DeformTimeline) Apply(sk *Skeleton, curr float32) {
	slot := sk.Slots[t.Slot]
	if slot.Attachment != t.Attachment {
		return // keyed for another attachment
	}
	pre, next, rate := frameRate(t.KeyFrames, curr)
	count := t.Attachment.VertexCount()
	if cap(slot.Deform) < count {
		slot.Deform = make([]mgl32.Vec2, count)
	}
	slot.Deform = slot.Deform[:count]
	for i := 0; i < count; i++ {
		slot.Deform[i] = Vec2Lerp(deformAt(pre, i), deformAt(next, i), rate)
	}
}

func deformAt(frame *KeyFrame, i int) mgl32.Vec2 {
	if i < len(frame.Deform) {
		return frame.Deform[i]
	}
	return mgl32.Vec2{}
}

type DrawOrderTimeline struct {
	KeyFrames []*KeyFrame
}

func (t *DrawOrderTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *DrawOrderTimeline) Apply(sk *Skeleton, curr float32) {
	frame := steppedFrame(t.KeyFrames, curr)
	if frame == nil {
		return
	}
	order := frame.DrawOrder
	if order == nil {
		copy(sk.DrawOrder, sk.Slots)
		return
	}
	for i, idx := range order {
		sk.DrawOrder[i] = sk.Slots[idx]
	}
}

type TransformConstraintTimeline struct {
	Constraint int
	KeyFrames  []*KeyFrame
}

func (t *TransformConstraintTimeline) Frames() []*KeyFrame { return t.KeyFrames }

func (t *TransformConstraintTimeline) Apply(sk *Skeleton, curr float32) {
	constraint := sk.transformConstraint(sk.Data.TransformConstraints[t.Constraint])
	if constraint == nil {
		return
	}
	pre, next, rate := frameRate(t.KeyFrames, curr)
	constraint.RotateMix = Lerp(pre.RotateMix, next.RotateMix, rate)
	constraint.OffsetMix = Lerp(pre.OffsetMix, next.OffsetMix, rate)
	constraint.ScaleMix = Lerp(pre.ScaleMix, next.ScaleMix, rate)
}
