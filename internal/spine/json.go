package spine

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tidwall/gjson"
)

// ParseSkeletonJSON reads skeleton data exported by the Spine editor in JSON form.
// Skins and animations keep the order they have in the file.
func ParseSkeletonJSON(bs []byte) (*SkeletonData, error) {
	if !gjson.ValidBytes(bs) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidData)
	}
	root := gjson.ParseBytes(bs)
	p := &jsonParser{data: &SkeletonData{}}
	header := root.Get("skeleton")
	p.data.Hash = header.Get("hash").String()
	p.data.Version = header.Get("spine").String()
	p.data.Pos = mgl32.Vec2{num(header, "x", 0), num(header, "y", 0)}
	p.data.Size = mgl32.Vec2{num(header, "width", 0), num(header, "height", 0)}
	steps := []func(gjson.Result) error{
		p.parseBones,
		p.parseSlots,
		p.parseTransformConstraints,
		p.parseSkins,
		p.parseAnimations,
	}
	for _, step := range steps {
		if err := step(root); err != nil {
			return nil, err
		}
	}
	return p.data, nil
}

type jsonParser struct {
	data *SkeletonData
	// linked meshes wait until every skin is known
	linked []*Attachment
}

func (p *jsonParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, fmt.Sprintf(format, args...))
}

func (p *jsonParser) boneIndex(name string) (int, error) {
	if bone := p.data.FindBone(name); bone != nil {
		return bone.Index, nil
	}
	return 0, p.errorf("unknown bone %q", name)
}

func (p *jsonParser) slotIndex(name string) (int, error) {
	if slot := p.data.FindSlot(name); slot != nil {
		return slot.Index, nil
	}
	return 0, p.errorf("unknown slot %q", name)
}

var transformModes = map[string]TransformMode{
	"normal":                 TransformNormal,
	"onlyTranslation":        TransformOnlyTranslation,
	"noRotationOrReflection": TransformNoRotationOrReflection,
	"noScale":                TransformNoScale,
	"noScaleOrReflection":    TransformNoScaleOrReflection,
}

var blendModes = map[string]BlendMode{
	"normal":   BlendNormal,
	"additive": BlendAdditive,
	"multiply": BlendMultiply,
	"screen":   BlendScreen,
}

func (p *jsonParser) parseBones(root gjson.Result) error {
	for i, item := range root.Get("bones").Array() {
		bone := &BoneData{
			Name:   item.Get("name").String(),
			Index:  i,
			Parent: -1,
			Length: num(item, "length", 0),
			Rotate: num(item, "rotation", 0),
			Pos:    mgl32.Vec2{num(item, "x", 0), num(item, "y", 0)},
			Scale:  mgl32.Vec2{num(item, "scaleX", 1), num(item, "scaleY", 1)},
			Shear:  mgl32.Vec2{num(item, "shearX", 0), num(item, "shearY", 0)},
		}
		if bone.Name == "" {
			return p.errorf("bone %d has no name", i)
		}
		if parent := item.Get("parent"); parent.Exists() {
			idx, err := p.boneIndex(parent.String()) // parents are listed first
			if err != nil {
				return err
			}
			bone.Parent = idx
		} else if i > 0 {
			return p.errorf("bone %q has no parent", bone.Name)
		}
		mode := item.Get("transform").String()
		if mode == "" {
			mode = item.Get("inherit").String()
		}
		if mode != "" {
			val, ok := transformModes[mode]
			if !ok {
				return p.errorf("bone %q: unknown transform mode %q", bone.Name, mode)
			}
			bone.TransformMode = val
		}
		p.data.Bones = append(p.data.Bones, bone)
	}
	if len(p.data.Bones) == 0 {
		return p.errorf("no bones")
	}
	return nil
}

func (p *jsonParser) parseSlots(root gjson.Result) error {
	for i, item := range root.Get("slots").Array() {
		slot := &SlotData{
			Name:       item.Get("name").String(),
			Index:      i,
			Color:      mgl32.Vec4{1, 1, 1, 1},
			DarkColor:  mgl32.Vec4{1, 1, 1, 1},
			Attachment: item.Get("attachment").String(),
		}
		bone, err := p.boneIndex(item.Get("bone").String())
		if err != nil {
			return fmt.Errorf("slot %q: %w", slot.Name, err)
		}
		slot.Bone = bone
		if color := item.Get("color"); color.Exists() {
			if slot.Color, err = parseColor(color.String()); err != nil {
				return p.errorf("slot %q: %v", slot.Name, err)
			}
		}
		if dark := item.Get("dark"); dark.Exists() {
			if slot.DarkColor, err = parseColor(dark.String()); err != nil {
				return p.errorf("slot %q: %v", slot.Name, err)
			}
			slot.HasDark = true
		}
		if blend := item.Get("blend"); blend.Exists() {
			val, ok := blendModes[blend.String()]
			if !ok {
				return p.errorf("slot %q: unknown blend mode %q", slot.Name, blend.String())
			}
			slot.BlendMode = val
		}
		p.data.Slots = append(p.data.Slots, slot)
	}
	return nil
}

func (p *jsonParser) parseTransformConstraints(root gjson.Result) error {
	for _, item := range root.Get("transform").Array() {
		constraint := &TransformConstraintData{
			Name:      item.Get("name").String(),
			Order:     int(item.Get("order").Int()),
			Rotate:    num(item, "rotation", 0),
			Offset:    mgl32.Vec2{num(item, "x", 0), num(item, "y", 0)},
			Scale:     mgl32.Vec2{num(item, "scaleX", 0), num(item, "scaleY", 0)},
			RotateMix: mix(item, "rotateMix", "mixRotate"),
			OffsetMix: mix(item, "translateMix", "mixX"),
			ScaleMix:  mix(item, "scaleMix", "mixScaleX"),
		}
		for _, name := range item.Get("bones").Array() {
			idx, err := p.boneIndex(name.String())
			if err != nil {
				return fmt.Errorf("transform constraint %q: %w", constraint.Name, err)
			}
			constraint.Bones = append(constraint.Bones, idx)
		}
		target, err := p.boneIndex(item.Get("target").String())
		if err != nil {
			return fmt.Errorf("transform constraint %q: %w", constraint.Name, err)
		}
		constraint.Target = target
		p.data.TransformConstraints = append(p.data.TransformConstraints, constraint)
	}
	return nil
}

func (p *jsonParser) parseSkins(root gjson.Result) error {
	skins := root.Get("skins")
	var err error
	if skins.IsArray() { // 3.8 and later
		for _, item := range skins.Array() {
			if err = p.parseSkin(item.Get("name").String(), item.Get("attachments")); err != nil {
				return err
			}
		}
	} else {
		skins.ForEach(func(key, value gjson.Result) bool {
			err = p.parseSkin(key.String(), value)
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	p.data.DefaultSkin = p.data.FindSkin("default")
	for _, item := range p.linked {
		skin := p.data.FindSkin(item.ParentSkin)
		if skin == nil {
			return p.errorf("linked mesh %q: unknown skin %q", item.Name, item.ParentSkin)
		}
		parent := skin.Attachment(item.Slot, item.ParentName)
		if parent == nil || parent.Type != AttachmentMesh {
			return p.errorf("linked mesh %q: parent mesh %q not found", item.Name, item.ParentName)
		}
		item.Type = AttachmentMesh
		item.Weight = parent.Weight
		item.Vertices = parent.Vertices
		item.WeightVertices = parent.WeightVertices
		item.UVs = parent.UVs
		item.Indices = parent.Indices
		item.HullLength = parent.HullLength
		if err := p.checkTriangles(item); err != nil {
			return err
		}
	}
	return nil
}

// checkTriangles rejects index lists a renderer could not draw.
func (p *jsonParser) checkTriangles(res *Attachment) error {
	if len(res.Indices)%3 != 0 {
		return p.errorf("mesh %q: %d triangle indices is not a multiple of 3", res.Name, len(res.Indices))
	}
	for _, idx := range res.Indices {
		if int(idx) >= len(res.UVs) {
			return p.errorf("mesh %q: triangle index %d out of range [0,%d)", res.Name, idx, len(res.UVs))
		}
	}
	return nil
}

func (p *jsonParser) parseSkin(name string, slots gjson.Result) error {
	if name == "" {
		return p.errorf("skin without name")
	}
	if p.data.FindSkin(name) != nil {
		return p.errorf("duplicate skin %q", name)
	}
	skin := NewSkin(name)
	var err error
	slots.ForEach(func(slotName, attachments gjson.Result) bool {
		var slot int
		if slot, err = p.slotIndex(slotName.String()); err != nil {
			return false
		}
		attachments.ForEach(func(key, value gjson.Result) bool {
			var attachment *Attachment
			if attachment, err = p.parseAttachment(slot, key.String(), value); err != nil {
				return false
			}
			skin.SetAttachment(slot, key.String(), attachment)
			return true
		})
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("skin %q: %w", name, err)
	}
	p.data.Skins = append(p.data.Skins, skin)
	return nil
}

func (p *jsonParser) parseAttachment(slot int, key string, item gjson.Result) (*Attachment, error) {
	name := item.Get("name").String()
	if name == "" {
		name = key
	}
	res := &Attachment{
		Name:  key,
		Slot:  slot,
		Path:  item.Get("path").String(),
		Color: mgl32.Vec4{1, 1, 1, 1},
	}
	if res.Path == "" {
		res.Path = name
	}
	if color := item.Get("color"); color.Exists() {
		clr, err := parseColor(color.String())
		if err != nil {
			return nil, p.errorf("attachment %q: %v", key, err)
		}
		res.Color = clr
	}
	kind := item.Get("type").String()
	switch kind {
	case "", "region":
		res.Type = AttachmentRegion
		res.Pos = mgl32.Vec2{num(item, "x", 0), num(item, "y", 0)}
		res.Scale = mgl32.Vec2{num(item, "scaleX", 1), num(item, "scaleY", 1)}
		res.Rotate = num(item, "rotation", 0)
		res.Size = mgl32.Vec2{num(item, "width", 32), num(item, "height", 32)}
	case "mesh":
		res.Type = AttachmentMesh
		res.Size = mgl32.Vec2{num(item, "width", 0), num(item, "height", 0)}
		uvs := floats(item.Get("uvs"))
		for i := 0; i+1 < len(uvs); i += 2 {
			res.UVs = append(res.UVs, mgl32.Vec2{uvs[i], uvs[i+1]})
		}
		for _, idx := range item.Get("triangles").Array() {
			v := idx.Int()
			if v < 0 || v >= int64(len(res.UVs)) {
				return nil, p.errorf("mesh %q: triangle index %d out of range [0,%d)", key, v, len(res.UVs))
			}
			res.Indices = append(res.Indices, uint16(v))
		}
		if err := p.checkTriangles(res); err != nil {
			return nil, err
		}
		res.HullLength = int(item.Get("hull").Int())
		if err := p.parseVertices(res, len(res.UVs), floats(item.Get("vertices"))); err != nil {
			return nil, err
		}
	case "linkedmesh":
		res.Type = AttachmentLinkedMesh
		res.Size = mgl32.Vec2{num(item, "width", 0), num(item, "height", 0)}
		res.ParentName = item.Get("parent").String()
		res.ParentSkin = item.Get("skin").String()
		if res.ParentSkin == "" {
			res.ParentSkin = "default"
		}
		p.linked = append(p.linked, res)
	case "boundingbox", "path", "clipping":
		res.Type = map[string]AttachmentType{
			"boundingbox": AttachmentBoundBox,
			"path":        AttachmentPath,
			"clipping":    AttachmentClip,
		}[kind]
		res.Path = ""
		if err := p.parseVertices(res, int(item.Get("vertexCount").Int()), floats(item.Get("vertices"))); err != nil {
			return nil, err
		}
		if end := item.Get("end"); end.Exists() {
			idx, err := p.slotIndex(end.String())
			if err != nil {
				return nil, err
			}
			res.EndSlot = idx
		}
	case "point":
		res.Type = AttachmentPoint
		res.Path = ""
		res.Pos = mgl32.Vec2{num(item, "x", 0), num(item, "y", 0)}
		res.Rotate = num(item, "rotation", 0)
	default:
		return nil, p.errorf("attachment %q: unknown type %q", key, kind)
	}
	return res, nil
}

// parseVertices reads plain x,y pairs, or when the list is longer than that,
// weighted entries of the form boneCount, (bone, x, y, weight)*.
func (p *jsonParser) parseVertices(res *Attachment, count int, vertices []float32) error {
	if len(vertices) == count*2 {
		for i := 0; i+1 < len(vertices); i += 2 {
			res.Vertices = append(res.Vertices, mgl32.Vec2{vertices[i], vertices[i+1]})
		}
		return nil
	}
	res.Weight = true
	for i := 0; i < len(vertices); {
		boneCount := int(vertices[i])
		i++
		if i+boneCount*4 > len(vertices) {
			return p.errorf("attachment %q: truncated weighted vertices", res.Name)
		}
		items := make([]*WeightVertex, 0, boneCount)
		for j := 0; j < boneCount; j++ {
			bone := int(vertices[i])
			if bone < 0 || bone >= len(p.data.Bones) {
				return p.errorf("attachment %q: bone index %d out of range", res.Name, bone)
			}
			items = append(items, &WeightVertex{
				Bone:   bone,
				Offset: mgl32.Vec2{vertices[i+1], vertices[i+2]},
				Weight: vertices[i+3],
			})
			i += 4
		}
		res.WeightVertices = append(res.WeightVertices, items)
	}
	if len(res.WeightVertices) != count {
		return p.errorf("attachment %q: want %d vertices, got %d", res.Name, count, len(res.WeightVertices))
	}
	return nil
}

func (p *jsonParser) parseAnimations(root gjson.Result) error {
	var err error
	root.Get("animations").ForEach(func(key, value gjson.Result) bool {
		var anim *Animation
		if anim, err = p.parseAnimation(key.String(), value); err != nil {
			err = fmt.Errorf("animation %q: %w", key.String(), err)
			return false
		}
		p.data.Animations = append(p.data.Animations, anim)
		return true
	})
	return err
}

func (p *jsonParser) parseAnimation(name string, item gjson.Result) (*Animation, error) {
	res := &Animation{Name: name}
	var err error
	add := func(timeline Timeline) {
		if len(timeline.Frames()) == 0 {
			return
		}
		res.Timelines = append(res.Timelines, timeline)
	}
	item.Get("slots").ForEach(func(slotName, timelines gjson.Result) bool {
		var slot int
		if slot, err = p.slotIndex(slotName.String()); err != nil {
			return false
		}
		timelines.ForEach(func(kind, frames gjson.Result) bool {
			switch kind.String() {
			case "attachment":
				add(&AttachmentTimeline{Slot: slot, KeyFrames: parseFrames(frames, func(frame gjson.Result, key *KeyFrame) error {
					key.Attachment = frame.Get("name").String()
					return nil
				})})
			case "color", "rgba":
				var keys []*KeyFrame
				keys, err = parseFramesErr(frames, func(frame gjson.Result, key *KeyFrame) (err error) {
					key.Color, err = parseColor(frame.Get("color").String())
					return err
				})
				add(&ColorTimeline{Slot: slot, KeyFrames: keys})
			case "twoColor", "rgba2":
				var keys []*KeyFrame
				keys, err = parseFramesErr(frames, func(frame gjson.Result, key *KeyFrame) (err error) {
					if key.Color, err = parseColor(frame.Get("light").String()); err != nil {
						return err
					}
					key.DarkColor, err = parseColor(frame.Get("dark").String())
					return err
				})
				add(&TwoColorTimeline{Slot: slot, KeyFrames: keys})
			}
			return err == nil
		})
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	item.Get("bones").ForEach(func(boneName, timelines gjson.Result) bool {
		var bone int
		if bone, err = p.boneIndex(boneName.String()); err != nil {
			return false
		}
		timelines.ForEach(func(kind, frames gjson.Result) bool {
			switch kind.String() {
			case "rotate":
				add(&RotateTimeline{Bone: bone, KeyFrames: parseFrames(frames, func(frame gjson.Result, key *KeyFrame) error {
					key.Rotate = num(frame, "angle", num(frame, "value", 0))
					return nil
				})})
			case "translate":
				add(&TranslateTimeline{Bone: bone, KeyFrames: parseFrames(frames, func(frame gjson.Result, key *KeyFrame) error {
					key.Offset = mgl32.Vec2{num(frame, "x", 0), num(frame, "y", 0)}
					return nil
				})})
			case "scale":
				add(&ScaleTimeline{Bone: bone, KeyFrames: parseFrames(frames, func(frame gjson.Result, key *KeyFrame) error {
					key.Scale = mgl32.Vec2{num(frame, "x", 1), num(frame, "y", 1)}
					return nil
				})})
			case "shear":
				add(&ShearTimeline{Bone: bone, KeyFrames: parseFrames(frames, func(frame gjson.Result, key *KeyFrame) error {
					key.Shear = mgl32.Vec2{num(frame, "x", 0), num(frame, "y", 0)}
					return nil
				})})
			}
			return true
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	item.Get("transform").ForEach(func(constraintName, frames gjson.Result) bool {
		idx := -1
		for i, constraint := range p.data.TransformConstraints {
			if constraint.Name == constraintName.String() {
				idx = i
			}
		}
		if idx < 0 {
			err = p.errorf("unknown transform constraint %q", constraintName.String())
			return false
		}
		add(&TransformConstraintTimeline{Constraint: idx, KeyFrames: parseFrames(frames, func(frame gjson.Result, key *KeyFrame) error {
			key.RotateMix = mix(frame, "rotateMix", "mixRotate")
			key.OffsetMix = mix(frame, "translateMix", "mixX")
			key.ScaleMix = mix(frame, "scaleMix", "mixScaleX")
			return nil
		})})
		return true
	})
	if err != nil {
		return nil, err
	}
	if err = p.parseDeforms(item, add); err != nil {
		return nil, err
	}
	drawOrder := item.Get("drawOrder")
	if !drawOrder.Exists() {
		drawOrder = item.Get("draworder")
	}
	if drawOrder.Exists() {
		var keys []*KeyFrame
		keys, err = parseFramesErr(drawOrder, func(frame gjson.Result, key *KeyFrame) (err error) {
			key.Curve = &Curve{Type: CurveStepped}
			key.DrawOrder, err = p.parseDrawOrder(frame.Get("offsets"))
			return err
		})
		if err != nil {
			return nil, err
		}
		add(&DrawOrderTimeline{KeyFrames: keys})
	}
	for _, timeline := range res.Timelines {
		frames := timeline.Frames()
		res.Duration = max(res.Duration, frames[len(frames)-1].Time)
	}
	return res, nil
}

// parseDeforms handles the 3.x "deform" map and the 4.x "attachments" map,
// both keyed skin, slot, attachment.
func (p *jsonParser) parseDeforms(item gjson.Result, add func(Timeline)) error {
	var err error
	each := func(skinName, slots gjson.Result, nested bool) bool {
		skin := p.data.FindSkin(skinName.String())
		if skin == nil {
			err = p.errorf("deform: unknown skin %q", skinName.String())
			return false
		}
		slots.ForEach(func(slotName, attachments gjson.Result) bool {
			var slot int
			if slot, err = p.slotIndex(slotName.String()); err != nil {
				return false
			}
			attachments.ForEach(func(attachmentName, frames gjson.Result) bool {
				if nested {
					frames = frames.Get("deform")
					if !frames.Exists() {
						return true
					}
				}
				attachment := skin.Attachment(slot, attachmentName.String())
				if attachment == nil {
					err = p.errorf("deform: unknown attachment %q", attachmentName.String())
					return false
				}
				count := attachment.VertexCount()
				add(&DeformTimeline{Slot: slot, Attachment: attachment, KeyFrames: parseFrames(frames, func(frame gjson.Result, key *KeyFrame) error {
					key.Deform = make([]mgl32.Vec2, count)
					start := int(frame.Get("offset").Int())
					for i, val := range floats(frame.Get("vertices")) {
						n := start + i
						if n/2 < count {
							key.Deform[n/2][n%2] = val
						}
					}
					return nil
				})})
				return true
			})
			return err == nil
		})
		return err == nil
	}
	item.Get("deform").ForEach(func(key, value gjson.Result) bool { return each(key, value, false) })
	if err != nil {
		return err
	}
	item.Get("attachments").ForEach(func(key, value gjson.Result) bool { return each(key, value, true) })
	return err
}

// parseDrawOrder turns slot offsets into a draw position to slot index table.
func (p *jsonParser) parseDrawOrder(offsets gjson.Result) ([]int, error) {
	if !offsets.Exists() {
		return nil, nil
	}
	size := len(p.data.Slots)
	drawOrder := make([]int, size)
	for i := range drawOrder {
		drawOrder[i] = -1
	}
	unchanged := make([]int, 0, size)
	original := 0
	for _, item := range offsets.Array() {
		slot, err := p.slotIndex(item.Get("slot").String())
		if err != nil {
			return nil, err
		}
		if slot < original {
			return nil, p.errorf("draw order offsets out of slot order")
		}
		for original != slot {
			unchanged = append(unchanged, original)
			original++
		}
		pos := original + int(item.Get("offset").Int())
		if pos < 0 || pos >= size {
			return nil, p.errorf("draw order offset out of range for slot %q", item.Get("slot").String())
		}
		drawOrder[pos] = original
		original++
	}
	for original < size {
		unchanged = append(unchanged, original)
		original++
	}
	for i := size - 1; i >= 0; i-- {
		if drawOrder[i] == -1 {
			drawOrder[i] = unchanged[len(unchanged)-1]
			unchanged = unchanged[:len(unchanged)-1]
		}
	}
	return drawOrder, nil
}

func parseFrames(frames gjson.Result, fill func(gjson.Result, *KeyFrame) error) []*KeyFrame {
	res, _ := parseFramesErr(frames, fill)
	return res
}

func parseFramesErr(frames gjson.Result, fill func(gjson.Result, *KeyFrame) error) ([]*KeyFrame, error) {
	res := make([]*KeyFrame, 0)
	for _, frame := range frames.Array() {
		key := &KeyFrame{
			Time:  num(frame, "time", 0),
			Curve: parseCurve(frame.Get("curve"), frame),
		}
		if err := fill(frame, key); err != nil {
			return nil, err
		}
		res = append(res, key)
	}
	sort.SliceStable(res, func(i, j int) bool { // keep time order
		return res[i].Time < res[j].Time
	})
	return res, nil
}

// parseCurve understands "stepped", the 3.x number form (cx1 with c2..c4 siblings)
// and the array form; 4.x per channel arrays use their first four values.
func parseCurve(curve, frame gjson.Result) *Curve {
	switch {
	case !curve.Exists():
		return nil
	case curve.Type == gjson.String:
		if curve.String() == "stepped" {
			return &Curve{Type: CurveStepped}
		}
		return nil
	case curve.Type == gjson.Number:
		return &Curve{Type: CurveBezier, Data: [2]mgl32.Vec2{
			{float32(curve.Float()), num(frame, "c2", 0)},
			{num(frame, "c3", 1), num(frame, "c4", 1)},
		}}
	case curve.IsArray():
		values := floats(curve)
		if len(values) < 4 {
			return nil
		}
		return &Curve{Type: CurveBezier, Data: [2]mgl32.Vec2{{values[0], values[1]}, {values[2], values[3]}}}
	}
	return nil
}

func num(item gjson.Result, key string, def float32) float32 {
	val := item.Get(key)
	if !val.Exists() {
		return def
	}
	return float32(val.Float())
}

// mix reads a constraint mix under its 3.x or 4.x key, defaulting to 1.
func mix(item gjson.Result, key, alt string) float32 {
	return num(item, key, num(item, alt, 1))
}

func floats(item gjson.Result) []float32 {
	values := item.Array()
	res := make([]float32, 0, len(values))
	for _, val := range values {
		res = append(res, float32(val.Float()))
	}
	return res
}

// parseColor reads RRGGBB or RRGGBBAA hex.
func parseColor(hex string) (mgl32.Vec4, error) {
	if len(hex) != 6 && len(hex) != 8 {
		return mgl32.Vec4{}, fmt.Errorf("invalid color %q", hex)
	}
	res := mgl32.Vec4{1, 1, 1, 1}
	for i := 0; i < len(hex)/2; i++ {
		val, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return mgl32.Vec4{}, fmt.Errorf("invalid color %q", hex)
		}
		res[i] = float32(val) / 0xFF
	}
	return res, nil
}
