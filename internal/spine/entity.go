package spine

import "fmt"

// Entity couples a skeleton with its animation state and the atlas its
// attachments are drawn from.
type Entity struct {
	Skeleton *Skeleton
	State    *AnimationState
	Atlas    *Atlas
}

// NewEntity builds an entity in setup pose. Every drawable attachment of every
// skin must have a region in atlas.
func NewEntity(data *SkeletonData, atlas *Atlas) (*Entity, error) {
	if data == nil || atlas == nil {
		return nil, fmt.Errorf("%w: nil skeleton data or atlas", ErrInvalidData)
	}
	for _, skin := range data.Skins {
		for _, attachment := range skin.Attachments() {
			if !attachment.Drawable() {
				continue
			}
			if atlas.FindRegion(attachment.Path) == nil {
				return nil, fmt.Errorf("%w: %q used by skin %q", ErrRegionNotFound, attachment.Path, skin.Name)
			}
		}
	}
	res := &Entity{
		Skeleton: NewSkeleton(data),
		State:    NewAnimationState(data),
		Atlas:    atlas,
	}
	res.Skeleton.UpdateWorldTransform()
	return res, nil
}

// Update advances playback by delta seconds and recomputes the pose.
func (e *Entity) Update(delta float32) {
	e.State.Update(delta)
	e.Pose()
}

// Pose rebuilds the skeleton from setup pose plus the current tracks.
func (e *Entity) Pose() {
	e.Skeleton.SetToSetupPose()
	e.State.Apply(e.Skeleton)
	e.Skeleton.UpdateWorldTransform()
}
