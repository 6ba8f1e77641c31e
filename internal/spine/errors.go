package spine

import "errors"

var (
	ErrInvalidData       = errors.New("spine: invalid skeleton data")
	ErrInvalidAtlas      = errors.New("spine: invalid atlas")
	ErrSkinNotFound      = errors.New("spine: skin not found")
	ErrAnimationNotFound = errors.New("spine: animation not found")
	ErrRegionNotFound    = errors.New("spine: atlas region not found")
)
