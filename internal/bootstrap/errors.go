package bootstrap

import "errors"

var (
	// ErrAssetResolution reports an entity alias missing from the loaded assets.
	ErrAssetResolution = errors.New("bootstrap: asset not resolved")
	// ErrEmptyCatalog reports skeleton data without skins or animations.
	ErrEmptyCatalog = errors.New("bootstrap: empty catalog")
	// ErrNotReady is returned by commands issued before Start completed.
	ErrNotReady = errors.New("bootstrap: controller not ready")
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("bootstrap: already started")
	ErrUnknownSkin      = errors.New("bootstrap: unknown skin")
	ErrUnknownAnimation = errors.New("bootstrap: unknown animation")
)
