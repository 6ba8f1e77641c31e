package assets

import "errors"

var (
	// ErrInvalidManifest reports a malformed bundle declaration.
	ErrInvalidManifest = errors.New("assets: invalid manifest")
	// ErrUnknownBundle is returned when a bundle is loaded before it was declared.
	ErrUnknownBundle = errors.New("assets: unknown bundle")
	// ErrUnresolved is returned by lookups of aliases that are not loaded.
	ErrUnresolved = errors.New("assets: alias not resolved")
	// ErrWrongType is returned when a resolved asset has another type than asked for.
	ErrWrongType = errors.New("assets: wrong asset type")
	// ErrUnsupportedAsset is returned for locators no decoder or fetcher handles.
	ErrUnsupportedAsset = errors.New("assets: unsupported asset")
)
