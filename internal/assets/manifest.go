package assets

import (
	"encoding/json"
	"fmt"
)

// Asset maps a logical alias to a locator.
type Asset struct {
	Alias string `json:"alias"`
	Src   string `json:"src"`
}

// Bundle is a named group of assets loaded together.
type Bundle struct {
	Name   string  `json:"name"`
	Assets []Asset `json:"assets"`
}

// Manifest lists every bundle the loader may resolve.
type Manifest struct {
	Bundles []Bundle `json:"bundles"`
}

// ParseManifest decodes the {"bundles": [...]} document and validates it.
func ParseManifest(data []byte) (Manifest, error) {
	var res Manifest
	if err := json.Unmarshal(data, &res); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := res.Validate(); err != nil {
		return Manifest{}, err
	}
	return res, nil
}

// Validate checks names are present and aliases unique across bundles.
func (m Manifest) Validate() error {
	bundles := make(map[string]struct{}, len(m.Bundles))
	aliases := make(map[string]string)
	for _, bundle := range m.Bundles {
		if bundle.Name == "" {
			return fmt.Errorf("%w: bundle without name", ErrInvalidManifest)
		}
		if _, ok := bundles[bundle.Name]; ok {
			return fmt.Errorf("%w: duplicate bundle %q", ErrInvalidManifest, bundle.Name)
		}
		bundles[bundle.Name] = struct{}{}
		if err := checkAssets(bundle.Name, bundle.Assets, aliases); err != nil {
			return err
		}
	}
	return nil
}

func checkAssets(bundle string, assets []Asset, seen map[string]string) error {
	for _, item := range assets {
		if item.Alias == "" || item.Src == "" {
			return fmt.Errorf("%w: bundle %q has an asset without alias or src", ErrInvalidManifest, bundle)
		}
		if owner, ok := seen[item.Alias]; ok {
			return fmt.Errorf("%w: alias %q declared by %q and %q", ErrInvalidManifest, item.Alias, owner, bundle)
		}
		seen[item.Alias] = bundle
	}
	return nil
}
