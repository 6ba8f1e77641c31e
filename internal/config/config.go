// Package config reads the viewer settings from SPINEVIEW_* environment variables.
package config

import (
	"fmt"
	"image/color"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"spineview/internal/assets"
)

type Config struct {
	// AssetRoot is a directory or an http(s) base URL the asset sources are relative to.
	AssetRoot    string `env:"SPINEVIEW_ASSET_ROOT"    envDefault:"res"`
	ManifestFile string `env:"SPINEVIEW_MANIFEST"`
	Bundle       string `env:"SPINEVIEW_BUNDLE"        envDefault:"spine-custom"`
	DataAlias    string `env:"SPINEVIEW_DATA_ALIAS"    envDefault:"spineData"`
	DataSrc      string `env:"SPINEVIEW_DATA_SRC"      envDefault:"spine/bonus.json"`
	AtlasAlias   string `env:"SPINEVIEW_ATLAS_ALIAS"   envDefault:"spineAtlas"`
	AtlasSrc     string `env:"SPINEVIEW_ATLAS_SRC"     envDefault:"spine/ft.atlas"`

	WindowWidth  int    `env:"SPINEVIEW_WINDOW_WIDTH"  envDefault:"1280"`
	WindowHeight int    `env:"SPINEVIEW_WINDOW_HEIGHT" envDefault:"720"`
	WindowTitle  string `env:"SPINEVIEW_WINDOW_TITLE"  envDefault:"spineview"`
	Background   string `env:"SPINEVIEW_BACKGROUND"    envDefault:"d3d3d3"`
	TPS          int    `env:"SPINEVIEW_TPS"           envDefault:"60"`

	PosX  float32 `env:"SPINEVIEW_POS_X" envDefault:"640"`
	PosY  float32 `env:"SPINEVIEW_POS_Y" envDefault:"600"`
	Scale float32 `env:"SPINEVIEW_SCALE" envDefault:"1"`
	Loop  bool    `env:"SPINEVIEW_LOOP"  envDefault:"false"`

	LogLevel string `env:"SPINEVIEW_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps %d must be positive", c.TPS)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("config: scale %v must be positive", c.Scale)
	}
	if c.Bundle == "" || c.DataAlias == "" || c.AtlasAlias == "" {
		return fmt.Errorf("config: bundle and aliases must be set")
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Background as rrggbb, with an optional # or 0x prefix.
func (c Config) BackgroundColor() (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(c.Background), "#"), "0x")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("config: background %q is not rrggbb", c.Background)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: background %q: %w", c.Background, err)
	}
	return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 0xff}, nil
}

// RemoteRoot reports whether assets are served over http(s).
func (c Config) RemoteRoot() bool {
	return strings.HasPrefix(c.AssetRoot, "http://") || strings.HasPrefix(c.AssetRoot, "https://")
}

// Manifest reads ManifestFile, or declares the single bundle named by the
// config when no file is given. With a remote root every relative source is
// resolved against it.
func (c Config) Manifest() (assets.Manifest, error) {
	var res assets.Manifest
	if c.ManifestFile != "" {
		data, err := os.ReadFile(c.ManifestFile)
		if err != nil {
			return assets.Manifest{}, fmt.Errorf("read manifest: %w", err)
		}
		if res, err = assets.ParseManifest(data); err != nil {
			return assets.Manifest{}, fmt.Errorf("%s: %w", c.ManifestFile, err)
		}
	} else {
		res = assets.Manifest{Bundles: []assets.Bundle{{
			Name: c.Bundle,
			Assets: []assets.Asset{
				{Alias: c.DataAlias, Src: c.DataSrc},
				{Alias: c.AtlasAlias, Src: c.AtlasSrc},
			},
		}}}
	}
	if c.RemoteRoot() {
		base := strings.TrimSuffix(c.AssetRoot, "/") + "/"
		for i := range res.Bundles {
			for j, item := range res.Bundles[i].Assets {
				res.Bundles[i].Assets[j].Src = assets.ResolveRef(base, item.Src)
			}
		}
	}
	return res, nil
}

// Fetcher reads local sources below AssetRoot and downloads http(s) ones.
func (c Config) Fetcher(client *http.Client) assets.Fetcher {
	local := "."
	if !c.RemoteRoot() {
		local = c.AssetRoot
	}
	return assets.Router{
		Local:  assets.FSFetcher{FS: os.DirFS(local)},
		Remote: assets.HTTPFetcher{Client: client},
	}
}
