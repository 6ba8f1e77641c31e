// Package assets declares asset bundles and resolves them into runtime
// values (skeleton data, atlases, images) addressed by alias.
package assets

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"spineview/internal/logging"
)

// Loader keeps the declared bundles and the alias registry. It is not safe
// for concurrent use; LoadBundle fans fetches out internally but writes the
// registry from the calling goroutine only.
type Loader struct {
	fetcher  Fetcher
	logger   *slog.Logger
	bundles  map[string][]Asset
	aliases  map[string]string
	loaded   map[string]bool
	registry map[string]any
}

func NewLoader(fetcher Fetcher, logger *slog.Logger) *Loader {
	return &Loader{
		fetcher:  fetcher,
		logger:   logging.OrNop(logger),
		bundles:  make(map[string][]Asset),
		aliases:  make(map[string]string),
		loaded:   make(map[string]bool),
		registry: make(map[string]any),
	}
}

// Init declares every bundle of m. Nothing is declared when m is invalid or
// clashes with bundles declared earlier.
func (l *Loader) Init(m Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for _, bundle := range m.Bundles {
		if err := l.check(bundle.Name, bundle.Assets); err != nil {
			return err
		}
	}
	for _, bundle := range m.Bundles {
		l.declare(bundle.Name, bundle.Assets)
	}
	return nil
}

// DeclareBundle registers one bundle under name.
func (l *Loader) DeclareBundle(name string, assets ...Asset) error {
	if name == "" {
		return fmt.Errorf("%w: bundle without name", ErrInvalidManifest)
	}
	if err := checkAssets(name, assets, make(map[string]string)); err != nil {
		return err
	}
	if err := l.check(name, assets); err != nil {
		return err
	}
	l.declare(name, assets)
	return nil
}

func (l *Loader) check(name string, assets []Asset) error {
	if _, ok := l.bundles[name]; ok {
		return fmt.Errorf("%w: bundle %q already declared", ErrInvalidManifest, name)
	}
	for _, item := range assets {
		if owner, ok := l.aliases[item.Alias]; ok {
			return fmt.Errorf("%w: alias %q already declared by %q", ErrInvalidManifest, item.Alias, owner)
		}
	}
	return nil
}

func (l *Loader) declare(name string, assets []Asset) {
	l.bundles[name] = slices.Clone(assets)
	for _, item := range assets {
		l.aliases[item.Alias] = name
	}
	l.logger.Debug("bundle declared", "bundle", name, "assets", len(assets))
}

// LoadBundle fetches and decodes every asset of the named bundles
// concurrently. Aliases become visible only when the whole call succeeds;
// bundles loaded before are skipped.
func (l *Loader) LoadBundle(ctx context.Context, names ...string) error {
	pending := make([]Asset, 0)
	queued := make([]string, 0, len(names))
	for _, name := range names {
		assets, ok := l.bundles[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBundle, name)
		}
		if l.loaded[name] || slices.Contains(queued, name) {
			continue
		}
		queued = append(queued, name)
		pending = append(pending, assets...)
	}
	if len(queued) == 0 {
		return nil
	}

	results := make([]any, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range pending {
		g.Go(func() error {
			data, err := l.fetcher.Fetch(gctx, item.Src)
			if err != nil {
				return fmt.Errorf("load %s (%s): %w", item.Alias, item.Src, err)
			}
			value, err := decode(gctx, l.fetcher, item.Src, data)
			if err != nil {
				return fmt.Errorf("load %s (%s): %w", item.Alias, item.Src, err)
			}
			results[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, item := range pending {
		l.registry[item.Alias] = results[i]
	}
	for _, name := range queued {
		l.loaded[name] = true
		l.logger.Info("bundle loaded", "bundle", name, "assets", len(l.bundles[name]))
	}
	return nil
}

// Loaded reports whether the named bundle has been resolved.
func (l *Loader) Loaded(name string) bool {
	return l.loaded[name]
}

// Get returns the value resolved for alias.
func (l *Loader) Get(alias string) (any, error) {
	value, ok := l.registry[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnresolved, alias)
	}
	return value, nil
}

// Lookup is Get with a type check.
func Lookup[T any](l *Loader, alias string) (T, error) {
	var zero T
	value, err := l.Get(alias)
	if err != nil {
		return zero, err
	}
	res, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, want %T", ErrWrongType, alias, value, zero)
	}
	return res, nil
}
