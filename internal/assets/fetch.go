package assets

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Fetcher retrieves the raw bytes behind a locator.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// FSFetcher reads locators as slash separated paths inside FS.
type FSFetcher struct {
	FS fs.FS
}

func (f FSFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Clean(strings.TrimPrefix(src, "/"))
	return fs.ReadFile(f.FS, name)
}

// HTTPFetcher downloads http and https locators. A nil Client means http.DefaultClient.
type HTTPFetcher struct {
	Client *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", src, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Router sends http(s) locators to Remote and everything else to Local.
type Router struct {
	Local  Fetcher
	Remote Fetcher
}

func (r Router) Fetch(ctx context.Context, src string) ([]byte, error) {
	target := r.Local
	if isRemote(src) {
		target = r.Remote
	}
	if target == nil {
		return nil, fmt.Errorf("%w: no fetcher for %q", ErrUnsupportedAsset, src)
	}
	return target.Fetch(ctx, src)
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// ResolveRef resolves ref against the locator base, the way an atlas names
// its page images relative to itself.
func ResolveRef(base, ref string) string {
	if isRemote(ref) {
		return ref
	}
	if isRemote(base) {
		baseURL, err := url.Parse(base)
		if err == nil {
			refURL, err := url.Parse(ref)
			if err == nil {
				return baseURL.ResolveReference(refURL).String()
			}
		}
	}
	return path.Join(path.Dir(base), ref)
}

// extension returns the lower case extension of the locator path, ignoring
// any query string.
func extension(src string) string {
	p := src
	if isRemote(src) {
		if u, err := url.Parse(src); err == nil {
			p = u.Path
		}
	}
	return strings.ToLower(path.Ext(p))
}
