package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // registers the jpeg page format
	_ "image/png"  // registers the png page format

	_ "golang.org/x/image/webp" // registers the webp page format
	"golang.org/x/sync/errgroup"

	"spineview/internal/spine"
)

// decode turns fetched bytes into the runtime value for the locator's type.
func decode(ctx context.Context, fetcher Fetcher, src string, data []byte) (any, error) {
	switch ext := extension(src); ext {
	case ".json":
		return spine.ParseSkeletonJSON(data)
	case ".atlas":
		return decodeAtlas(ctx, fetcher, src, data)
	case ".png", ".jpg", ".jpeg", ".webp":
		return decodeImage(data)
	default:
		return nil, fmt.Errorf("%w: extension %q", ErrUnsupportedAsset, ext)
	}
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// decodeAtlas parses the atlas text and fills every page image, fetching the
// pages relative to the atlas locator.
func decodeAtlas(ctx context.Context, fetcher Fetcher, src string, data []byte) (*spine.Atlas, error) {
	atlas, err := spine.ParseAtlas(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, page := range atlas.Pages {
		g.Go(func() error {
			pageSrc := ResolveRef(src, page.Name)
			raw, err := fetcher.Fetch(gctx, pageSrc)
			if err != nil {
				return fmt.Errorf("atlas page %s: %w", pageSrc, err)
			}
			img, err := decodeImage(raw)
			if err != nil {
				return fmt.Errorf("atlas page %s: %w", pageSrc, err)
			}
			page.Image = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return atlas, nil
}
