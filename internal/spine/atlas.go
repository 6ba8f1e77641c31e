package spine

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"io"
	"strconv"
	"strings"
)

type AtlasPage struct {
	Name             string
	W, H             int
	Format           string
	MinFilter        string
	MagFilter        string
	Repeat           string
	PremultiplyAlpha bool
	// Image is filled in by whoever loads the page file.
	Image image.Image
}

type AtlasRegion struct {
	Name string
	Page *AtlasPage
	X, Y int
	// W and H are the unrotated size; a region rotated by 90 or 270 occupies H x W on the page.
	W, H             int
	OrigW, OrigH     int
	OffsetX, OffsetY int // from the bottom left of the original image
	Degrees          int
	Index            int
}

// PackedSize is the size the region occupies on its page.
func (r *AtlasRegion) PackedSize() (int, int) {
	if r.Degrees == 90 || r.Degrees == 270 {
		return r.H, r.W
	}
	return r.W, r.H
}

type Atlas struct {
	Pages   []*AtlasPage
	Regions []*AtlasRegion
}

func (a *Atlas) FindRegion(name string) *AtlasRegion {
	for _, item := range a.Regions {
		if item.Name == name {
			return item
		}
	}
	return nil
}

// ParseAtlas reads a libGDX texture atlas, both the legacy
// (rotate/xy/size/orig/offset) and the current (bounds/offsets) layout.
func ParseAtlas(reader io.Reader) (*Atlas, error) {
	res := &Atlas{}
	var page *AtlasPage
	var region *AtlasRegion
	scanner := bufio.NewScanner(reader)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(text) == "" {
			page, region = nil, nil
			continue
		}
		if page == nil {
			page = &AtlasPage{Name: strings.TrimSpace(text), Repeat: "none"}
			res.Pages = append(res.Pages, page)
			continue
		}
		key, value, ok := strings.Cut(text, ":")
		if !ok {
			region = &AtlasRegion{Name: strings.TrimSpace(text), Page: page, Index: -1}
			res.Regions = append(res.Regions, region)
			continue
		}
		key = strings.TrimSpace(key)
		var err error
		if region == nil {
			err = parsePageField(page, key, value)
		} else {
			err = parseRegionField(region, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidAtlas, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(res.Pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrInvalidAtlas)
	}
	for _, item := range res.Regions {
		if item.OrigW == 0 && item.OrigH == 0 {
			item.OrigW, item.OrigH = item.W, item.H
		}
	}
	return res, nil
}

func parsePageField(page *AtlasPage, key, value string) error {
	switch key {
	case "size":
		size, err := parseIntList(value, 2)
		if err != nil {
			return err
		}
		page.W, page.H = size[0], size[1]
	case "format":
		page.Format = strings.TrimSpace(value)
	case "filter":
		filter := parseStrList(value)
		if len(filter) != 2 {
			return fmt.Errorf("filter needs 2 values, got %q", value)
		}
		page.MinFilter, page.MagFilter = filter[0], filter[1]
	case "repeat":
		page.Repeat = strings.TrimSpace(value)
	case "pma":
		page.PremultiplyAlpha = strings.TrimSpace(value) == "true"
	}
	return nil // unknown keys are ignored
}

func parseRegionField(region *AtlasRegion, key, value string) error {
	switch key {
	case "rotate":
		switch value = strings.TrimSpace(value); value {
		case "true":
			region.Degrees = 90
		case "false":
			region.Degrees = 0
		default:
			degrees, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			region.Degrees = degrees
		}
		if region.Degrees%90 != 0 {
			return fmt.Errorf("unsupported rotation %d", region.Degrees)
		}
		region.Degrees = (region.Degrees%360 + 360) % 360
	case "xy":
		return assignInts(value, &region.X, &region.Y)
	case "size":
		return assignInts(value, &region.W, &region.H)
	case "bounds":
		return assignInts(value, &region.X, &region.Y, &region.W, &region.H)
	case "orig":
		return assignInts(value, &region.OrigW, &region.OrigH)
	case "offset":
		return assignInts(value, &region.OffsetX, &region.OffsetY)
	case "offsets":
		return assignInts(value, &region.OffsetX, &region.OffsetY, &region.OrigW, &region.OrigH)
	case "index":
		return assignInts(value, &region.Index)
	}
	return nil
}

func parseStrList(value string) []string {
	items := strings.Split(value, ",")
	res := make([]string, 0, len(items))
	for _, item := range items {
		res = append(res, strings.TrimSpace(item))
	}
	return res
}

func parseIntList(value string, count int) ([]int, error) {
	items := parseStrList(value)
	if len(items) != count {
		return nil, fmt.Errorf("want %d values, got %q", count, value)
	}
	res := make([]int, 0, count)
	for _, item := range items {
		val, err := strconv.Atoi(item)
		if err != nil {
			return nil, err
		}
		res = append(res, val)
	}
	return res, nil
}

func assignInts(value string, targets ...*int) error {
	items, err := parseIntList(value, len(targets))
	if err != nil {
		return err
	}
	for i, target := range targets {
		*target = items[i]
	}
	return nil
}

// RegionImage cuts region out of its page, undoes the packing rotation and
// restores the whitespace stripped around it, so the result is OrigW x OrigH.
func RegionImage(region *AtlasRegion) (image.Image, error) {
	if region.Page == nil || region.Page.Image == nil {
		return nil, fmt.Errorf("%w: page of region %q has no image", ErrInvalidAtlas, region.Name)
	}
	pw, ph := region.PackedSize()
	packed := image.NewRGBA(image.Rect(0, 0, pw, ph))
	src := region.Page.Image.Bounds().Min.Add(image.Pt(region.X, region.Y))
	draw.Draw(packed, packed.Bounds(), region.Page.Image, src, draw.Src)
	var img *image.RGBA
	switch region.Degrees {
	case 0:
		img = packed
	case 90:
		img = rotate90(packed)
	case 180:
		img = rotate180(packed)
	case 270:
		img = rotate270(packed)
	default:
		return nil, fmt.Errorf("%w: unknown rotate %d", ErrInvalidAtlas, region.Degrees)
	}
	if region.OrigW == region.W && region.OrigH == region.H && region.OffsetX == 0 && region.OffsetY == 0 {
		return img, nil
	}
	res := image.NewRGBA(image.Rect(0, 0, region.OrigW, region.OrigH))
	top := region.OrigH - region.OffsetY - region.H // offsets count from the bottom
	draw.Draw(res, image.Rect(region.OffsetX, top, region.OffsetX+region.W, top+region.H), img, image.Point{}, draw.Over)
	return res, nil
}

// rotate90 turns img clockwise, undoing the counter clockwise packing rotation.
func rotate90(img *image.RGBA) *image.RGBA {
	bound := img.Bounds()
	width, height := bound.Dx(), bound.Dy()
	res := image.NewRGBA(image.Rect(0, 0, height, width))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			res.Set(height-1-y, x, img.At(x, y))
		}
	}
	return res
}

func rotate180(img *image.RGBA) *image.RGBA {
	bound := img.Bounds()
	width, height := bound.Dx(), bound.Dy()
	res := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			res.Set(width-1-x, height-1-y, img.At(x, y))
		}
	}
	return res
}

func rotate270(img *image.RGBA) *image.RGBA {
	bound := img.Bounds()
	width, height := bound.Dx(), bound.Dy()
	res := image.NewRGBA(image.Rect(0, 0, height, width))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			res.Set(y, width-1-x, img.At(x, y))
		}
	}
	return res
}
