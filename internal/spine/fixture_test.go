package spine

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const testSkeletonJSON = `{
  "skeleton": {"hash": "h", "spine": "3.8.99", "width": 100, "height": 200},
  "bones": [
    {"name": "root"},
    {"name": "body", "parent": "root", "y": 10},
    {"name": "arm", "parent": "body", "x": 5, "rotation": 90, "transform": "noScale"}
  ],
  "slots": [
    {"name": "body", "bone": "body", "attachment": "body"},
    {"name": "hat", "bone": "body", "attachment": "hat", "blend": "additive"},
    {"name": "arm", "bone": "arm", "attachment": "arm", "color": "ff000080"}
  ],
  "skins": [
    {"name": "default", "attachments": {
      "body": {"body": {"width": 20, "height": 40}},
      "arm": {"arm": {"type": "mesh", "uvs": [0, 0, 1, 0, 1, 1], "triangles": [0, 1, 2], "vertices": [0, 0, 10, 0, 10, 10], "hull": 3}}
    }},
    {"name": "gold", "attachments": {
      "hat": {"hat": {"path": "hat_gold", "width": 10, "height": 10}}
    }}
  ],
  "animations": {
    "idle": {"bones": {"body": {"rotate": [{"time": 0, "angle": 0}, {"time": 1, "angle": 90}]}}},
    "bonus": {"slots": {"hat": {"attachment": [{"time": 0, "name": "hat"}, {"time": 0.5, "name": null}]}}},
    "win": {
      "bones": {"body": {"translate": [{"time": 0, "x": 0, "y": 0}, {"time": 2, "x": 10, "y": 20}]}},
      "deform": {"default": {"arm": {"arm": [{"time": 0}, {"time": 1, "offset": 2, "vertices": [4, 6]}]}}},
      "drawOrder": [{"time": 0.5, "offsets": [{"slot": "body", "offset": 2}]}]
    }
  }
}`

func mustParse(t *testing.T, text string) *SkeletonData {
	t.Helper()
	data, err := ParseSkeletonJSON([]byte(text))
	if err != nil {
		t.Fatalf("ParseSkeletonJSON: %v", err)
	}
	return data
}

func testAtlas() *Atlas {
	page := &AtlasPage{Name: "test.png", W: 64, H: 64}
	return &Atlas{
		Pages: []*AtlasPage{page},
		Regions: []*AtlasRegion{
			{Name: "body", Page: page, W: 20, H: 40, OrigW: 20, OrigH: 40},
			{Name: "arm", Page: page, X: 20, W: 10, H: 10, OrigW: 10, OrigH: 10},
			{Name: "hat_gold", Page: page, X: 30, W: 10, H: 10, OrigW: 10, OrigH: 10},
		},
	}
}

func mustEntity(t *testing.T) *Entity {
	t.Helper()
	entity, err := NewEntity(mustParse(t, testSkeletonJSON), testAtlas())
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	return entity
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func nearVec2(a, b mgl32.Vec2) bool {
	return near(a.X(), b.X()) && near(a.Y(), b.Y())
}
