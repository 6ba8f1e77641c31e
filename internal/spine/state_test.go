package spine

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSetAnimationReplacesTrack(t *testing.T) {
	entity := mustEntity(t)
	first, err := entity.State.SetAnimation(0, "idle", false)
	if err != nil {
		t.Fatalf("SetAnimation: %v", err)
	}
	entity.Update(0.5)
	if first.TrackTime != 0.5 {
		t.Errorf("track time = %v", first.TrackTime)
	}
	second, err := entity.State.SetAnimation(0, "win", false)
	if err != nil {
		t.Fatalf("SetAnimation: %v", err)
	}
	if entity.State.Current(0) != second || second.TrackTime != 0 || second.Animation.Name != "win" {
		t.Errorf("track 0 = %+v", entity.State.Current(0))
	}
	if _, err := entity.State.SetAnimation(0, "missing", false); !errors.Is(err, ErrAnimationNotFound) {
		t.Errorf("err = %v, want ErrAnimationNotFound", err)
	}
	if entity.State.Current(0) != second {
		t.Error("failed SetAnimation must keep the playing entry")
	}
	entity.State.ClearTrack(0)
	if entity.State.Current(0) != nil {
		t.Error("cleared track should be empty")
	}
	entity.Update(0.5)
}

func TestRotateTimelineInterpolates(t *testing.T) {
	entity := mustEntity(t)
	if _, err := entity.State.SetAnimation(0, "idle", false); err != nil {
		t.Fatal(err)
	}
	entity.Update(0.5)
	if got := entity.Skeleton.FindBone("body").Rotate; !near(got, 45) {
		t.Errorf("rotate at 0.5 = %v, want 45", got)
	}
	entity.Update(10) // past the end, held on the last frame
	if got := entity.Skeleton.FindBone("body").Rotate; !near(got, 90) {
		t.Errorf("rotate after end = %v, want 90", got)
	}
	if !entity.State.Current(0).Complete() {
		t.Error("non looping entry should be complete")
	}
}

func TestLoopingWrapsTime(t *testing.T) {
	entity := mustEntity(t)
	if _, err := entity.State.SetAnimation(0, "idle", true); err != nil {
		t.Fatal(err)
	}
	entity.Update(1.25)
	if got := entity.Skeleton.FindBone("body").Rotate; !near(got, 22.5) {
		t.Errorf("rotate = %v, want 22.5", got)
	}
}

func TestAttachmentTimelineHidesSlot(t *testing.T) {
	entity := mustEntity(t)
	if err := entity.Skeleton.SetSkinByName("gold"); err != nil {
		t.Fatal(err)
	}
	if _, err := entity.State.SetAnimation(0, "bonus", false); err != nil {
		t.Fatal(err)
	}
	entity.Update(0.25)
	if entity.Skeleton.FindSlot("hat").Attachment == nil {
		t.Error("hat should show before 0.5")
	}
	entity.Update(0.5)
	if entity.Skeleton.FindSlot("hat").Attachment != nil {
		t.Error("hat should be hidden after 0.5")
	}
}

func TestDrawOrderAndDeform(t *testing.T) {
	entity := mustEntity(t)
	if _, err := entity.State.SetAnimation(0, "win", false); err != nil {
		t.Fatal(err)
	}
	entity.Update(0.25)
	if got := entity.Skeleton.DrawOrder[0].Data.Name; got != "body" {
		t.Errorf("draw order before key = %s first", got)
	}
	entity.Update(0.25)
	names := make([]string, 0)
	for _, slot := range entity.Skeleton.DrawOrder {
		names = append(names, slot.Data.Name)
	}
	if names[0] != "hat" || names[2] != "body" {
		t.Errorf("draw order = %v", names)
	}
	deform := entity.Skeleton.FindSlot("arm").Deform
	if len(deform) != 3 || !nearVec2(deform[1], mgl32.Vec2{2, 3}) {
		t.Errorf("deform at 0.5 = %v", deform)
	}
	body := entity.Skeleton.FindBone("body")
	if !nearVec2(body.Pos, mgl32.Vec2{2.5, 15}) {
		t.Errorf("translate at 0.5 = %v", body.Pos)
	}
}

func TestNewEntityRequiresRegions(t *testing.T) {
	atlas := testAtlas()
	atlas.Regions = atlas.Regions[:2] // drop hat_gold
	_, err := NewEntity(mustParse(t, testSkeletonJSON), atlas)
	if !errors.Is(err, ErrRegionNotFound) {
		t.Errorf("err = %v, want ErrRegionNotFound", err)
	}
}
