package spine

import (
	"fmt"
	"math"
	"sort"
)

// TrackEntry is one animation playing on a track.
type TrackEntry struct {
	Track     int
	Animation *Animation
	Loop      bool
	// TrackTime is the playback position in seconds since the entry started.
	TrackTime float32
}

// AnimationTime is TrackTime mapped into the animation, wrapped when looping
// and held on the last frame otherwise.
func (e *TrackEntry) AnimationTime() float32 {
	duration := e.Animation.Duration
	if duration <= 0 {
		return 0
	}
	if e.Loop {
		return float32(math.Mod(float64(e.TrackTime), float64(duration)))
	}
	return min(e.TrackTime, duration)
}

func (e *TrackEntry) Complete() bool {
	return !e.Loop && e.TrackTime >= e.Animation.Duration
}

// AnimationState plays animations on numbered tracks. A new animation on an
// occupied track replaces the old one outright; there is no mixing.
type AnimationState struct {
	Data   *SkeletonData
	tracks map[int]*TrackEntry
}

func NewAnimationState(data *SkeletonData) *AnimationState {
	return &AnimationState{Data: data, tracks: make(map[int]*TrackEntry)}
}

// SetAnimation starts the named animation on track from its beginning.
func (s *AnimationState) SetAnimation(track int, name string, loop bool) (*TrackEntry, error) {
	if track < 0 {
		return nil, fmt.Errorf("invalid track %d", track)
	}
	anim := s.Data.FindAnimation(name)
	if anim == nil {
		return nil, fmt.Errorf("%w: %q", ErrAnimationNotFound, name)
	}
	entry := &TrackEntry{Track: track, Animation: anim, Loop: loop}
	s.tracks[track] = entry
	return entry, nil
}

func (s *AnimationState) Current(track int) *TrackEntry {
	return s.tracks[track]
}

func (s *AnimationState) ClearTrack(track int) {
	delete(s.tracks, track)
}

// Update advances every track by delta seconds.
func (s *AnimationState) Update(delta float32) {
	for _, entry := range s.tracks {
		entry.TrackTime += delta
	}
}

// Apply poses sk from the current tracks, lower tracks first.
func (s *AnimationState) Apply(sk *Skeleton) {
	tracks := make([]int, 0, len(s.tracks))
	for track := range s.tracks {
		tracks = append(tracks, track)
	}
	sort.Ints(tracks)
	for _, track := range tracks {
		entry := s.tracks[track]
		entry.Animation.Apply(sk, entry.AnimationTime())
	}
}
