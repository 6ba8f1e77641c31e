// Package viewport keeps the rendering surface matched to the host window
// and scales the scene root relative to the size seen at startup.
package viewport

import (
	"errors"
	"fmt"
	"log/slog"

	"spineview/internal/logging"
)

var (
	ErrBaselineCaptured   = errors.New("viewport: baseline already captured")
	ErrDegenerateBaseline = errors.New("viewport: baseline has a zero dimension")
	ErrNoBaseline         = errors.New("viewport: baseline not captured")
)

// Host is the window the viewer lives in.
type Host interface {
	Size() (w, h int)
	OnResize(fn func())
}

// Surface is the drawable area, resized to follow the host.
type Surface interface {
	Resize(w, h int)
}

// Root is the scene node whose scale follows the host.
type Root interface {
	SetScale(x, y float64)
}

// Baseline is the host size observed once at startup.
type Baseline struct {
	Width, Height int
}

type Sizer struct {
	host     Host
	surface  Surface
	root     Root
	logger   *slog.Logger
	baseline *Baseline
	scaleX   float64
	scaleY   float64
}

func NewSizer(host Host, surface Surface, root Root, logger *slog.Logger) *Sizer {
	return &Sizer{host: host, surface: surface, root: root, logger: logging.OrNop(logger), scaleX: 1, scaleY: 1}
}

// CaptureBaseline records the current host size. It succeeds at most once.
func (s *Sizer) CaptureBaseline() error {
	if s.baseline != nil {
		return ErrBaselineCaptured
	}
	w, h := s.host.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDegenerateBaseline, w, h)
	}
	s.baseline = &Baseline{Width: w, Height: h}
	s.logger.Debug("viewport baseline", "width", w, "height", h)
	return nil
}

// Baseline returns the captured size and whether one was captured.
func (s *Sizer) Baseline() (Baseline, bool) {
	if s.baseline == nil {
		return Baseline{}, false
	}
	return *s.baseline, true
}

// ApplyResize matches the surface to the host and scales the root by
// current/baseline on each axis independently.
func (s *Sizer) ApplyResize() error {
	if s.baseline == nil {
		return ErrNoBaseline
	}
	w, h := s.host.Size()
	s.surface.Resize(w, h)
	s.scaleX = float64(w) / float64(s.baseline.Width)
	s.scaleY = float64(h) / float64(s.baseline.Height)
	s.root.SetScale(s.scaleX, s.scaleY)
	return nil
}

// Start applies the current size once and then follows every host resize.
func (s *Sizer) Start() error {
	if err := s.ApplyResize(); err != nil {
		return err
	}
	s.host.OnResize(func() {
		if err := s.ApplyResize(); err != nil {
			s.logger.Error("resize", "error", err)
			return
		}
		s.logger.Debug("resized", "scaleX", s.scaleX, "scaleY", s.scaleY)
	})
	return nil
}

// Scale reports the factors applied last.
func (s *Sizer) Scale() (x, y float64) {
	return s.scaleX, s.scaleY
}
