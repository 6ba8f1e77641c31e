package app

// Surface is the logical screen Layout reports to ebiten.
type Surface struct {
	w, h int
}

func NewSurface(w, h int) *Surface {
	return &Surface{w: w, h: h}
}

func (s *Surface) Resize(w, h int) {
	s.w, s.h = w, h
}

func (s *Surface) Size() (int, int) {
	return s.w, s.h
}

// Window tracks the outside size ebiten passes to Layout and notifies
// listeners when it changes.
type Window struct {
	w, h      int
	listeners []func()
}

func NewWindow(w, h int) *Window {
	return &Window{w: w, h: h}
}

func (w *Window) Size() (int, int) {
	return w.w, w.h
}

// OnResize registers fn for every later size change.
func (w *Window) OnResize(fn func()) {
	w.listeners = append(w.listeners, fn)
}

// Observe records the current outside size. Listeners run only on change.
func (w *Window) Observe(width, height int) {
	if width == w.w && height == w.h {
		return
	}
	w.w, w.h = width, height
	for _, fn := range w.listeners {
		fn()
	}
}
