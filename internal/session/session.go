// Package session owns the single mutable "current" parameter vector and
// view window, and sequences every update to them. Recomposition is
// synchronous: each change re-synthesizes all layers before returning.
package session

import (
	"log/slog"
	"math/rand/v2"

	"github.com/iburimskiy/guilloche/internal/config"
	"github.com/iburimskiy/guilloche/internal/guilloche"
	"github.com/iburimskiy/guilloche/internal/logging"
	"github.com/iburimskiy/guilloche/internal/view"
)

// Session is not safe for concurrent use; the UI loop drives it from a
// single goroutine.
type Session struct {
	cfg     config.Config
	log     *slog.Logger
	params  guilloche.Params
	pattern guilloche.Pattern
	view    *view.Transform
	gesture view.Gesture

	// generation increments on every recomposition so that consumers
	// holding derived data (cached vertices, audio paths) can tell it is
	// stale.
	generation uint64
}

// New starts a session from the default parameter vector and window.
func New(cfg config.Config, log *slog.Logger) *Session {
	s := &Session{
		cfg:  cfg,
		log:  logging.OrNop(log),
		view: view.New(cfg),
	}
	s.replace(guilloche.DefaultParams())
	return s
}

// Params returns a copy of the current vector.
func (s *Session) Params() guilloche.Params { return s.params }

// Pattern returns the most recently composed pattern. Callers must not
// modify it.
func (s *Session) Pattern() guilloche.Pattern { return s.pattern }

// View returns the current window.
func (s *Session) View() view.State { return s.view.State() }

// Transform exposes the view transform for coordinate mapping.
func (s *Session) Transform() *view.Transform { return s.view }

// Generation reports how many times the pattern has been composed.
func (s *Session) Generation() uint64 { return s.generation }

// Gesture reports the pan gesture phase.
func (s *Session) Gesture() view.Phase { return s.gesture.Phase() }

// SetParams replaces the vector after a live edit. The window is kept.
func (s *Session) SetParams(p guilloche.Params) {
	s.replace(p)
}

// ApplyPreset replaces the vector wholesale with a preset snapshot and
// returns to the canonical window.
func (s *Session) ApplyPreset(p guilloche.Params) {
	s.replace(p)
	s.view.Reset()
}

// Capture returns an independent snapshot of the current vector for
// persistence.
func (s *Session) Capture() guilloche.Params {
	// Params holds only value fields; the copy shares nothing.
	return s.params
}

// Randomize replaces the vector with one drawn from the configured ranges
// and returns to the canonical window.
func (s *Session) Randomize(r *rand.Rand) guilloche.Params {
	p := guilloche.Randomize(s.params, r, s.cfg.Ranges, s.cfg.Palette)
	s.ApplyPreset(p)
	return p
}

// ResetView returns to the canonical window without touching the vector.
func (s *Session) ResetView() { s.view.Reset() }

// PointerDown starts a pan gesture.
func (s *Session) PointerDown(x, y float64) { s.gesture.Down(x, y) }

// PointerMove pans by the pointer delta while a drag is in progress.
func (s *Session) PointerMove(x, y, viewportW, viewportH float64) {
	dx, dy, ok := s.gesture.Move(x, y)
	if !ok || (dx == 0 && dy == 0) {
		return
	}
	s.Pan(dx, dy, viewportW, viewportH)
}

// PointerUp ends a pan gesture.
func (s *Session) PointerUp() { s.gesture.Up() }

// PointerLeave cancels a pan gesture.
func (s *Session) PointerLeave() { s.gesture.Leave() }

// Pan translates the window by a screen-space delta.
func (s *Session) Pan(dx, dy, viewportW, viewportH float64) {
	sx, sy := s.view.ScreenToPlaneScale(viewportW, viewportH)
	s.view.Pan(dx, dy, sx, sy)
}

// Zoom zooms about the cursor. It is ignored while a pan is in progress
// and reports whether the window changed.
func (s *Session) Zoom(mouseX, mouseY, viewportW, viewportH float64, in bool) bool {
	if s.gesture.Phase() != view.Idle {
		return false
	}
	before := s.view.State()
	s.view.Zoom(mouseX, mouseY, viewportW, viewportH, in)
	return s.view.State() != before
}

// Export returns the current pattern with its tight export window.
func (s *Session) Export() guilloche.Export {
	return guilloche.NewExport(s.params, s.pattern)
}

func (s *Session) replace(p guilloche.Params) {
	s.params = p.Normalized()
	s.pattern = guilloche.CompositeN(s.params, s.cfg.SampleDensity)
	s.generation++
	s.log.Debug("pattern composed",
		"generation", s.generation,
		"layers", len(s.pattern.Layers),
		"points", s.pattern.Points())
}
