// Package view maps the unbounded drawing plane onto a bounded viewport
// under pan and zoom.
package view

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/iburimskiy/guilloche/internal/config"
)

// State is the visible window {X, Y, W, H} in canvas coordinates.
type State struct {
	X, Y float64
	W, H float64
}

// Limits constrains zooming.
type Limits struct {
	MinSize float64
	MaxSize float64
	Factor  float64
}

// Transform owns the current window and the limits it is kept within.
type Transform struct {
	state  State
	home   State
	limits Limits
	// Origin is the canvas point at which the plane origin is drawn.
	origin vec.Vec2
}

// New returns a transform showing the configured default window.
func New(cfg config.Config) *Transform {
	home := State{X: cfg.DefaultView.X, Y: cfg.DefaultView.Y, W: cfg.DefaultView.W, H: cfg.DefaultView.H}
	return &Transform{
		state: home,
		home:  home,
		limits: Limits{
			MinSize: cfg.MinViewSize,
			MaxSize: cfg.MaxViewSize,
			Factor:  cfg.ZoomFactor,
		},
		origin: vec.Vec2{X: config.CanvasOriginX, Y: config.CanvasOriginY},
	}
}

// State returns the current window.
func (t *Transform) State() State { return t.state }

// Home returns the canonical default window.
func (t *Transform) Home() State { return t.home }

// Reset restores the canonical default window.
func (t *Transform) Reset() { t.state = t.home }

// Pan translates the window by the screen delta converted with the given
// screen-to-plane scale. The window moves opposite to the pointer so the
// content follows it.
func (t *Transform) Pan(dx, dy, scaleX, scaleY float64) {
	t.state.X -= dx * scaleX
	t.state.Y -= dy * scaleY
}

// Zoom scales the window about the point under the cursor. Zooming in
// divides the size by the factor, zooming out multiplies it. The larger
// side is then clamped into [MinSize, MaxSize] by rescaling both sides
// together, and the origin is moved so the same plane point stays under
// the cursor.
func (t *Transform) Zoom(mouseX, mouseY, viewportW, viewportH float64, in bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	s := t.state
	fx, fy := mouseX/viewportW, mouseY/viewportH
	worldX := s.X + fx*s.W
	worldY := s.Y + fy*s.H

	k := t.limits.Factor
	if in {
		k = 1 / k
	}
	w, h := s.W*k, s.H*k

	if m := max(w, h); m > 0 {
		switch {
		case m < t.limits.MinSize:
			w, h = w*t.limits.MinSize/m, h*t.limits.MinSize/m
		case m > t.limits.MaxSize:
			w, h = w*t.limits.MaxSize/m, h*t.limits.MaxSize/m
		}
	}
	if w <= 0 || h <= 0 {
		return
	}

	t.state = State{
		X: worldX - fx*w,
		Y: worldY - fy*h,
		W: w,
		H: h,
	}
}

// ScreenToPlaneScale returns the size of one screen pixel in plane units.
func (t *Transform) ScreenToPlaneScale(viewportW, viewportH float64) (float64, float64) {
	return t.state.W / viewportW, t.state.H / viewportH
}

// Matrix maps plane coordinates to screen coordinates for a viewport of
// the given size.
func (t *Transform) Matrix(viewportW, viewportH float64) matrix.Matrix {
	s := t.state
	sx, sy := viewportW/s.W, viewportH/s.H
	return matrix.Matrix{sx, 0, 0, sy, (t.origin.X - s.X) * sx, (t.origin.Y - s.Y) * sy}
}

// ToScreen maps a plane point into the viewport.
func (t *Transform) ToScreen(p vec.Vec2, viewportW, viewportH float64) vec.Vec2 {
	return Apply(t.Matrix(viewportW, viewportH), p)
}

// ToPlane maps a viewport point back onto the plane.
func (t *Transform) ToPlane(p vec.Vec2, viewportW, viewportH float64) vec.Vec2 {
	s := t.state
	return vec.Vec2{
		X: s.X + p.X/viewportW*s.W - t.origin.X,
		Y: s.Y + p.Y/viewportH*s.H - t.origin.Y,
	}
}

// Apply transforms p by m, using the PDF coefficient order
// [a b c d e f]: x' = a*x + c*y + e, y' = b*x + d*y + f.
func Apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
