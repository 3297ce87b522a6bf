package guilloche

import (
	"seehuhn.de/go/geom/rect"
)

// Export is what an exporter needs: the pattern with the parameters that
// produced it and the plane-coordinate window to serialise it into.
type Export struct {
	Params  Params
	Pattern Pattern
	Window  rect.Rect
}

// NewExport pairs a pattern with its export window.
func NewExport(p Params, pat Pattern) Export {
	return Export{
		Params:  p,
		Pattern: pat,
		Window:  ExportWindow(pat, p.Thickness),
	}
}

// Bounds returns the axis-aligned bounding box of path. An empty path has
// a zero box at the origin.
func Bounds(path Path) rect.Rect {
	if len(path) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{LLx: path[0].X, LLy: path[0].Y, URx: path[0].X, URy: path[0].Y}
	for _, pt := range path[1:] {
		r.LLx = min(r.LLx, pt.X)
		r.LLy = min(r.LLy, pt.Y)
		r.URx = max(r.URx, pt.X)
		r.URy = max(r.URy, pt.Y)
	}
	return r
}

// ExportWindow is the base layer's bounding box grown by max(thickness, 1)
// on every side, so stroke caps are never clipped.
func ExportWindow(pat Pattern, thickness float64) rect.Rect {
	pad := max(thickness, 1)
	r := Bounds(pat.Base().Path)
	r.LLx -= pad
	r.LLy -= pad
	r.URx += pad
	r.URy += pad
	return r
}

// Width returns the horizontal extent of r.
func Width(r rect.Rect) float64 { return r.URx - r.LLx }

// Height returns the vertical extent of r.
func Height(r rect.Rect) float64 { return r.URy - r.LLy }
