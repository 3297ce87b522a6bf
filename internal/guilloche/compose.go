package guilloche

import (
	"image/color"

	"github.com/iburimskiy/guilloche/internal/config"
)

// Layer is one styled path of a pattern.
type Layer struct {
	Index int
	Path  Path
	Width float64
	Color color.NRGBA
}

// Pattern is the ordered list of layers, base layer first. Later layers
// draw on top of earlier ones.
type Pattern struct {
	Layers     []Layer
	Background color.NRGBA
}

// Base returns the layer at index 0.
func (pat Pattern) Base() Layer {
	if len(pat.Layers) == 0 {
		return Layer{}
	}
	return pat.Layers[0]
}

// Points reports the total number of sampled points across all layers.
func (pat Pattern) Points() int {
	n := 0
	for _, l := range pat.Layers {
		n += len(l.Path)
	}
	return n
}

// Composite synthesizes layers 0..RepeatCount at the default density.
func Composite(p Params) Pattern {
	return CompositeN(p, config.SampleDensity)
}

// CompositeN is Composite with an explicit sample density.
func CompositeN(p Params, density int) Pattern {
	p = p.Normalized()
	stroke := ParseColor(p.StrokeColor, p.StrokeOpacity)
	pat := Pattern{
		Layers:     make([]Layer, 0, p.RepeatCount+1),
		Background: ParseColor(p.Background, p.BackgroundOpacity),
	}
	for i := 0; i <= p.RepeatCount; i++ {
		pat.Layers = append(pat.Layers, Layer{
			Index: i,
			Path:  SynthesizeN(p, i, density),
			Width: StrokeWidth(i, p.RepeatCount, p.Thickness),
			Color: stroke,
		})
	}
	return pat
}

// StrokeWidth ramps linearly from 0 at the base layer to thickness at the
// last one. Without a positive thickness and at least two layers every
// layer gets the default width.
func StrokeWidth(layer, repeatCount int, thickness float64) float64 {
	if thickness > 0 && repeatCount > 0 {
		return float64(layer) * thickness / float64(repeatCount)
	}
	return config.DefaultStrokeWidth
}
