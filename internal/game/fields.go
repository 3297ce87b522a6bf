package game

import (
	"fmt"
	"math"

	"github.com/iburimskiy/guilloche/internal/guilloche"
)

// field is one editable numeric entry of the parameter vector.
type field struct {
	name     string
	min, max float64
	step     float64
	integer  bool
	get      func(p guilloche.Params) float64
	set      func(p *guilloche.Params, v float64)
}

var fields = []field{
	{name: "angleA", min: -50, max: 50, step: 1,
		get: func(p guilloche.Params) float64 { return p.AngleA },
		set: func(p *guilloche.Params, v float64) { p.AngleA = v }},
	{name: "angleB", min: -50, max: 50, step: 1,
		get: func(p guilloche.Params) float64 { return p.AngleB },
		set: func(p *guilloche.Params, v float64) { p.AngleB = v }},
	{name: "angleC", min: -50, max: 50, step: 1,
		get: func(p guilloche.Params) float64 { return p.AngleC },
		set: func(p *guilloche.Params, v float64) { p.AngleC = v }},
	{name: "angleD", min: -50, max: 50, step: 1,
		get: func(p guilloche.Params) float64 { return p.AngleD },
		set: func(p *guilloche.Params, v float64) { p.AngleD = v }},
	{name: "scaleA", min: 0, max: 300, step: 1,
		get: func(p guilloche.Params) float64 { return p.ScaleA },
		set: func(p *guilloche.Params, v float64) { p.ScaleA = v }},
	{name: "scaleB", min: 0, max: 300, step: 1,
		get: func(p guilloche.Params) float64 { return p.ScaleB },
		set: func(p *guilloche.Params, v float64) { p.ScaleB = v }},
	{name: "scaleC", min: 0, max: 300, step: 1,
		get: func(p guilloche.Params) float64 { return p.ScaleC },
		set: func(p *guilloche.Params, v float64) { p.ScaleC = v }},
	{name: "scaleD", min: 0, max: 300, step: 1,
		get: func(p guilloche.Params) float64 { return p.ScaleD },
		set: func(p *guilloche.Params, v float64) { p.ScaleD = v }},
	{name: "offset", min: -500, max: 500, step: 1,
		get: func(p guilloche.Params) float64 { return p.Offset },
		set: func(p *guilloche.Params, v float64) { p.Offset = v }},
	{name: "repeatOffset", min: 0, max: 500, step: 1,
		get: func(p guilloche.Params) float64 { return p.RepeatOffset },
		set: func(p *guilloche.Params, v float64) { p.RepeatOffset = v }},
	{name: "repeatCount", min: 0, max: 100, step: 1, integer: true,
		get: func(p guilloche.Params) float64 { return float64(p.RepeatCount) },
		set: func(p *guilloche.Params, v float64) { p.RepeatCount = int(v) }},
	{name: "thickness", min: 0, max: 10, step: 0.1,
		get: func(p guilloche.Params) float64 { return p.Thickness },
		set: func(p *guilloche.Params, v float64) { p.Thickness = v }},
	{name: "scale", min: 1, max: 500, step: 1,
		get: func(p guilloche.Params) float64 { return p.Scale },
		set: func(p *guilloche.Params, v float64) { p.Scale = v }},
	{name: "strokeOpacity", min: 0, max: 1, step: 0.05,
		get: func(p guilloche.Params) float64 { return p.StrokeOpacity },
		set: func(p *guilloche.Params, v float64) { p.StrokeOpacity = v }},
	{name: "backgroundOpacity", min: 0, max: 1, step: 0.05,
		get: func(p guilloche.Params) float64 { return p.BackgroundOpacity },
		set: func(p *guilloche.Params, v float64) { p.BackgroundOpacity = v }},
}

// coerce snaps v to the field's type and range. Fractional steps are
// rounded to the step so repeated presses do not accumulate error.
func (f field) coerce(v float64) float64 {
	if math.IsNaN(v) {
		v = f.min
	}
	if f.integer {
		v = math.Round(v)
	} else {
		v = math.Round(v/f.step) * f.step
	}
	return math.Min(math.Max(v, f.min), f.max)
}

// adjust returns p with the field moved by steps increments.
func (f field) adjust(p guilloche.Params, steps float64) guilloche.Params {
	f.set(&p, f.coerce(f.get(p)+steps*f.step))
	return p
}

func (f field) format(p guilloche.Params) string {
	v := f.get(p)
	switch {
	case f.integer:
		return fmt.Sprintf("%d", int(v))
	case f.step < 1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%g", v)
	}
}

// cycleColor returns the palette entry after current, wrapping around. An
// unknown colour starts the cycle.
func cycleColor(palette []string, current string) string {
	if len(palette) == 0 {
		return current
	}
	for i, c := range palette {
		if c == current {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}
