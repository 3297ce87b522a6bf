// Package guilloche turns a parameter vector into a family of nested closed
// curves built by harmonic superposition, and styles them as layers.
//
// Everything here is a total function over finite inputs: there are no
// error returns and no shared state. Callers own the current Params and
// replace it wholesale.
package guilloche

// Params is the full input to curve synthesis plus the presentation fields
// carried alongside it. It contains only value fields, so assignment makes
// an independent copy.
//
// JSON field names follow the preset file format.
type Params struct {
	// Angular multipliers of the four harmonic terms.
	AngleA float64 `json:"angleA"`
	AngleB float64 `json:"angleB"`
	AngleC float64 `json:"angleC"`
	AngleD float64 `json:"angleD"`

	// Radii of the four harmonic terms.
	ScaleA float64 `json:"scaleA"`
	ScaleB float64 `json:"scaleB"`
	ScaleC float64 `json:"scaleC"`
	ScaleD float64 `json:"scaleD"`

	// Offset shifts the phase of term B by Offset/500 radians per layer.
	Offset float64 `json:"offset"`
	// RepeatOffset grows the radius of term D by RepeatOffset/50 per layer.
	RepeatOffset float64 `json:"repeatOffset"`
	// RepeatCount is the number of layers beyond the base layer.
	RepeatCount int `json:"repeatCount"`
	// Thickness is the stroke width of the last layer.
	Thickness float64 `json:"thickness"`
	// Scale magnifies the curve by Scale/100.
	Scale float64 `json:"scale"`

	StrokeColor       string  `json:"strokeColor"`
	StrokeOpacity     float64 `json:"strokeOpacity"`
	Background        string  `json:"background"`
	BackgroundOpacity float64 `json:"backgroundOpacity"`
}

// DefaultParams returns the vector the tool starts with.
func DefaultParams() Params {
	return Params{
		AngleA:            -8,
		AngleB:            17,
		AngleC:            7,
		AngleD:            0,
		ScaleA:            82,
		ScaleB:            41,
		ScaleC:            144,
		ScaleD:            0,
		Offset:            0,
		RepeatOffset:      45,
		RepeatCount:       5,
		Thickness:         1,
		Scale:             100,
		StrokeColor:       "#000000",
		StrokeOpacity:     1,
		Background:        "#ffffff",
		BackgroundOpacity: 0,
	}
}

// Normalized returns p with the invariants the compositor relies on
// restored: a non-negative layer count and opacities inside [0, 1].
func (p Params) Normalized() Params {
	if p.RepeatCount < 0 {
		p.RepeatCount = 0
	}
	p.StrokeOpacity = clamp01(p.StrokeOpacity)
	p.BackgroundOpacity = clamp01(p.BackgroundOpacity)
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
