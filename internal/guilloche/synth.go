package guilloche

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/iburimskiy/guilloche/internal/config"
)

// Path is one closed curve. The last point is the sample at 360 degrees and
// the first point implicitly connects to it.
type Path []vec.Vec2

// Synthesize returns the path for one layer at the default sample density.
func Synthesize(p Params, layer int) Path {
	return SynthesizeN(p, layer, config.SampleDensity)
}

// SynthesizeN samples the full circle in density equal steps, returning
// density+1 points. Each point is the sum of four epicyclic terms,
// accumulated in the fixed order A, B, C, D:
//
//	A: angleA, scaleA
//	B: angleB, scaleB, phase offset/500*layer
//	C: angleC, scaleC
//	D: angleD, scaleD + repeatOffset/50*layer
//
// and the sum is scaled by scale/100. Term B is the only one whose phase
// depends on the layer; term D is the only one whose radius does.
func SynthesizeN(p Params, layer, density int) Path {
	if density < 1 {
		density = 1
	}
	const rad = math.Pi / 180
	phase := (p.Offset / 500) * float64(layer)
	grow := (p.RepeatOffset / 50) * float64(layer)
	radiusD := p.ScaleD + grow
	k := p.Scale / 100

	pts := make(Path, density+1)
	for i := range pts {
		degrees := float64(i) / float64(density) * 360
		t := degrees * rad

		sa, ca := math.Sincos(t * p.AngleA)
		x := sa * p.ScaleA
		y := ca * p.ScaleA

		sb, cb := math.Sincos(t*p.AngleB + phase)
		x += sb * p.ScaleB
		y += cb * p.ScaleB

		sc, cc := math.Sincos(t * p.AngleC)
		x += sc * p.ScaleC
		y += cc * p.ScaleC

		sd, cd := math.Sincos(t * p.AngleD)
		x += sd * radiusD
		y += cd * radiusD

		pts[i] = vec.Vec2{X: x * k, Y: y * k}
	}
	return pts
}
