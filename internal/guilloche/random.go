package guilloche

import (
	"math/rand/v2"

	"github.com/iburimskiy/guilloche/internal/config"
)

// Randomize draws every geometric field and the stroke colour independently
// and uniformly from the configured ranges. Opacity and background are
// carried over from base. The result depends only on the inputs and the
// state of r.
func Randomize(base Params, r *rand.Rand, rg config.Ranges, palette []string) Params {
	p := base
	p.AngleA = float64(randomInt(r, rg.AngleA))
	p.AngleB = float64(randomInt(r, rg.AngleB))
	p.AngleC = float64(randomInt(r, rg.AngleC))
	p.AngleD = float64(randomInt(r, rg.AngleD))

	p.ScaleA = float64(randomInt(r, rg.ScaleA))
	p.ScaleB = float64(randomInt(r, rg.ScaleB))
	p.ScaleC = float64(randomInt(r, rg.ScaleC))
	p.ScaleD = float64(randomInt(r, rg.ScaleD))

	p.Offset = float64(randomInt(r, rg.Offset))
	p.RepeatOffset = float64(randomInt(r, rg.RepeatOffset))
	p.RepeatCount = randomInt(r, rg.RepeatCount)

	p.Thickness = float64(randomInt(r, rg.Thickness))
	p.Scale = float64(randomInt(r, rg.Scale))

	if len(palette) > 0 {
		p.StrokeColor = palette[r.IntN(len(palette))]
	}
	return p
}

func randomInt(r *rand.Rand, rg config.Range) int {
	if rg.Max <= rg.Min {
		return rg.Min
	}
	return rg.Min + r.IntN(rg.Max-rg.Min+1)
}
