package export

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/guilloche/internal/config"
	"github.com/iburimskiy/guilloche/internal/guilloche"
)

// PNGSize returns the pixel size of the raster export of exp.
func PNGSize(exp guilloche.Export, scale float64) (int, int) {
	w := int(math.Ceil(guilloche.Width(exp.Window) * scale))
	h := int(math.Ceil(guilloche.Height(exp.Window) * scale))
	return max(w, 1), max(h, 1)
}

// WritePNG rasterizes exp at scale pixels per plane unit. Layers narrower
// than a hairline are widened to HairlinePx output pixels so the base
// layer stays visible.
func WritePNG(w io.Writer, exp guilloche.Export, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	pw, ph := PNGSize(exp, scale)
	dc := gg.NewContext(pw, ph)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(exp.Pattern.Background))
	dc.Scale(scale, scale)
	dc.Translate(-exp.Window.LLx, -exp.Window.LLy)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)

	for _, l := range exp.Pattern.Layers {
		if len(l.Path) == 0 {
			continue
		}
		dc.SetColor(l.Color)
		dc.SetLineWidth(max(l.Width, config.HairlinePx/scale))
		dc.MoveTo(l.Path[0].X, l.Path[0].Y)
		for _, p := range l.Path[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroking layer %d: %w", l.Index, err)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
