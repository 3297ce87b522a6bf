package export

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"github.com/iburimskiy/guilloche/internal/guilloche"
)

// WritePDF writes exp as a single page sized to the export window, one
// point per plane unit. Stroke opacity is not carried over.
func WritePDF(path string, exp guilloche.Export) error {
	w := guilloche.Width(exp.Window)
	h := guilloche.Height(exp.Window)
	paper := &pdf.Rectangle{URx: w, URy: h}

	page, err := document.CreateSinglePage(path, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("creating pdf: %w", err)
	}

	if bg := exp.Pattern.Background; bg.A > 0 {
		page.SetFillColor(color.DeviceRGB{unit(bg.R), unit(bg.G), unit(bg.B)})
		page.Rectangle(0, 0, w, h)
		page.Fill()
	}

	// Plane y grows downwards; flip and move the window's top-left corner
	// to the top of the page.
	page.Transform(matrix.Matrix{1, 0, 0, -1, -exp.Window.LLx, h + exp.Window.LLy})
	page.SetLineJoin(graphics.LineJoinRound)
	page.SetLineCap(graphics.LineCapRound)

	for _, l := range exp.Pattern.Layers {
		if len(l.Path) == 0 {
			continue
		}
		page.SetStrokeColor(color.DeviceRGB{unit(l.Color.R), unit(l.Color.G), unit(l.Color.B)})
		page.SetLineWidth(l.Width)
		page.MoveTo(l.Path[0].X, l.Path[0].Y)
		for _, p := range l.Path[1:] {
			page.LineTo(p.X, p.Y)
		}
		page.ClosePath()
		page.Stroke()
	}

	if err := page.Close(); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
