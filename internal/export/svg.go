package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/iburimskiy/guilloche/internal/guilloche"
)

// errWriter remembers the first write error; svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG writes one <path> per layer in draw order, preceded by a
// background rectangle when the background is not fully transparent.
// The viewBox is the export window rounded outward to whole units and the
// <desc> element carries the parameter vector as JSON.
func WriteSVG(w io.Writer, exp guilloche.Export, prec int) error {
	params, err := json.Marshal(exp.Params)
	if err != nil {
		return fmt.Errorf("encoding parameters: %w", err)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	minx := int(math.Floor(exp.Window.LLx))
	miny := int(math.Floor(exp.Window.LLy))
	vw := int(math.Ceil(exp.Window.URx)) - minx
	vh := int(math.Ceil(exp.Window.URy)) - miny
	canvas.Startview(vw, vh, minx, miny, vw, vh)
	canvas.Title("guilloche")
	canvas.Desc(string(params))

	if bg := exp.Pattern.Background; bg.A > 0 {
		canvas.Rect(minx, miny, vw, vh,
			attr("fill", guilloche.Hex(bg)),
			attr("fill-opacity", num(unit(bg.A))))
	}

	var d []byte
	for _, l := range exp.Pattern.Layers {
		d = appendPathData(d[:0], l.Path, prec)
		canvas.Path(string(d),
			`fill="none"`,
			attr("stroke", guilloche.Hex(l.Color)),
			attr("stroke-opacity", num(unit(l.Color.A))),
			attr("stroke-width", num(l.Width)),
			`stroke-linejoin="round"`)
	}
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("writing svg: %w", ew.err)
	}
	return nil
}

func attr(name, value string) string {
	return name + `="` + value + `"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
