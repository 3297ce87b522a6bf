package game

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/iburimskiy/guilloche/internal/config"
	"github.com/iburimskiy/guilloche/internal/guilloche"
	"github.com/iburimskiy/guilloche/internal/view"
)

const (
	// A stroked chunk of this many points stays well inside the uint16
	// index range even with round joins.
	chunkPoints  = 512
	flushAtVerts = 48000

	lineHeight = 16
	panelX     = config.CanvasWidth + 12
)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func white() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// strokeCache holds the pattern rasterized in opaque stroke colour. It is
// redrawn only when the pattern or the window changes; the stroke opacity
// is applied when the cached image is composited.
type strokeCache struct {
	img        *ebiten.Image
	generation uint64
	view       view.State
	valid      bool

	vertices []ebiten.Vertex
	indices  []uint16
}

func (c *strokeCache) update(pat guilloche.Pattern, generation uint64, t *view.Transform) *ebiten.Image {
	if c.img == nil {
		c.img = ebiten.NewImage(config.CanvasWidth, config.CanvasHeight)
	}
	st := t.State()
	if c.valid && c.generation == generation && c.view == st {
		return c.img
	}
	c.generation, c.view, c.valid = generation, st, true

	c.img.Clear()
	m := t.Matrix(config.CanvasWidth, config.CanvasHeight)
	scale := math.Sqrt(math.Abs(m[0] * m[3]))
	for _, l := range pat.Layers {
		width := max(l.Width*scale, config.HairlinePx)
		c.stroke(l.Path, m, width, color.NRGBA{R: l.Color.R, G: l.Color.G, B: l.Color.B, A: 255})
	}
	c.flush()
	return c.img
}

// stroke appends the closed path in chunks, flushing before the index
// space runs out.
func (c *strokeCache) stroke(path guilloche.Path, m matrix.Matrix, width float64, col color.NRGBA) {
	ring := ringLen(path)
	if ring < 2 {
		return
	}
	op := &vector.StrokeOptions{Width: float32(width), LineJoin: vector.LineJoinRound}
	if ring <= chunkPoints {
		var p vector.Path
		for i := range ring {
			lineTo(&p, view.Apply(m, path[i]), i == 0)
		}
		p.Close()
		c.append(&p, op, col)
		return
	}
	// Run two points past the end so the last chunk closes the ring and
	// strokes the join at its start.
	for _, r := range chunkRanges(ring+2, chunkPoints) {
		var p vector.Path
		for i := r[0]; i <= r[1]; i++ {
			lineTo(&p, view.Apply(m, path[i%ring]), i == r[0])
		}
		c.append(&p, op, col)
	}
}

func (c *strokeCache) append(p *vector.Path, op *vector.StrokeOptions, col color.NRGBA) {
	n := len(c.vertices)
	c.vertices, c.indices = p.AppendVerticesAndIndicesForStroke(c.vertices, c.indices, op)
	paint(c.vertices[n:], col)
	if len(c.vertices) > flushAtVerts {
		c.flush()
	}
}

func lineTo(p *vector.Path, pt vec.Vec2, first bool) {
	if first {
		p.MoveTo(float32(pt.X), float32(pt.Y))
	} else {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
}

// ringLen is the number of distinct points of a closed path; a final point
// repeating the first is not counted.
func ringLen(path guilloche.Path) int {
	n := len(path)
	if n > 1 {
		d := path[n-1].Sub(path[0])
		if math.Abs(d.X) < 1e-9 && math.Abs(d.Y) < 1e-9 {
			n--
		}
	}
	return n
}

// chunkRanges splits the segments of an n-point polyline into inclusive
// point ranges of at most size segments. Each range after the first starts
// one segment back, so neighbouring chunks overlap and get a join.
func chunkRanges(n, size int) [][2]int {
	var out [][2]int
	for start := 0; start < n-1; {
		end := min(start+size, n-1)
		out = append(out, [2]int{start, end})
		if end == n-1 {
			break
		}
		start = end - 1
	}
	return out
}

func (c *strokeCache) flush() {
	if len(c.indices) > 0 {
		c.img.DrawTriangles(c.vertices, c.indices, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]
}

func paint(vs []ebiten.Vertex, col color.NRGBA) {
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(col.R) / 255
		vs[i].ColorG = float32(col.G) / 255
		vs[i].ColorB = float32(col.B) / 255
		vs[i].ColorA = float32(col.A) / 255
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	canvas := screen.SubImage(image.Rect(0, 0, config.CanvasWidth, config.CanvasHeight)).(*ebiten.Image)
	g.drawCanvas(canvas)
	if g.listening {
		g.drawBeam(canvas)
	}
	g.drawPanel(screen)
	for i := range g.buttons {
		g.drawButton(screen, i)
	}
}

func (g *Game) drawCanvas(canvas *ebiten.Image) {
	pat := g.sess.Pattern()
	canvas.Fill(color.White)
	if pat.Background.A > 0 {
		vector.DrawFilledRect(canvas, 0, 0, config.CanvasWidth, config.CanvasHeight, pat.Background, false)
	}

	strokes := g.cache.update(pat, g.sess.Generation(), g.sess.Transform())
	op := &ebiten.DrawImageOptions{}
	if len(pat.Layers) > 0 {
		op.ColorScale.ScaleAlpha(float32(pat.Layers[0].Color.A) / 255)
	}
	canvas.DrawImage(strokes, op)
}

// drawBeam overlays the most recently played oscilloscope samples.
func (g *Game) drawBeam(canvas *ebiten.Image) {
	pts := g.player.Beam(config.BeamSamples)
	if len(pts) < 2 {
		return
	}
	m := g.sess.Transform().Matrix(config.CanvasWidth, config.CanvasHeight)
	var p vector.Path
	for i, pt := range pts {
		lineTo(&p, view.Apply(m, pt), i == 0)
	}
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: 2, LineJoin: vector.LineJoinRound})
	paint(vs, beamColor(g.hue, 204))
	canvas.DrawTriangles(vs, is, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})

	head := view.Apply(m, pts[len(pts)-1])
	vector.DrawFilledCircle(canvas, float32(head.X), float32(head.Y), 4, beamColor(g.hue+0.5, 255), true)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, config.CanvasWidth, 0, config.PanelWidth, config.WindowHeight, color.RGBA{R: 20, G: 25, B: 35, A: 255}, false)
	vector.StrokeLine(screen, config.CanvasWidth, 0, config.CanvasWidth, config.WindowHeight, 2, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	p := g.sess.Params()
	y := 8
	line := func(s string) {
		ebitenutil.DebugPrintAt(screen, s, panelX, y)
		y += lineHeight
	}

	line("GUILLOCHE  Up/Down Left/Right")
	y += 4
	for i, f := range fields {
		marker := "  "
		if i == g.selected {
			marker = "> "
		}
		line(fmt.Sprintf("%s%-17s %7s", marker, f.name, f.format(p)))
	}
	line(fmt.Sprintf("  %-17s %7s", "strokeColor [C]", p.StrokeColor))
	line(fmt.Sprintf("  %-17s %7s", "background", p.Background))
	y += 8

	pat := g.sess.Pattern()
	v := g.sess.View()
	line(fmt.Sprintf("layers %d  points %d", len(pat.Layers), pat.Points()))
	line(fmt.Sprintf("view %.0f,%.0f %.0fx%.0f", v.X, v.Y, v.W, v.H))
	builtin, custom := g.presetCounts()
	line(fmt.Sprintf("presets %d built-in, %d saved", builtin, custom))
	if g.listening {
		line("listening " + formatDuration(g.now().Sub(g.listenStart)))
	}
	y += 8

	status := g.status
	if g.lastErr != nil {
		status = "Error: " + g.lastErr.Error()
	}
	for _, s := range wrap(status, (config.PanelWidth-20)/6) {
		line(s)
	}
}

func (g *Game) drawButton(screen *ebiten.Image, i int) {
	b := g.buttons[i]
	var bgColor color.Color
	if g.pressedButton == i {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.hoveredButton == i {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}
	if i == len(g.buttons)-1 && g.listening {
		r, g_val, bl := hsvToRgb(g.hue*360, 0.6, 0.7)
		bgColor = color.RGBA{R: r, G: g_val, B: bl, A: 255}
	}

	x, y, w, h := float32(b.bounds.x), float32(b.bounds.y), float32(b.bounds.w), float32(b.bounds.h)
	vector.DrawFilledRect(screen, x, y, w, h, bgColor, false)
	vector.StrokeRect(screen, x, y, w, h, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	textWidth := len(b.label) * 6 // Approximate character width
	ebitenutil.DebugPrintAt(screen, b.label, b.bounds.x+(b.bounds.w-textWidth)/2, b.bounds.y+(b.bounds.h-16)/2)
}

// wrap breaks s into lines of at most width characters.
func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var out []string
	r := []rune(s)
	for len(r) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if r[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, string(r[:cut]))
		r = r[cut:]
		for len(r) > 0 && r[0] == ' ' {
			r = r[1:]
		}
	}
	if len(r) > 0 {
		out = append(out, string(r))
	}
	return out
}
