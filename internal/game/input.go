package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/guilloche/internal/config"
	"github.com/iburimskiy/guilloche/internal/view"
)

const (
	// Button dimensions
	buttonWidth  = 110
	buttonHeight = 26
	buttonGap    = 6
	buttonX      = config.CanvasWidth + 12
	buttonY      = config.WindowHeight - 3*(buttonHeight+buttonGap) - 6

	// Key auto-repeat, in ticks.
	repeatDelay    = 24
	repeatInterval = 3
)

var canvasRect = rect{0, 0, config.CanvasWidth, config.CanvasHeight}

type button struct {
	label  string
	bounds rect
	action func(g *Game)
}

func (g *Game) layoutButtons() []button {
	items := []struct {
		label  string
		action func(g *Game)
	}{
		{"Randomize [R]", (*Game).randomize},
		{"Preset [P]", (*Game).applyPreset},
		{"Save [S]", (*Game).savePreset},
		{"Delete [D]", (*Game).deletePreset},
		{"Export [E]", (*Game).exportPattern},
		{"Listen [L]", (*Game).toggleListen},
	}
	out := make([]button, len(items))
	for i, it := range items {
		col, row := i%2, i/2
		out[i] = button{
			label: it.label,
			bounds: rect{
				x: buttonX + col*(buttonWidth+buttonGap),
				y: buttonY + row*(buttonHeight+buttonGap),
				w: buttonWidth,
				h: buttonHeight,
			},
			action: it.action,
		}
	}
	return out
}

// repeating reports a key press on the first tick and then at a fixed
// interval while the key is held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

// handleKeys applies keyboard shortcuts and reports whether to quit.
func (g *Game) handleKeys() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return true
	}

	steps := 1.0
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		steps = 10
	}
	switch {
	case repeating(ebiten.KeyArrowUp):
		g.selectField(-1)
	case repeating(ebiten.KeyArrowDown):
		g.selectField(1)
	case repeating(ebiten.KeyArrowLeft):
		g.adjustField(-steps)
	case repeating(ebiten.KeyArrowRight):
		g.adjustField(steps)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.randomize()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.applyPreset()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.savePreset()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.deletePreset()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.exportPattern()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.toggleListen()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.cycleStrokeColor()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.sess.ResetView()
		g.report("view reset")
	}
	return false
}

func (g *Game) handleButtons() {
	mouseX, mouseY := ebiten.CursorPosition()
	g.hoveredButton = -1
	for i, b := range g.buttons {
		if b.bounds.contains(mouseX, mouseY) {
			g.hoveredButton = i
		}
	}

	if g.hoveredButton >= 0 && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressedButton = g.hoveredButton
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.pressedButton >= 0 && g.pressedButton == g.hoveredButton {
			g.buttons[g.pressedButton].action(g)
		}
		g.pressedButton = -1
	}
}

// handleCanvas drives the pan gesture and wheel zoom. Leaving the canvas
// cancels a drag.
func (g *Game) handleCanvas() {
	mouseX, mouseY := ebiten.CursorPosition()
	inside := canvasRect.contains(mouseX, mouseY)
	x, y := float64(mouseX), float64(mouseY)
	w, h := float64(config.CanvasWidth), float64(config.CanvasHeight)

	if g.sess.Gesture() == view.Panning {
		switch {
		case !inside:
			g.sess.PointerLeave()
		case !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			g.sess.PointerUp()
		default:
			g.sess.PointerMove(x, y, w, h)
		}
		return
	}
	if !inside {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.sess.PointerDown(x, y)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.sess.Zoom(x, y, w, h, wy > 0)
	}
}
