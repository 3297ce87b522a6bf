// Package game is the interactive control surface: an ebiten window with
// the pattern canvas on the left and a field panel on the right.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/guilloche/internal/config"
	"github.com/iburimskiy/guilloche/internal/export"
	"github.com/iburimskiy/guilloche/internal/logging"
	"github.com/iburimskiy/guilloche/internal/preset"
	"github.com/iburimskiy/guilloche/internal/scope"
	"github.com/iburimskiy/guilloche/internal/session"
)

// Game implements ebiten.Game on top of a session.
type Game struct {
	cfg     config.Config
	log     *slog.Logger
	sess    *session.Session
	store   *preset.Store
	player  *scope.Player
	rng     *rand.Rand
	dialogs dialogs
	now     func() time.Time

	selected int

	// audio
	listening   bool
	listenStart time.Time
	listenGen   uint64

	// viz
	hue   float64
	cache strokeCache

	// button state
	buttons       []button
	hoveredButton int
	pressedButton int

	status  string
	lastErr error
}

// New wires the control surface. player may be nil, which disables
// listening.
func New(cfg config.Config, sess *session.Session, store *preset.Store, player *scope.Player, rng *rand.Rand, log *slog.Logger) *Game {
	g := &Game{
		cfg:           cfg,
		log:           logging.OrNop(log),
		sess:          sess,
		store:         store,
		player:        player,
		rng:           rng,
		dialogs:       zenityDialogs{},
		now:           time.Now,
		hoveredButton: -1,
		pressedButton: -1,
	}
	g.buttons = g.layoutButtons()
	return g
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close stops audio playback.
func (g *Game) Close() {
	if g.player != nil {
		g.player.Stop()
	}
}

func (g *Game) fail(action string, err error) {
	g.lastErr = fmt.Errorf("%s: %w", action, err)
	g.log.Error(action+" failed", "err", err)
}

func (g *Game) report(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.lastErr = nil
}

// adjustField moves the selected field by steps and recomposes.
func (g *Game) adjustField(steps float64) {
	f := fields[g.selected]
	p := f.adjust(g.sess.Params(), steps)
	g.sess.SetParams(p)
	g.status = f.name + " = " + f.format(p)
}

func (g *Game) selectField(delta int) {
	n := len(fields)
	g.selected = ((g.selected+delta)%n + n) % n
}

func (g *Game) cycleStrokeColor() {
	p := g.sess.Params()
	p.StrokeColor = cycleColor(g.cfg.Palette, p.StrokeColor)
	g.sess.SetParams(p)
	g.report("strokeColor = %s", p.StrokeColor)
}

func (g *Game) randomize() {
	p := g.sess.Randomize(g.rng)
	g.log.Info("randomized", "repeatCount", p.RepeatCount, "strokeColor", p.StrokeColor)
	g.report("randomized")
}

func (g *Game) applyPreset() {
	name, err := g.dialogs.choose("Apply preset", g.store.Names())
	if canceled(err) {
		return
	}
	if err != nil {
		g.fail("choosing preset", err)
		return
	}
	p, err := g.store.Get(name)
	if err != nil {
		g.fail("applying preset", err)
		return
	}
	g.sess.ApplyPreset(p.State)
	g.log.Info("preset applied", "name", p.Name)
	g.report("preset %q applied", p.Name)
}

func (g *Game) savePreset() {
	name, err := g.dialogs.name("Save preset as", "")
	if canceled(err) {
		return
	}
	if err == nil {
		err = g.store.Save(name, g.sess.Capture())
	}
	switch {
	case errors.Is(err, preset.ErrBuiltIn), errors.Is(err, preset.ErrEmptyName):
		g.dialogs.warn(err.Error())
		g.fail("saving preset", err)
	case err != nil:
		g.fail("saving preset", err)
	default:
		g.report("preset %q saved", name)
	}
}

func (g *Game) deletePreset() {
	var custom []string
	for _, p := range g.store.List() {
		if p.Kind == preset.Custom {
			custom = append(custom, p.Name)
		}
	}
	if len(custom) == 0 {
		g.dialogs.warn("There are no saved presets to delete.")
		return
	}
	name, err := g.dialogs.choose("Delete preset", custom)
	if canceled(err) {
		return
	}
	if err == nil {
		err = g.store.Delete(name)
	}
	if err != nil {
		g.fail("deleting preset", err)
		return
	}
	g.report("preset %q deleted", name)
}

func (g *Game) exportPattern() {
	path, err := g.dialogs.savePath(export.DefaultFilename(g.now(), "svg"))
	if canceled(err) {
		return
	}
	if err == nil {
		err = export.Save(path, g.sess.Export(), g.cfg)
	}
	if errors.Is(err, export.ErrUnsupportedFormat) {
		g.dialogs.warn("Choose a file name ending in " + fmt.Sprint(export.Formats))
	}
	if err != nil {
		g.fail("export", err)
		return
	}
	g.log.Info("exported", "path", path)
	g.report("exported %s", path)
}

func (g *Game) toggleListen() {
	if g.player == nil {
		return
	}
	if g.listening {
		g.player.Stop()
		g.listening = false
		g.report("listening stopped")
		return
	}
	if err := g.player.Start(g.sess.Pattern().Base().Path); err != nil {
		g.fail("listen", err)
		return
	}
	g.listening = true
	g.listenStart = g.now()
	g.listenGen = g.sess.Generation()
	g.report("listening at %g Hz", g.cfg.TraceHz)
}

// syncAudio hands a recomposed base layer to the player.
func (g *Game) syncAudio() {
	if !g.listening || g.listenGen == g.sess.Generation() {
		return
	}
	g.player.Update(g.sess.Pattern().Base().Path)
	g.listenGen = g.sess.Generation()
}

func (g *Game) Update() error {
	if quit := g.handleKeys(); quit {
		return ebiten.Termination
	}
	g.handleButtons()
	g.handleCanvas()
	g.syncAudio()
	g.hue += 1.0 / 600
	return nil
}

// presetCounts reports how many built-in and saved presets exist.
func (g *Game) presetCounts() (builtin, custom int) {
	for _, p := range g.store.List() {
		if p.Kind == preset.Builtin {
			builtin++
		} else {
			custom++
		}
	}
	return builtin, custom
}
