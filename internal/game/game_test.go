package game

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/iburimskiy/guilloche/internal/config"
	"github.com/iburimskiy/guilloche/internal/guilloche"
	"github.com/iburimskiy/guilloche/internal/logging"
	"github.com/iburimskiy/guilloche/internal/preset"
	"github.com/iburimskiy/guilloche/internal/session"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

type fakeDialogs struct {
	choice   string
	entry    string
	path     string
	err      error
	offered  []string
	warnings []string
}

func (f *fakeDialogs) choose(title string, items []string) (string, error) {
	f.offered = items
	return f.choice, f.err
}

func (f *fakeDialogs) name(title, initial string) (string, error) { return f.entry, f.err }

func (f *fakeDialogs) savePath(defaultName string) (string, error) { return f.path, f.err }

func (f *fakeDialogs) warn(msg string) { f.warnings = append(f.warnings, msg) }

func newGame(t *testing.T) (*Game, *fakeDialogs) {
	t.Helper()
	cfg := config.Default()
	cfg.SampleDensity = 90
	cfg.PresetFile = filepath.Join(t.TempDir(), "presets.json")
	store := preset.NewStore(cfg.PresetFile, nil)
	store.Load()
	g := New(cfg, session.New(cfg, nil), store, nil, rand.New(rand.NewPCG(1, 2)), nil)
	fd := &fakeDialogs{}
	g.dialogs = fd
	g.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return g, fd
}

func fieldIndex(t *testing.T, name string) int {
	t.Helper()
	for i, f := range fields {
		if f.name == name {
			return i
		}
	}
	t.Fatalf("no field %q", name)
	return -1
}

func TestFieldCoerce(t *testing.T) {
	count := fields[fieldIndex(t, "repeatCount")]
	thickness := fields[fieldIndex(t, "thickness")]
	tests := []struct {
		name string
		f    field
		in   float64
		want float64
	}{
		{"integer rounds", count, 4.6, 5},
		{"integer clamps high", count, 1000, 100},
		{"integer clamps low", count, -3, 0},
		{"step snaps", thickness, 0.349, 0.3},
		{"nan", thickness, math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, tt.f.coerce(tt.in), cmpopts.EquateApprox(0, 1e-9))
		})
	}
}

func TestFieldsCoverNumericParams(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range fields {
		if seen[f.name] {
			t.Errorf("duplicate field %s", f.name)
		}
		seen[f.name] = true
		if f.min >= f.max || f.step <= 0 {
			t.Errorf("%s has bad range [%g, %g] step %g", f.name, f.min, f.max, f.step)
		}
		// each setter touches exactly its own getter
		p := guilloche.DefaultParams()
		f.set(&p, f.max)
		if got := f.get(p); got != f.max {
			t.Errorf("%s: set %g, got %g", f.name, f.max, got)
		}
	}
	if len(fields) != 15 {
		t.Errorf("got %d fields, want 15", len(fields))
	}
}

func TestAdjustField(t *testing.T) {
	g, _ := newGame(t)
	g.selected = fieldIndex(t, "repeatCount")
	gen := g.sess.Generation()

	g.adjustField(1)
	if got := g.sess.Params().RepeatCount; got != 6 {
		t.Errorf("got repeatCount %d, want 6", got)
	}
	if len(g.sess.Pattern().Layers) != 7 {
		t.Errorf("pattern not recomposed: %d layers", len(g.sess.Pattern().Layers))
	}
	if g.sess.Generation() != gen+1 {
		t.Error("generation not bumped")
	}

	g.adjustField(-10)
	if got := g.sess.Params().RepeatCount; got != 0 {
		t.Errorf("got repeatCount %d, want clamp to 0", got)
	}

	g.selected = fieldIndex(t, "thickness")
	g.adjustField(3)
	diff(t, 1.3, g.sess.Params().Thickness, cmpopts.EquateApprox(0, 1e-9))
	diff(t, "thickness = 1.30", g.status)
}

func TestAdjustFieldKeepsView(t *testing.T) {
	g, _ := newGame(t)
	g.sess.Zoom(100, 100, config.CanvasWidth, config.CanvasHeight, true)
	before := g.sess.View()
	g.adjustField(1)
	diff(t, before, g.sess.View())
}

func TestSelectFieldWraps(t *testing.T) {
	g, _ := newGame(t)
	g.selectField(-1)
	diff(t, len(fields)-1, g.selected)
	g.selectField(1)
	diff(t, 0, g.selected)
}

func TestCycleColor(t *testing.T) {
	palette := []string{"#111111", "#222222", "#333333"}
	diff(t, "#222222", cycleColor(palette, "#111111"))
	diff(t, "#111111", cycleColor(palette, "#333333"))
	diff(t, "#111111", cycleColor(palette, "#abcdef"))
	diff(t, "#abcdef", cycleColor(nil, "#abcdef"))
}

func TestApplyPreset(t *testing.T) {
	g, fd := newGame(t)
	g.sess.Zoom(10, 10, config.CanvasWidth, config.CanvasHeight, true)
	fd.choice = "Dense Net"
	g.applyPreset()
	if g.lastErr != nil {
		t.Fatal(g.lastErr)
	}
	diff(t, []string{"Default", "Fine Rosette", "Dense Net", "Starburst"}, fd.offered)
	want, _ := g.store.Get("Dense Net")
	diff(t, want.State, g.sess.Params())
	diff(t, g.sess.Transform().Home(), g.sess.View())
}

func TestApplyPresetCanceled(t *testing.T) {
	g, fd := newGame(t)
	fd.err = errCanceled
	gen := g.sess.Generation()
	g.applyPreset()
	if g.lastErr != nil || g.sess.Generation() != gen {
		t.Errorf("cancel changed state: err=%v", g.lastErr)
	}
}

func TestSaveAndDeletePreset(t *testing.T) {
	g, fd := newGame(t)
	fd.entry = "Mine"
	g.savePreset()
	if g.lastErr != nil {
		t.Fatal(g.lastErr)
	}
	got, err := g.store.Get("Mine")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, g.sess.Capture(), got.State)
	b, c := g.presetCounts()
	diff(t, [2]int{4, 1}, [2]int{b, c})

	fd.choice = "Mine"
	g.deletePreset()
	if g.lastErr != nil {
		t.Fatal(g.lastErr)
	}
	diff(t, []string{"Mine"}, fd.offered)
	if _, err := g.store.Get("Mine"); !errors.Is(err, preset.ErrNotFound) {
		t.Errorf("preset still present: %v", err)
	}
}

func TestPresetChangesLoggedOnce(t *testing.T) {
	cfg := config.Default()
	cfg.SampleDensity = 90
	cfg.PresetFile = filepath.Join(t.TempDir(), "presets.json")
	var buf bytes.Buffer
	log := logging.New(&buf, false)
	store := preset.NewStore(cfg.PresetFile, log)
	store.Load()
	g := New(cfg, session.New(cfg, log), store, nil, rand.New(rand.NewPCG(1, 2)), log)
	fd := &fakeDialogs{entry: "Mine", choice: "Mine"}
	g.dialogs = fd

	g.savePreset()
	g.deletePreset()
	if g.lastErr != nil {
		t.Fatal(g.lastErr)
	}
	diff(t, 1, strings.Count(buf.String(), "preset saved"))
	diff(t, 1, strings.Count(buf.String(), "preset deleted"))
}

func TestSavePresetBuiltinName(t *testing.T) {
	g, fd := newGame(t)
	fd.entry = "Starburst"
	g.savePreset()
	if !errors.Is(g.lastErr, preset.ErrBuiltIn) {
		t.Errorf("got %v, want ErrBuiltIn", g.lastErr)
	}
	if len(fd.warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(fd.warnings))
	}
}

func TestDeletePresetNothingSaved(t *testing.T) {
	g, fd := newGame(t)
	g.deletePreset()
	if len(fd.warnings) != 1 || fd.offered != nil {
		t.Errorf("warnings %v, offered %v", fd.warnings, fd.offered)
	}
}

func TestExportPattern(t *testing.T) {
	g, fd := newGame(t)
	fd.path = filepath.Join(t.TempDir(), "pattern.svg")
	g.exportPattern()
	if g.lastErr != nil {
		t.Fatal(g.lastErr)
	}
	if _, err := os.Stat(fd.path); err != nil {
		t.Fatal(err)
	}

	fd.path = filepath.Join(t.TempDir(), "pattern.gif")
	g.exportPattern()
	if g.lastErr == nil || len(fd.warnings) != 1 {
		t.Errorf("unsupported format not reported: err=%v warnings=%v", g.lastErr, fd.warnings)
	}
}

func TestRandomizeResetsView(t *testing.T) {
	g, _ := newGame(t)
	g.sess.Zoom(10, 10, config.CanvasWidth, config.CanvasHeight, false)
	g.randomize()
	diff(t, g.sess.Transform().Home(), g.sess.View())
	p := g.sess.Params()
	if p.RepeatCount < 5 || p.RepeatCount > 35 {
		t.Errorf("repeatCount %d outside configured range", p.RepeatCount)
	}
}

func TestToggleListenWithoutPlayer(t *testing.T) {
	g, _ := newGame(t)
	g.toggleListen()
	if g.listening {
		t.Error("listening without a player")
	}
}

func TestHsvToRgb(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    [3]uint8
	}{
		{0, 1, 1, [3]uint8{255, 0, 0}},
		{120, 1, 1, [3]uint8{0, 255, 0}},
		{240, 1, 1, [3]uint8{0, 0, 255}},
		{-120, 1, 1, [3]uint8{0, 0, 255}},
		{360, 0, 0.5, [3]uint8{128, 128, 128}},
	}
	for _, tt := range tests {
		r, g, b := hsvToRgb(tt.h, tt.s, tt.v)
		diff(t, tt.want, [3]uint8{r, g, b})
	}
}

func TestFormatDuration(t *testing.T) {
	diff(t, "00:00", formatDuration(0))
	diff(t, "01:05", formatDuration(65*time.Second))
	diff(t, "12:59", formatDuration(12*time.Minute+59*time.Second+900*time.Millisecond))
}

func TestChunkRanges(t *testing.T) {
	tests := []struct {
		n, size int
		want    [][2]int
	}{
		{0, 4, nil},
		{1, 4, nil},
		{2, 4, [][2]int{{0, 1}}},
		{5, 4, [][2]int{{0, 4}}},
		{6, 4, [][2]int{{0, 4}, {3, 5}}},
		{10, 4, [][2]int{{0, 4}, {3, 7}, {6, 9}}},
	}
	for _, tt := range tests {
		diff(t, tt.want, chunkRanges(tt.n, tt.size))
	}

	// every segment is stroked and neighbours share one
	const n = 2000
	rs := chunkRanges(n, chunkPoints)
	covered := make([]bool, n-1)
	for i, r := range rs {
		if r[1]-r[0] > chunkPoints {
			t.Errorf("chunk %v exceeds %d segments", r, chunkPoints)
		}
		if i > 0 && r[0] != rs[i-1][1]-1 {
			t.Errorf("chunk %v does not overlap %v", r, rs[i-1])
		}
		for s := r[0]; s < r[1]; s++ {
			covered[s] = true
		}
	}
	for s, ok := range covered {
		if !ok {
			t.Errorf("segment %d not stroked", s)
		}
	}
}

func TestRingLen(t *testing.T) {
	p := guilloche.DefaultParams()
	path := guilloche.SynthesizeN(p, 0, 90)
	diff(t, len(path)-1, ringLen(path))
	diff(t, 3, ringLen(path[:3]))
	diff(t, 1, ringLen(path[:1]))
	diff(t, 0, ringLen(nil))
}

func TestWrap(t *testing.T) {
	diff(t, []string{"export failed:", "no such file"}, wrap("export failed: no such file", 15))
	diff(t, []string{"short"}, wrap("short", 15))
	diff(t, []string(nil), wrap("", 15))
	diff(t, []string{"abcdefgh", "ij"}, wrap("abcdefghij", 8))
}

func TestButtonsInsidePanel(t *testing.T) {
	g, _ := newGame(t)
	panel := rect{config.CanvasWidth, 0, config.PanelWidth, config.WindowHeight}
	for _, b := range g.buttons {
		r := b.bounds
		if !panel.contains(r.x, r.y) || !panel.contains(r.x+r.w-1, r.y+r.h-1) {
			t.Errorf("button %q at %+v leaves the panel", b.label, r)
		}
	}
}
