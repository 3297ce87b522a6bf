package preset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iburimskiy/guilloche/internal/guilloche"
	"github.com/iburimskiy/guilloche/internal/logging"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sub", "presets.json")
	return NewStore(path, nil), path
}

func TestBuiltins(t *testing.T) {
	b := Builtins()
	diff(t, []string{"Default", "Fine Rosette", "Dense Net", "Starburst"}, names(b))
	diff(t, guilloche.DefaultParams(), b[0].State)
	dense := b[2].State
	if dense.AngleD != 3 || dense.ScaleD != 12 || dense.Offset != 10 || dense.RepeatCount != 30 || dense.StrokeColor != "#008800" {
		t.Errorf("unexpected Dense Net state %+v", dense)
	}
	for _, p := range b {
		if p.Kind != Builtin {
			t.Errorf("%s has kind %v", p.Name, p.Kind)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, _ := newStore(t)
	s.Load()
	if n := len(s.List()); n != 4 {
		t.Errorf("got %d presets, want the 4 built-ins", n)
	}
}

func TestLoadTolerant(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"corrupt", "{not json"},
		{"object", `{"name": "x"}`},
		{"string", `"hello"`},
		{"bad state", `[{"name": "x", "state": {"angleA": "nope"}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "presets.json")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			s := NewStore(path, logging.New(&buf, false))
			s.Load()
			if n := len(s.List()); n != 4 {
				t.Errorf("got %d presets, want 4", n)
			}
			if !strings.Contains(buf.String(), "level=WARN") {
				t.Errorf("no warning logged: %q", buf.String())
			}
		})
	}
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	doc := `[{"name": "Old", "state": {"angleA": 5, "strokeColor": "#553388"}}, {"name": "", "state": {}}]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path, nil)
	s.Load()
	p, err := s.Get("Old")
	if err != nil {
		t.Fatal(err)
	}
	want := guilloche.DefaultParams()
	want.AngleA = 5
	want.StrokeColor = "#553388"
	diff(t, want, p.State)
	if p.Kind != Custom {
		t.Errorf("got kind %v, want custom", p.Kind)
	}
	if n := len(s.List()); n != 5 {
		t.Errorf("nameless entry kept: %d presets", n)
	}
}

func TestLoadDropsShadowingEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	doc := `[
		{"name": "Default", "state": {"angleA": 5}},
		{"name": "Mine", "state": {"angleB": 2}},
		{"name": "Mine", "state": {"angleB": 9}}
	]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s := NewStore(path, logging.New(&buf, false))
	s.Load()

	diff(t, []string{"Default", "Fine Rosette", "Dense Net", "Starburst", "Mine"}, s.Names())
	def, err := s.Get("Default")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Builtin, def.Kind)
	diff(t, guilloche.DefaultParams(), def.State)
	mine, err := s.Get("Mine")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 2.0, mine.State.AngleB)
	if n := strings.Count(buf.String(), "level=WARN"); n != 2 {
		t.Errorf("got %d warnings, want 2: %q", n, buf.String())
	}

	// the built-in stays immutable and the custom one stays deletable
	if err := s.Delete("Default"); !errors.Is(err, ErrBuiltIn) {
		t.Errorf("got %v, want ErrBuiltIn", err)
	}
	if err := s.Delete("Mine"); err != nil {
		t.Fatal(err)
	}
	diff(t, []string{"Default", "Fine Rosette", "Dense Net", "Starburst"}, s.Names())
}

func TestSaveLoadDelete(t *testing.T) {
	s, path := newStore(t)
	s.Load()
	state := guilloche.DefaultParams()
	state.AngleB = 4
	if err := s.Save("  Mine ", state); err != nil {
		t.Fatal(err)
	}

	// mutating the caller's copy does not reach the store
	state.AngleB = 100
	got, err := s.Get("Mine")
	if err != nil {
		t.Fatal(err)
	}
	if got.State.AngleB != 4 {
		t.Errorf("stored snapshot changed to %g", got.State.AngleB)
	}

	other := NewStore(path, nil)
	other.Load()
	diff(t, s.Names(), other.Names())
	reloaded, err := other.Get("Mine")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, got.State, reloaded.State)

	// same name replaces
	state.AngleB = 8
	if err := s.Save("Mine", state); err != nil {
		t.Fatal(err)
	}
	if n := len(s.List()); n != 5 {
		t.Errorf("got %d presets after replace, want 5", n)
	}

	if err := s.Delete("Mine"); err != nil {
		t.Fatal(err)
	}
	other.Load()
	if n := len(other.List()); n != 4 {
		t.Errorf("got %d presets after delete, want 4", n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty store written as %q", data)
	}
}

func TestBuiltinsImmutable(t *testing.T) {
	s, _ := newStore(t)
	if err := s.Delete("Starburst"); !errors.Is(err, ErrBuiltIn) {
		t.Errorf("delete built-in: got %v, want ErrBuiltIn", err)
	}
	if err := s.Save("Default", guilloche.Params{}); !errors.Is(err, ErrBuiltIn) {
		t.Errorf("overwrite built-in: got %v, want ErrBuiltIn", err)
	}
	p, _ := s.Get("Default")
	diff(t, guilloche.DefaultParams(), p.State)
}

func TestErrors(t *testing.T) {
	s, _ := newStore(t)
	if err := s.Save(" ", guilloche.Params{}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("got %v, want ErrEmptyName", err)
	}
	if err := s.Delete("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if _, err := s.Get("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func names(ps []Preset) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
