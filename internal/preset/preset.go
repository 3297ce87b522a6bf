// Package preset keeps named parameter snapshots: a fixed set of built-ins
// and user presets persisted as a JSON array in a single file.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/iburimskiy/guilloche/internal/guilloche"
	"github.com/iburimskiy/guilloche/internal/logging"
)

var (
	ErrBuiltIn   = errors.New("built-in presets cannot be changed or deleted")
	ErrNotFound  = errors.New("preset not found")
	ErrEmptyName = errors.New("preset name is empty")
)

type Kind int

const (
	Builtin Kind = iota
	Custom
)

func (k Kind) String() string {
	if k == Builtin {
		return "built-in"
	}
	return "custom"
}

// Preset is a named snapshot of the parameter vector.
type Preset struct {
	Name  string           `json:"name"`
	State guilloche.Params `json:"state"`
	Kind  Kind             `json:"-"`
}

// Builtins returns the immutable presets shipped with the tool.
func Builtins() []Preset {
	def := guilloche.DefaultParams()
	withGeometry := func(aA, aB, aC, aD, sA, sB, sC, sD, off, rOff float64, count int, thick, scale float64, stroke string) guilloche.Params {
		p := def
		p.AngleA, p.AngleB, p.AngleC, p.AngleD = aA, aB, aC, aD
		p.ScaleA, p.ScaleB, p.ScaleC, p.ScaleD = sA, sB, sC, sD
		p.Offset, p.RepeatOffset, p.RepeatCount = off, rOff, count
		p.Thickness, p.Scale, p.StrokeColor = thick, scale, stroke
		return p
	}
	return []Preset{
		{Name: "Default", State: def},
		{Name: "Fine Rosette", State: withGeometry(6, -13, 22, 0, 120, 48, 64, 0, 0, 40, 18, 2, 80, "#004488")},
		{Name: "Dense Net", State: withGeometry(11, 19, -23, 3, 96, 72, 50, 12, 10, 120, 30, 3, 70, "#008800")},
		{Name: "Starburst", State: withGeometry(3, 21, 7, 0, 180, 72, 40, 0, 0, 220, 10, 1, 100, "#880000")},
	}
}

// Store holds the custom presets backed by a file.
type Store struct {
	path     string
	log      *slog.Logger
	builtins []Preset
	custom   []Preset
}

// NewStore returns an empty store for path. Call Load to read the file.
func NewStore(path string, log *slog.Logger) *Store {
	return &Store{
		path:     path,
		log:      logging.OrNop(log),
		builtins: Builtins(),
	}
}

// Load reads the custom presets. A missing, unreadable, corrupt or
// non-array file yields an empty list; the problem is logged, not returned.
// Entries named like a built-in or repeating an earlier name are dropped.
func (s *Store) Load() {
	s.custom = nil
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("reading presets", "path", s.path, "err", err)
		}
		return
	}
	custom, err := decode(data)
	if err != nil {
		s.log.Warn("ignoring malformed preset file", "path", s.path, "err", err)
		return
	}
	for _, p := range custom {
		switch {
		case s.isBuiltin(p.Name):
			s.log.Warn("dropping stored preset named like a built-in", "path", s.path, "name", p.Name)
		case s.index(p.Name) >= 0:
			s.log.Warn("dropping duplicate stored preset", "path", s.path, "name", p.Name)
		default:
			s.custom = append(s.custom, p)
		}
	}
	s.log.Debug("presets loaded", "path", s.path, "custom", len(s.custom))
}

type storedPreset struct {
	Name  string          `json:"name"`
	State json.RawMessage `json:"state"`
}

// decode parses a JSON array of presets. Fields missing from a stored
// state keep their default values; nameless entries are dropped.
func decode(data []byte) ([]Preset, error) {
	var raw []storedPreset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]Preset, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		p := guilloche.DefaultParams()
		if len(r.State) > 0 {
			if err := json.Unmarshal(r.State, &p); err != nil {
				return nil, fmt.Errorf("preset %q: %w", r.Name, err)
			}
		}
		out = append(out, Preset{Name: r.Name, State: p, Kind: Custom})
	}
	return out, nil
}

// List returns the built-ins followed by the custom presets.
func (s *Store) List() []Preset {
	out := make([]Preset, 0, len(s.builtins)+len(s.custom))
	out = append(out, s.builtins...)
	return append(out, s.custom...)
}

// Names returns the names in List order.
func (s *Store) Names() []string {
	var names []string
	for _, p := range s.List() {
		names = append(names, p.Name)
	}
	return names
}

// Get looks a preset up by name.
func (s *Store) Get(name string) (Preset, error) {
	for _, p := range s.List() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (s *Store) isBuiltin(name string) bool {
	return slices.ContainsFunc(s.builtins, func(p Preset) bool { return p.Name == name })
}

// Save stores a snapshot under name, replacing a custom preset of the same
// name, and writes the file.
func (s *Store) Save(name string, state guilloche.Params) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if s.isBuiltin(name) {
		return fmt.Errorf("%w: %q", ErrBuiltIn, name)
	}
	p := Preset{Name: name, State: state, Kind: Custom}
	if i := s.index(name); i >= 0 {
		s.custom[i] = p
	} else {
		s.custom = append(s.custom, p)
	}
	if err := s.flush(); err != nil {
		return err
	}
	s.log.Info("preset saved", "name", name)
	return nil
}

// Delete removes a custom preset and writes the file.
func (s *Store) Delete(name string) error {
	if s.isBuiltin(name) {
		return fmt.Errorf("%w: %q", ErrBuiltIn, name)
	}
	i := s.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	s.custom = slices.Delete(s.custom, i, i+1)
	if err := s.flush(); err != nil {
		return err
	}
	s.log.Info("preset deleted", "name", name)
	return nil
}

func (s *Store) index(name string) int {
	return slices.IndexFunc(s.custom, func(p Preset) bool { return p.Name == name })
}

// flush writes the custom presets through a temporary file so a crash
// never leaves a truncated store behind.
func (s *Store) flush() error {
	custom := s.custom
	if custom == nil {
		custom = []Preset{}
	}
	data, err := json.MarshalIndent(custom, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding presets: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating preset directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".presets-*.json")
	if err != nil {
		return fmt.Errorf("writing presets: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing presets: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing presets: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing presets: %w", err)
	}
	return nil
}
