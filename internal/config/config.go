package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	WindowWidth  = 900
	WindowHeight = 640

	// Canvas region (left) and HUD column (right).
	CanvasWidth  = 640
	CanvasHeight = 640
	PanelWidth   = WindowWidth - CanvasWidth

	// Plane origin is drawn at this canvas point.
	CanvasOriginX = 320
	CanvasOriginY = 320

	// Intervals per closed path; the path holds SampleDensity+1 points.
	SampleDensity = 360 * 8

	DefaultStrokeWidth = 1.0
	HairlinePx         = 0.5

	ZoomFactor  = 1.1
	MinViewSize = 20
	MaxViewSize = 20000

	VisualRingSize = 8192
	BeamSamples    = 1024
)

// ErrInvalid is returned by Validate and Load for unusable settings.
var ErrInvalid = errors.New("invalid configuration")

// Range is an inclusive integer interval sampled uniformly by the randomizer.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Ranges holds the per-field randomization intervals.
type Ranges struct {
	AngleA       Range `json:"angleA"`
	AngleB       Range `json:"angleB"`
	AngleC       Range `json:"angleC"`
	AngleD       Range `json:"angleD"`
	ScaleA       Range `json:"scaleA"`
	ScaleB       Range `json:"scaleB"`
	ScaleC       Range `json:"scaleC"`
	ScaleD       Range `json:"scaleD"`
	Offset       Range `json:"offset"`
	RepeatOffset Range `json:"repeatOffset"`
	RepeatCount  Range `json:"repeatCount"`
	Thickness    Range `json:"thickness"`
	Scale        Range `json:"scale"`
}

// View is a rectangle in canvas coordinates.
type View struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Config collects every tunable of the program. Zero values are not
// meaningful; start from Default.
type Config struct {
	SampleDensity int `json:"sampleDensity"`

	DefaultView View    `json:"defaultView"`
	MinViewSize float64 `json:"minViewSize"`
	MaxViewSize float64 `json:"maxViewSize"`
	ZoomFactor  float64 `json:"zoomFactor"`

	// MaxThickness bounds the randomizer's thickness draw. The older
	// variant of the tool used 3.
	MaxThickness int      `json:"maxThickness"`
	Ranges       Ranges   `json:"ranges"`
	Palette      []string `json:"palette"`

	PresetFile string `json:"presetFile"`

	SampleRate int     `json:"sampleRate"`
	TraceHz    float64 `json:"traceHz"`
	WAVSeconds float64 `json:"wavSeconds"`

	PNGScale  float64 `json:"pngScale"`
	Precision int     `json:"precision"`
}

// Default returns the configuration the tool ships with.
func Default() Config {
	return Config{
		SampleDensity: SampleDensity,
		DefaultView:   View{X: 0, Y: 0, W: CanvasWidth, H: CanvasHeight},
		MinViewSize:   MinViewSize,
		MaxViewSize:   MaxViewSize,
		ZoomFactor:    ZoomFactor,
		MaxThickness:  4,
		Ranges: Ranges{
			AngleA:       Range{-24, 24},
			AngleB:       Range{-24, 24},
			AngleC:       Range{-24, 24},
			AngleD:       Range{-10, 10},
			ScaleA:       Range{60, 200},
			ScaleB:       Range{20, 120},
			ScaleC:       Range{20, 160},
			ScaleD:       Range{0, 80},
			Offset:       Range{-30, 30},
			RepeatOffset: Range{0, 360},
			RepeatCount:  Range{5, 35},
			Thickness:    Range{1, 4},
			Scale:        Range{60, 120},
		},
		Palette:    []string{"#004488", "#880000", "#008800", "#884400", "#553388", "#006666"},
		PresetFile: defaultPresetFile(),
		SampleRate: 44100,
		TraceHz:    55,
		WAVSeconds: 5,
		PNGScale:   2,
		Precision:  2,
	}
}

func defaultPresetFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "guilloche", "presets_v1.json")
}

// Load overlays the JSON document at path onto Default. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	// Keep the thickness draw inside the configured bound.
	if cfg.Ranges.Thickness.Max > cfg.MaxThickness {
		cfg.Ranges.Thickness.Max = cfg.MaxThickness
	}
	return cfg, cfg.Validate()
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.SampleDensity < 4:
		return fmt.Errorf("%w: sampleDensity %d < 4", ErrInvalid, c.SampleDensity)
	case c.MinViewSize <= 0:
		return fmt.Errorf("%w: minViewSize must be positive", ErrInvalid)
	case c.MinViewSize > c.MaxViewSize:
		return fmt.Errorf("%w: minViewSize %g > maxViewSize %g", ErrInvalid, c.MinViewSize, c.MaxViewSize)
	case c.ZoomFactor <= 1:
		return fmt.Errorf("%w: zoomFactor must exceed 1", ErrInvalid)
	case c.DefaultView.W <= 0 || c.DefaultView.H <= 0:
		return fmt.Errorf("%w: defaultView must have positive size", ErrInvalid)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalid)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sampleRate must be positive", ErrInvalid)
	case c.TraceHz <= 0 || c.WAVSeconds <= 0:
		return fmt.Errorf("%w: traceHz and wavSeconds must be positive", ErrInvalid)
	case c.PNGScale <= 0:
		return fmt.Errorf("%w: pngScale must be positive", ErrInvalid)
	case c.Precision < 0 || c.Precision > 10:
		return fmt.Errorf("%w: precision %d outside [0, 10]", ErrInvalid, c.Precision)
	}
	for _, nr := range c.Ranges.named() {
		if nr.Min > nr.Max {
			return fmt.Errorf("%w: range %s min %d > max %d", ErrInvalid, nr.name, nr.Min, nr.Max)
		}
	}
	if c.Ranges.RepeatCount.Min < 0 {
		return fmt.Errorf("%w: range repeatCount must be non-negative", ErrInvalid)
	}
	if c.Ranges.Thickness.Min < 0 {
		return fmt.Errorf("%w: range thickness must be non-negative", ErrInvalid)
	}
	return nil
}

type namedRange struct {
	name string
	Range
}

// named lists the ranges in field order.
func (r Ranges) named() []namedRange {
	return []namedRange{
		{"angleA", r.AngleA},
		{"angleB", r.AngleB},
		{"angleC", r.AngleC},
		{"angleD", r.AngleD},
		{"scaleA", r.ScaleA},
		{"scaleB", r.ScaleB},
		{"scaleC", r.ScaleC},
		{"scaleD", r.ScaleD},
		{"offset", r.Offset},
		{"repeatOffset", r.RepeatOffset},
		{"repeatCount", r.RepeatCount},
		{"thickness", r.Thickness},
		{"scale", r.Scale},
	}
}
