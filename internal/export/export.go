// Package export writes a composed pattern to disk. The output format is
// chosen by file extension.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iburimskiy/guilloche/internal/config"
	"github.com/iburimskiy/guilloche/internal/guilloche"
	"github.com/iburimskiy/guilloche/internal/scope"
)

// ErrUnsupportedFormat is returned by Save for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Formats lists the extensions Save understands, vector formats first.
var Formats = []string{".svg", ".png", ".pdf", ".wav"}

// Save writes exp to path in the format implied by the path's extension.
// A partially written file is removed on failure.
func Save(path string, exp guilloche.Export, cfg config.Config) error {
	ext := strings.ToLower(filepath.Ext(path))
	var err error
	switch ext {
	case ".svg":
		err = writeFile(path, func(f *os.File) error {
			return WriteSVG(f, exp, cfg.Precision)
		})
	case ".png":
		err = writeFile(path, func(f *os.File) error {
			return WritePNG(f, exp, cfg.PNGScale)
		})
	case ".pdf":
		err = WritePDF(path, exp)
		if err != nil {
			os.Remove(path)
		}
	case ".wav":
		err = writeFile(path, func(f *os.File) error {
			return scope.EncodeWAV(f, exp.Pattern.Base().Path, cfg.SampleRate, cfg.TraceHz, cfg.WAVSeconds)
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// DefaultFilename names an export after its creation time, e.g.
// "guilloche-2024-05-01T12-30-00-000Z.svg".
func DefaultFilename(t time.Time, ext string) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return "guilloche-" + stamp + "." + strings.TrimPrefix(ext, ".")
}

// appendPathData appends an SVG path string for a closed polyline.
func appendPathData(b []byte, path guilloche.Path, prec int) []byte {
	for i, p := range path {
		if i == 0 {
			b = append(b, 'M')
		} else {
			b = append(b, " L"...)
		}
		b = strconv.AppendFloat(b, p.X, 'f', prec, 64)
		b = append(b, ',')
		b = strconv.AppendFloat(b, p.Y, 'f', prec, 64)
	}
	if len(path) > 0 {
		b = append(b, " Z"...)
	}
	return b
}

// unit converts an 8-bit channel to [0, 1].
func unit(v uint8) float64 { return float64(v) / 255 }
