// Package scope renders the base layer as stereo audio for an XY
// oscilloscope: the left channel carries x, the right channel carries y.
package scope

import (
	"math"
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/guilloche/internal/guilloche"
)

// Amplitude keeps the beam slightly inside full scale.
const Amplitude = 0.9

// Format returns the 16-bit stereo format used for playback and export.
func Format(sampleRate int) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
}

// Trace is an endless beep.Streamer that walks a closed path hz times per
// second, interpolating linearly between samples. Plane y points down, so
// it is negated for the right channel.
type Trace struct {
	mu   sync.RWMutex
	path guilloche.Path
	peak float64
	pos  float64
	step float64

	sampleRate int
	hz         float64
}

// NewTrace returns a trace of path.
func NewTrace(path guilloche.Path, sampleRate int, hz float64) *Trace {
	t := &Trace{sampleRate: sampleRate, hz: hz}
	t.SetPath(path)
	return t
}

// SetPath swaps the traced path. The playback phase is kept as a fraction
// of a revolution so the beam does not jump.
func (t *Trace) SetPath(path guilloche.Path) {
	peak := 0.0
	for _, p := range path {
		peak = max(peak, math.Abs(p.X), math.Abs(p.Y))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	frac := 0.0
	if n := len(t.path) - 1; n > 0 {
		frac = t.pos / float64(n)
	}
	t.path = path
	t.peak = peak
	t.step = 0
	t.pos = 0
	if n := len(path) - 1; n > 0 && t.sampleRate > 0 {
		t.step = float64(n) * t.hz / float64(t.sampleRate)
		t.pos = frac * float64(n)
	}
}

// Peak returns the largest absolute coordinate of the traced path, the
// value that maps to full amplitude.
func (t *Trace) Peak() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.peak
}

// Stream fills samples and never ends. A path collapsed to a point plays
// silence.
func (t *Trace) Stream(samples [][2]float64) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.path) - 1
	if n < 1 || t.peak == 0 {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}

	gain := Amplitude / t.peak
	for i := range samples {
		j := int(t.pos)
		f := t.pos - float64(j)
		a, b := t.path[j], t.path[j+1]
		x := a.X + (b.X-a.X)*f
		y := a.Y + (b.Y-a.Y)*f
		samples[i] = [2]float64{x * gain, -y * gain}

		t.pos += t.step
		for t.pos >= float64(n) {
			t.pos -= float64(n)
		}
	}
	return len(samples), true
}

func (t *Trace) Err() error { return nil }
