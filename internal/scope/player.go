package scope

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"seehuhn.de/go/geom/vec"

	"github.com/iburimskiy/guilloche/internal/guilloche"
	"github.com/iburimskiy/guilloche/internal/logging"
)

// Player plays a Trace on the default audio device. The chain is
// trace -> tap -> ctrl -> speaker.
type Player struct {
	format beep.Format
	hz     float64
	log    *slog.Logger

	trace *Trace
	tap   *Tap
	ctrl  *beep.Ctrl

	initDone bool
	playing  bool
}

// NewPlayer prepares a player; the audio device is opened on first Start.
func NewPlayer(sampleRate int, hz float64, ringSize int, log *slog.Logger) *Player {
	trace := NewTrace(nil, sampleRate, hz)
	tap := NewTap(trace, ringSize)
	return &Player{
		format: Format(sampleRate),
		hz:     hz,
		log:    logging.OrNop(log),
		trace:  trace,
		tap:    tap,
		ctrl:   &beep.Ctrl{Streamer: tap, Paused: false},
	}
}

// Playing reports whether audio is running.
func (p *Player) Playing() bool { return p.playing }

// Start begins playing path.
func (p *Player) Start(path guilloche.Path) error {
	p.trace.SetPath(path)
	if !p.initDone {
		bufferSize := p.format.SampleRate.N(time.Second / 20)
		if err := speaker.Init(p.format.SampleRate, bufferSize); err != nil {
			return fmt.Errorf("opening audio device: %w", err)
		}
		p.initDone = true
	}
	speaker.Lock()
	speaker.Clear()
	p.ctrl.Paused = false
	speaker.Unlock()
	speaker.Play(p.ctrl)
	p.playing = true
	p.log.Info("oscilloscope audio started", "hz", p.hz)
	return nil
}

// Stop silences playback. The device stays open.
func (p *Player) Stop() {
	if !p.playing {
		return
	}
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	p.playing = false
	p.log.Info("oscilloscope audio stopped")
}

// Update swaps the traced path while playing.
func (p *Player) Update(path guilloche.Path) {
	p.trace.SetPath(path)
}

// Beam returns the last n played samples mapped back to plane coordinates.
func (p *Player) Beam(n int) []vec.Vec2 {
	return BeamPoints(p.tap.Snapshot(n), p.trace.Peak())
}

// BeamPoints undoes the trace's normalisation.
func BeamPoints(samples [][2]float64, peak float64) []vec.Vec2 {
	out := make([]vec.Vec2, len(samples))
	k := peak / Amplitude
	for i, s := range samples {
		out[i] = vec.Vec2{X: s[0] * k, Y: -s[1] * k}
	}
	return out
}

// EncodeWAV writes seconds of the oscilloscope rendition of path as a
// 16-bit stereo WAV file.
func EncodeWAV(w io.WriteSeeker, path guilloche.Path, sampleRate int, hz, seconds float64) error {
	format := Format(sampleRate)
	n := format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	trace := NewTrace(path, sampleRate, hz)
	if err := wav.Encode(w, beep.Take(n, trace), format); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	return nil
}
