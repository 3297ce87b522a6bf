package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/guilloche/internal/config"
	"github.com/iburimskiy/guilloche/internal/export"
	"github.com/iburimskiy/guilloche/internal/game"
	"github.com/iburimskiy/guilloche/internal/logging"
	"github.com/iburimskiy/guilloche/internal/preset"
	"github.com/iburimskiy/guilloche/internal/scope"
	"github.com/iburimskiy/guilloche/internal/session"
)

type options struct {
	configPath string
	preset     string
	random     bool
	seed       uint64
	output     string
	verbose    bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("guilloche", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "JSON configuration `file` overlaid on the defaults")
	fs.StringVar(&o.preset, "preset", "", "start from the preset with this `name`")
	fs.BoolVar(&o.random, "random", false, "start from a random pattern")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.StringVar(&o.output, "o", "", "export to `path` (.svg, .png, .pdf, .wav) and exit")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.seed == 0 {
		o.seed = uint64(time.Now().UnixNano())
	}
	return o, nil
}

func run(o options, log *slog.Logger) error {
	log = logging.OrNop(log)
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	store := preset.NewStore(cfg.PresetFile, log)
	store.Load()

	sess := session.New(cfg, log)
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	if o.preset != "" {
		p, err := store.Get(o.preset)
		if err != nil {
			return err
		}
		sess.ApplyPreset(p.State)
	}
	if o.random {
		sess.Randomize(rng)
		log.Info("random pattern", "seed", o.seed)
	}

	if o.output != "" {
		if err := export.Save(o.output, sess.Export(), cfg); err != nil {
			return err
		}
		log.Info("exported", "path", o.output)
		return nil
	}

	player := scope.NewPlayer(cfg.SampleRate, cfg.TraceHz, config.VisualRingSize, log)
	g := game.New(cfg, sess, store, player, rng, log)
	defer g.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Guilloche - R: random, P/S/D: presets, E: export, L: listen, Esc/Q: quit")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	log := logging.New(os.Stderr, o.verbose)
	if err := run(o, log); err != nil {
		fmt.Fprintln(os.Stderr, "guilloche:", err)
		os.Exit(1)
	}
}
