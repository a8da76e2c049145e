// cmd/asteroids/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-asteroids/pkg/assets"
	"github.com/opd-ai/go-asteroids/pkg/audio"
	"github.com/opd-ai/go-asteroids/pkg/autopilot"
	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/render"
	engorender "github.com/opd-ai/go-asteroids/pkg/render/engo"
)

// options holds the parsed command line.
type options struct {
	renderer   string
	configPath string
	width      int
	height     int
	seed       uint64
	ticks      int
	mute       bool
	pilot      string
	logPath    string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("asteroids", flag.ContinueOnError)
	fs.StringVar(&opts.renderer, "renderer", "engo", "Renderer type: 'engo', 'terminal' or 'headless'")
	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON or YAML configuration file")
	fs.IntVar(&opts.width, "width", 0, "Screen width (overrides config)")
	fs.IntVar(&opts.height, "height", 0, "Screen height (overrides config)")
	fs.Uint64Var(&opts.seed, "seed", 0, "Random seed, 0 picks one")
	fs.IntVar(&opts.ticks, "ticks", 3600, "Ticks to simulate (headless only)")
	fs.BoolVar(&opts.mute, "mute", false, "Disable sound effects")
	fs.StringVar(&opts.pilot, "autopilot", "hunter", "Autopilot behavior for headless runs: 'hunter' or 'explorer'")
	fs.StringVar(&opts.logPath, "log", "", "Write logs to this file (terminal renderer logs nowhere otherwise)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.renderer {
	case "engo", "terminal", "headless":
	default:
		return opts, fmt.Errorf("unknown renderer %q", opts.renderer)
	}
	if _, ok := autopilot.ParseBehavior(opts.pilot); !ok {
		return opts, fmt.Errorf("unknown autopilot behavior %q", opts.pilot)
	}
	if opts.ticks < 0 {
		return opts, fmt.Errorf("ticks must be non-negative, got %d", opts.ticks)
	}
	return opts, nil
}

// loadConfig reads the config file if one is given, then applies the
// environment and the command line on top.
func loadConfig(ctx context.Context, logger *logging.Logger, opts options) (*config.GameConfig, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		if _, err := os.Stat(opts.configPath); errors.Is(err, os.ErrNotExist) {
			logger.Info(ctx, "Configuration file not found, using default configuration",
				"path", opts.configPath)
		} else {
			cfg, err = config.LoadConfig(opts.configPath)
			if err != nil {
				return nil, err
			}
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, logging.WrapError(err, "applying environment configuration")
	}

	if opts.width > 0 {
		cfg.Screen.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Screen.Height = opts.height
	}
	if opts.seed != 0 {
		cfg.Rules.Seed = opts.seed
	}
	if opts.mute || opts.renderer == "headless" {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

func newLogger(opts options) (*logging.Logger, io.Closer, error) {
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, logging.WrapError(err, "opening log file %s", opts.logPath)
		}
		return logging.NewLoggerWithWriter(f), f, nil
	}
	if opts.renderer == "terminal" {
		return logging.NewLoggerWithWriter(io.Discard), nil, nil
	}
	return logging.NewLogger(), nil, nil
}

// startAudio attaches sound effects to the game. Failure only costs sound.
func startAudio(ctx context.Context, cfg *config.GameConfig, game *engine.Game, logger *logging.Logger) *audio.SoundManager {
	if !cfg.Audio.Enabled {
		return nil
	}
	sm := audio.NewSoundManager(cfg.Audio, logger)
	if err := sm.Initialize(); err != nil {
		logger.Error(ctx, "Audio unavailable, continuing without sound", err)
		return nil
	}
	sm.Attach(game.EventBus)
	return sm
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(opts)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	cfg, err := loadConfig(ctx, logger, opts)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	game, err := engine.NewGame(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	if sm := startAudio(ctx, cfg, game, logger); sm != nil {
		defer sm.Close()
	}

	switch opts.renderer {
	case "headless":
		behavior, _ := autopilot.ParseBehavior(opts.pilot)
		pilotSeed := cfg.Rules.Seed
		if pilotSeed == 0 {
			pilotSeed = rand.Uint64()
		}
		pilot := autopilot.New(behavior, rand.New(rand.NewPCG(pilotSeed, pilotSeed+1)))
		summary := runHeadless(ctx, game, pilot, render.NewNullRenderer(logger), opts.ticks)
		logger.Info(game.Context(), "headless run finished",
			"ticks", summary.Ticks,
			"matches", summary.Matches,
			"shots", summary.Shots,
			"asteroids_destroyed", summary.Destroyed,
			"best_score", summary.BestScore,
		)
		fmt.Fprintln(stdout, summary)
		return nil
	case "terminal":
		return runTerminal(ctx, game, logger)
	default:
		library, err := assets.NewLibrary(assets.SizesFromConfig(cfg))
		if err != nil {
			return logging.WrapError(err, "building sprites")
		}
		return engorender.Run(ctx, game, library, logger)
	}
}

func runTerminal(ctx context.Context, game *engine.Game, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "creating terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "initializing terminal screen")
	}
	defer screen.Fini()

	err = render.NewTerminalFrontend(screen, game, logger).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "asteroids: %v\n", err)
		os.Exit(1)
	}
}
