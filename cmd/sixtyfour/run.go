package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"github.com/valerio/go-sixtyfour/sixtyfour"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend/ebitengine"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend/headless"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend/sdl2"
	"github.com/valerio/go-sixtyfour/sixtyfour/backend/terminal"
	"github.com/valerio/go-sixtyfour/sixtyfour/engine"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/romset"
	"github.com/valerio/go-sixtyfour/sixtyfour/statsview"
	"github.com/valerio/go-sixtyfour/sixtyfour/timing"
	"golang.org/x/term"
)

const (
	backendTerminal = "terminal"
	backendHeadless = "headless"
	backendSDL2     = "sdl2"
	backendEbiten   = "ebiten"

	engineText        = "text"
	engineTestPattern = "test-pattern"
)

func runPump(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	handler, err := newLogHandler(os.Stderr, level, c.String("log-format"))
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))

	if c.Bool("statsview") {
		stop := statsview.Launch("")
		defer stop()
	}

	cancelKey, ok := key.Parse(c.String("quit-key"))
	if !ok {
		return fmt.Errorf("unknown quit key %q", c.String("quit-key"))
	}

	roms, err := loadROMs(c)
	if err != nil {
		return err
	}

	name := c.String("backend")
	if name == "" {
		name = defaultBackend(term.IsTerminal(int(os.Stdout.Fd())))
	}
	host, err := newBackend(c, name, cancelKey, level)
	if err != nil {
		return err
	}

	cfg := sixtyfour.DefaultConfig()
	cfg.Pacing = timing.Pacing(c.String("pacing"))
	cfg.QueueDepth = c.Int("input-queue")
	cfg.CancelKey = cancelKey
	cfg.SnapshotDir = c.String("snapshot-dir")
	if name != backendHeadless && c.Int("frames") > 0 {
		cfg.MaxFrames = uint64(c.Int("frames"))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := host.Init(backend.BackendConfig{Fullscreen: c.Bool("fullscreen")}); err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", name, err)
	}
	defer func() {
		if err := host.Cleanup(); err != nil {
			slog.Warn("Backend cleanup failed", "error", err)
		}
	}()

	eng, err := newEngine(c.String("engine"), engine.Desc{
		TapeEnabled: c.Bool("tape"),
		ROMs:        roms.ROMs(),
	})
	if err != nil {
		return err
	}

	pump, err := sixtyfour.New(eng, host, cfg)
	if err != nil {
		eng.Free()
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		if sig, ok := <-sigs; ok {
			slog.Info("Signal received, stopping", "signal", sig)
			pump.Stop()
		}
	}()

	return pump.Run()
}

func defaultBackend(isTerminal bool) string {
	if isTerminal {
		return backendTerminal
	}
	return backendHeadless
}

func loadROMs(c *cli.Context) (*romset.Set, error) {
	if dir := c.String("roms"); dir != "" {
		return romset.Load(dir)
	}
	chars, basic, kernal := c.String("char-rom"), c.String("basic-rom"), c.String("kernal-rom")
	if chars == "" && basic == "" && kernal == "" {
		return nil, nil
	}
	return romset.LoadFiles(chars, basic, kernal)
}

func newBackend(c *cli.Context, name string, cancelKey key.Scancode, level slog.Leveler) (backend.Backend, error) {
	switch name {
	case backendHeadless:
		frames := c.Int("frames")
		if frames <= 0 {
			return nil, errors.New("headless backend requires --frames option with a positive value")
		}
		snap, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), "sixtyfour")
		if err != nil {
			return nil, err
		}
		h := headless.New(frames, cancelKey, snap)
		if text := c.String("type"); text != "" {
			h.TypeText(c.Int("type-at"), text)
		}
		return h, nil
	case backendTerminal:
		return terminal.New(level), nil
	case backendSDL2:
		return sdl2.New(), nil
	case backendEbiten:
		return ebitengine.New(c.Bool("show-fps")), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func newEngine(name string, desc engine.Desc) (engine.Engine, error) {
	switch name {
	case engineText, "":
		tm, err := engine.NewTextMode(desc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", sixtyfour.ErrEngineInit, err)
		}
		return tm, nil
	case engineTestPattern:
		return engine.NewTestPattern(engine.PatternBars), nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", sixtyfour.ErrEngineInit, name)
	}
}
