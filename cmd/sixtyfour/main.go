package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-sixtyfour/sixtyfour"
)

// Exit statuses.
const (
	exitOK         = 0
	exitError      = 1
	exitEngineInit = 2
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		slog.Error("Error running frame pump", "error", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, sixtyfour.ErrEngineInit):
		return exitEngineInit
	default:
		return exitError
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sixtyfour"
	app.Description = "Real-time frame pump for an 8-bit home computer engine"
	app.Usage = "sixtyfour [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "backend",
			Usage:  "Host to run on: terminal, headless, sdl2 or ebiten (default: terminal on a TTY, headless otherwise)",
			EnvVar: "SIXTYFOUR_BACKEND",
		},
		cli.StringFlag{
			Name:   "engine",
			Value:  engineText,
			Usage:  "Engine to drive: text or test-pattern",
			EnvVar: "SIXTYFOUR_ENGINE",
		},
		cli.StringFlag{
			Name:   "roms",
			Usage:  "Directory or archive (zip, 7z, rar, tar.gz) holding the system ROMs",
			EnvVar: "SIXTYFOUR_ROMS",
		},
		cli.StringFlag{
			Name:  "char-rom",
			Usage: "Path to the character ROM",
		},
		cli.StringFlag{
			Name:  "basic-rom",
			Usage: "Path to the BASIC ROM",
		},
		cli.StringFlag{
			Name:  "kernal-rom",
			Usage: "Path to the kernal ROM",
		},
		cli.BoolFlag{
			Name:  "tape",
			Usage: "Attach the datasette",
		},
		cli.BoolFlag{
			Name:   "fullscreen",
			Usage:  "Start window backends in fullscreen",
			EnvVar: "SIXTYFOUR_FULLSCREEN",
		},
		cli.BoolFlag{
			Name:  "show-fps",
			Usage: "Draw the measured frame rate (ebiten backend)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Stop after N frames (required for headless)",
		},
		cli.StringFlag{
			Name:   "pacing",
			Value:  "sleep",
			Usage:  "Frame limiter: sleep, ticker or none",
			EnvVar: "SIXTYFOUR_PACING",
		},
		cli.IntFlag{
			Name:   "input-queue",
			Usage:  "Buffer up to N host events between frames instead of polling once per frame (0 = disabled)",
			EnvVar: "SIXTYFOUR_INPUT_QUEUE",
		},
		cli.StringFlag{
			Name:   "quit-key",
			Value:  "ESCAPE",
			Usage:  "Key that ends the run",
			EnvVar: "SIXTYFOUR_QUIT_KEY",
		},
		cli.StringFlag{
			Name:  "type",
			Usage: "Text typed into the engine (headless)",
		},
		cli.IntFlag{
			Name:  "type-at",
			Value: 1,
			Usage: "Frame at which --type starts",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save PNG snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:   "snapshot-dir",
			Usage:  "Directory for snapshots (default: temp directory for headless, working directory for hotkeys)",
			EnvVar: "SIXTYFOUR_SNAPSHOT_DIR",
		},
		cli.BoolFlag{
			Name:   "statsview",
			Usage:  "Serve runtime statistics over HTTP (requires -tags statsview)",
			EnvVar: "SIXTYFOUR_STATSVIEW",
		},
		cli.StringFlag{
			Name:   "log-level",
			Value:  "info",
			Usage:  "Log level: debug, info, warn or error",
			EnvVar: "SIXTYFOUR_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   "log-format",
			Value:  "text",
			Usage:  "Log format: text or json",
			EnvVar: "SIXTYFOUR_LOG_FORMAT",
		},
	}
	app.Action = runPump
	return app
}
