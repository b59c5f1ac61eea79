// Package sixtyfour drives an emulation engine in real time: each frame it
// advances the engine by one frame of emulated time, converts the engine's
// indexed video surface into the host's pixel buffer, forwards at most one
// key press, presents the picture and sleeps out the rest of the frame.
package sixtyfour

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/debug"
	"github.com/valerio/go-sixtyfour/sixtyfour/engine"
	"github.com/valerio/go-sixtyfour/sixtyfour/input"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/action"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/timing"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
)

var (
	// ErrEngineInit marks a failure to create the engine.
	ErrEngineInit = errors.New("failed to create engine")
	// ErrReleased is returned by Run once the engine has been freed.
	ErrReleased = errors.New("engine already released")
	// ErrNoFrameBuffer is returned by New for a backend that was not
	// initialized.
	ErrNoFrameBuffer = errors.New("backend has no frame buffer")
)

// Stats counts what happened during a run.
type Stats struct {
	Frames        uint64
	InjectedKeys  uint64
	Hotkeys       uint64
	DroppedEvents uint64
	Timing        timing.Stats
}

type statsLimiter interface {
	Stats() timing.Stats
}

type stoppableLimiter interface {
	Stop()
}

// Pump owns the engine from New until the end of Run.
type Pump struct {
	engine  engine.Engine
	backend backend.Backend
	cfg     Config

	info    engine.DisplayInfo
	palette video.Palette
	frame   *video.FrameBuffer

	execMicros uint32
	limiter    timing.Limiter
	translator *input.Translator
	actions    *input.Manager
	queue      *input.Queue

	stop  atomic.Bool
	freed bool
	stats Stats
}

// New wires an engine to an initialized backend. The display descriptor is
// read and validated once here. On error the caller still owns the engine.
func New(eng engine.Engine, host backend.Backend, cfg Config) (*Pump, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Period == 0 {
		cfg.Period = timing.FramePeriod
	}

	frame := host.FrameBuffer()
	if frame == nil {
		return nil, ErrNoFrameBuffer
	}

	info := eng.DisplayInfo()
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("failed to read engine display: %w", err)
	}

	p := &Pump{
		engine:     eng,
		backend:    host,
		cfg:        cfg,
		info:       info,
		palette:    video.NewPalette(info.Palette),
		frame:      frame,
		execMicros: uint32(cfg.Period / time.Microsecond),
		limiter:    cfg.limiter(),
		translator: input.NewTranslator(cfg.CancelKey, cfg.Hotkeys, host),
		actions:    input.NewManager(),
	}
	if cfg.QueueDepth > 0 {
		p.queue = input.NewQueue(cfg.QueueDepth)
	}
	p.registerActions()

	slog.Debug("Frame pump ready",
		"frame", fmt.Sprintf("%dx%d", info.Frame.Dim.Width, info.Frame.Dim.Height),
		"screen", fmt.Sprintf("%dx%d+%d+%d", info.Screen.Width, info.Screen.Height, info.Screen.X, info.Screen.Y),
		"output", fmt.Sprintf("%dx%d", frame.Width(), frame.Height()),
		"palette", len(info.Palette))
	return p, nil
}

func (p *Pump) registerActions() {
	p.actions.On(action.Quit, event.Press, p.Stop)
	p.actions.On(action.Snapshot, event.Press, func() {
		debug.TakeSnapshot(p.frame, p.cfg.SnapshotDir)
	})
	p.actions.On(action.ToggleFullscreen, event.Press, func() {
		t, ok := p.backend.(backend.FullscreenToggler)
		if !ok {
			slog.Debug("Backend has no fullscreen mode")
			return
		}
		if err := t.ToggleFullscreen(); err != nil {
			slog.Warn("Failed to toggle fullscreen", "error", err)
		}
	})
}

// Stop asks Run to return at the start of its next iteration. It is safe to
// call from any goroutine.
func (p *Pump) Stop() {
	p.stop.Store(true)
}

// Run pumps frames until the cancel key, a close request, Stop or the frame
// limit ends the loop, then frees the engine. The frame in progress when
// quit is detected has already been scanned out but is not presented.
func (p *Pump) Run() error {
	if p.freed {
		return ErrReleased
	}
	defer p.release()

	slog.Info("Frame pump started",
		"period", p.cfg.Period,
		"queue_depth", p.cfg.QueueDepth,
		"max_frames", p.cfg.MaxFrames,
		"cancel_key", p.cfg.CancelKey)

	p.limiter.Reset()
	for !p.stop.Load() {
		p.limiter.Begin()

		p.engine.Exec(p.execMicros)
		video.ScanOut(p.frame, p.info, &p.palette)

		if p.handleInput() {
			break
		}

		if err := p.backend.Present(); err != nil {
			return fmt.Errorf("failed to present frame: %w", err)
		}
		p.stats.Frames++
		if p.cfg.MaxFrames > 0 && p.stats.Frames >= p.cfg.MaxFrames {
			slog.Info("Frame limit reached", "frames", p.stats.Frames)
			break
		}

		p.limiter.WaitForNextFrame()
	}
	return nil
}

// handleInput processes at most one host event and reports whether the loop
// should end.
func (p *Pump) handleInput() bool {
	ev, ok := p.nextEvent()
	if !ok {
		return false
	}

	res := p.translator.Translate(ev)
	switch res.Outcome {
	case input.Quit:
		slog.Info("Quit requested", "kind", ev.Kind, "scancode", ev.Scancode)
		return true
	case input.Hotkey:
		p.stats.Hotkeys++
		if !p.actions.Trigger(res.Action, event.Press) {
			slog.Debug("Hotkey not handled", "action", res.Action)
		}
	case input.Inject:
		input.Press(p.engine, res.Code)
		p.stats.InjectedKeys++
	default:
		if ev.Kind == event.KeyDown {
			slog.Debug("Ignored key", "scancode", ev.Scancode)
		}
	}
	return false
}

// nextEvent polls the backend once, or with a queue, tops it up from the
// backend while it has room and takes the oldest. Events that do not fit
// stay in the backend for a later frame.
func (p *Pump) nextEvent() (event.Event, bool) {
	if p.queue == nil {
		return p.backend.PollEvent()
	}
	for p.queue.Len() < p.queue.Cap() {
		ev, ok := p.backend.PollEvent()
		if !ok {
			break
		}
		if !p.queue.Push(ev) {
			slog.Debug("Input queue full, event dropped", "kind", ev.Kind, "scancode", ev.Scancode)
		}
	}
	return p.queue.Pop()
}

func (p *Pump) release() {
	if p.freed {
		return
	}
	p.engine.Free()
	p.freed = true

	if s, ok := p.limiter.(stoppableLimiter); ok {
		s.Stop()
	}
	if s, ok := p.limiter.(statsLimiter); ok {
		p.stats.Timing = s.Stats()
	}
	if p.queue != nil {
		p.stats.DroppedEvents = p.queue.Dropped()
	}

	slog.Info("Frame pump stopped",
		"frames", p.stats.Frames,
		"overruns", p.stats.Timing.Overruns,
		"injected_keys", p.stats.InjectedKeys,
		"hotkeys", p.stats.Hotkeys,
		"dropped_events", p.stats.DroppedEvents)
}

// Stats returns the counters of the last run.
func (p *Pump) Stats() Stats {
	s := p.stats
	if p.queue != nil {
		s.DroppedEvents = p.queue.Dropped()
	}
	return s
}

// Freed reports whether the engine has been released.
func (p *Pump) Freed() bool {
	return p.freed
}
