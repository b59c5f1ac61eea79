package headless

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-sixtyfour/sixtyfour/backend"
	"github.com/valerio/go-sixtyfour/sixtyfour/debug"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
)

// Backend implements the Backend interface for automated testing and batch processing.
// Input comes from a script of events keyed by frame number.
type Backend struct {
	config         backend.BackendConfig
	frame          *video.FrameBuffer
	frameCount     int
	maxFrames      int
	cancelKey      key.Scancode
	snapshotConfig SnapshotConfig

	script  map[int][]event.Event
	pending []event.Event
	quit    bool
	saved   []string
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	Name      string // Prefix for snapshot filenames
}

// New creates a headless backend that asks to quit, by sending cancelKey,
// once maxFrames frames have been presented. maxFrames <= 0 runs until the
// script or the caller stops it.
func New(maxFrames int, cancelKey key.Scancode, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		cancelKey:      cancelKey,
		snapshotConfig: snapshotConfig,
		script:         make(map[int][]event.Event),
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config.WithDefaults()
	h.frame = video.NewFrameBuffer(h.config.FBWidth, h.config.FBHeight)
	h.frame.Fill(video.BlackColor)
	h.enqueue()

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// At schedules events to become pending once the given number of frames
// has been presented. Frame 0 is before the first Present. After Init, events
// for a frame that has already been reached are pending immediately.
func (h *Backend) At(frame int, events ...event.Event) {
	if h.frame != nil && frame <= h.frameCount {
		h.pending = append(h.pending, events...)
		return
	}
	h.script[frame] = append(h.script[frame], events...)
}

// TypeText schedules a key down and key up per character of text, starting
// at the given frame. Characters with no key on the US layout are skipped.
func (h *Backend) TypeText(frame int, text string) {
	for _, r := range text {
		sc, mods, ok := key.FromRune(r)
		if !ok {
			slog.Debug("No key for character", "char", string(r))
			continue
		}
		h.At(frame,
			event.Event{Kind: event.KeyDown, Scancode: sc, Mods: mods},
			event.Event{Kind: event.KeyUp, Scancode: sc, Mods: mods})
	}
}

// PollEvent returns one pending event. Once the frame limit is reached the
// cancel key is returned ahead of anything still pending.
func (h *Backend) PollEvent() (event.Event, bool) {
	if h.quit {
		return event.Event{Kind: event.KeyDown, Scancode: h.cancelKey}, true
	}
	if len(h.pending) == 0 {
		return event.Event{}, false
	}
	ev := h.pending[0]
	h.pending = h.pending[1:]
	return ev, true
}

func (h *Backend) ResolveASCII(sc key.Scancode, mods key.Mod) byte {
	return key.ASCII(sc, mods)
}

func (h *Backend) FrameBuffer() *video.FrameBuffer {
	return h.frame
}

// Present counts the frame and handles snapshots
func (h *Backend) Present() error {
	h.frameCount++

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot()
	}

	if h.frameCount%60 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames && !h.quit {
		// Save final snapshot if enabled and we haven't just saved one
		if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
			h.saveSnapshot()
		}

		if h.snapshotConfig.Enabled {
			slog.Info("Headless execution completed", "frames", h.frameCount, "png_snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless execution completed", "frames", h.frameCount)
		}
		h.quit = true
	}

	h.enqueue()
	return nil
}

func (h *Backend) Cleanup() error {
	h.pending = nil
	return nil
}

// Frames returns the number of frames presented.
func (h *Backend) Frames() int {
	return h.frameCount
}

// Snapshots returns the paths of the snapshots saved so far.
func (h *Backend) Snapshots() []string {
	return h.saved
}

func (h *Backend) enqueue() {
	if evs, ok := h.script[h.frameCount]; ok {
		h.pending = append(h.pending, evs...)
		delete(h.script, h.frameCount)
	}
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, name string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
		Name:     name,
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "sixtyfour-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	if config.Name == "" {
		config.Name = "sixtyfour"
	}

	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot() {
	pngBaseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.Name, h.frameCount)

	path, err := debug.SaveFramePNGToDir(h.frame, pngBaseName, h.snapshotConfig.Directory)
	if err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
		return
	}
	h.saved = append(h.saved, path)
}
