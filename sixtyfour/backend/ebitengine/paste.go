package ebitengine

import (
	"log/slog"

	"github.com/valerio/go-sixtyfour/sixtyfour/input/event"
	"github.com/valerio/go-sixtyfour/sixtyfour/input/key"
)

// maxPasteBytes caps how much clipboard text is typed in one paste
const maxPasteBytes = 4096

// normalizePasteText turns CRLF and lone CR line endings into LF
func normalizePasteText(raw []byte) []byte {
	norm := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			norm = append(norm, '\n')
			continue
		}
		norm = append(norm, raw[i])
	}
	return norm
}

// pasteEvents converts clipboard text into key down/up pairs. Characters
// with no key are skipped.
func pasteEvents(raw []byte) []event.Event {
	if len(raw) > maxPasteBytes {
		raw = raw[:maxPasteBytes]
	}
	text := normalizePasteText(raw)

	events := make([]event.Event, 0, len(text)*2)
	for _, r := range string(text) {
		sc, mods, ok := key.FromRune(r)
		if !ok {
			slog.Debug("Skipping pasted character", "char", string(r))
			continue
		}
		events = append(events,
			event.Event{Kind: event.KeyDown, Scancode: sc, Mods: mods},
			event.Event{Kind: event.KeyUp, Scancode: sc, Mods: mods})
	}
	return events
}
