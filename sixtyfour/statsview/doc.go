// Package statsview serves live runtime statistics (heap, goroutines, GC)
// over HTTP while the pump runs. It is only functional when built with the
// statsview build tag; otherwise Available reports false and Launch does
// nothing.
//
// Graphs are served at
//
//	localhost:12600/debug/statsview
//
// and the standard pprof handlers at
//
//	localhost:12600/debug/pprof/
package statsview

// DefaultAddress is used when Launch is given an empty address.
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// URL returns the page address for a server listening on addr.
func URL(addr string) string {
	if addr == "" {
		addr = DefaultAddress
	}
	return "http://" + addr + path
}
