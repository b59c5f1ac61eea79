//go:build statsview

package statsview

import (
	"log/slog"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Launch starts the stats server on its own goroutine. The returned
// function stops it.
func Launch(addr string) func() {
	if addr == "" {
		addr = DefaultAddress
	}
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()
	go mgr.Start()

	slog.Info("Stats server available", "url", URL(addr))
	return mgr.Stop
}

// Available reports whether the stats server was compiled in.
func Available() bool {
	return true
}
