//go:build !statsview

package statsview

import "log/slog"

func Launch(addr string) func() {
	slog.Warn("Stats server not compiled in, rebuild with -tags statsview")
	return func() {}
}

func Available() bool {
	return false
}
