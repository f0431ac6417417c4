// Package log provides the package-level structured logger shared across
// harmonydict: a go-kit/log Logger built over logfmt output and filtered
// by level, used at call sites as
// level.Debug(log.Logger).Log("msg", ..., "k", v).
package log

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the process-wide logger. Call SetLevel to adjust verbosity;
// defaults to info.
var Logger log.Logger

func init() {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.Caller(5))
	Logger = level.NewFilter(l, level.AllowInfo())
}

// SetLevel reconfigures the minimum log level. Valid values are "debug",
// "info", "warn", "error"; anything else defaults to "info".
func SetLevel(lvl string) {
	base := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	base = log.With(base, "ts", log.DefaultTimestampUTC, "caller", log.Caller(5))

	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	Logger = level.NewFilter(base, opt)
}
