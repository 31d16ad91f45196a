// Package rvlog provides the simulator's structured diagnostic logger,
// kept separate from the architecturally-mandated trace/warning text that
// the memory, hart, and driver packages write directly to their configured
// writers. It exists for the things the CLI needs to say about itself:
// which file it loaded, what memory size it rounded to, configuration
// errors before exit.
package rvlog

import (
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/log"
)

// New returns a logfmt-formatted structured logger writing to w at lvl.
func New(w io.Writer, lvl slog.Level) log.Logger {
	l := log.New()
	l.SetHandler(log.LvlFilterHandler(slogLevelToLvl(lvl), log.StreamHandler(w, log.LogfmtFormat())))
	return l
}

// slogLevelToLvl maps a slog.Level to the closest go-ethereum log.Lvl.
func slogLevelToLvl(lvl slog.Level) log.Lvl {
	switch {
	case lvl >= slog.LevelError:
		return log.LvlError
	case lvl >= slog.LevelWarn:
		return log.LvlWarn
	case lvl >= slog.LevelInfo:
		return log.LvlInfo
	default:
		return log.LvlDebug
	}
}
