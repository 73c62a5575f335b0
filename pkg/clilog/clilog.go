// Package clilog is the CLI's diagnostic log channel: run start/stop,
// file-load failures, compile/runtime error notices. Config parse
// errors are not logged here; the CLI prints them before a Logger
// exists. It is deliberately separate
// from the VM's stdout/stderr program-output contract — a script's
// garnish output and a compile/runtime error are never mixed with
// these lines.
//
// No third-party structured logging library appears anywhere in the
// retrieval pack this project was built alongside, so this leveled
// wrapper over the standard library's log package is the grounded
// choice; see DESIGN.md.
package clilog

import (
	"fmt"
	"io"
	"log"
)

// Level orders verbosity from quietest to loudest filtering.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a chef.yaml log_level string to a Level, defaulting
// to LevelWarn for anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger writes one line per event, prefixed with its level and,
// when present, the run correlation id of the interpret call it
// belongs to.
type Logger struct {
	level Level
	out   *log.Logger
}

// New returns a Logger that drops anything below level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

func (l *Logger) log(level Level, runID, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if runID != "" {
		l.out.Printf("[%s] [%s] %s", level, runID, msg)
		return
	}
	l.out.Printf("[%s] %s", level, msg)
}

func (l *Logger) Debug(runID, format string, args ...interface{}) { l.log(LevelDebug, runID, format, args...) }
func (l *Logger) Info(runID, format string, args ...interface{})  { l.log(LevelInfo, runID, format, args...) }
func (l *Logger) Warn(runID, format string, args ...interface{})  { l.log(LevelWarn, runID, format, args...) }
func (l *Logger) Error(runID, format string, args ...interface{}) { l.log(LevelError, runID, format, args...) }
