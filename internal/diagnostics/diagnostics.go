// Package diagnostics provides the allocator's ambient event logging: a
// small structured Event plus a log.Logger-backed emitter, in place of a
// third-party structured-logging library. The teacher never imports
// zap/logrus/zerolog anywhere in its source tree, preferring the standard
// log package and hand-rolled structured error types
// (internal/errors/standard.go); this package follows the same idiom for
// the allocator's own bootstrap and heap-extension events.
package diagnostics

import (
	"log"
	"os"
)

// Kind classifies an allocator event.
type Kind string

const (
	KindRegionInit    Kind = "region_init"
	KindHeapExtension Kind = "heap_extension"
	KindCoalesce      Kind = "coalesce"
)

// Event is one structured log line.
type Event struct {
	Kind    Kind
	Region  uint32
	Message string
}

// Logger emits Events through a standard log.Logger. New returns an
// enabled Logger writing to os.Stderr; the zero value and a nil *Logger
// are usable but silent. Enable(false) silences it without changing call
// sites, the same way internal/allocator.allocator.go's Config.Debug
// flag gated its own logging.
type Logger struct {
	out     *log.Logger
	enabled bool
}

// New returns a Logger writing to os.Stderr with a package-scoped prefix.
func New() *Logger {
	return &Logger{out: log.New(os.Stderr, "regionheap: ", log.LstdFlags), enabled: true}
}

// Enable turns event logging on or off.
func (l *Logger) Enable(on bool) { l.enabled = on }

// Log emits ev if the logger is enabled.
func (l *Logger) Log(ev Event) {
	if l == nil || !l.enabled || l.out == nil {
		return
	}

	l.out.Printf("%s region=%d %s", ev.Kind, ev.Region, ev.Message)
}
