// Package debug provides conditional debug logging for canopy.
//
// Debug logging is enabled by setting the CANOPY_DEBUG environment
// variable:
//
//	CANOPY_DEBUG=1 canopy .
//
// When enabled, debug messages are written to stderr with timestamps.
// Because the interactive TUI owns the terminal, CANOPY_DEBUG_FILE can
// redirect the stream to an append-only file instead:
//
//	CANOPY_DEBUG=1 CANOPY_DEBUG_FILE=canopy.log canopy .
//
// When disabled (default), all debug functions are no-ops with zero
// overhead.
package debug

import (
	"fmt"
	"log"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

var (
	// enabled is true when the CANOPY_DEBUG env var is set
	enabled bool
	// logger writes to stderr or CANOPY_DEBUG_FILE with a [canopy] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("CANOPY_DEBUG") == "" {
		return
	}
	enabled = true
	logger = log.New(debugSink(), "[canopy] ", log.Ltime|log.Lmicroseconds)
}

func debugSink() *os.File {
	path := os.Getenv("CANOPY_DEBUG_FILE")
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return os.Stderr
	}
	return f
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(debugSink(), "[canopy] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !enabled || !cond {
		return
	}
	logger.Printf(format, args...)
}

// LogEnterExit logs function entry and exit with timing.
// Usage:
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	    // ...
//	}
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value as indented JSON, falling back to %+v for values
// that do not marshal.
func Dump(name string, v any) {
	if !enabled {
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Printf("%s: %T = %+v", name, v, v)
		return
	}
	logger.Printf("%s:\n%s", name, b)
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	if !enabled {
		return
	}
	logger.Printf("=== %s ===", name)
}

// Assert logs a message and panics if the condition is false.
// Only active when debug is enabled.
func Assert(cond bool, msg string) {
	if !enabled {
		return
	}
	if !cond {
		logger.Printf("ASSERTION FAILED: %s", msg)
		panic(fmt.Sprintf("debug assertion failed: %s", msg))
	}
}
