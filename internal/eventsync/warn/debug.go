// Package warn is the synchronization pipeline's diagnostic sink: it flags
// the three conditions that usually mean a match's tracking or event feed is
// broken, rather than failing the run outright.
package warn

import (
	"io"
	"log"
)

var (
	opsLogger   *log.Logger
	diagLogger  *log.Logger
	traceLogger *log.Logger
)

// SetLogWriters configures the three logging streams. Pass nil for any
// writer to disable that stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	opsLogger = newLogger("[eventsync] ", ops)
	diagLogger = newLogger("[eventsync] ", diag)
	traceLogger = newLogger("[eventsync] ", trace)
}

// SetLegacyLogger routes all three streams to a single writer. Pass nil to
// disable all logging.
func SetLegacyLogger(w io.Writer) {
	SetLogWriters(w, w, w)
}

func newLogger(prefix string, w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
}

// opsf logs to the ops stream: conditions that likely mean this match's
// output is unreliable.
func opsf(format string, args ...interface{}) {
	if opsLogger != nil {
		opsLogger.Printf(format, args...)
	}
}

// diagf logs to the diag stream: tuning context an operator can use to
// decide whether an ops warning needs action.
func diagf(format string, args ...interface{}) {
	if diagLogger != nil {
		diagLogger.Printf(format, args...)
	}
}

// tracef logs to the trace stream: per-period/per-event detail, noisy
// enough that it's off by default.
func tracef(format string, args ...interface{}) {
	if traceLogger != nil {
		traceLogger.Printf(format, args...)
	}
}
