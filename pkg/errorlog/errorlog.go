package errorlog

import (
	"fmt"
	"sync"

	"mxf-reader/internal/metrics"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// NonFatal diagnostics accumulate while decoding continues with the
	// offending element absent.
	NonFatal Severity = iota
	// Fatal diagnostics abort decoding of the current artifact.
	Fatal
)

// String returns the severity label used in logs and metrics.
func (s Severity) String() string {
	switch s {
	case NonFatal:
		return "non-fatal"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Code identifies the subsystem that produced a diagnostic.
type Code int

const (
	// CodeEssenceMetadata covers structural metadata decoding problems.
	CodeEssenceMetadata Code = iota
	// CodeResource covers byte-range resource problems.
	CodeResource
	// CodeInternal covers everything else.
	CodeInternal
)

// String returns the code label.
func (c Code) String() string {
	switch c {
	case CodeEssenceMetadata:
		return "essence-metadata"
	case CodeResource:
		return "resource"
	default:
		return "internal"
	}
}

// ErrorObject is one recorded diagnostic.
type ErrorObject struct {
	Code     Code
	Severity Severity
	Message  string
}

// Error implements the error interface.
func (e ErrorObject) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Severity, e.Message)
}

// Log is an append-only, insertion-ordered diagnostic collector for one
// parse session.
type Log struct {
	mu   sync.Mutex
	errs []ErrorObject
}

// NewLog creates an empty diagnostic log.
func NewLog() *Log {
	return &Log{}
}

// Add appends a diagnostic. It never fails.
func (l *Log) Add(code Code, severity Severity, message string) {
	l.mu.Lock()
	l.errs = append(l.errs, ErrorObject{Code: code, Severity: severity, Message: message})
	l.mu.Unlock()

	metrics.StructuralErrorsTotal.WithLabelValues(severity.String()).Inc()
}

// Addf appends a diagnostic with a formatted message.
func (l *Log) Addf(code Code, severity Severity, format string, args ...any) {
	l.Add(code, severity, fmt.Sprintf(format, args...))
}

// Len returns the number of recorded diagnostics.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errs)
}

// Errors returns a snapshot of all diagnostics in insertion order. Mutating
// the returned slice does not affect the log.
func (l *Log) Errors() []ErrorObject {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ErrorObject, len(l.errs))
	copy(out, l.errs)
	return out
}

// BySeverity returns a snapshot of the diagnostics with the given severity,
// in insertion order.
func (l *Log) BySeverity(severity Severity) []ErrorObject {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []ErrorObject
	for _, e := range l.errs {
		if e.Severity == severity {
			out = append(out, e)
		}
	}
	return out
}

// HasFatal reports whether any fatal diagnostic has been recorded.
func (l *Log) HasFatal() bool {
	return l.FatalSince(0)
}

// FatalSince reports whether a fatal diagnostic was recorded at or after the
// given index. Pair with Len to detect whether a risky operation introduced
// new fatal entries.
func (l *Log) FatalSince(index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 {
		index = 0
	}
	for i := index; i < len(l.errs); i++ {
		if l.errs[i].Severity == Fatal {
			return true
		}
	}
	return false
}
