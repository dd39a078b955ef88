package mock

import (
	"sync"
	"time"
)

// Call records one invocation of an instrumented mock.
type Call struct {
	Args []any
	At   time.Time
}

// CallLog accumulates calls made against an instrumented mock. It is safe
// for concurrent use.
type CallLog struct {
	mu    sync.Mutex
	calls []Call
}

// NewCallLog creates an empty CallLog.
func NewCallLog() *CallLog {
	return &CallLog{}
}

// Record appends one call with the given arguments.
func (l *CallLog) Record(args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, Call{Args: args, At: time.Now()})
}

// Count returns the number of recorded calls.
func (l *CallLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

// Calls returns a copy of the recorded calls.
func (l *CallLog) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Call, len(l.calls))
	copy(out, l.calls)
	return out
}

// Reset clears the recorded calls without detaching the log from its mock.
func (l *CallLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = nil
}

// Callable pairs a mock function with an optional call log. A nil Log means
// the function is a plain stand-in with no assertion support; the diff
// engine reports such methods as warnings rather than errors.
type Callable struct {
	Fn  any
	Log *CallLog
}

// Plain wraps fn as an uninstrumented callable.
func Plain(fn any) *Callable {
	return &Callable{Fn: fn}
}

// Instrument wraps fn with a fresh call log.
func Instrument(fn any) *Callable {
	return &Callable{Fn: fn, Log: NewCallLog()}
}

// Instrumented reports whether the callable carries a call log.
func (c *Callable) Instrumented() bool {
	return c != nil && c.Log != nil
}
