package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Level is the severity of a log message.
//
// Lower values are more severe. A sink configured with a maximum level emits
// that level and every level with a lower value.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelLog
	LevelInfo
	LevelDebug
)

// String returns the upper-case tag used by WriterSink.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelLog:
		return "LOG"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger receives leveled, printf-style messages.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Logf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// Fanout forwards every message to all subscribed sinks.
//
// It is safe for concurrent use; the JSON and Markdown renderers log through
// the same Fanout while running in parallel.
type Fanout struct {
	mu    sync.RWMutex
	sinks []*subscription
}

type subscription struct {
	sink Logger
}

// NewFanout creates a Fanout with no sinks. Messages are dropped until a sink subscribes.
func NewFanout() *Fanout {
	return &Fanout{}
}

// Subscribe adds a sink and returns a function that removes it again.
//
// It performs the following operations:
//   - Acquires a write lock and appends the sink
//   - Returns an idempotent unsubscribe function removing exactly this subscription
//
// Parameters:
//   - sink: The Logger that should receive every subsequent message
//
// Returns:
//   - func(): Unsubscribe function; calling it more than once is a no-op
func (f *Fanout) Subscribe(sink Logger) func() {
	sub := &subscription{sink: sink}

	f.mu.Lock()
	f.sinks = append(f.sinks, sub)
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			for i, s := range f.sinks {
				if s == sub {
					f.sinks = append(f.sinks[:i], f.sinks[i+1:]...)
					return
				}
			}
		})
	}
}

// Len returns the number of subscribed sinks.
func (f *Fanout) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sinks)
}

func (f *Fanout) each(fn func(Logger)) {
	f.mu.RLock()
	sinks := make([]*subscription, len(f.sinks))
	copy(sinks, f.sinks)
	f.mu.RUnlock()

	for _, s := range sinks {
		fn(s.sink)
	}
}

func (f *Fanout) Errorf(format string, args ...any) {
	f.each(func(l Logger) { l.Errorf(format, args...) })
}

func (f *Fanout) Warnf(format string, args ...any) {
	f.each(func(l Logger) { l.Warnf(format, args...) })
}

func (f *Fanout) Logf(format string, args ...any) {
	f.each(func(l Logger) { l.Logf(format, args...) })
}

func (f *Fanout) Infof(format string, args ...any) {
	f.each(func(l Logger) { l.Infof(format, args...) })
}

func (f *Fanout) Debugf(format string, args ...any) {
	f.each(func(l Logger) { l.Debugf(format, args...) })
}

// WriterSink writes "[LEVEL] message" lines to an io.Writer.
//
// Fields:
//   - w: Destination writer
//   - max: Most verbose level that is still written
type WriterSink struct {
	mu  sync.Mutex
	w   io.Writer
	max Level
}

// NewWriterSink creates a sink writing every message up to and including max.
//
// Parameters:
//   - w: Destination writer (e.g. os.Stderr or a bytes.Buffer in tests)
//   - max: Most verbose level to emit; LevelDebug emits everything
//
// Returns:
//   - *WriterSink: The configured sink
func NewWriterSink(w io.Writer, max Level) *WriterSink {
	return &WriterSink{w: w, max: max}
}

func (s *WriterSink) write(level Level, format string, args ...any) {
	if level > s.max {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.w, "[%s] %s\n", level, msg)
}

func (s *WriterSink) Errorf(format string, args ...any) { s.write(LevelError, format, args...) }
func (s *WriterSink) Warnf(format string, args ...any)  { s.write(LevelWarn, format, args...) }
func (s *WriterSink) Logf(format string, args ...any)   { s.write(LevelLog, format, args...) }
func (s *WriterSink) Infof(format string, args ...any)  { s.write(LevelInfo, format, args...) }
func (s *WriterSink) Debugf(format string, args ...any) { s.write(LevelDebug, format, args...) }

// Nop discards every message.
type Nop struct{}

func (Nop) Errorf(string, ...any) {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Logf(string, ...any)   {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Debugf(string, ...any) {}

// OrNop returns l, or a Nop logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}
