package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// ConsoleSink renders messages for a terminal using charmbracelet/log.
//
// Log and Info both map to the info level; the "Log" severity is kept apart
// from Info only so other sinks can tell them apart.
type ConsoleSink struct {
	logger *log.Logger
}

// NewConsoleSink creates a console sink writing to w.
//
// Parameters:
//   - w: Destination writer, normally os.Stderr
//   - verbose: When true, debug messages are emitted as well
//
// Returns:
//   - *ConsoleSink: The configured sink
func NewConsoleSink(w io.Writer, verbose bool) *ConsoleSink {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "licenseforge",
		Level:  log.InfoLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return &ConsoleSink{logger: logger}
}

func (s *ConsoleSink) Errorf(format string, args ...any) { s.logger.Errorf(format, args...) }
func (s *ConsoleSink) Warnf(format string, args ...any)  { s.logger.Warnf(format, args...) }
func (s *ConsoleSink) Logf(format string, args ...any)   { s.logger.Infof(format, args...) }
func (s *ConsoleSink) Infof(format string, args ...any)  { s.logger.Infof(format, args...) }
func (s *ConsoleSink) Debugf(format string, args ...any) { s.logger.Debugf(format, args...) }
