// Package logging provides the small logging interface injected into the
// core transform components. The core treats logging as an external
// collaborator (spec §1) described only by this interface; the default
// implementation wraps logrus, the structured logger used throughout the
// reference corpus (e.g. usecases/cron's "logger logrus.FieldLogger"
// field, usecases/config/environment.go's contextual fields).
package logging

import (
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Logger is the minimal surface the transformers and driver need.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NewCLI builds the default process-wide Logger for cmd/smartifier2: a
// logrus.Logger writing to stderr with a text formatter, colored only
// when stderr is an actual terminal (grounded in
// adapters/handlers/rest/logger.go's custom formatters, which likewise
// wrap *logrus.TextFormatter for this binary's output). Every line carries
// a per-invocation "run_id" field so lines from two concurrent smartifier2
// runs (or its concurrent edge-file workers) stay attributable when their
// output is interleaved or aggregated downstream.
func NewCLI() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:   isatty.IsTerminal(os.Stderr.Fd()),
		DisableColors: !isatty.IsTerminal(os.Stderr.Fd()),
	})
	return NewLogrus(l.WithField("run_id", uuid.New().String()))
}

type logrusLogger struct {
	entry logrus.FieldLogger
}

// NewLogrus builds a Logger backed by a logrus.FieldLogger.
func NewLogrus(entry logrus.FieldLogger) Logger {
	return &logrusLogger{entry: entry}
}

func (l *logrusLogger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// Synchronized wraps a Logger so that no two goroutines interleave a
// call mid-line. spec §5/§9: "the only mutex protects the work queue ...
// and standard-error/standard-output progress lines."
type Synchronized struct {
	mu   sync.Mutex
	next Logger
}

// NewSynchronized wraps next with a mutex.
func NewSynchronized(next Logger) *Synchronized {
	return &Synchronized{next: next}
}

func (s *Synchronized) Infof(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next.Infof(format, args...)
}

func (s *Synchronized) Warnf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next.Warnf(format, args...)
}

func (s *Synchronized) Errorf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next.Errorf(format, args...)
}

// Nop discards everything; useful in tests that don't care about log
// output.
type Nop struct{}

func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}
