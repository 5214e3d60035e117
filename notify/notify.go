// Package notify delivers short user-facing success and error messages.
package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Notifier shows transient feedback to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Writer prints notifications as single lines, prefixed by their kind.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a Writer printing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Success(msg string) { w.print("✓", msg) }

func (w *Writer) Error(msg string) { w.print("✗", msg) }

func (w *Writer) print(mark, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "%s %s\n", mark, msg)
}

// Logger forwards notifications to a zap logger.
type Logger struct {
	logger *zap.Logger
}

// NewLogger creates a Notifier backed by logger.
func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) Success(msg string) {
	l.logger.Info("notification", zap.String("kind", "success"), zap.String("message", msg))
}

func (l *Logger) Error(msg string) {
	l.logger.Warn("notification", zap.String("kind", "error"), zap.String("message", msg))
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

// Last returns the most recent success and error messages, empty when none.
func (r *Recorder) Last() (success, failure string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.Successes); n > 0 {
		success = r.Successes[n-1]
	}
	if n := len(r.Errors); n > 0 {
		failure = r.Errors[n-1]
	}
	return success, failure
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}
