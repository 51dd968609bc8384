package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Notifier prints transient notices as single styled lines.
type Notifier struct {
	writer io.Writer
	mu     sync.Mutex
	quiet  bool
}

// NewNotifier creates a notifier writing to writer (stderr when nil).
// A quiet notifier drops info notices and keeps successes and errors.
func NewNotifier(writer io.Writer, quiet bool) *Notifier {
	if writer == nil {
		writer = os.Stderr
	}
	return &Notifier{writer: writer, quiet: quiet}
}

// Info implements engine.Notifier.
func (n *Notifier) Info(msg string) {
	if n.quiet {
		return
	}
	n.write(FormatInfo(msg))
}

// Success implements engine.Notifier.
func (n *Notifier) Success(msg string) {
	n.write(FormatSuccess(msg))
}

// Error implements engine.Notifier.
func (n *Notifier) Error(msg string) {
	n.write(FormatError(msg))
}

func (n *Notifier) write(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintln(n.writer, line); err != nil {
		slog.Warn("Failed to write notice", "error", err)
	}
}
