package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TextReporter writes a short human readable summary.
type TextReporter struct {
	writer io.WriteCloser
}

// NewTextReporter creates a text reporter owning writer.
func NewTextReporter(writer io.WriteCloser) *TextReporter {
	return &TextReporter{writer: writer}
}

func (r *TextReporter) Write(s *Session) error {
	var b strings.Builder
	fmt.Fprintf(&b, "session    %s\n", s.ID)
	fmt.Fprintf(&b, "duration   %s\n", s.Duration().Round(time.Millisecond))
	fmt.Fprintf(&b, "sources    %d read, %d failed\n", s.Input.Sources, s.Input.Failed)
	fmt.Fprintf(&b, "lines      %d\n", s.Input.Lines)
	fmt.Fprintf(&b, "typed      %d (%d instant, %d delayed)\n", s.Typing.Typed, s.Typing.Instant, s.Typing.Delayed)
	fmt.Fprintf(&b, "printed    %d\n", s.Typing.Printed)
	fmt.Fprintf(&b, "mistakes   %d\n", s.Typing.Mistakes)
	fmt.Fprintf(&b, "slept      %s\n", s.Typing.Slept.Round(time.Millisecond))
	fmt.Fprintf(&b, "rate       %.1f chars/s\n", s.CharsPerSecond())
	if s.Reason != "" {
		fmt.Fprintf(&b, "stopped    %s\n", s.Reason)
	}
	fmt.Fprintf(&b, "exit       %d\n", s.ExitStatus)

	if _, err := io.WriteString(r.writer, b.String()); err != nil {
		return fmt.Errorf("failed to write session report: %w", err)
	}
	return nil
}

func (r *TextReporter) Close() error {
	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("failed to close output writer: %w", err)
	}
	return nil
}
