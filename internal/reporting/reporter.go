// -- internal/reporting/reporter.go --
package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
)

// Reporter writes the session report to an output.
type Reporter interface {
	// Write renders the session.
	Write(s *Session) error
	// Close closes any underlying resources (e.g., file handles).
	Close() error
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// New creates a new reporter based on the specified format and output path.
// An empty path or "stderr" writes to standard error; stdout is reserved for
// the typed text.
func New(format, outputPath string) (Reporter, error) {
	var writer io.WriteCloser
	isStdErr := outputPath == "" || outputPath == "stderr"

	if isStdErr {
		writer = &nopWriteCloser{os.Stderr}
	} else {
		path, err := homedir.Expand(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to expand output path %s: %w", outputPath, err)
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	return NewWithWriter(format, writer)
}

// NewWithWriter creates a reporter that takes ownership of writer. The writer
// is closed if the format is not supported.
func NewWithWriter(format string, writer io.WriteCloser) (Reporter, error) {
	switch format {
	case "json":
		return NewJSONReporter(writer), nil
	case "text":
		return NewTextReporter(writer), nil
	default:
		writer.Close()
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
