package reporting

import (
	"fmt"
	"io"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/randtype/internal/observability"
)

// JSONReporter writes each session as an indented JSON document.
type JSONReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
}

// NewJSONReporter creates a JSON reporter owning writer.
func NewJSONReporter(writer io.WriteCloser) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		logger: observability.GetLogger().Named("json_reporter"),
	}
}

func (r *JSONReporter) Write(s *Session) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s); err != nil {
		r.logger.Error("Failed to encode session report", zap.Error(err))
		return fmt.Errorf("failed to encode session report: %w", err)
	}
	return nil
}

func (r *JSONReporter) Close() error {
	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("failed to close output writer: %w", err)
	}
	return nil
}
