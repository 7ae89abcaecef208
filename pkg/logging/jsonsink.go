package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewJSONFileSink opens (creating/truncating) path and returns a Logger that
// writes one JSON object per line to it, plus the underlying file so the
// caller can Close it when the build finishes. Grounded on the teacher's
// log.NewWithOptions construction in internal/logging/logger.go, swapping
// the text formatter for log.JSONFormatter and stderr for a file.
func NewJSONFileSink(path string) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		Formatter:       log.JSONFormatter,
		ReportTimestamp: true,
	})
	logger.SetLevel(log.DebugLevel)
	return logger, f, nil
}
