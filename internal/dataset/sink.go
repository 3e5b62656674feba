package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileSink serializes datasets to the local filesystem.
type FileSink struct {
	logger *zap.Logger
}

// NewFileSink returns a sink logging through the given logger.
func NewFileSink(logger *zap.Logger) *FileSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{logger: logger}
}

// Write marshals v as indented JSON and writes it to path, creating parent
// directories as needed. Callers treat any error as fatal for the run so the
// two artifacts are produced together or not at all.
func (s *FileSink) Write(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	s.logger.Info("dataset written", zap.String("path", path), zap.Int("bytes", len(payload)))
	return nil
}
