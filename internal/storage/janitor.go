package storage

import (
	"os"

	"go.uber.org/zap"
)

// Janitor deletes temporary upload artifacts from local disk. The submission
// handler runs it over every collected temp path on both the success and the
// failure path.
type Janitor struct {
	logger *zap.Logger
}

// NewJanitor creates a Janitor.
func NewJanitor(logger *zap.Logger) *Janitor {
	return &Janitor{logger: logger.Named("Janitor")}
}

// Cleanup removes each path, best-effort. Missing files are fine; other
// failures are logged and skipped.
func (j *Janitor) Cleanup(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			j.logger.Warn("Failed to delete local file", zap.String("path", path), zap.Error(err))
			continue
		}
		j.logger.Debug("Deleted local file", zap.String("path", path))
	}
}
