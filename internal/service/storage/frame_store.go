package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"roadcheck/internal/logger"
)

// TimestampLayout is used as the filename prefix of stored frames.
const TimestampLayout = "2006-01-02_15-04_05.000"

// FrameStore writes annotated frames to disk.
type FrameStore struct {
	outputDir string
	logger    *logger.Logger
	now       func() time.Time
}

// NewFrameStore creates a FrameStore rooted at outputDir.
func NewFrameStore(outputDir string, logger *logger.Logger) *FrameStore {
	return &FrameStore{
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

// Filename builds the name of a frame stored at ts under tag.
func Filename(ts time.Time, tag string) string {
	return fmt.Sprintf("%s_%s.jpg", ts.Format(TimestampLayout), tag)
}

// Save writes JPEG data and returns the full path of the new file.
func (s *FrameStore) Save(data []byte, tag string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("error creating directory: %w", err)
	}

	filename := Filename(s.now(), tag)
	fullpath := filepath.Join(s.outputDir, filename)

	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("error saving image %s: %w", filename, err)
	}

	s.logger.Info("Saved annotated frame to %s", fullpath)
	return fullpath, nil
}
