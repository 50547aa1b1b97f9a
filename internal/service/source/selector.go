package source

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"roadcheck/internal/logger"
)

// ErrNoImages is returned when a directory is missing or holds no usable images.
var ErrNoImages = errors.New("no images found")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsImageFile reports whether name has a recognised image extension (case-insensitive).
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Selector picks one image from a directory at random.
type Selector struct {
	dir    string
	rng    *rand.Rand
	logger *logger.Logger
}

// NewSelector creates a Selector. rng must not be nil; pass a seeded source in tests.
func NewSelector(dir string, rng *rand.Rand, logger *logger.Logger) *Selector {
	return &Selector{
		dir:    dir,
		rng:    rng,
		logger: logger,
	}
}

// List returns the image files in the directory, sorted by name.
func (s *Selector) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w in folder %s: %v", ErrNoImages, s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in folder %s", ErrNoImages, s.dir)
	}
	return names, nil
}

// Pick returns the path of a randomly selected image.
func (s *Selector) Pick() (string, error) {
	names, err := s.List()
	if err != nil {
		return "", err
	}

	selected := names[s.rng.Intn(len(names))]
	s.logger.Info("Randomly selected image: %s", selected)

	return filepath.Join(s.dir, selected), nil
}
