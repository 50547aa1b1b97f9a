package ai

import (
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"os"

	"roadcheck/internal/logger"
	"roadcheck/internal/models"

	"gocv.io/x/gocv"
)

const (
	// DefaultMinObjectSize is the smallest box side, in pixels, the cascade reports.
	DefaultMinObjectSize = 20
	// DefaultScaleFactor is the OpenCV default image pyramid step.
	DefaultScaleFactor = 1.1
	// DefaultMinNeighbors is the OpenCV default number of overlapping hits required.
	DefaultMinNeighbors = 3
)

// DetectParams controls the multi-scale cascade scan.
type DetectParams struct {
	MinSize      image.Point
	ScaleFactor  float64
	MinNeighbors int
}

// DefaultDetectParams mirrors the OpenCV defaults with a 20x20 minimum size.
func DefaultDetectParams() DetectParams {
	return DetectParams{
		MinSize:      image.Pt(DefaultMinObjectSize, DefaultMinObjectSize),
		ScaleFactor:  DefaultScaleFactor,
		MinNeighbors: DefaultMinNeighbors,
	}
}

// CascadeDetector runs a Haar cascade for a single object class.
// Detection is best-effort: failures are logged and yield no detections.
type CascadeDetector struct {
	label      string
	modelPath  string
	params     DetectParams
	classifier gocv.CascadeClassifier
	loaded     bool
	logger     *logger.Logger
}

// NewCascadeDetector creates a detector labelled label backed by the cascade at modelPath.
// A missing or unreadable model is reported as a warning, not an error.
func NewCascadeDetector(label, modelPath string, params DetectParams, logger *logger.Logger) *CascadeDetector {
	detector := &CascadeDetector{
		label:      label,
		modelPath:  modelPath,
		params:     params,
		classifier: gocv.NewCascadeClassifier(),
		logger:     logger,
	}

	if err := detector.initializeClassifier(); err != nil {
		detector.logger.Warning("%s detection failed: %v", label, err)
	}

	return detector
}

// initializeClassifier loads the cascade XML file.
func (d *CascadeDetector) initializeClassifier() error {
	if _, err := os.Stat(d.modelPath); err != nil {
		return fmt.Errorf("cascade file not found: %s", d.modelPath)
	}

	// OpenCV aborts the process on malformed XML instead of returning false.
	if err := checkWellFormed(d.modelPath); err != nil {
		return fmt.Errorf("corrupt cascade %s: %v", d.modelPath, err)
	}

	if !d.classifier.Load(d.modelPath) {
		return fmt.Errorf("failed to load cascade: %s", d.modelPath)
	}

	d.loaded = true
	return nil
}

// checkWellFormed walks every XML token of the file at path.
func checkWellFormed(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := xml.NewDecoder(f)
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Label returns the human-readable object class.
func (d *CascadeDetector) Label() string {
	return d.label
}

// Loaded reports whether the cascade model was read successfully.
func (d *CascadeDetector) Loaded() bool {
	return d.loaded
}

// Detect scans a grayscale image and returns one Detection per match.
func (d *CascadeDetector) Detect(gray gocv.Mat) []models.Detection {
	if !d.loaded {
		d.logger.Warning("%s detection failed: cascade not loaded (%s)", d.label, d.modelPath)
		return []models.Detection{}
	}

	if gray.Empty() {
		d.logger.Warning("%s detection failed: empty input image", d.label)
		return []models.Detection{}
	}

	rects := d.classifier.DetectMultiScaleWithParams(
		gray,
		d.params.ScaleFactor,
		d.params.MinNeighbors,
		0,
		d.params.MinSize,
		image.Point{},
	)

	detections := make([]models.Detection, 0, len(rects))
	for _, r := range rects {
		detections = append(detections, models.NewDetection(d.label, r))
	}

	d.logger.Info("%s detected: %d", d.label, len(detections))
	return detections
}

// Close releases the underlying classifier.
func (d *CascadeDetector) Close() error {
	return d.classifier.Close()
}
