package ai

import (
	"fmt"
	"image"
	"image/color"

	"roadcheck/internal/models"

	"gocv.io/x/gocv"
)

const (
	// BoxThickness is the stroke width of detection rectangles.
	BoxThickness = 2
	// CircleThickness is the stroke width of detection circles.
	CircleThickness = 5
)

var (
	// CarColor marks car detections.
	CarColor = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	// StopColor marks stop sign detections.
	StopColor = color.RGBA{R: 255, G: 0, B: 0, A: 0}

	bannerBackground = color.RGBA{R: 0, G: 0, B: 0, A: 0}
	bannerText       = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

// DrawBoxes draws a rectangle and a text label for every detection.
func DrawBoxes(mat *gocv.Mat, detections []models.Detection, c color.RGBA, label string) error {
	for _, detection := range detections {
		err := gocv.Rectangle(mat, detection.Rect(), c, BoxThickness)
		if err != nil {
			return fmt.Errorf("failed to draw rectangle: %v", err)
		}

		pt := image.Pt(detection.X, detection.Y-5)
		err = gocv.PutText(mat, label, pt, gocv.FontHersheySimplex, 0.5, c, 1)
		if err != nil {
			return fmt.Errorf("failed to draw text: %v", err)
		}
	}

	return nil
}

// DrawCircles marks every detection with a circle inscribed in its box width.
func DrawCircles(mat *gocv.Mat, detections []models.Detection, c color.RGBA) error {
	for _, detection := range detections {
		err := gocv.Circle(mat, detection.Center(), detection.Width/2, c, CircleThickness)
		if err != nil {
			return fmt.Errorf("failed to draw circle: %v", err)
		}
	}

	return nil
}

// DrawBanner writes title on a dark strip across the top of the image.
func DrawBanner(mat *gocv.Mat, title string) error {
	strip := image.Rect(0, 0, mat.Cols(), 30)
	if err := gocv.Rectangle(mat, strip, bannerBackground, -1); err != nil {
		return fmt.Errorf("failed to draw banner: %v", err)
	}

	err := gocv.PutText(mat, title, image.Pt(10, 21), gocv.FontHersheySimplex, 0.7, bannerText, 2)
	if err != nil {
		return fmt.Errorf("failed to draw banner text: %v", err)
	}
	return nil
}
