// Package safety decides whether driving forward is safe given the cars and
// stop signs detected in a single frame.
package safety

import (
	"errors"
	"fmt"

	"roadcheck/internal/models"
)

// ErrInvalidParams is returned by Params.Validate for unusable tuning values.
var ErrInvalidParams = errors.New("invalid safety parameters")

// Params holds the path geometry and size threshold of the heuristic.
type Params struct {
	// Lanes is the number of equal vertical strips the image width is split into.
	Lanes int
	// PathLane is the zero-based strip the vehicle is heading into.
	PathLane int
	// MinWidthRatio is the share of the image width above which a car is "large".
	MinWidthRatio float64
}

// DefaultParams splits the frame into thirds and treats cars wider than 15% as large.
func DefaultParams() Params {
	return Params{
		Lanes:         3,
		PathLane:      1,
		MinWidthRatio: 0.15,
	}
}

// Validate reports whether the parameters describe a usable path.
func (p Params) Validate() error {
	if p.Lanes < 1 {
		return fmt.Errorf("%w: lanes must be at least 1, got %d", ErrInvalidParams, p.Lanes)
	}
	if p.PathLane < 0 || p.PathLane >= p.Lanes {
		return fmt.Errorf("%w: path lane %d outside [0, %d)", ErrInvalidParams, p.PathLane, p.Lanes)
	}
	if p.MinWidthRatio < 0 || p.MinWidthRatio > 1 {
		return fmt.Errorf("%w: min width ratio %v outside [0, 1]", ErrInvalidParams, p.MinWidthRatio)
	}
	return nil
}

// PathBounds returns the left and right pixel borders of the path lane.
func (p Params) PathBounds(imageWidth int) (left, right int) {
	left = imageWidth * p.PathLane / p.Lanes
	right = imageWidth * (p.PathLane + 1) / p.Lanes
	return left, right
}

// Decide returns true when it is safe to drive forward.
//
// Any stop sign blocks. With no cars the road is clear. Otherwise a car blocks
// when its box overlaps the path lane and it is wider than MinWidthRatio of the
// image. A non-positive width with cars present blocks.
func (p Params) Decide(cars, stops []models.Detection, imageWidth int) bool {
	if len(stops) > 0 {
		return false
	}

	if len(cars) == 0 {
		return true
	}

	if imageWidth <= 0 {
		return false
	}

	left, right := p.PathBounds(imageWidth)

	for _, car := range cars {
		inPath := car.X+car.Width > left && car.X < right
		isBig := float64(car.Width)/float64(imageWidth) > p.MinWidthRatio
		if inPath && isBig {
			return false
		}
	}

	return true
}

// Decide applies DefaultParams.
func Decide(cars, stops []models.Detection, imageWidth int) bool {
	return DefaultParams().Decide(cars, stops, imageWidth)
}

// Evaluate runs Decide and bundles the verdict with its inputs.
func (p Params) Evaluate(cars, stops []models.Detection, imageWidth int) models.Verdict {
	return models.Verdict{
		Safe:  p.Decide(cars, stops, imageWidth),
		Cars:  cars,
		Stops: stops,
	}
}
