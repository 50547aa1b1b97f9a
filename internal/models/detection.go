package models

import "image"

// Detection represents one bounding box reported by a cascade classifier.
type Detection struct {
	ID     int64  `json:"id"`
	RunID  string `json:"run_id"`
	Label  string `json:"label"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// NewDetection builds a Detection from an image.Rectangle.
func NewDetection(label string, r image.Rectangle) Detection {
	return Detection{
		Label:  label,
		X:      r.Min.X,
		Y:      r.Min.Y,
		Width:  r.Dx(),
		Height: r.Dy(),
	}
}

// Rect returns the detection as an image.Rectangle.
func (d Detection) Rect() image.Rectangle {
	return image.Rect(d.X, d.Y, d.X+d.Width, d.Y+d.Height)
}

// Center returns the midpoint of the box.
func (d Detection) Center() image.Point {
	return image.Pt(d.X+d.Width/2, d.Y+d.Height/2)
}
