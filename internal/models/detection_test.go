package models

import (
	"image"
	"testing"
)

func TestNewDetection_RoundTripsRect(t *testing.T) {
	r := image.Rect(100, 40, 160, 90)
	det := NewDetection("Car", r)

	if det.X != 100 || det.Y != 40 || det.Width != 60 || det.Height != 50 {
		t.Errorf("Unexpected detection: %+v", det)
	}
	if det.Rect() != r {
		t.Errorf("Expected rect %v, got %v", r, det.Rect())
	}
}

func TestDetection_Center(t *testing.T) {
	det := Detection{X: 10, Y: 20, Width: 30, Height: 41}
	if c := det.Center(); c != image.Pt(25, 40) {
		t.Errorf("Expected center (25,40), got %v", c)
	}
}

func TestVerdict_Title(t *testing.T) {
	if got := (Verdict{Safe: true}).Title(); got != "Driving Allowed: true" {
		t.Errorf("Unexpected title: %s", got)
	}
	if got := (Verdict{Safe: false}).Title(); got != "Driving Allowed: false" {
		t.Errorf("Unexpected title: %s", got)
	}
}
