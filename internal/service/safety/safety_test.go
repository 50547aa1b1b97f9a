package safety

import (
	"errors"
	"testing"

	"roadcheck/internal/models"
)

func car(x, width int) models.Detection {
	return models.Detection{Label: "Car", X: x, Y: 50, Width: width, Height: width}
}

func stop(x int) models.Detection {
	return models.Detection{Label: "Stop", X: x, Y: 10, Width: 20, Height: 20}
}

func TestDecide_StopSignAlwaysBlocks(t *testing.T) {
	carSets := [][]models.Detection{
		nil,
		{},
		{car(0, 10)},
		{car(100, 60)},
		{car(0, 10), car(280, 15)},
	}

	for _, width := range []int{0, 1, 300, 1920} {
		for _, cars := range carSets {
			if Decide(cars, []models.Detection{stop(5)}, width) {
				t.Errorf("Expected stop sign to block (width=%d, cars=%v)", width, cars)
			}
		}
	}
}

func TestDecide_EmptyInputsAreSafe(t *testing.T) {
	for _, width := range []int{-5, 0, 1, 300, 4096} {
		if !Decide(nil, nil, width) {
			t.Errorf("Expected safe with no detections at width %d", width)
		}
		if !Decide([]models.Detection{}, []models.Detection{}, width) {
			t.Errorf("Expected safe with empty slices at width %d", width)
		}
	}
}

func TestDecide_Width300(t *testing.T) {
	tests := []struct {
		name     string
		cars     []models.Detection
		expected bool
	}{
		{"large car in path", []models.Detection{car(100, 60)}, false},
		{"small car outside path", []models.Detection{car(0, 30)}, true},
		{"small car in path", []models.Detection{car(140, 20)}, true},
		{"large car left of path", []models.Detection{car(0, 100)}, true},
		{"large car touching left border from outside", []models.Detection{car(40, 60)}, true},
		{"large car one pixel into path", []models.Detection{car(41, 60)}, false},
		{"large car starting at right border", []models.Detection{car(200, 60)}, true},
		{"large car starting one pixel before right border", []models.Detection{car(199, 60)}, false},
		{"width exactly 15 percent", []models.Detection{car(120, 45)}, true},
		{"width just above 15 percent", []models.Detection{car(120, 46)}, false},
		{"one blocking among many", []models.Detection{car(0, 20), car(250, 40), car(110, 80)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.cars, nil, 300); got != tt.expected {
				t.Errorf("Decide() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDecide_ZeroWidthWithCarsBlocks(t *testing.T) {
	if Decide([]models.Detection{car(0, 10)}, nil, 0) {
		t.Error("Expected zero width with cars to block")
	}
}

func TestParams_PathBoundsMatchThirds(t *testing.T) {
	p := DefaultParams()
	for _, width := range []int{1, 2, 10, 299, 300, 301, 1280} {
		left, right := p.PathBounds(width)
		if left != width/3 || right != 2*width/3 {
			t.Errorf("width %d: got (%d,%d), expected (%d,%d)", width, left, right, width/3, 2*width/3)
		}
	}
}

func TestParams_CustomRatio(t *testing.T) {
	p := DefaultParams()
	p.MinWidthRatio = 0.25

	if !p.Decide([]models.Detection{car(100, 60)}, nil, 300) {
		t.Error("Expected 20% wide car to pass with 25% threshold")
	}
	if p.Decide([]models.Detection{car(100, 90)}, nil, 300) {
		t.Error("Expected 30% wide car to block with 25% threshold")
	}
}

func TestParams_CustomLanes(t *testing.T) {
	p := Params{Lanes: 4, PathLane: 3, MinWidthRatio: 0.1}

	// Right quarter of a 400px frame is [300, 400).
	if !p.Decide([]models.Detection{car(150, 100)}, nil, 400) {
		t.Error("Expected car outside right quarter to be safe")
	}
	if p.Decide([]models.Detection{car(290, 60)}, nil, 400) {
		t.Error("Expected car overlapping right quarter to block")
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"defaults", DefaultParams(), false},
		{"single lane", Params{Lanes: 1, PathLane: 0, MinWidthRatio: 0.5}, false},
		{"zero lanes", Params{Lanes: 0, PathLane: 0, MinWidthRatio: 0.15}, true},
		{"path lane too big", Params{Lanes: 3, PathLane: 3, MinWidthRatio: 0.15}, true},
		{"negative path lane", Params{Lanes: 3, PathLane: -1, MinWidthRatio: 0.15}, true},
		{"ratio above one", Params{Lanes: 3, PathLane: 1, MinWidthRatio: 1.5}, true},
		{"negative ratio", Params{Lanes: 3, PathLane: 1, MinWidthRatio: -0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("Expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestEvaluate_KeepsInputs(t *testing.T) {
	cars := []models.Detection{car(100, 60)}
	stops := []models.Detection{stop(0)}

	v := DefaultParams().Evaluate(cars, stops, 300)
	if v.Safe {
		t.Error("Expected blocked verdict")
	}
	if len(v.Cars) != 1 || len(v.Stops) != 1 {
		t.Errorf("Expected verdict to carry inputs, got %+v", v)
	}
}
