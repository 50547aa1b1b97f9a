package models

import (
	"fmt"
	"time"
)

// Verdict is the outcome of the forward-safety check together with its inputs.
type Verdict struct {
	Safe  bool
	Cars  []Detection
	Stops []Detection
}

// Title is the caption shown with the annotated frame.
func (v Verdict) Title() string {
	return fmt.Sprintf("Driving Allowed: %t", v.Safe)
}

// Run represents a single journaled pipeline execution.
type Run struct {
	ID         string      `json:"id"`
	ImagePath  string      `json:"image_path"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Safe       bool        `json:"safe"`
	CreatedAt  time.Time   `json:"created_at"`
	Detections []Detection `json:"detections,omitempty"`
}

// RunStats contains totals over the journal.
type RunStats struct {
	TotalRuns   int            `json:"total_runs"`
	SafeRuns    int            `json:"safe_runs"`
	LabelCounts map[string]int `json:"label_counts"`
}
