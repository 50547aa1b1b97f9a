package repository

import "roadcheck/internal/models"

// RunRepository defines the interface for journaled pipeline runs.
type RunRepository interface {
	// Create operations
	Insert(run *models.Run) error

	// Read operations
	GetByID(id string) (*models.Run, error)
	GetRecent(limit int) ([]models.Run, error)
	Count() (int, error)
	GetStats() (*models.RunStats, error)

	// Delete operations
	Delete(id string) error
	DeleteAll() error
}

// DetectionRepository defines the interface for detection data operations.
type DetectionRepository interface {
	// Create operations
	InsertBatch(detections []models.Detection) error

	// Read operations
	GetByRunID(runID string) ([]models.Detection, error)
}
