package storage

import (
	"fmt"

	"roadcheck/internal/logger"
	"roadcheck/internal/models"
	"roadcheck/internal/repository"
)

// Journal records pipeline runs and their detections.
type Journal struct {
	runRepo       repository.RunRepository
	detectionRepo repository.DetectionRepository
	logger        *logger.Logger
}

// NewJournal creates a Journal on top of the given repositories.
func NewJournal(runRepo repository.RunRepository, detectionRepo repository.DetectionRepository, logger *logger.Logger) *Journal {
	return &Journal{
		runRepo:       runRepo,
		detectionRepo: detectionRepo,
		logger:        logger,
	}
}

// Record stores run and its detections. The run ID is filled in on success.
// When the detections cannot be stored the run row is removed again, so the
// journal never holds a run without its detections.
func (j *Journal) Record(run *models.Run) error {
	if err := j.runRepo.Insert(run); err != nil {
		return fmt.Errorf("error saving run to database: %w", err)
	}

	if len(run.Detections) > 0 {
		for i := range run.Detections {
			run.Detections[i].RunID = run.ID
		}
		if err := j.detectionRepo.InsertBatch(run.Detections); err != nil {
			if delErr := j.runRepo.Delete(run.ID); delErr != nil {
				j.logger.Error("Failed to remove incomplete run %s: %v", run.ID, delErr)
			}
			return fmt.Errorf("error saving detections to database: %w", err)
		}
	}

	j.logger.Info("Journaled run %s (%d detections)", run.ID, len(run.Detections))
	return nil
}
