package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"roadcheck/internal/models"

	"github.com/google/uuid"
)

// RunRepository implements repository.RunRepository for SQLite.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Insert adds a new run record. An empty ID is replaced with a fresh UUID
// and a zero CreatedAt with the current time.
func (r *RunRepository) Insert(run *models.Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		INSERT INTO runs (id, image_path, width, height, safe, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.ImagePath, run.Width, run.Height, run.Safe, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// GetByID retrieves a run by its ID. It returns nil, nil when no run matches.
func (r *RunRepository) GetByID(id string) (*models.Run, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var run models.Run
	err := r.db.Conn().QueryRow(`
		SELECT id, image_path, width, height, safe, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.ImagePath, &run.Width, &run.Height, &run.Safe, &run.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// GetRecent returns up to limit runs, newest first.
func (r *RunRepository) GetRecent(limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 10
	}

	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, image_path, width, height, safe, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.ImagePath, &run.Width, &run.Height, &run.Safe, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Count returns the number of journaled runs.
func (r *RunRepository) Count() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// GetStats returns run totals and detection counts per label.
func (r *RunRepository) GetStats() (*models.RunStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	stats := &models.RunStats{LabelCounts: make(map[string]int)}

	err := r.db.Conn().QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(safe), 0) FROM runs
	`).Scan(&stats.TotalRuns, &stats.SafeRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to query run totals: %w", err)
	}

	rows, err := r.db.Conn().Query(`SELECT label, COUNT(*) FROM detections GROUP BY label`)
	if err != nil {
		return nil, fmt.Errorf("failed to query label counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", err)
		}
		stats.LabelCounts[label] = count
	}

	return stats, rows.Err()
}

// Delete removes a single run and, through the foreign key, its detections.
func (r *RunRepository) Delete(id string) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	return nil
}

// DeleteAll removes every run and, through the foreign key, every detection.
func (r *RunRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("failed to delete runs: %w", err)
	}
	return nil
}
