package app

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"roadcheck/internal/config"
	"roadcheck/internal/logger"
	"roadcheck/internal/models"
	"roadcheck/internal/repository/sqlite"
	"roadcheck/internal/service/ai"
	"roadcheck/internal/service/present"
	"roadcheck/internal/service/safety"
	"roadcheck/internal/service/source"
	"roadcheck/internal/service/storage"

	"gocv.io/x/gocv"
)

const (
	CarLabel  = "Car"
	StopLabel = "Stop Sign"
)

// Detector finds one class of objects in a grayscale image.
type Detector interface {
	Detect(gray gocv.Mat) []models.Detection
	Close() error
}

// Journal records finished runs.
type Journal interface {
	Record(run *models.Run) error
}

type App struct {
	config       *config.Config
	logger       *logger.Logger
	selector     *source.Selector
	carDetector  Detector
	stopDetector Detector
	params       safety.Params
	presenter    present.Presenter
	journal      Journal
	db           *sqlite.DB
}

// NewApp wires the pipeline described by cfg.
func NewApp(cfg *config.Config, logger *logger.Logger) (*App, error) {
	params := safety.Params{
		Lanes:         cfg.Lanes,
		PathLane:      cfg.PathLane,
		MinWidthRatio: cfg.MinWidthRatio,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	presenter, err := present.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	selector := source.NewSelector(cfg.ImageDirectory, rand.New(rand.NewSource(seed)), logger)

	detectParams := ai.DetectParams{
		MinSize:      image.Pt(cfg.MinObjectSize, cfg.MinObjectSize),
		ScaleFactor:  cfg.ScaleFactor,
		MinNeighbors: cfg.MinNeighbors,
	}

	app := &App{
		config:       cfg,
		logger:       logger,
		selector:     selector,
		carDetector:  ai.NewCascadeDetector(CarLabel, cfg.CarCascadePath, detectParams, logger),
		stopDetector: ai.NewCascadeDetector(StopLabel, cfg.StopCascadePath, detectParams, logger),
		params:       params,
		presenter:    presenter,
	}

	if cfg.JournalPath != "" {
		db, err := sqlite.New(cfg.JournalPath)
		if err != nil {
			// Journal is optional; keep going without it.
			logger.Error("Journal disabled: %v", err)
		} else {
			app.db = db
			app.journal = storage.NewJournal(sqlite.NewRunRepository(db), sqlite.NewDetectionRepository(db), logger)
		}
	}

	return app, nil
}

// Run executes the pipeline once and returns the verdict.
func (a *App) Run(ctx context.Context) (models.Verdict, error) {
	imagePath, err := a.selector.Pick()
	if err != nil {
		return models.Verdict{}, err
	}

	frame, err := ai.LoadFrame(imagePath)
	if err != nil {
		return models.Verdict{}, err
	}
	defer frame.Close()

	cars := a.carDetector.Detect(frame.Gray)
	stops := a.stopDetector.Detect(frame.Gray)

	if err := ai.DrawBoxes(&frame.Display, cars, ai.CarColor, "Car"); err != nil {
		a.logger.Warning("Failed to draw car boxes: %v", err)
	}
	if err := ai.DrawBoxes(&frame.Display, stops, ai.StopColor, "Stop"); err != nil {
		a.logger.Warning("Failed to draw stop boxes: %v", err)
	}

	verdict := a.params.Evaluate(cars, stops, frame.Width())
	a.logger.Info("Driving allowed: %t", verdict.Safe)

	a.record(frame, verdict)

	if err := a.presenter.Present(ctx, frame, verdict.Title()); err != nil {
		return verdict, fmt.Errorf("failed to present result: %w", err)
	}

	return verdict, nil
}

// record journals the run when a journal is configured. Failures are only logged.
func (a *App) record(frame *ai.Frame, verdict models.Verdict) {
	if a.journal == nil {
		return
	}

	detections := make([]models.Detection, 0, len(verdict.Cars)+len(verdict.Stops))
	detections = append(detections, verdict.Cars...)
	detections = append(detections, verdict.Stops...)

	run := &models.Run{
		ImagePath:  frame.Path,
		Width:      frame.Width(),
		Height:     frame.Height(),
		Safe:       verdict.Safe,
		Detections: detections,
	}
	if err := a.journal.Record(run); err != nil {
		a.logger.Error("Failed to journal run: %v", err)
	}
}

// Close releases detectors and the journal database.
func (a *App) Close() error {
	a.carDetector.Close()
	a.stopDetector.Close()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
