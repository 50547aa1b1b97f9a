package app

import (
	"context"
	"fmt"
	"image"

	"roadcheck/internal/config"
	"roadcheck/internal/logger"
	"roadcheck/internal/models"
	"roadcheck/internal/service/ai"
	"roadcheck/internal/service/present"
)

const FaceLabel = "Face"

// FaceApp marks every face in one fixed image with a circle.
type FaceApp struct {
	imagePath string
	detector  Detector
	presenter present.Presenter
	logger    *logger.Logger
}

func NewFaceApp(cfg *config.Config, logger *logger.Logger) (*FaceApp, error) {
	presenter, err := present.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	params := ai.DetectParams{
		MinSize:      image.Point{},
		ScaleFactor:  cfg.ScaleFactor,
		MinNeighbors: cfg.FaceMinNeighbors,
	}

	return &FaceApp{
		imagePath: cfg.FaceImagePath,
		detector:  ai.NewCascadeDetector(FaceLabel, cfg.FaceCascadePath, params, logger),
		presenter: presenter,
		logger:    logger,
	}, nil
}

// Run detects, marks and presents the faces; it returns what was found.
func (a *FaceApp) Run(ctx context.Context) ([]models.Detection, error) {
	frame, err := ai.LoadFrame(a.imagePath)
	if err != nil {
		return nil, err
	}
	defer frame.Close()

	faces := a.detector.Detect(frame.Gray)
	for _, face := range faces {
		a.logger.Info("%s at x=%d y=%d w=%d h=%d", FaceLabel, face.X, face.Y, face.Width, face.Height)
	}

	if err := ai.DrawCircles(&frame.Display, faces, ai.CarColor); err != nil {
		a.logger.Warning("Failed to draw face circles: %v", err)
	}

	title := fmt.Sprintf("Faces detected: %d", len(faces))
	if err := a.presenter.Present(ctx, frame, title); err != nil {
		return faces, fmt.Errorf("failed to present result: %w", err)
	}

	return faces, nil
}

func (a *FaceApp) Close() error {
	return a.detector.Close()
}
