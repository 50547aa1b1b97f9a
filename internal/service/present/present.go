// Package present shows an annotated frame to the user: in a desktop window,
// as a file on disk, or to browser viewers over a websocket.
package present

import (
	"context"
	"fmt"

	"roadcheck/internal/config"
	"roadcheck/internal/logger"
	"roadcheck/internal/service/ai"
	"roadcheck/internal/service/storage"
)

// Presenter displays one annotated frame under a title.
type Presenter interface {
	Present(ctx context.Context, frame *ai.Frame, title string) error
}

// New returns the presenter selected by cfg.Presenter.
func New(cfg *config.Config, logger *logger.Logger) (Presenter, error) {
	switch cfg.Presenter {
	case config.PresenterWindow:
		return NewWindowPresenter("roadcheck", logger), nil
	case config.PresenterFile:
		return NewFilePresenter(storage.NewFrameStore(cfg.OutputDirectory, logger), logger), nil
	case config.PresenterWeb:
		return NewWebPresenter(fmt.Sprintf(":%d", cfg.Port), cfg.LogDirectory, logger), nil
	default:
		return nil, fmt.Errorf("unknown presenter %q", cfg.Presenter)
	}
}
