package present

import (
	"context"

	"roadcheck/internal/logger"
	"roadcheck/internal/service/ai"

	"gocv.io/x/gocv"
)

// WindowPresenter opens a native window and waits for a key press.
type WindowPresenter struct {
	name   string
	logger *logger.Logger
}

func NewWindowPresenter(name string, logger *logger.Logger) *WindowPresenter {
	return &WindowPresenter{name: name, logger: logger}
}

// Present blocks until a key is pressed, the window is closed or ctx is cancelled.
func (p *WindowPresenter) Present(ctx context.Context, frame *ai.Frame, title string) error {
	window := gocv.NewWindow(p.name)
	defer window.Close()

	window.SetWindowTitle(title)
	window.IMShow(frame.Display)
	p.logger.Info("Showing frame, press any key to exit")

	for {
		if ctx.Err() != nil {
			return nil
		}
		if window.WaitKey(100) >= 0 || !window.IsOpen() {
			return nil
		}
	}
}
