package present

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"roadcheck/internal/logger"
	"roadcheck/internal/service/ai"
)

// FrameSaver persists an encoded frame.
type FrameSaver interface {
	Save(data []byte, tag string) (string, error)
}

// FilePresenter writes the frame, with its title burned in, to disk.
type FilePresenter struct {
	store  FrameSaver
	logger *logger.Logger
}

func NewFilePresenter(store FrameSaver, logger *logger.Logger) *FilePresenter {
	return &FilePresenter{store: store, logger: logger}
}

func (p *FilePresenter) Present(ctx context.Context, frame *ai.Frame, title string) error {
	if err := ai.DrawBanner(&frame.Display, title); err != nil {
		return err
	}

	data, err := frame.EncodeJPEG()
	if err != nil {
		return err
	}

	path, err := p.store.Save(data, Slug(title))
	if err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}

	p.logger.Info("%s -> %s", title, path)
	return nil
}

// Slug turns a title into a lowercase, dash-separated filename fragment.
func Slug(title string) string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "frame"
	}
	return strings.Join(fields, "-")
}
