package ai

import (
	"errors"
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// ErrLoadFailed is returned when an image file cannot be decoded.
var ErrLoadFailed = errors.New("failed to load image")

// Frame holds one decoded image in the two views the pipeline needs.
// Display stays in BGR order because that is what gocv windows and encoders expect.
type Frame struct {
	Path    string
	Display gocv.Mat
	Gray    gocv.Mat
}

// LoadFrame reads the file at path and decodes it with DecodeFrame.
func LoadFrame(path string) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, path, err)
	}

	return DecodeFrame(path, data)
}

// DecodeFrame builds a Frame from encoded image bytes.
func DecodeFrame(name string, data []byte) (*Frame, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, name, err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("%w: %s", ErrLoadFailed, name)
	}

	return newFrame(name, mat)
}

func newFrame(path string, mat gocv.Mat) (*Frame, error) {
	gray := gocv.NewMat()
	if err := gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray); err != nil {
		mat.Close()
		gray.Close()
		return nil, fmt.Errorf("failed to convert image to grayscale: %v", err)
	}

	return &Frame{
		Path:    path,
		Display: mat,
		Gray:    gray,
	}, nil
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.Display.Cols()
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.Display.Rows()
}

// RGB returns a copy of the display view in RGB channel order.
// The caller owns the returned Mat.
func (f *Frame) RGB() (gocv.Mat, error) {
	rgb := gocv.NewMat()
	if err := gocv.CvtColor(f.Display, &rgb, gocv.ColorBGRToRGB); err != nil {
		rgb.Close()
		return gocv.NewMat(), fmt.Errorf("failed to convert image to RGB: %v", err)
	}
	return rgb, nil
}

// EncodeJPEG re-encodes the display view.
func (f *Frame) EncodeJPEG() ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, f.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %v", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases both views.
func (f *Frame) Close() error {
	errDisplay := f.Display.Close()
	errGray := f.Gray.Close()
	return errors.Join(errDisplay, errGray)
}
