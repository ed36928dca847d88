//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	"pcb-inspector/internal/domain/port"
)

// ErrNoDisplay показывать нечего: картинка пустая.
var ErrNoDisplay = errors.New("nothing to display")

// Display показывает картинку в окне OpenCV до нажатия клавиши.
type Display struct{}

// NewDisplay создаёт окно просмотра.
func NewDisplay() *Display {
	return &Display{}
}

// Show блокируется, пока пользователь не нажмёт клавишу в окне.
func (d *Display) Show(title string, img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrNoDisplay
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return err
	}
	defer mat.Close()
	if mat.Empty() {
		return ErrNoDisplay
	}

	window := gocv.NewWindow(title)
	defer window.Close()

	window.IMShow(mat)
	window.WaitKey(0)
	return nil
}

var _ port.Display = (*Display)(nil)
