//go:build !gocv
// +build !gocv

package vision

import (
	"errors"
	"image"

	"pcb-inspector/internal/domain/port"
)

// ErrNoDisplay показ окна недоступен без OpenCV.
var ErrNoDisplay = errors.New("gocv build tag is not enabled")

// Display заглушка окна просмотра.
type Display struct{}

// NewDisplay создаёт заглушку (без OpenCV).
func NewDisplay() *Display {
	return &Display{}
}

// Show возвращает ошибку, если сборка без тега gocv.
func (d *Display) Show(string, image.Image) error {
	return ErrNoDisplay
}

var _ port.Display = (*Display)(nil)
