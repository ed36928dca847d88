//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplay_UnavailableWithoutGocv(t *testing.T) {
	err := NewDisplay().Show("01_missing_hole_01", image.NewGray(image.Rect(0, 0, 4, 4)))
	require.ErrorIs(t, err, ErrNoDisplay)
}
