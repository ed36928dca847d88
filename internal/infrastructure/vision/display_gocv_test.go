//go:build gocv
// +build gocv

package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplay_EmptyImage(t *testing.T) {
	d := NewDisplay()
	require.ErrorIs(t, d.Show("empty", nil), ErrNoDisplay)
	require.ErrorIs(t, d.Show("empty", image.NewRGBA(image.Rectangle{})), ErrNoDisplay)
}
