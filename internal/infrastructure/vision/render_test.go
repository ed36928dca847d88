package vision

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pcb-inspector/internal/domain/entity"
)

func grayBoard(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 90, G: 90, B: 90, A: 255})
		}
	}
	return img
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 == 255 && g>>8 == 0 && b>>8 == 0
}

func TestOverlay_HighlightBite(t *testing.T) {
	src := grayBoard(100, 100)
	out := NewOverlay().Highlight(src, []entity.Detection{
		{Kind: entity.KindMouseBite, Point: entity.Pt(50, 50), MidHeight: 7.5},
	})

	// подпись начинается правее окружности, левую половину не задевает
	require.True(t, isRed(out.At(35, 50)))
	require.True(t, isRed(out.At(50, 35)))
	require.True(t, isRed(out.At(50, 65)))
	require.False(t, isRed(out.At(50, 50)))
	// исходник не меняется
	require.False(t, isRed(src.At(35, 50)))
}

func TestOverlay_HighlightHole(t *testing.T) {
	outline := entity.Contour{entity.Pt(10, 10), entity.Pt(10, 30), entity.Pt(30, 30), entity.Pt(30, 10)}
	out := NewOverlay().Highlight(grayBoard(120, 60), []entity.Detection{
		{Kind: entity.KindMissingHole, Point: entity.Pt(20, 20), Roundness: 78.5, Area: 400, Outline: outline},
	})

	require.True(t, isRed(out.At(10, 20)))
	require.True(t, isRed(out.At(20, 30)))
	require.False(t, isRed(out.At(20, 20)))
}

func TestFileStore_SaveLoad(t *testing.T) {
	store := NewFileStore()
	path := filepath.Join(t.TempDir(), "Missing_hole", "0.png")

	require.NoError(t, store.Save(path, grayBoard(40, 30)))

	img, err := store.Load(path)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())

	_, err = store.Load(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestFileStore_EncodeDecode(t *testing.T) {
	store := NewFileStore()
	data, err := store.Encode(grayBoard(16, 8))
	require.NoError(t, err)

	img, err := store.Decode(data)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())

	_, err = store.Decode([]byte("not an image"))
	require.Error(t, err)
}
