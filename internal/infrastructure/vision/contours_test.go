package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"pcb-inspector/internal/domain/entity"
)

func maskWith(w, h int, on func(x, y int) bool) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if on(x, y) {
				m.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return m
}

func TestTraceBorders_SinglePixel(t *testing.T) {
	m := maskWith(5, 5, func(x, y int) bool { return x == 2 && y == 3 })
	contours := traceBorders(m)
	require.Equal(t, []entity.Contour{{entity.Pt(2, 3)}}, contours)
}

func TestTraceBorders_FilledSquare(t *testing.T) {
	m := maskWith(6, 6, func(x, y int) bool { return x >= 1 && x <= 3 && y >= 1 && y <= 3 })
	contours := traceBorders(m)
	require.Len(t, contours, 1)

	want := entity.Contour{
		entity.Pt(1, 1), entity.Pt(1, 2), entity.Pt(1, 3), entity.Pt(2, 3),
		entity.Pt(3, 3), entity.Pt(3, 2), entity.Pt(3, 1), entity.Pt(2, 1),
	}
	require.Equal(t, want, contours[0])

	corners := compressChain(contours[0])
	require.Equal(t, entity.Contour{entity.Pt(1, 1), entity.Pt(1, 3), entity.Pt(3, 3), entity.Pt(3, 1)}, corners)

	s := shapeOf(corners)
	require.InDelta(t, 4, s.Area, 1e-9)
	require.InDelta(t, 8, s.Perimeter, 1e-9)
	require.Equal(t, entity.Pt(2, 2), s.Centroid)
}

func TestTraceBorders_HoleBorder(t *testing.T) {
	m := maskWith(7, 7, func(x, y int) bool {
		inside := x >= 1 && x <= 5 && y >= 1 && y <= 5
		return inside && !(x == 3 && y == 3)
	})
	contours := traceBorders(m)
	require.Len(t, contours, 2)

	hole := contours[1]
	require.Equal(t, entity.Contour{entity.Pt(2, 3), entity.Pt(3, 2), entity.Pt(4, 3), entity.Pt(3, 4)}, hole)
	require.InDelta(t, 2, shapeOf(hole).Area, 1e-9)
	require.Equal(t, entity.Pt(3, 3), shapeOf(hole).Centroid)
}

func TestTraceBorders_OffsetBounds(t *testing.T) {
	m := image.NewGray(image.Rect(10, 20, 15, 25))
	m.SetGray(12, 22, color.Gray{Y: 255})
	require.Equal(t, []entity.Contour{{entity.Pt(12, 22)}}, traceBorders(m))
}

func TestShapeOf_Degenerate(t *testing.T) {
	s := shapeOf(entity.Contour{entity.Pt(4, 4), entity.Pt(5, 4)})
	require.Equal(t, 0.0, s.Area)
	require.InDelta(t, 2, s.Perimeter, 1e-9)
	require.Equal(t, degenerateCentroid, s.Centroid)

	s = shapeOf(nil)
	require.Equal(t, 0.0, s.Perimeter)
	require.Equal(t, degenerateCentroid, s.Centroid)
}

func TestPolygonMoments_OrientationIndependent(t *testing.T) {
	cw := entity.Contour{entity.Pt(0, 0), entity.Pt(4, 0), entity.Pt(4, 2), entity.Pt(0, 2)}
	ccw := entity.Contour{entity.Pt(0, 0), entity.Pt(0, 2), entity.Pt(4, 2), entity.Pt(4, 0)}

	require.Equal(t, polygonMoments(cw), polygonMoments(ccw))
	require.InDelta(t, 8, polygonMoments(cw).m00, 1e-9)
	require.Equal(t, entity.Pt(2, 1), polygonMoments(cw).centroid())
}
