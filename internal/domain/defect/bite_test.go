package defect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pcb-inspector/internal/domain/entity"
)

// profileContour строит контур x = i, y = h(i) для i в [0, n).
func profileContour(n int, h func(i int) int) entity.Contour {
	c := make(entity.Contour, n)
	for i := range c {
		c[i] = entity.Pt(i, h(i))
	}
	return c
}

// tent прямая база с треугольным выкусом высотой 6 над точкой 20.
func tent(i int) int {
	d := i - 20
	if d < 0 {
		d = -d
	}
	if d >= 6 {
		return 0
	}
	return 6 - d
}

// plateau выкус с плоской вершиной на [20, 22].
func plateau(i int) int {
	switch {
	case i <= 14 || i >= 28:
		return 0
	case i < 20:
		return i - 14
	case i <= 22:
		return 6
	default:
		return 28 - i
	}
}

func biteParams() BiteParams {
	return BiteParams{SnakeLength: 20, CheckLength: 4, MinHeight: 3}
}

func TestDetectMouseBites_SharpApex(t *testing.T) {
	found, err := DetectMouseBites([]entity.Contour{profileContour(41, tent)}, biteParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, entity.Pt(20, 6), found[0].Point)
	require.Equal(t, entity.KindMouseBite, found[0].Kind)
	require.InDelta(t, 6, found[0].MidHeight, 1e-9)
}

func TestDetectMouseBites_StraightLine(t *testing.T) {
	line := profileContour(100, func(int) int { return 0 })
	found, err := DetectMouseBites([]entity.Contour{line}, biteParams())
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestDetectMouseBites_MaxHeight(t *testing.T) {
	p := biteParams()
	p.MaxHeight = Limit(5)
	found, err := DetectMouseBites([]entity.Contour{profileContour(41, tent)}, p)
	require.NoError(t, err)
	require.Empty(t, found)

	p.MaxHeight = Limit(7)
	found, err = DetectMouseBites([]entity.Contour{profileContour(41, tent)}, p)
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestDetectMouseBites_OverlappingWindowsReserved(t *testing.T) {
	c := profileContour(41, plateau)
	p := biteParams()

	// соседние окна тоже проходят первичный отбор
	for _, j := range []int{10, 11, 12} {
		mid := c[j+p.SnakeLength/2]
		require.True(t, p.isCandidate(c, j, float64(mid.Y)), "window %d", j)
	}

	found, err := DetectMouseBites([]entity.Contour{c}, p)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, entity.Pt(20, 6), found[0].Point)
}

func TestDetectMouseBites_NoWraparound(t *testing.T) {
	// Единственное подходящее окно начинается с 10 и заканчивается точкой 30.
	short := profileContour(30, tent)
	found, err := DetectMouseBites([]entity.Contour{short}, biteParams())
	require.NoError(t, err)
	require.Empty(t, found)

	exact := profileContour(31, tent)
	found, err = DetectMouseBites([]entity.Contour{exact}, biteParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestDetectMouseBites_ShortContour(t *testing.T) {
	found, err := DetectMouseBites([]entity.Contour{profileContour(20, tent), nil}, biteParams())
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestDetectMouseBites_ReservationIsPerContour(t *testing.T) {
	a := profileContour(41, tent)
	b := make(entity.Contour, len(a))
	for i, pt := range a {
		b[i] = entity.Pt(pt.X+100, pt.Y+50)
	}

	found, err := DetectMouseBites([]entity.Contour{a, b}, biteParams())
	require.NoError(t, err)
	require.Equal(t, []entity.Point{entity.Pt(20, 6), entity.Pt(120, 56)}, entity.Points(found))
}

func TestDetectMouseBites_Deterministic(t *testing.T) {
	contours := []entity.Contour{profileContour(41, tent), profileContour(41, plateau)}
	first, err := DetectMouseBites(contours, biteParams())
	require.NoError(t, err)
	second, err := DetectMouseBites(contours, biteParams())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBiteParams_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    BiteParams
	}{
		{"zero check", BiteParams{SnakeLength: 20, CheckLength: 0, MinHeight: 3}},
		{"snake not longer than check", BiteParams{SnakeLength: 4, CheckLength: 4, MinHeight: 3}},
		{"check reaches half", BiteParams{SnakeLength: 20, CheckLength: 10, MinHeight: 3}},
		{"negative min height", BiteParams{SnakeLength: 20, CheckLength: 4, MinHeight: -1}},
		{"max not above min", BiteParams{SnakeLength: 20, CheckLength: 4, MinHeight: 3, MaxHeight: Limit(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DetectMouseBites(nil, tt.p)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	require.NoError(t, BiteParams{SnakeLength: 50, CheckLength: 12, MinHeight: 4}.Validate())
}

func TestDetectMouseBites_RejectedWindows(t *testing.T) {
	tests := []struct {
		name string
		h    func(i int) int
	}{
		{
			// склон начинается раньше c[j+CheckLength]: опорная прямая уходит от хорды
			name: "shape differs from chord",
			h: func(i int) int {
				d := i - 20
				if d < 0 {
					d = -d
				}
				if d >= 7 {
					return 0
				}
				return 7 - d
			},
		},
		{
			// дальний край окна приподнят, среднее отклонение 1.5
			name: "far edge not straight",
			h: func(i int) int {
				if i >= 27 && i <= 29 {
					return 2
				}
				return tent(i)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := DetectMouseBites([]entity.Contour{profileContour(41, tt.h)}, biteParams())
			require.NoError(t, err)
			require.Empty(t, found)
		})
	}
}
