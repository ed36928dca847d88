package defect

import (
	"fmt"
	"math"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/geometry"
)

// BiteParams настройки детектора выкусов.
type BiteParams struct {
	SnakeLength int      // ширина скользящего окна в точках контура
	CheckLength int      // сколько точек с каждого края окна проверяется на прямолинейность
	MinHeight   float64  // вершина должна быть выше
	MaxHeight   *float64 // nil: без верхней границы
}

// Validate проверяет, что окно не выходит за свои границы при индексации.
func (p BiteParams) Validate() error {
	if p.CheckLength < 1 {
		return fmt.Errorf("%w: check length %d must be positive", ErrInvalidConfig, p.CheckLength)
	}
	if p.SnakeLength <= p.CheckLength {
		return fmt.Errorf("%w: snake length %d must exceed check length %d", ErrInvalidConfig, p.SnakeLength, p.CheckLength)
	}
	if p.CheckLength >= p.SnakeLength/2 {
		return fmt.Errorf("%w: check length %d must be below half of snake length %d", ErrInvalidConfig, p.CheckLength, p.SnakeLength)
	}
	if p.MinHeight < 0 {
		return fmt.Errorf("%w: min height %.1f is negative", ErrInvalidConfig, p.MinHeight)
	}
	if p.MaxHeight != nil && *p.MaxHeight <= p.MinHeight {
		return fmt.Errorf("%w: max height %.1f must exceed min height %.1f", ErrInvalidConfig, *p.MaxHeight, p.MinHeight)
	}
	return nil
}

// DetectMouseBites сканирует каждый контур скользящим окном и возвращает
// вершины выкусов в порядке контуров и позиций окна.
func DetectMouseBites(contours []entity.Contour, p BiteParams) ([]entity.Detection, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var found []entity.Detection
	for _, c := range contours {
		found = append(found, scanContour(c, p)...)
	}
	return found, nil
}

// scanContour ищет выкусы в одном контуре. Окно не переходит через конец
// массива точек, поэтому выкус на стыке начала и конца контура пропускается.
func scanContour(c entity.Contour, p BiteParams) []entity.Detection {
	var found []entity.Detection
	reserved := make(map[int]struct{})

	for j := 0; j < len(c)-p.SnakeLength; j++ {
		first := c[j]
		mid := c[j+p.SnakeLength/2]
		last := c[j+p.SnakeLength]

		midHeight := geometry.DistanceFromLine(first, mid, last)
		if !p.isCandidate(c, j, midHeight) {
			continue
		}
		if !windowIsSingleApex(c, j, p, midHeight, reserved) {
			continue
		}

		for k := j; k < j+p.SnakeLength; k++ {
			reserved[k] = struct{}{}
		}
		found = append(found, entity.Detection{
			Kind:      entity.KindMouseBite,
			Point:     mid,
			MidHeight: midHeight,
		})
	}

	return found
}

// isCandidate проверяет прямолинейность краёв окна и высоту вершины.
func (p BiteParams) isCandidate(c entity.Contour, j int, midHeight float64) bool {
	first := c[j]
	last := c[j+p.SnakeLength]

	var firstAvg, lastAvg float64
	for k := 0; k < p.CheckLength; k++ {
		firstAvg += geometry.DistanceFromLine(first, c[j+k], last)
		lastAvg += geometry.DistanceFromLine(first, c[j+p.SnakeLength-k], last)
	}
	firstAvg /= float64(p.CheckLength)
	lastAvg /= float64(p.CheckLength)

	if !(firstAvg < 1 && lastAvg < 1) {
		return false
	}
	if !(midHeight > p.MinHeight) {
		return false
	}
	return p.MaxHeight == nil || midHeight < *p.MaxHeight
}

// windowIsSingleApex проверяет каждую точку окна: она не занята другой
// детекцией, одинаково удалена от хорды и от опорной прямой first→c[j+CheckLength]
// и не выше середины окна.
func windowIsSingleApex(c entity.Contour, j int, p BiteParams, midHeight float64, reserved map[int]struct{}) bool {
	first := c[j]
	last := c[j+p.SnakeLength]
	ref := c[j+p.CheckLength]

	for k := j; k < j+p.SnakeLength; k++ {
		if _, taken := reserved[k]; taken {
			return false
		}

		a := geometry.DistanceFromLine(first, c[k], last)
		b := geometry.DistanceFromLine(first, c[k], ref)
		if math.Abs(a-b) > 1 {
			return false
		}
		if a > midHeight {
			return false
		}
	}
	return true
}
