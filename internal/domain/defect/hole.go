package defect

import (
	"fmt"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/geometry"
)

// holeDedupRadius полуразмер окна 21×21, в котором повторная детекция отбрасывается.
const holeDedupRadius = 10

// HoleParams настройки детектора отсутствующих отверстий.
type HoleParams struct {
	AreaMin        *float64 // nil: без нижней границы площади
	AreaMax        *float64 // nil: без верхней границы площади
	RoundnessLimit float64  // минимальная округлость контура
}

// DefaultHoleParams параметры по умолчанию: без ограничений площади, округлость 0.7.
func DefaultHoleParams() HoleParams {
	return HoleParams{RoundnessLimit: 0.7}
}

// Validate проверяет предусловия детектора.
func (p HoleParams) Validate() error {
	if p.RoundnessLimit < 0 {
		return fmt.Errorf("%w: roundness limit %.2f is negative", ErrInvalidConfig, p.RoundnessLimit)
	}
	if p.AreaMin != nil && p.AreaMax != nil && *p.AreaMin > *p.AreaMax {
		return fmt.Errorf("%w: area min %.1f exceeds area max %.1f", ErrInvalidConfig, *p.AreaMin, *p.AreaMax)
	}
	return nil
}

func (p HoleParams) areaAllowed(area float64) bool {
	if p.AreaMin != nil && area < *p.AreaMin {
		return false
	}
	if p.AreaMax != nil && area > *p.AreaMax {
		return false
	}
	return true
}

// DetectMissingHoles ищет отсутствующие отверстия среди контуров сцены.
//
// Контуры обрабатываются по порядку. Контур принимается, если его центр лежит
// внутри изображения и на переднем плане маски, площадь укладывается в границы,
// округлость не ниже порога и рядом (±10 px по каждой оси) нет уже принятого центра.
func DetectMissingHoles(scene entity.HoleScene, p HoleParams) ([]entity.Detection, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if scene.IsForeground == nil {
		return nil, fmt.Errorf("%w: foreground sampler is not set", ErrInvalidInput)
	}

	var found []entity.Detection
	for _, shape := range scene.Shapes {
		center := shape.Centroid

		if !scene.Contains(center) {
			continue
		}
		// Внутри настоящего отверстия должен быть передний план.
		if !scene.IsForeground(center) {
			continue
		}
		if !p.areaAllowed(shape.Area) {
			continue
		}

		roundness := geometry.Roundness(shape.Area, shape.Perimeter)
		if roundness < p.RoundnessLimit {
			continue
		}

		if nearAny(found, center, holeDedupRadius) {
			continue
		}

		found = append(found, entity.Detection{
			Kind:      entity.KindMissingHole,
			Point:     center,
			Roundness: roundness * 100,
			Area:      shape.Area,
			Outline:   shape.Outline,
		})
	}

	return found, nil
}

// nearAny ищет принятую детекцию на расстоянии Чебышёва не больше r.
func nearAny(found []entity.Detection, p entity.Point, r int) bool {
	for _, d := range found {
		if p.X <= d.Point.X+r && p.X >= d.Point.X-r && p.Y <= d.Point.Y+r && p.Y >= d.Point.Y-r {
			return true
		}
	}
	return false
}
