package entity

import "fmt"

// DefectKind тип дефекта печатной платы
type DefectKind string

const (
	KindMissingHole DefectKind = "missing_hole" // отсутствующее отверстие
	KindMouseBite   DefectKind = "mouse_bite"   // выкус на краю проводника
)

// Folder имя каталога набора данных для этого типа дефекта.
func (k DefectKind) Folder() string {
	switch k {
	case KindMissingHole:
		return "Missing_hole"
	case KindMouseBite:
		return "Mouse_bite"
	default:
		return string(k)
	}
}

// ParseDefectKind разбирает имя типа дефекта.
func ParseDefectKind(s string) (DefectKind, error) {
	switch DefectKind(s) {
	case KindMissingHole, KindMouseBite:
		return DefectKind(s), nil
	}
	return "", fmt.Errorf("unknown defect kind %q", s)
}

// Detection найденный дефект. Метрики нужны только для отображения.
type Detection struct {
	Kind      DefectKind
	Point     Point   // центр отверстия или вершина выкуса
	Roundness float64 // округлость в процентах (отверстия)
	Area      float64 // площадь контура (отверстия)
	MidHeight float64 // высота вершины над хордой (выкусы)
	Outline   Contour // контур отверстия для подсветки, может быть nil
}

// Label текст подписи на изображении
func (d Detection) Label() []string {
	switch d.Kind {
	case KindMissingHole:
		return []string{
			fmt.Sprintf("Circle: %.1f%%", d.Roundness),
			fmt.Sprintf("Area: %.1f", d.Area),
		}
	case KindMouseBite:
		return []string{fmt.Sprintf("Mid height: %.1f", d.MidHeight)}
	}
	return nil
}

// Points возвращает точки детекций в порядке обнаружения.
func Points(detections []Detection) []Point {
	points := make([]Point, len(detections))
	for i, d := range detections {
		points[i] = d.Point
	}
	return points
}
