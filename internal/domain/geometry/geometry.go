// Package geometry содержит чистые геометрические функции, на которых
// построены детекторы дефектов.
package geometry

import (
	"math"

	"pcb-inspector/internal/domain/entity"
)

// DistanceFromLine возвращает расстояние от точки p до прямой через a и b:
// |Ax+By+C| / sqrt(A²+B²), где A = b.y-a.y, B = a.x-b.x, C = b.x·a.y - a.x·b.y.
// Пороги детекторов подобраны под эту формулу. Если a == b, результат NaN или +Inf.
func DistanceFromLine(a, p, b entity.Point) float64 {
	A := b.Y - a.Y
	B := a.X - b.X
	C := b.X*a.Y - a.X*b.Y

	num := A*p.X + B*p.Y + C
	if num < 0 {
		num = -num
	}
	return float64(num) / math.Sqrt(float64(A*A+B*B))
}

// AngleDegrees угол отрезка p1→p2 в градусах в диапазоне [0, 360).
func AngleDegrees(p1, p2 entity.Point) float64 {
	deg := math.Atan2(float64(p2.Y-p1.Y), float64(p2.X-p1.X)) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Roundness 4π·S/P²: 1 для круга, меньше для вытянутых фигур.
// Нулевой периметр даёт 0.
func Roundness(area, perimeter float64) float64 {
	if perimeter == 0 {
		return 0
	}
	return 4 * math.Pi * area / (perimeter * perimeter)
}
