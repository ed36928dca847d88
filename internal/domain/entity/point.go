package entity

// Point целочисленная координата пикселя
type Point struct {
	X int
	Y int
}

// Pt сокращённый конструктор точки
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Contour замкнутый контур: упорядоченная последовательность точек,
// последняя точка логически соединена с первой.
type Contour []Point

// Shape контур вместе с моментами, посчитанными Vision Toolkit.
type Shape struct {
	Outline   Contour // точки контура
	Area      float64 // площадь по формуле Гаусса
	Perimeter float64 // длина замкнутого контура
	Centroid  Point   // m10/m00, m01/m00
}

// ForegroundFunc проверяет, является ли пиксель в точке передним планом бинарной маски.
type ForegroundFunc func(p Point) bool

// HoleScene входные данные детектора отверстий для одного изображения.
type HoleScene struct {
	Width        int
	Height       int
	Shapes       []Shape
	IsForeground ForegroundFunc
}

// Contains сообщает, лежит ли точка внутри [0, Width) × [0, Height).
func (s HoleScene) Contains(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}
