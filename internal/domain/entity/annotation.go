package entity

// Rectangle размеченная область дефекта, границы включительные
type Rectangle struct {
	XMin int
	XMax int
	YMin int
	YMax int
}

// Valid сообщает, что границы не перевёрнуты.
func (r Rectangle) Valid() bool {
	return r.XMin <= r.XMax && r.YMin <= r.YMax
}

// Contains проверяет попадание точки в прямоугольник с включительными границами.
// Для некорректного прямоугольника всегда false.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.XMin && p.X <= r.XMax && p.Y >= r.YMin && p.Y <= r.YMax
}

// AnnotationSet эталонная разметка одного изображения
type AnnotationSet []Rectangle
