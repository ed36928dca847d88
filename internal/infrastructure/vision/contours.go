package vision

import (
	"image"
	"math"

	"pcb-inspector/internal/domain/entity"
)

// ring восемь соседей пикселя по часовой стрелке начиная с востока (ось Y вниз).
var ring = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

const east = 0

func ringIndex(d image.Point) int {
	for i, r := range ring {
		if r == d {
			return i
		}
	}
	return -1
}

// traceBorders находит все внешние границы и границы дыр бинарной маски
// (ненулевой пиксель считается объектом) обходом границ Suzuki–Abe в порядке развёртки.
// Точки контура идут подряд, без аппроксимации.
func traceBorders(mask *image.Gray) []entity.Contour {
	b := mask.Bounds()
	w, h := b.Dx()+2, b.Dy()+2

	// рамка из нулей вокруг маски
	f := make([]int, w*h)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0 {
				f[(y+1)*w+x+1] = 1
			}
		}
	}

	t := &tracer{f: f, w: w, origin: b.Min.Sub(image.Pt(1, 1))}
	nbd := 1
	var contours []entity.Contour
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := f[y*w+x]
			var from image.Point
			switch {
			case v == 1 && f[y*w+x-1] == 0:
				from = image.Pt(x-1, y)
			case v >= 1 && f[y*w+x+1] == 0:
				from = image.Pt(x+1, y)
			default:
				continue
			}
			nbd++
			contours = append(contours, t.follow(image.Pt(x, y), from, nbd))
		}
	}
	return contours
}

type tracer struct {
	f      []int
	w      int
	origin image.Point
}

func (t *tracer) at(p image.Point) int {
	return t.f[p.Y*t.w+p.X]
}

func (t *tracer) set(p image.Point, v int) {
	t.f[p.Y*t.w+p.X] = v
}

func (t *tracer) point(p image.Point) entity.Point {
	return entity.Pt(p.X+t.origin.X, p.Y+t.origin.Y)
}

// follow обходит одну границу, начиная со start, from: соседний нулевой пиксель.
func (t *tracer) follow(start, from image.Point, nbd int) entity.Contour {
	d0 := ringIndex(from.Sub(start))
	first := -1
	for k := 0; k < 8; k++ {
		d := (d0 + k) % 8
		if t.at(start.Add(ring[d])) != 0 {
			first = d
			break
		}
	}
	if first < 0 {
		t.set(start, -nbd)
		return entity.Contour{t.point(start)}
	}

	p1 := start.Add(ring[first])
	p2, p3 := p1, start
	var contour entity.Contour
	for {
		d := ringIndex(p2.Sub(p3))
		eastZero := false
		var p4 image.Point
		for k := 1; k <= 8; k++ {
			dd := (d - k + 8) % 8
			q := p3.Add(ring[dd])
			if t.at(q) != 0 {
				p4 = q
				break
			}
			if dd == east {
				eastZero = true
			}
		}

		if eastZero {
			t.set(p3, -nbd)
		} else if t.at(p3) == 1 {
			t.set(p3, nbd)
		}
		contour = append(contour, t.point(p3))

		if p4 == start && p3 == p1 {
			return contour
		}
		p2, p3 = p3, p4
	}
}

// compressChain убирает промежуточные точки прямых участков, оставляя концы
// горизонтальных, вертикальных и диагональных отрезков.
func compressChain(c entity.Contour) entity.Contour {
	n := len(c)
	if n <= 2 {
		return c
	}
	out := make(entity.Contour, 0, n)
	for i := range c {
		prev := c[(i-1+n)%n]
		next := c[(i+1)%n]
		in := entity.Pt(c[i].X-prev.X, c[i].Y-prev.Y)
		outDir := entity.Pt(next.X-c[i].X, next.Y-c[i].Y)
		if in != outDir {
			out = append(out, c[i])
		}
	}
	if len(out) == 0 {
		return c
	}
	return out
}

// moments пространственные моменты многоугольника до первого порядка
type moments struct {
	m00, m10, m01 float64
}

// polygonMoments считает моменты замкнутого контура по формуле Грина.
func polygonMoments(c entity.Contour) moments {
	n := len(c)
	if n < 3 {
		return moments{}
	}
	var a00, a10, a01 float64
	prev := c[n-1]
	for _, p := range c {
		xi1, yi1 := float64(prev.X), float64(prev.Y)
		xi, yi := float64(p.X), float64(p.Y)
		dxy := xi1*yi - xi*yi1
		a00 += dxy
		a10 += dxy * (xi1 + xi)
		a01 += dxy * (yi1 + yi)
		prev = p
	}
	m := moments{m00: a00 / 2, m10: a10 / 6, m01: a01 / 6}
	if m.m00 < 0 {
		m = moments{m00: -m.m00, m10: -m.m10, m01: -m.m01}
	}
	return m
}

// degenerateCentroid центр контура нулевой площади, заведомо вне изображения.
var degenerateCentroid = entity.Pt(-1, -1)

// centroid центр масс контура с отбрасыванием дробной части.
func (m moments) centroid() entity.Point {
	if m.m00 == 0 {
		return degenerateCentroid
	}
	return entity.Pt(int(m.m10/m.m00), int(m.m01/m.m00))
}

// arcLength периметр замкнутого контура.
func arcLength(c entity.Contour) float64 {
	if len(c) < 2 {
		return 0
	}
	var total float64
	prev := c[len(c)-1]
	for _, p := range c {
		total += math.Hypot(float64(p.X-prev.X), float64(p.Y-prev.Y))
		prev = p
	}
	return total
}

// shapeOf собирает Shape из точек контура.
func shapeOf(c entity.Contour) entity.Shape {
	m := polygonMoments(c)
	return entity.Shape{
		Outline:   c,
		Area:      m.m00,
		Perimeter: arcLength(c),
		Centroid:  m.centroid(),
	}
}
