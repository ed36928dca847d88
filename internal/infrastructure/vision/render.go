package vision

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// Palette цвета подсветки.
type Palette struct {
	Mark   color.Color // контур отверстия и окружность выкуса
	Text   color.Color
	Shadow color.Color
}

// DefaultPalette красная разметка, белый текст с чёрной тенью.
func DefaultPalette() Palette {
	return Palette{
		Mark:   mustHex("#ff0000"),
		Text:   mustHex("#ffffff"),
		Shadow: mustHex("#000000"),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Overlay рисует детекции поверх копии изображения.
type Overlay struct {
	Palette      Palette
	BiteRadius   int // радиус окружности вокруг выкуса
	LineWidth    int // толщина контура отверстия
	LabelOffset  int // сдвиг подписи вправо от точки
	LabelSpacing int // расстояние между строками подписи
	ShadowOffset int // сдвиг тени текста
	CircleWidth  int
	Face         font.Face
}

// NewOverlay создаёт рендерер с настройками по умолчанию.
func NewOverlay() *Overlay {
	return &Overlay{
		Palette:      DefaultPalette(),
		BiteRadius:   15,
		LineWidth:    3,
		CircleWidth:  2,
		LabelOffset:  15,
		LabelSpacing: 35,
		ShadowOffset: 3,
		Face:         basicfont.Face7x13,
	}
}

// Highlight возвращает копию img с нанесёнными детекциями.
func (o *Overlay) Highlight(img image.Image, detections []entity.Detection) image.Image {
	canvas := imaging.Clone(img)
	origin := canvas.Bounds().Min

	for _, d := range detections {
		at := image.Pt(origin.X+d.Point.X, origin.Y+d.Point.Y)
		switch d.Kind {
		case entity.KindMissingHole:
			o.polygon(canvas, origin, d.Outline)
		case entity.KindMouseBite:
			o.circle(canvas, at)
		}
		for i, line := range d.Label() {
			o.label(canvas, image.Pt(at.X+o.LabelOffset, at.Y+i*o.LabelSpacing), line)
		}
	}
	return canvas
}

func (o *Overlay) label(dst draw.Image, at image.Point, text string) {
	shadow := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(o.Palette.Shadow),
		Face: o.Face,
		Dot:  fixed.P(at.X+o.ShadowOffset, at.Y+o.ShadowOffset),
	}
	shadow.DrawString(text)

	fg := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(o.Palette.Text),
		Face: o.Face,
		Dot:  fixed.P(at.X, at.Y),
	}
	fg.DrawString(text)
}

func (o *Overlay) polygon(dst draw.Image, origin image.Point, c entity.Contour) {
	if len(c) == 0 {
		return
	}
	prev := c[len(c)-1]
	for _, p := range c {
		o.line(dst, origin.Add(image.Pt(prev.X, prev.Y)), origin.Add(image.Pt(p.X, p.Y)))
		prev = p
	}
}

// line отрезок Брезенхэма толщиной LineWidth.
func (o *Overlay) line(dst draw.Image, a, b image.Point) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy
	for {
		o.dot(dst, a, o.LineWidth)
		if a == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.X += sx
		}
		if e2 <= dx {
			e += dx
			a.Y += sy
		}
	}
}

// circle окружность радиуса BiteRadius толщиной CircleWidth.
func (o *Overlay) circle(dst draw.Image, c image.Point) {
	inner := o.BiteRadius - o.CircleWidth/2
	outer := inner + o.CircleWidth
	for y := -outer; y <= outer; y++ {
		for x := -outer; x <= outer; x++ {
			r2 := x*x + y*y
			if r2 >= inner*inner && r2 < outer*outer {
				dst.Set(c.X+x, c.Y+y, o.Palette.Mark)
			}
		}
	}
}

func (o *Overlay) dot(dst draw.Image, p image.Point, size int) {
	half := size / 2
	r := image.Rect(p.X-half, p.Y-half, p.X-half+size, p.Y-half+size).Intersect(dst.Bounds())
	draw.Draw(dst, r, image.NewUniform(o.Palette.Mark), image.Point{}, draw.Src)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

var _ port.Renderer = (*Overlay)(nil)
