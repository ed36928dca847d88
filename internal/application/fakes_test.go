package app

import (
	"context"
	"image"
	"sync"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// centerExtractor отдаёт одно круглое отверстие в центре любого изображения.
type centerExtractor struct {
	mu         sync.Mutex
	holeCalls  int
	biteCalls  int
	contours   []entity.Contour
	thresholds []int
}

func (e *centerExtractor) HoleScene(ctx context.Context, img image.Image, p port.HoleExtraction) (*entity.HoleScene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.holeCalls++
	e.thresholds = append(e.thresholds, p.Threshold)
	e.mu.Unlock()

	b := img.Bounds()
	center := entity.Pt(b.Dx()/2, b.Dy()/2)
	outline := entity.Contour{
		entity.Pt(center.X-5, center.Y),
		entity.Pt(center.X, center.Y-5),
		entity.Pt(center.X+5, center.Y),
		entity.Pt(center.X, center.Y+5),
	}
	return &entity.HoleScene{
		Width:  b.Dx(),
		Height: b.Dy(),
		Shapes: []entity.Shape{
			// площадь и периметр круга r=10: округлость 1.0
			{Outline: outline, Area: 314.159, Perimeter: 62.832, Centroid: center},
		},
		IsForeground: func(entity.Point) bool { return true },
	}, nil
}

func (e *centerExtractor) BiteContours(ctx context.Context, _ image.Image, p port.BiteExtraction) ([]entity.Contour, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.biteCalls++
	e.thresholds = append(e.thresholds, p.Threshold)
	e.mu.Unlock()
	return e.contours, nil
}

// passRenderer возвращает картинку без изменений.
type passRenderer struct{}

func (passRenderer) Highlight(img image.Image, _ []entity.Detection) image.Image {
	return img
}

// recordingDisplay запоминает заголовки показанных окон.
type recordingDisplay struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (d *recordingDisplay) Show(title string, _ image.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.titles = append(d.titles, title)
	return nil
}

func newSolidImage(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	return img
}
