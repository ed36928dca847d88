package port

import (
	"context"
	"image"

	"pcb-inspector/internal/domain/entity"
)

// HoleExtraction параметры подготовки изображения для поиска отверстий
type HoleExtraction struct {
	Threshold int // порог бинаризации яркости (0..255)
}

// BiteExtraction параметры подготовки изображения для поиска выкусов
type BiteExtraction struct {
	Threshold int // порог бинаризации яркости (0..255)
}

// ContourExtractor интерфейс Vision Toolkit: превращает фото платы в контуры
type ContourExtractor interface {
	// HoleScene возвращает контуры с моментами и бинарную маску для проверки центров
	HoleScene(ctx context.Context, img image.Image, p HoleExtraction) (*entity.HoleScene, error)

	// BiteContours возвращает все замкнутые контуры без аппроксимации
	BiteContours(ctx context.Context, img image.Image, p BiteExtraction) ([]entity.Contour, error)
}

// ImageLoader загружает фото платы
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// ImageCodec переводит фото между байтами и image.Image
type ImageCodec interface {
	Decode(data []byte) (image.Image, error)
	Encode(img image.Image) ([]byte, error)
}
