package port

import (
	"image"

	"pcb-inspector/internal/domain/entity"
)

// Renderer рисует детекции поверх фото
type Renderer interface {
	// Highlight возвращает новую картинку с подсветкой дефектов
	Highlight(img image.Image, detections []entity.Detection) image.Image
}

// Display показывает картинку пользователю
type Display interface {
	Show(title string, img image.Image) error
}

// ImageSaver сохраняет картинку на диск
type ImageSaver interface {
	Save(path string, img image.Image) error
}
