package port

import "pcb-inspector/internal/domain/entity"

// AnnotationReader интерфейс источника эталонной разметки
type AnnotationReader interface {
	// Read возвращает прямоугольники дефектов для файла разметки
	Read(path string) (entity.AnnotationSet, error)
}
