package entity

import "fmt"

// ScoreResult итог сравнения детекций с разметкой
type ScoreResult struct {
	Annotations int // количество размеченных областей
	Pass        int // области, в которые попала хотя бы одна детекция
	Wrong       int // детекции вне всех областей
}

// Record строка отчёта по одному изображению
type Record struct {
	ImageID string
	ScoreResult
}

// String формат imageId;annotationCount;pass;wrong
func (r Record) String() string {
	return fmt.Sprintf("%s;%d;%d;%d", r.ImageID, r.Annotations, r.Pass, r.Wrong)
}

// InspectionResult хранит итог анализа изображения.
type InspectionResult struct {
	ImageID     string       // имя файла без расширения
	Kind        DefectKind   // какой детектор запускался
	ImageWidth  int          // ширина изображения
	ImageHeight int          // высота изображения
	Detections  []Detection  // найденные дефекты в порядке обнаружения
	Score       *ScoreResult // nil, если разметка не сравнивалась
}

// HasDefects флаг наличия дефектов
func (r *InspectionResult) HasDefects() bool {
	return len(r.Detections) > 0
}
