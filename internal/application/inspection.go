package app

import (
	"context"
	"errors"
	"fmt"
	"image"

	"pcb-inspector/config"
	"pcb-inspector/internal/domain/defect"
	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

type InspectionService struct {
	extractor port.ContourExtractor
	renderer  port.Renderer
	codec     port.ImageCodec
}

// InspectionOutput содержит результат поиска дефектов и картинку с подсветкой.
type InspectionOutput struct {
	Result      *entity.InspectionResult
	Highlighted []byte
}

// Job одно изображение на проверку.
type Job struct {
	ImageID string
	Kind    entity.DefectKind
	Image   image.Image
	Hole    config.HoleProfile // используется для KindMissingHole
	Bite    config.BiteProfile // используется для KindMouseBite
}

// NewInspectionService создаёт сервис, который управляет проверкой дефектов.
func NewInspectionService(extractor port.ContourExtractor, renderer port.Renderer, codec port.ImageCodec) *InspectionService {
	return &InspectionService{
		extractor: extractor,
		renderer:  renderer,
		codec:     codec,
	}
}

// Inspect ищет дефекты одного типа на одном изображении.
func (s *InspectionService) Inspect(ctx context.Context, job Job) (*entity.InspectionResult, error) {
	if s.extractor == nil {
		return nil, errors.New("contour extractor is not configured")
	}
	if job.Image == nil {
		return nil, errors.New("empty image")
	}

	var (
		detections []entity.Detection
		err        error
	)
	switch job.Kind {
	case entity.KindMissingHole:
		detections, err = s.inspectHoles(ctx, job)
	case entity.KindMouseBite:
		detections, err = s.inspectBites(ctx, job)
	default:
		return nil, fmt.Errorf("unknown defect kind %q", job.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", job.Kind, job.ImageID, err)
	}

	b := job.Image.Bounds()
	return &entity.InspectionResult{
		ImageID:     job.ImageID,
		Kind:        job.Kind,
		ImageWidth:  b.Dx(),
		ImageHeight: b.Dy(),
		Detections:  detections,
	}, nil
}

func (s *InspectionService) inspectHoles(ctx context.Context, job Job) ([]entity.Detection, error) {
	// Конфигурацию проверяем до обработки изображения.
	if err := job.Hole.Params.Validate(); err != nil {
		return nil, err
	}
	scene, err := s.extractor.HoleScene(ctx, job.Image, job.Hole.Extraction)
	if err != nil {
		return nil, fmt.Errorf("extract contours: %w", err)
	}
	return defect.DetectMissingHoles(*scene, job.Hole.Params)
}

func (s *InspectionService) inspectBites(ctx context.Context, job Job) ([]entity.Detection, error) {
	if err := job.Bite.Params.Validate(); err != nil {
		return nil, err
	}
	contours, err := s.extractor.BiteContours(ctx, job.Image, job.Bite.Extraction)
	if err != nil {
		return nil, fmt.Errorf("extract contours: %w", err)
	}
	return defect.DetectMouseBites(contours, job.Bite.Params)
}

// Score сравнивает результат с разметкой и возвращает строку отчёта.
func (s *InspectionService) Score(result *entity.InspectionResult, annotations entity.AnnotationSet) entity.Record {
	score := defect.Score(annotations, entity.Points(result.Detections))
	result.Score = &score
	return entity.Record{ImageID: result.ImageID, ScoreResult: score}
}

// Highlight рисует найденные дефекты поверх исходного изображения.
func (s *InspectionService) Highlight(img image.Image, result *entity.InspectionResult) (image.Image, error) {
	if s.renderer == nil {
		return nil, errors.New("renderer is not configured")
	}
	return s.renderer.Highlight(img, result.Detections), nil
}

// ProcessDefectPhoto запускает детектор с профилем по умолчанию и возвращает результат с подсветкой.
func (s *InspectionService) ProcessDefectPhoto(ctx context.Context, kind entity.DefectKind, photo []byte) (*InspectionOutput, error) {
	if s.codec == nil {
		return nil, errors.New("image codec is not configured")
	}

	img, err := s.codec.Decode(photo)
	if err != nil {
		return nil, err
	}

	result, err := s.Inspect(ctx, Job{
		ImageID: "photo",
		Kind:    kind,
		Image:   img,
		Hole:    config.DefaultHole(),
		Bite:    config.DefaultBite(),
	})
	if err != nil {
		return nil, err
	}

	var highlighted []byte
	if result.HasDefects() {
		marked, err := s.Highlight(img, result)
		if err != nil {
			return nil, err
		}
		highlighted, err = s.codec.Encode(marked)
		if err != nil {
			return nil, err
		}
	}

	return &InspectionOutput{Result: result, Highlighted: highlighted}, nil
}
