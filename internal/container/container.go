package container

import (
	"pcb-inspector/config"
	app "pcb-inspector/internal/application"
	"pcb-inspector/internal/domain/port"
)

// Deps инфраструктура, из которой собираются сервисы.
type Deps struct {
	UserRepo    port.UserRepository
	Extractor   port.ContourExtractor
	Renderer    port.Renderer
	Store       ImageStore
	Annotations port.AnnotationReader
	Display     port.Display
}

// ImageStore загрузка, сохранение и кодирование изображений одним адаптером.
type ImageStore interface {
	port.ImageLoader
	port.ImageSaver
	port.ImageCodec
}

type Container struct {
	UserService       *app.UserService
	InspectionService *app.InspectionService

	deps     Deps
	profiles config.Profiles
}

func New(deps Deps, profiles config.Profiles) *Container {
	userService := app.NewUserService(deps.UserRepo)
	inspectionService := app.NewInspectionService(deps.Extractor, deps.Renderer, deps.Store)

	return &Container{
		UserService:       userService,
		InspectionService: inspectionService,
		deps:              deps,
		profiles:          profiles,
	}
}

// Batch собирает пакетный прогон; records нужен только для режима analyse.
func (c *Container) Batch(settings app.BatchSettings, records port.RecordWriter) *app.BatchService {
	return app.NewBatchService(c.InspectionService, app.BatchDeps{
		Loader:      c.deps.Store,
		Annotations: c.deps.Annotations,
		Saver:       c.deps.Store,
		Display:     c.deps.Display,
		Records:     records,
	}, c.profiles, settings)
}
