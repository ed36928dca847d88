package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pcb-inspector/config"
	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// BatchSettings настройки прогона по набору данных.
type BatchSettings struct {
	DatasetDir string      // содержит images/<Kind>/ и Annotations/<Kind>/
	OutputDir  string      // куда режим save пишет <Kind>/<index>.png
	Mode       config.Mode // show, save или analyse
	Workers    int         // число параллельно обрабатываемых изображений
}

// BatchDeps внешние зависимости прогона.
type BatchDeps struct {
	Loader      port.ImageLoader
	Annotations port.AnnotationReader
	Saver       port.ImageSaver
	Display     port.Display
	Records     port.RecordWriter
}

// BatchService прогоняет детектор по всем фото одного типа дефекта.
//
// Изображения обрабатываются параллельно, но показ и запись отчёта идут
// строго в порядке файлов в каталоге, поэтому вывод не зависит от числа воркеров.
type BatchService struct {
	inspection *InspectionService
	deps       BatchDeps
	profiles   config.Profiles
	settings   BatchSettings
}

// NewBatchService создаёт сервис пакетной обработки.
func NewBatchService(inspection *InspectionService, deps BatchDeps, profiles config.Profiles, settings BatchSettings) *BatchService {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	return &BatchService{
		inspection: inspection,
		deps:       deps,
		profiles:   profiles,
		settings:   settings,
	}
}

// task одно фото из каталога, index: позиция файла в каталоге.
type task struct {
	seq   int
	index int
	path  string
	job   Job
}

type outcome struct {
	seq         int
	imageID     string
	highlighted image.Image
	record      *entity.Record
	err         error
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// Run обрабатывает каталог images/<Kind>. Ошибка одного изображения
// пишется в лог и не останавливает прогон. В режиме analyse возвращает строки отчёта.
func (b *BatchService) Run(ctx context.Context, kind entity.DefectKind) (records []entity.Record, err error) {
	switch b.settings.Mode {
	case config.ModeShow, config.ModeSave, config.ModeAnalyse:
	default:
		return nil, fmt.Errorf("batch does not support mode %q", b.settings.Mode)
	}

	tasks, err := b.tasks(kind)
	if err != nil {
		return nil, err
	}

	// Уже записанные строки сбрасываются и при ошибке, и при отмене.
	if b.settings.Mode == config.ModeAnalyse && b.deps.Records != nil {
		defer func() {
			if ferr := b.deps.Records.Flush(); ferr != nil && err == nil {
				err = fmt.Errorf("flush report: %w", ferr)
			}
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	taskCh := make(chan task)
	outCh := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < b.settings.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskCh {
				outCh <- b.process(ctx, kind, t)
			}
		}()
	}

	go func() {
		defer close(taskCh)
		for _, t := range tasks {
			select {
			case taskCh <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Результаты приходят в произвольном порядке: копим и выдаём подряд.
	var firstErr error
	pending := make(map[int]outcome)
	next := 0
	for o := range outCh {
		pending[o.seq] = o
		for {
			cur, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			if firstErr != nil {
				continue
			}
			rec, err := b.emit(cur)
			if err != nil {
				firstErr = err
				cancel()
				continue
			}
			if rec != nil {
				records = append(records, *rec)
			}
		}
	}

	if firstErr != nil {
		return records, firstErr
	}
	if next < len(tasks) {
		return records, ctx.Err()
	}
	return records, nil
}

// tasks список фото с найденным профилем в порядке имён файлов.
func (b *BatchService) tasks(kind entity.DefectKind) ([]task, error) {
	dir := filepath.Join(b.settings.DatasetDir, "images", kind.Folder())
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image folder: %w", err)
	}

	var tasks []task
	index := 0
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		path := filepath.Join(dir, e.Name())
		i := index
		index++

		job := Job{ImageID: imageID(path), Kind: kind}
		var ok bool
		switch kind {
		case entity.KindMissingHole:
			job.Hole, ok = b.profiles.HoleFor(path)
		case entity.KindMouseBite:
			job.Bite, ok = b.profiles.BiteFor(path)
		}
		if !ok {
			log.Printf("Skipping %s: no %s profile for this board", job.ImageID, kind)
			continue
		}

		tasks = append(tasks, task{seq: len(tasks), index: i, path: path, job: job})
	}
	return tasks, nil
}

// process выполняется в воркере: всё, что не требует порядка.
func (b *BatchService) process(ctx context.Context, kind entity.DefectKind, t task) outcome {
	out := outcome{seq: t.seq, imageID: t.job.ImageID}
	if err := ctx.Err(); err != nil {
		out.err = err
		return out
	}

	img, err := b.deps.Loader.Load(t.path)
	if err != nil {
		out.err = err
		return out
	}
	job := t.job
	job.Image = img

	result, err := b.inspection.Inspect(ctx, job)
	if err != nil {
		out.err = err
		return out
	}

	switch b.settings.Mode {
	case config.ModeShow, config.ModeSave:
		marked, err := b.inspection.Highlight(img, result)
		if err != nil {
			out.err = err
			return out
		}
		if b.settings.Mode == config.ModeShow {
			out.highlighted = marked
			return out
		}
		target := filepath.Join(b.settings.OutputDir, kind.Folder(), fmt.Sprintf("%d.png", t.index))
		if err := b.deps.Saver.Save(target, marked); err != nil {
			out.err = err
		}

	case config.ModeAnalyse:
		annotations, err := b.deps.Annotations.Read(b.annotationPath(kind, t.path))
		if err != nil {
			out.err = err
			return out
		}
		rec := b.inspection.Score(result, annotations)
		out.record = &rec
	}
	return out
}

// emit выполняется по порядку: показ окна и запись отчёта.
func (b *BatchService) emit(o outcome) (*entity.Record, error) {
	if o.err != nil {
		if errors.Is(o.err, context.Canceled) {
			return nil, o.err
		}
		log.Printf("Image %s failed: %v", o.imageID, o.err)
		return nil, nil
	}

	switch b.settings.Mode {
	case config.ModeShow:
		if err := b.deps.Display.Show(o.imageID, o.highlighted); err != nil {
			return nil, fmt.Errorf("show %s: %w", o.imageID, err)
		}
	case config.ModeAnalyse:
		if b.deps.Records != nil {
			if err := b.deps.Records.Write(*o.record); err != nil {
				return nil, fmt.Errorf("write report: %w", err)
			}
		}
		return o.record, nil
	}
	return nil, nil
}

func (b *BatchService) annotationPath(kind entity.DefectKind, imagePath string) string {
	return filepath.Join(b.settings.DatasetDir, "Annotations", kind.Folder(), imageID(imagePath)+".xml")
}

// imageID имя файла без расширения.
func imageID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
