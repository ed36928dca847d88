package report

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"pcb-inspector/internal/domain/entity"
)

// Summary сводка по всем изображениям прогона.
type Summary struct {
	Images      int
	Annotations int
	Pass        int
	Wrong       int
	Recall      float64 // Pass / Annotations по всему прогону
	MeanRecall  float64 // среднее по изображениям с разметкой
	StdRecall   float64
}

// Summarize собирает сводку. Изображения без разметки не входят в средний recall.
func Summarize(records []entity.Record) Summary {
	annotations := make([]float64, len(records))
	pass := make([]float64, len(records))
	wrong := make([]float64, len(records))
	var recalls []float64

	for i, r := range records {
		annotations[i] = float64(r.Annotations)
		pass[i] = float64(r.Pass)
		wrong[i] = float64(r.Wrong)
		if r.Annotations > 0 {
			recalls = append(recalls, float64(r.Pass)/float64(r.Annotations))
		}
	}

	s := Summary{
		Images:      len(records),
		Annotations: int(floats.Sum(annotations)),
		Pass:        int(floats.Sum(pass)),
		Wrong:       int(floats.Sum(wrong)),
	}
	if s.Annotations > 0 {
		s.Recall = float64(s.Pass) / float64(s.Annotations)
	}
	switch {
	case len(recalls) > 1:
		s.MeanRecall, s.StdRecall = stat.MeanStdDev(recalls, nil)
	case len(recalls) == 1:
		s.MeanRecall = recalls[0]
	}
	return s
}

// String однострочная сводка для лога
func (s Summary) String() string {
	return fmt.Sprintf("images=%d annotations=%d pass=%d wrong=%d recall=%.3f mean_recall=%.3f±%.3f",
		s.Images, s.Annotations, s.Pass, s.Wrong, s.Recall, s.MeanRecall, s.StdRecall)
}
