// Package report выводит результаты режима анализа.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// Separator разделитель полей строки отчёта
const Separator = ';'

// Writer пишет строки imageId;annotationCount;pass;wrong.
type Writer struct {
	csv *csv.Writer
}

// NewWriter создаёт writer поверх w.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	return &Writer{csv: cw}
}

// Write добавляет строку отчёта.
func (w *Writer) Write(r entity.Record) error {
	return w.csv.Write([]string{
		r.ImageID,
		strconv.Itoa(r.Annotations),
		strconv.Itoa(r.Pass),
		strconv.Itoa(r.Wrong),
	})
}

// Flush сбрасывает буфер.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

var _ port.RecordWriter = (*Writer)(nil)
