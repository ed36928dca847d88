// Package annotation читает эталонную разметку в формате Pascal VOC.
package annotation

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

type vocDocument struct {
	Objects []vocObject `xml:"object"`
}

type vocObject struct {
	Name   string     `xml:"name"`
	BndBox *vocBndBox `xml:"bndbox"`
}

type vocBndBox struct {
	XMin *string `xml:"xmin"`
	XMax *string `xml:"xmax"`
	YMin *string `xml:"ymin"`
	YMax *string `xml:"ymax"`
}

// VOCReader читает файлы разметки VOC с диска.
type VOCReader struct{}

// NewVOCReader создаёт читатель разметки.
func NewVOCReader() *VOCReader {
	return &VOCReader{}
}

// Read открывает файл и разбирает разметку.
func (r *VOCReader) Read(path string) (entity.AnnotationSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation: %w", err)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse annotation %s: %w", path, err)
	}
	return set, nil
}

// Parse извлекает по прямоугольнику на каждый объект с полной рамкой.
// Объекты без рамки или с отсутствующей либо нечисловой границей пропускаются.
func Parse(r io.Reader) (entity.AnnotationSet, error) {
	var doc vocDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	set := make(entity.AnnotationSet, 0, len(doc.Objects))
	for _, obj := range doc.Objects {
		if rect, ok := obj.BndBox.rectangle(); ok {
			set = append(set, rect)
		}
	}
	return set, nil
}

func (b *vocBndBox) rectangle() (entity.Rectangle, bool) {
	if b == nil {
		return entity.Rectangle{}, false
	}

	var vals [4]int
	for i, s := range []*string{b.XMin, b.XMax, b.YMin, b.YMax} {
		if s == nil {
			return entity.Rectangle{}, false
		}
		v, err := strconv.Atoi(strings.TrimSpace(*s))
		if err != nil {
			return entity.Rectangle{}, false
		}
		vals[i] = v
	}

	return entity.Rectangle{XMin: vals[0], XMax: vals[1], YMin: vals[2], YMax: vals[3]}, true
}

var _ port.AnnotationReader = (*VOCReader)(nil)
