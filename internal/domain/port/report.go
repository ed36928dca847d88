package port

import "pcb-inspector/internal/domain/entity"

// RecordWriter приёмник строк отчёта режима анализа
type RecordWriter interface {
	Write(r entity.Record) error
	Flush() error
}
