//go:build !gocv
// +build !gocv

package vision

import "pcb-inspector/internal/domain/port"

// NewContourExtractor без тега gocv контуры ищет реализация на чистом Go.
func NewContourExtractor() port.ContourExtractor {
	return NewImageToolkit()
}
