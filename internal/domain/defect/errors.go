// Package defect реализует детекторы отсутствующих отверстий и выкусов
// по контурам изображения, а также оценку детекций по эталонной разметке.
//
// Все функции пакета синхронные и детерминированные: одинаковый вход
// всегда даёт одинаковую последовательность детекций.
package defect

import "errors"

var (
	// ErrInvalidConfig параметры детектора нарушают предусловия алгоритма.
	ErrInvalidConfig = errors.New("invalid detector config")
	// ErrInvalidInput входные данные детектора неполны.
	ErrInvalidInput = errors.New("invalid detector input")
)

// Limit возвращает указатель на v для необязательных порогов.
func Limit(v float64) *float64 {
	return &v
}
