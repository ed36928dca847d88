package defect

import "pcb-inspector/internal/domain/entity"

// Score сравнивает детекции с разметкой.
//
// Pass: число областей, в которые попала хотя бы одна детекция. Wrong: число
// детекций вне всех областей. Однозначного сопоставления нет: одна детекция
// может засчитаться нескольким областям. Перевёрнутые рамки учитываются
// в Annotations, но ни с чем не совпадают.
func Score(annotations entity.AnnotationSet, detections []entity.Point) entity.ScoreResult {
	res := entity.ScoreResult{Annotations: len(annotations)}

	for _, a := range annotations {
		if !a.Valid() {
			continue
		}
		for _, d := range detections {
			if a.Contains(d) {
				res.Pass++
				break
			}
		}
	}

	for _, d := range detections {
		if !insideAny(annotations, d) {
			res.Wrong++
		}
	}

	return res
}

func insideAny(annotations entity.AnnotationSet, p entity.Point) bool {
	for _, a := range annotations {
		if a.Valid() && a.Contains(p) {
			return true
		}
	}
	return false
}
