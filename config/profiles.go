package config

import (
	"path/filepath"
	"regexp"

	"pcb-inspector/internal/domain/defect"
	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// HoleProfile настройки поиска отверстий для одной платы
type HoleProfile struct {
	Extraction port.HoleExtraction
	Params     defect.HoleParams
}

// BiteProfile настройки поиска выкусов для одной платы
type BiteProfile struct {
	Disabled   bool // параметры не подобраны, плата пропускается
	Extraction port.BiteExtraction
	Params     defect.BiteParams
}

// Profiles пороги, подобранные вручную по номеру платы.
type Profiles struct {
	Hole map[string]HoleProfile
	Bite map[string]BiteProfile
}

const biteThreshold = 50

func hole(threshold int, areaMin, areaMax *float64, roundness float64) HoleProfile {
	return HoleProfile{
		Extraction: port.HoleExtraction{Threshold: threshold},
		Params:     defect.HoleParams{AreaMin: areaMin, AreaMax: areaMax, RoundnessLimit: roundness},
	}
}

func bite(snake, check int, minHeight float64, maxHeight *float64) BiteProfile {
	return BiteProfile{
		Extraction: port.BiteExtraction{Threshold: biteThreshold},
		Params:     defect.BiteParams{SnakeLength: snake, CheckLength: check, MinHeight: minHeight, MaxHeight: maxHeight},
	}
}

func disabled(p BiteProfile) BiteProfile {
	p.Disabled = true
	return p
}

// DefaultProfiles таблица из наборов Missing_hole и Mouse_bite.
func DefaultProfiles() Profiles {
	lim := defect.Limit
	return Profiles{
		Hole: map[string]HoleProfile{
			"01": hole(40, nil, nil, 0.7),
			"04": hole(45, lim(10), lim(150), 0.7),
			"06": hole(40, nil, nil, 0.7),
			"07": hole(40, lim(5), lim(200), 0.7),
			"08": hole(40, lim(10), lim(100), 0.8),
			"09": hole(40, lim(20), lim(100), 0.8),
			"10": hole(40, lim(100), lim(400), 0.7),
			"11": hole(40, lim(10), lim(400), 0.7),
			"12": hole(45, lim(10), lim(150), 0.7),
		},
		Bite: map[string]BiteProfile{
			"01": bite(50, 12, 4, nil),
			"04": bite(150, 25, 4, lim(25)),
			"06": bite(150, 25, 10, lim(25)),
			"07": bite(100, 20, 10, nil),
			"08": disabled(bite(100, 20, 9, nil)),
			"09": disabled(bite(100, 25, 10, nil)),
			"10": bite(200, 25, 17, nil),
			"11": bite(150, 25, 10, lim(20)),
			"12": bite(150, 25, 11, lim(20)),
		},
	}
}

// DefaultHole профиль для фото без номера платы (бот).
func DefaultHole() HoleProfile {
	return hole(40, nil, nil, 0.7)
}

// DefaultBite профиль для фото без номера платы (бот).
func DefaultBite() BiteProfile {
	return bite(100, 20, 10, nil)
}

var boardNumber = regexp.MustCompile(`^(\d\d)_`)

// BoardNumber номер платы из имени файла: 01_missing_hole_03.jpg → 01.
func BoardNumber(path string) (string, bool) {
	m := boardNumber.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// HoleFor профиль поиска отверстий для файла.
func (p Profiles) HoleFor(path string) (HoleProfile, bool) {
	n, ok := BoardNumber(path)
	if !ok {
		return HoleProfile{}, false
	}
	prof, ok := p.Hole[n]
	return prof, ok
}

// BiteFor профиль поиска выкусов для файла; выключенные профили не возвращаются.
func (p Profiles) BiteFor(path string) (BiteProfile, bool) {
	n, ok := BoardNumber(path)
	if !ok {
		return BiteProfile{}, false
	}
	prof, ok := p.Bite[n]
	if !ok || prof.Disabled {
		return BiteProfile{}, false
	}
	return prof, true
}

// Kinds типы дефектов для значения Config.Kind.
func (c *Config) Kinds() []entity.DefectKind {
	switch c.Kind {
	case string(entity.KindMissingHole):
		return []entity.DefectKind{entity.KindMissingHole}
	case string(entity.KindMouseBite):
		return []entity.DefectKind{entity.KindMouseBite}
	}
	return []entity.DefectKind{entity.KindMissingHole, entity.KindMouseBite}
}
