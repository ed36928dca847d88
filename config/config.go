package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Mode режим запуска
type Mode string

const (
	ModeShow    Mode = "show"    // показать подсветку в окне
	ModeSave    Mode = "save"    // сохранить подсветку в файл
	ModeAnalyse Mode = "analyse" // сравнить с разметкой и вывести отчёт
	ModeBot     Mode = "bot"     // Telegram-бот
)

// ParseMode разбирает имя режима.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeShow, ModeSave, ModeAnalyse, ModeBot:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// KindAll запуск обоих детекторов
const KindAll = "all"

type Config struct {
	Mode          Mode
	Kind          string // missing_hole, mouse_bite или all
	DatasetDir    string
	OutputDir     string
	ReportFile    string // пусто: stdout
	Workers       int
	TelegramToken string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	mode, err := ParseMode(getenv("PCB_MODE", string(ModeAnalyse)))
	if err != nil {
		return nil, err
	}

	workers, err := strconv.Atoi(getenv("PCB_WORKERS", "1"))
	if err != nil {
		return nil, fmt.Errorf("PCB_WORKERS: %w", err)
	}

	cfg := &Config{
		Mode:          mode,
		Kind:          getenv("PCB_KIND", KindAll),
		DatasetDir:    getenv("PCB_DATASET_DIR", "./PCB_DATASET"),
		OutputDir:     getenv("PCB_OUTPUT_DIR", "./output"),
		ReportFile:    os.Getenv("PCB_REPORT_FILE"),
		Workers:       workers,
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}

	return cfg, cfg.Validate()
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Kind != KindAll && c.Kind != "missing_hole" && c.Kind != "mouse_bite" {
		return fmt.Errorf("unknown defect kind %q", c.Kind)
	}
	if c.Mode == ModeBot && c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required in bot mode")
	}
	return nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
