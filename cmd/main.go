package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pcb-inspector/config"
	telegram "pcb-inspector/internal/api"
	app "pcb-inspector/internal/application"
	"pcb-inspector/internal/container"
	"pcb-inspector/internal/infrastructure/annotation"
	"pcb-inspector/internal/infrastructure/report"
	"pcb-inspector/internal/infrastructure/storage"
	"pcb-inspector/internal/infrastructure/vision"
)

var (
	flagMode    = flag.String("mode", "", "show, save, analyse or bot (overrides PCB_MODE)")
	flagKind    = flag.String("kind", "", "missing_hole, mouse_bite or all (overrides PCB_KIND)")
	flagDataset = flag.String("dataset", "", "dataset root with images/ and Annotations/ (overrides PCB_DATASET_DIR)")
	flagOut     = flag.String("out", "", "output folder for save mode (overrides PCB_OUTPUT_DIR)")
	flagReport  = flag.String("report", "", "report file for analyse mode, stdout if empty (overrides PCB_REPORT_FILE)")
	flagWorkers = flag.Int("workers", 0, "number of images processed in parallel (overrides PCB_WORKERS)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err == nil {
		err = applyFlags(cfg)
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Собираем сервисы приложения
	appContainer := container.New(container.Deps{
		UserRepo:    storage.NewMemoryUserRepository(),
		Extractor:   vision.NewContourExtractor(),
		Renderer:    vision.NewOverlay(),
		Store:       vision.NewFileStore(),
		Annotations: annotation.NewVOCReader(),
		Display:     vision.NewDisplay(),
	}, config.DefaultProfiles())

	if cfg.Mode == config.ModeBot {
		runBot(ctx, cfg, appContainer)
		return
	}

	if err := runBatch(ctx, cfg, appContainer); err != nil {
		log.Fatalf("Batch error: %v", err)
	}
}

// applyFlags переопределяет настройки окружения флагами командной строки.
func applyFlags(cfg *config.Config) error {
	if *flagMode != "" {
		mode, err := config.ParseMode(*flagMode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}
	if *flagKind != "" {
		cfg.Kind = *flagKind
	}
	if *flagDataset != "" {
		cfg.DatasetDir = *flagDataset
	}
	if *flagOut != "" {
		cfg.OutputDir = *flagOut
	}
	if *flagReport != "" {
		cfg.ReportFile = *flagReport
	}
	if *flagWorkers != 0 {
		cfg.Workers = *flagWorkers
	}
	return cfg.Validate()
}

func runBot(ctx context.Context, cfg *config.Config, appContainer *container.Container) {
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Bot error: %v", err)
	}
}

func runBatch(ctx context.Context, cfg *config.Config, appContainer *container.Container) error {
	var out io.Writer = os.Stdout
	if cfg.ReportFile != "" {
		f, err := os.Create(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	batch := appContainer.Batch(app.BatchSettings{
		DatasetDir: cfg.DatasetDir,
		OutputDir:  cfg.OutputDir,
		Mode:       cfg.Mode,
		Workers:    cfg.Workers,
	}, report.NewWriter(out))

	for _, kind := range cfg.Kinds() {
		log.Printf("Processing %s (%s mode, %d workers)", kind.Folder(), cfg.Mode, cfg.Workers)
		records, err := batch.Run(ctx, kind)
		if err != nil {
			return err
		}
		if cfg.Mode == config.ModeAnalyse {
			log.Printf("%s: %s", kind.Folder(), report.Summarize(records))
		}
	}
	return nil
}
