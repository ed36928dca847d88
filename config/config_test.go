package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pcb-inspector/internal/domain/entity"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PCB_MODE", "")
	t.Setenv("PCB_KIND", "")
	t.Setenv("PCB_WORKERS", "")
	t.Setenv("PCB_DATASET_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ModeAnalyse, cfg.Mode)
	require.Equal(t, KindAll, cfg.Kind)
	require.Equal(t, 1, cfg.Workers)
	require.Equal(t, "./PCB_DATASET", cfg.DatasetDir)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PCB_MODE", "Save")
	t.Setenv("PCB_KIND", "mouse_bite")
	t.Setenv("PCB_WORKERS", "4")
	t.Setenv("PCB_OUTPUT_DIR", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ModeSave, cfg.Mode)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, "/tmp/out", cfg.OutputDir)
	require.Equal(t, []entity.DefectKind{entity.KindMouseBite}, cfg.Kinds())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PCB_MODE", "render")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("PCB_MODE", "analyse")
	t.Setenv("PCB_WORKERS", "zero")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("PCB_WORKERS", "0")
	_, err = Load()
	require.Error(t, err)
}

func TestValidate_BotNeedsToken(t *testing.T) {
	cfg := &Config{Mode: ModeBot, Kind: KindAll, Workers: 1}
	require.Error(t, cfg.Validate())

	cfg.TelegramToken = "token"
	require.NoError(t, cfg.Validate())
}
