package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/jackzampolin/thermomap/internal/home"
)

func testHome(t *testing.T) *home.Dir {
	t.Helper()
	h, err := home.New(filepath.Join(t.TempDir(), "thermomap"))
	if err != nil {
		t.Fatalf("failed to create home: %v", err)
	}
	return h
}

func TestDefaultConfig(t *testing.T) {
	h := testHome(t)
	cfg := DefaultConfig(h)

	if cfg.DataFile != h.DefaultDataFile() {
		t.Errorf("expected data file %s, got %s", h.DefaultDataFile(), cfg.DataFile)
	}
	if cfg.TemplateFile != h.DefaultTemplateFile() {
		t.Errorf("expected template file %s, got %s", h.DefaultTemplateFile(), cfg.TemplateFile)
	}
	if cfg.OutputDir != h.ResultPath() {
		t.Errorf("expected output dir %s, got %s", h.ResultPath(), cfg.OutputDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("defaults when no config file exists", func(t *testing.T) {
		viper.Reset()
		h := testHome(t)

		cm, err := NewManager("", h)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := cm.Get()
		if cfg.DataFile != h.DefaultDataFile() {
			t.Errorf("expected default data file, got %s", cfg.DataFile)
		}
	})

	t.Run("explicit config file overrides defaults", func(t *testing.T) {
		viper.Reset()
		h := testHome(t)

		cfgPath := filepath.Join(t.TempDir(), "config.yaml")
		content := "data_file: /custom/run7.txt\nlog_level: debug\n"
		if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cm, err := NewManager(cfgPath, h)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := cm.Get()
		if cfg.DataFile != "/custom/run7.txt" {
			t.Errorf("expected /custom/run7.txt, got %s", cfg.DataFile)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("expected debug, got %s", cfg.LogLevel)
		}
		// Unset keys keep their defaults.
		if cfg.TemplateFile != h.DefaultTemplateFile() {
			t.Errorf("expected default template file, got %s", cfg.TemplateFile)
		}
	})
}
