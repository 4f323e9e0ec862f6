package mealplan

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/mealplan/storage"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !strings.HasSuffix(cfg.StateDir, AppName) {
		t.Errorf("StateDir = %q, want suffix %q", cfg.StateDir, AppName)
	}
	if cfg.InMemory {
		t.Error("InMemory = true, want false")
	}
	if cfg.WriteWorkers != len(storage.EntityTypes) {
		t.Errorf("WriteWorkers = %d, want %d", cfg.WriteWorkers, len(storage.EntityTypes))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithStateDir(" /tmp/mealplan/state/ "),
		WithInMemory(true),
		WithWriteWorkers(2),
	)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if cfg.StateDir != filepath.Clean("/tmp/mealplan/state") {
		t.Errorf("StateDir = %q, want normalized path", cfg.StateDir)
	}
	if !cfg.InMemory {
		t.Error("InMemory = false, want true")
	}
	if cfg.WriteWorkers != 2 {
		t.Errorf("WriteWorkers = %d, want 2", cfg.WriteWorkers)
	}
	if got := cfg.databasePath(HandleDatabaseName); got != "" {
		t.Errorf("databasePath() = %q, want empty for in-memory config", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
		workers int
	}{
		{
			name:    "missing state dir",
			cfg:     &Config{WriteWorkers: 1},
			wantErr: true,
		},
		{
			name:    "in memory without state dir",
			cfg:     &Config{InMemory: true, WriteWorkers: 1},
			wantErr: false,
			workers: 1,
		},
		{
			name:    "no workers",
			cfg:     &Config{StateDir: "/tmp/x"},
			wantErr: true,
		},
		{
			name:    "too many workers are clamped",
			cfg:     &Config{StateDir: "/tmp/x", WriteWorkers: 64},
			wantErr: false,
			workers: len(storage.EntityTypes),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("Validate() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if tt.cfg.WriteWorkers != tt.workers {
				t.Errorf("WriteWorkers = %d, want %d", tt.cfg.WriteWorkers, tt.workers)
			}
		})
	}
}
