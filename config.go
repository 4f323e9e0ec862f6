// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mealplan

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/poiesic/mealplan/storage"
)

// AppName names the application's state folder.
const AppName = "mealplan"

// HandleDatabaseName is the folder holding the directory handle database.
const HandleDatabaseName = "handles"

// Config holds storage configuration for an Adapter.
type Config struct {
	// StateDir holds the embedded databases.
	// Default: $XDG_DATA_HOME/mealplan
	StateDir string

	// InMemory keeps the embedded databases in memory. Nothing survives
	// Close. Intended for tests and dry runs.
	InMemory bool

	// WriteWorkers is the number of workers draining the per-kind write
	// queues. More than one worker per entity kind is never used.
	// Default: one per entity kind
	WriteWorkers int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithStateDir sets the folder holding the embedded databases.
func WithStateDir(dir string) ConfigOption {
	return func(c *Config) {
		c.StateDir = dir
	}
}

// WithInMemory keeps the embedded databases in memory.
func WithInMemory(inMemory bool) ConfigOption {
	return func(c *Config) {
		c.InMemory = inMemory
	}
}

// WithWriteWorkers sets the size of the write worker pool.
func WithWriteWorkers(n int) ConfigOption {
	return func(c *Config) {
		c.WriteWorkers = n
	}
}

// DefaultStateDir returns the per-user data folder for the application.
func DefaultStateDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultConfig returns a Config storing state under the user's XDG data folder.
func DefaultConfig() *Config {
	return &Config{
		StateDir:     DefaultStateDir(),
		WriteWorkers: len(storage.EntityTypes),
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//   cfg := NewConfig(
//       WithStateDir("/var/lib/mealplan"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize cleans the state folder path and clamps the worker count.
func (c *Config) Normalize() {
	c.StateDir = strings.TrimSpace(c.StateDir)
	if c.StateDir != "" {
		c.StateDir = filepath.Clean(c.StateDir)
	}
	if c.WriteWorkers > len(storage.EntityTypes) {
		c.WriteWorkers = len(storage.EntityTypes)
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.StateDir == "" && !c.InMemory {
		return errors.New("mealplan config: StateDir is required")
	}
	if c.WriteWorkers < 1 {
		return errors.New("mealplan config: WriteWorkers must be at least 1")
	}
	return nil
}

func (c *Config) databasePath(name string) string {
	if c.InMemory {
		return ""
	}
	return filepath.Join(c.StateDir, name)
}
