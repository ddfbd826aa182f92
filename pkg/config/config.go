// Package config loads the editor's settings from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chazu/atrium/pkg/plan"
)

// Config carries every tunable the application reads at startup.
type Config struct {
	// SnapThreshold is the max distance at which a pointer position
	// counts as "at" an existing node.
	SnapThreshold float64 `yaml:"snap_threshold"`
	// WallTolerance is the max distance from a wall segment for a
	// pointer to hit the wall.
	WallTolerance float64 `yaml:"wall_tolerance"`
	// HistoryLimit bounds the undo stack.
	HistoryLimit int `yaml:"history_limit"`
	// Wall holds the properties stamped on newly drawn walls.
	Wall WallDefaults `yaml:"wall"`
	// MeshCells is the marching-cubes resolution of the 3D preview.
	MeshCells int `yaml:"mesh_cells"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// SessionDB is the path of the sqlite file holding saved sessions.
	SessionDB string `yaml:"session_db"`
}

// WallDefaults mirrors plan.WallProperties with yaml tags.
type WallDefaults struct {
	Thickness float64 `yaml:"thickness"`
	Height    float64 `yaml:"height"`
	Material  string  `yaml:"material"`
}

// Props converts the defaults to graph wall properties.
func (w WallDefaults) Props() plan.WallProperties {
	return plan.WallProperties{
		Thickness: w.Thickness,
		Height:    w.Height,
		Material:  w.Material,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SnapThreshold: 20,
		WallTolerance: 5,
		HistoryLimit:  100,
		Wall: WallDefaults{
			Thickness: 15,
			Height:    240,
			Material:  "drywall",
		},
		MeshCells: 64,
		LogLevel:  "info",
		SessionDB: "atrium.db",
	}
}

// Load reads the config at path, layered over the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.SnapThreshold <= 0 {
		return fmt.Errorf("snap_threshold must be positive, got %v", c.SnapThreshold)
	}
	if c.WallTolerance <= 0 {
		return fmt.Errorf("wall_tolerance must be positive, got %v", c.WallTolerance)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.MeshCells <= 0 {
		return fmt.Errorf("mesh_cells must be positive, got %d", c.MeshCells)
	}
	if c.Wall.Thickness <= 0 || c.Wall.Height <= 0 {
		return fmt.Errorf("wall thickness and height must be positive")
	}
	return nil
}
