package alder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables for an Editor and its subsystems.
// Zero values mean "use the default"; call the subsystems directly for
// settings where zero itself is meaningful.
type Config struct {
	// TargetRate caps scheduler flushes per second.
	TargetRate int `json:"target_rate" yaml:"target_rate" toml:"target_rate"`
	// FrameBudgetMs is the scheduler's per-flush processing budget in
	// milliseconds.
	FrameBudgetMs float64 `json:"frame_budget_ms" yaml:"frame_budget_ms" toml:"frame_budget_ms"`
	// BaseBuffer is the virtualizer's base viewport buffer in world units.
	BaseBuffer float64 `json:"base_buffer" yaml:"base_buffer" toml:"base_buffer"`
	// BypassThreshold is the entity count at or below which virtualization
	// is skipped entirely.
	BypassThreshold int `json:"bypass_threshold" yaml:"bypass_threshold" toml:"bypass_threshold"`
	// MinZoom and MaxZoom bound the camera zoom factor.
	MinZoom float64 `json:"min_zoom" yaml:"min_zoom" toml:"min_zoom"`
	MaxZoom float64 `json:"max_zoom" yaml:"max_zoom" toml:"max_zoom"`
	// ScreenWidth and ScreenHeight size the camera's screen rectangle.
	ScreenWidth  float64 `json:"screen_width" yaml:"screen_width" toml:"screen_width"`
	ScreenHeight float64 `json:"screen_height" yaml:"screen_height" toml:"screen_height"`
	// DebugOverlay enables the on-screen stats overlay.
	DebugOverlay bool `json:"debug_overlay" yaml:"debug_overlay" toml:"debug_overlay"`
}

// DefaultConfig returns the built-in defaults: 60/s target rate, 8ms frame
// budget, 100-unit base buffer, a bypass threshold of 50 entities, zoom
// bounds [0.1, 4], and a 1280x720 screen.
func DefaultConfig() Config {
	return Config{
		TargetRate:      defaultTargetRate,
		FrameBudgetMs:   float64(defaultFrameBudget) / float64(time.Millisecond),
		BaseBuffer:      defaultBaseBuffer,
		BypassThreshold: defaultBypassThreshold,
		MinZoom:         defaultMinZoom,
		MaxZoom:         defaultMaxZoom,
		ScreenWidth:     1280,
		ScreenHeight:    720,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TargetRate == 0 {
		c.TargetRate = def.TargetRate
	}
	if c.FrameBudgetMs == 0 {
		c.FrameBudgetMs = def.FrameBudgetMs
	}
	if c.BaseBuffer == 0 {
		c.BaseBuffer = def.BaseBuffer
	}
	if c.BypassThreshold == 0 {
		c.BypassThreshold = def.BypassThreshold
	}
	if c.MinZoom == 0 {
		c.MinZoom = def.MinZoom
	}
	if c.MaxZoom == 0 {
		c.MaxZoom = def.MaxZoom
	}
	if c.ScreenWidth == 0 {
		c.ScreenWidth = def.ScreenWidth
	}
	if c.ScreenHeight == 0 {
		c.ScreenHeight = def.ScreenHeight
	}
	return c
}

// FrameBudget returns the configured frame budget as a duration.
func (c Config) FrameBudget() time.Duration {
	return time.Duration(c.FrameBudgetMs * float64(time.Millisecond))
}

// LoadConfig reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
