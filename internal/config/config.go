package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
)

type Config struct {
	OutputFolder string `koanf:"output_folder"` // where thumbgen writes thumbnails (default: cwd)

	Thumbnail ThumbnailConfig `koanf:"thumbnail"`
}

// ThumbnailConfig holds thumbnail rendering configuration.
type ThumbnailConfig struct {
	Size            int    `koanf:"size"`             // default size in pixels (64-1024, default: 128)
	Filter          string `koanf:"filter"`           // "catmullrom", "bicubic" or "lanczos3" (default: catmullrom)
	BorderColor     string `koanf:"border_color"`     // hex colour (default: #000000)
	BackgroundColor string `koanf:"background_color"` // hex colour (default: #ffffff)
	YieldMs         int    `koanf:"yield_ms"`         // pause between bands; negative disables (default: 1)
	Workers         int    `koanf:"workers"`          // concurrent renders in batch mode (1-32, default: 4)
}

func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

func loadFrom(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	// Later paths override earlier ones
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		OutputFolder: "", // empty means use cwd
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.OutputFolder != "" {
		cfg.OutputFolder = expandPath(cfg.OutputFolder)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/pagethumbs/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pagethumbs", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetThumbnailConfig returns the thumbnail configuration with defaults applied.
func (c *Config) GetThumbnailConfig() ThumbnailConfig {
	cfg := c.Thumbnail

	if cfg.Size <= 0 {
		cfg.Size = thumbnail.DefaultSize
	}
	cfg.Size = thumbnail.ClampSize(cfg.Size)

	cfg.Filter = strings.ToLower(strings.TrimSpace(cfg.Filter))
	if cfg.Filter == "" {
		cfg.Filter = thumbnail.FilterCatmullRom
	}
	if cfg.BorderColor == "" {
		cfg.BorderColor = "#000000"
	}
	if cfg.BackgroundColor == "" {
		cfg.BackgroundColor = "#ffffff"
	}
	if cfg.YieldMs == 0 {
		cfg.YieldMs = 1
	}
	if cfg.Workers <= 0 || cfg.Workers > 32 {
		cfg.Workers = 4
	}

	return cfg
}

// YieldDuration returns the pause between bands, zero when disabled.
func (c ThumbnailConfig) YieldDuration() time.Duration {
	if c.YieldMs <= 0 {
		return 0
	}
	return time.Duration(c.YieldMs) * time.Millisecond
}

// RendererOptions converts the configuration into thumbnail renderer options.
func (c ThumbnailConfig) RendererOptions() ([]thumbnail.Option, error) {
	scaler, err := thumbnail.ParseFilter(c.Filter)
	if err != nil {
		return nil, err
	}
	border, err := colorful.Hex(c.BorderColor)
	if err != nil {
		return nil, fmt.Errorf("border_color: %w", err)
	}
	background, err := colorful.Hex(c.BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("background_color: %w", err)
	}

	return []thumbnail.Option{
		thumbnail.WithScaler(scaler),
		thumbnail.WithYieldDuration(c.YieldDuration()),
		thumbnail.WithBorderColor(border),
		thumbnail.WithBackgroundColor(background),
	}, nil
}
