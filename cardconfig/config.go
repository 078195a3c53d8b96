// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cardconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/linkcard/tilt"
)

// Config is the card configuration file.
type Config struct {
	Defaults  ProfileDefaults `yaml:"defaults" json:"defaults"`
	Animation Animation       `yaml:"animation" json:"animation"`
	Uploads   Uploads         `yaml:"uploads" json:"uploads"`
}

// ProfileDefaults fill in profile fields the owner left empty.
type ProfileDefaults struct {
	Name               string `yaml:"name" json:"name"`
	Title              string `yaml:"title" json:"title"`
	Status             string `yaml:"status" json:"status"`
	ContactText        string `yaml:"contact_text" json:"contact_text"`
	CardRadius         int    `yaml:"card_radius" json:"card_radius"`
	ShowBehindGradient bool   `yaml:"show_behind_gradient" json:"show_behind_gradient"`
	EnableTilt         bool   `yaml:"enable_tilt" json:"enable_tilt"`
	ShowUserInfo       bool   `yaml:"show_user_info" json:"show_user_info"`
}

// Animation holds the tilt sweep constants in milliseconds and pixels.
type Animation struct {
	SmoothDurationMS  int     `yaml:"smooth_duration_ms" json:"smooth_duration_ms"`
	InitialDurationMS int     `yaml:"initial_duration_ms" json:"initial_duration_ms"`
	InitialXOffset    float64 `yaml:"initial_x_offset" json:"initial_x_offset"`
	InitialYOffset    float64 `yaml:"initial_y_offset" json:"initial_y_offset"`
}

type Uploads struct {
	MaxDimension int    `yaml:"max_dimension" json:"max_dimension"`
	MaxSize      string `yaml:"max_size" json:"max_size"`
	// MaxPixels caps width×height as declared by the image header.
	MaxPixels int64 `yaml:"max_pixels" json:"max_pixels"`
}

func Default() Config {
	return Config{
		Defaults: ProfileDefaults{
			Name:               "Javi A. Torres",
			Title:              "Software Engineer",
			Status:             "Online",
			ContactText:        "Contact",
			CardRadius:         30,
			ShowBehindGradient: true,
			EnableTilt:         true,
			ShowUserInfo:       true,
		},
		Animation: Animation{
			SmoothDurationMS:  600,
			InitialDurationMS: 1500,
			InitialXOffset:    70,
			InitialYOffset:    60,
		},
		Uploads: Uploads{
			MaxDimension: 1024,
			MaxSize:      "4 MB",
			MaxPixels:    40_000_000,
		},
	}
}

// Tilt converts the animation section for the tilt package.
func (a Animation) Tilt() tilt.AnimationConfig {
	return tilt.AnimationConfig{
		SmoothDuration:  time.Duration(a.SmoothDurationMS) * time.Millisecond,
		InitialDuration: time.Duration(a.InitialDurationMS) * time.Millisecond,
		InitialXOffset:  a.InitialXOffset,
		InitialYOffset:  a.InitialYOffset,
	}
}

// MaxBytes parses MaxSize ("4 MB", "512KiB", "1048576").
func (u Uploads) MaxBytes() (int64, error) {
	n, err := humanize.ParseBytes(u.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("uploads.max_size: %w", err)
	}
	return int64(n), nil
}

// Parse reads YAML over the defaults, so keys left out keep their default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("cardconfig: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path. A missing file yields Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("cardconfig: read %s: %w", path, err)
	}
	return Parse(data)
}

func (c Config) Validate() error {
	if c.Defaults.CardRadius < 0 || c.Defaults.CardRadius > 50 {
		return fmt.Errorf("cardconfig: defaults.card_radius must be 0-50, got %d", c.Defaults.CardRadius)
	}
	if c.Animation.SmoothDurationMS < 0 || c.Animation.InitialDurationMS < 0 {
		return errors.New("cardconfig: animation durations must not be negative")
	}
	if c.Uploads.MaxDimension < 64 || c.Uploads.MaxDimension > 4096 {
		return fmt.Errorf("cardconfig: uploads.max_dimension must be 64-4096, got %d", c.Uploads.MaxDimension)
	}
	if c.Uploads.MaxPixels <= 0 {
		return fmt.Errorf("cardconfig: uploads.max_pixels must be positive, got %d", c.Uploads.MaxPixels)
	}
	n, err := c.Uploads.MaxBytes()
	if err != nil {
		return fmt.Errorf("cardconfig: %w", err)
	}
	if n <= 0 {
		return errors.New("cardconfig: uploads.max_size must be positive")
	}
	return nil
}

// Store holds the live configuration. Safe for concurrent use.
type Store struct {
	current atomic.Pointer[Config]
}

func NewStore(cfg Config) *Store {
	s := &Store{}
	s.current.Store(&cfg)
	return s
}

func (s *Store) Current() Config {
	return *s.current.Load()
}

func (s *Store) Set(cfg Config) {
	s.current.Store(&cfg)
}
