// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// BodyCount is the number of orbiting bodies, and therefore of body
// textures and heading titles a config must carry.
const BodyCount = 4

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Headings HeadingsConfig `yaml:"headings"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AssetsConfig holds texture locations. Relative paths resolve against Dir;
// http(s) URLs are fetched.
type AssetsConfig struct {
	Dir            string        `yaml:"dir"`
	EnvironmentURL string        `yaml:"environment_url"`
	Starfield      string        `yaml:"starfield"`
	BodyTextures   []string      `yaml:"body_textures"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
}

// HeadingsConfig holds the overlay text.
type HeadingsConfig struct {
	Titles   []string `yaml:"titles"`
	FontSize float64  `yaml:"font_size"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	ShowFPS       bool   `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Assets: AssetsConfig{
			Dir:            "assets",
			EnvironmentURL: "https://dl.polyhaven.org/file/ph-assets/HDRIs/hdr/1k/rogland_clear_night_1k.hdr",
			Starfield:      "stars.jpg",
			BodyTextures: []string{
				"csilla/color.png",
				"earth/map.jpg",
				"venus/map.jpg",
				"volcanic/color.png",
			},
			FetchTimeout: 30 * time.Second,
		},
		Headings: HeadingsConfig{
			Titles:   []string{"Csilla", "Earth", "Venus", "Volcanic"},
			FontSize: 72,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
			ShowFPS:       false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the demo cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if n := len(c.Assets.BodyTextures); n != BodyCount {
		errs = append(errs, fmt.Errorf("assets: need %d body textures, got %d", BodyCount, n))
	}
	if n := len(c.Headings.Titles); n != BodyCount {
		errs = append(errs, fmt.Errorf("headings: need %d titles, got %d", BodyCount, n))
	}
	if c.Headings.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("headings: invalid font size %v", c.Headings.FontSize))
	}
	if c.Assets.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("assets: invalid fetch timeout %v", c.Assets.FetchTimeout))
	}
	return errors.Join(errs...)
}
