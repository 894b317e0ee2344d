// Package config loads the declarative layer configuration that drives
// composite rendering: the picture_layers stack, canvas/background
// settings, and the file-copy rules applied when provisioning product
// folders.
package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultJPEGQuality = 85

type Config struct {
	Layers       map[string]Layer `yaml:"picture_layers"`
	Background   *RGBA            `yaml:"background_color"`
	CanvasSize   *Dimensions      `yaml:"canvas_size"`
	Quality      *int             `yaml:"quality"`
	CopyFiles    []CopyFile       `yaml:"copy_files"`
	CopySettings CopySettings     `yaml:"copy_settings"`
}

// CopyFile names a static asset copied into every product folder.
type CopyFile struct {
	Source string `yaml:"source"`
}

type CopySettings struct {
	Overwrite       bool `yaml:"overwrite"`
	ContinueOnError bool `yaml:"continue_on_error"`
}

// Load reads and decodes a YAML configuration file. A missing file is an
// error; an empty document yields an empty config.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// BackgroundColor returns the configured canvas fill, defaulting to
// opaque white.
func (c *Config) BackgroundColor() color.NRGBA {
	if c.Background == nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c.Background.NRGBA()
}

// JPEGQuality returns the lossy encoding quality, defaulting to 85 when
// unset. Explicit values clamp to the encoder's [1,100] range, so a
// configured 0 means minimum quality rather than the default.
func (c *Config) JPEGQuality() int {
	if c.Quality == nil {
		return defaultJPEGQuality
	}
	q := *c.Quality
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

// RGBA is a 0-255 red/green/blue/alpha tuple written as a YAML sequence.
type RGBA [4]uint8

func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func (c *RGBA) UnmarshalYAML(node *yaml.Node) error {
	var parts []int
	if err := node.Decode(&parts); err != nil {
		return err
	}
	if len(parts) != 4 {
		return fmt.Errorf("color needs 4 components, got %d", len(parts))
	}
	for i, v := range parts {
		if v < 0 || v > 255 {
			return fmt.Errorf("color component %d out of range: %d", i, v)
		}
		c[i] = uint8(v)
	}
	return nil
}

// Dimensions is a width/height pair written as a YAML [w, h] sequence.
type Dimensions struct {
	Width  int
	Height int
}

func (d *Dimensions) UnmarshalYAML(node *yaml.Node) error {
	var parts []int
	if err := node.Decode(&parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("size needs 2 components, got %d", len(parts))
	}
	if parts[0] <= 0 || parts[1] <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", parts[0], parts[1])
	}
	d.Width, d.Height = parts[0], parts[1]
	return nil
}
