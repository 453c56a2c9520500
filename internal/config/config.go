// Package config handles asset tool configuration loading and management.
package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds all settings.
type Config struct {
	Project ProjectConfig `yaml:"project" toml:"project"`
	Terrain TerrainConfig `yaml:"terrain" toml:"terrain"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ProjectConfig locates the asset directory.
type ProjectConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// TerrainConfig holds defaults for imported terrains.
type TerrainConfig struct {
	DefaultSize       int `yaml:"default_size" toml:"default_size"`
	DefaultResolution int `yaml:"default_resolution" toml:"default_resolution"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Dir: "./assets",
		},
		Terrain: TerrainConfig{
			DefaultSize:       1200,
			DefaultResolution: 180,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Project.Validate(); err != nil {
		return err
	}
	if err := c.Terrain.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// Validate validates the project configuration.
func (c *ProjectConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// Validate validates the terrain configuration.
func (c *TerrainConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultSize, validation.Required, validation.Min(1)),
		validation.Field(&c.DefaultResolution, validation.Required, validation.Min(2), validation.Max(4096)),
	)
}

// Validate validates the logging configuration.
func (c *LoggingConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
	)
}
