// Package config reads the molbond settings file.
//
// Config file locations (priority order):
//  1. $MOLBOND_CONFIG
//  2. ./molbond.yaml
//  3. ~/.config/molbond/config.yaml
//
// Anything missing from the file gets a default, and command line
// flags override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andrew-torda/molbond/pkg/bond"
	"github.com/andrew-torda/molbond/pkg/render"
	"github.com/andrew-torda/molbond/pkg/resource"
)

const (
	EnvConfigPath  = "MOLBOND_CONFIG"
	ConfigFileName = "molbond.yaml"
	ConfigDirName  = "molbond"
)

// Where molecules come from.
const (
	SourceFile   = "file"
	SourceBundle = "bundle"
	SourceRCSB   = "rcsb"
)

// Config is everything in the settings file.
type Config struct {
	Source string       `yaml:"source"`
	Format string       `yaml:"format"`
	Log    string       `yaml:"log"`
	Bond   BondConfig   `yaml:"bond"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Render RenderConfig `yaml:"render"`
}

type BondConfig struct {
	Radius        float64 `yaml:"radius"`
	Dedup         bool    `yaml:"dedup"`
	CovalentRadii bool    `yaml:"covalent_radii"`
}

// FetchConfig is for downloading ligands. Cache is the path of an
// SQLite file; empty means no cache.
type FetchConfig struct {
	URLTemplate string        `yaml:"url_template"`
	Timeout     time.Duration `yaml:"timeout"`
	Cache       string        `yaml:"cache"`
	Workers     int           `yaml:"workers"`
}

type RenderConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Labels bool `yaml:"labels"`
}

// DefaultConfig is what you get with no file at all.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = SourceFile
	}
	if c.Format == "" {
		c.Format = "summary"
	}
	if c.Bond.Radius <= 0 {
		c.Bond.Radius = bond.DefaultBondRadius
	}
	if c.Fetch.URLTemplate == "" {
		c.Fetch.URLTemplate = resource.RCSBTemplate
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.Workers <= 0 {
		c.Fetch.Workers = 4
	}
	d := render.DefaultOptions()
	if c.Render.Width <= 0 {
		c.Render.Width = d.Width
	}
	if c.Render.Height <= 0 {
		c.Render.Height = d.Height
	}
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceFile, SourceBundle, SourceRCSB:
	default:
		return fmt.Errorf("source %q should be %s, %s or %s", c.Source, SourceFile, SourceBundle, SourceRCSB)
	}
	return nil
}

// BondOptions turns the bond section into options for bond.Build.
func (c *Config) BondOptions() bond.Options {
	return bond.Options{
		BondRadius:    c.Bond.Radius,
		Dedup:         c.Bond.Dedup,
		CovalentRadii: c.Bond.CovalentRadii,
	}
}

// RenderOptions turns the render section into options for render.PNG.
func (c *Config) RenderOptions() render.Options {
	o := render.DefaultOptions()
	o.Width, o.Height, o.Labels = c.Render.Width, c.Render.Height, c.Render.Labels
	return o
}

// Load finds and loads the config file, or returns defaults if none
// found. The path is "" if there was no file.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, path, nil
}

// FindConfigPath returns the first config file that exists, or "".
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}
	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
