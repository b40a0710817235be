package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
	"github.com/olehluchkiv/artistpairs/internal/report"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ARTISTPAIRS_"

type AnalysisConfig struct {
	Threshold int `toml:"threshold"`
	Workers   int `toml:"workers"`
}

type OutputConfig struct {
	Format   string `toml:"format"`
	File     string `toml:"file"`
	MaxPairs int    `toml:"max_pairs"`
}

type ServerConfig struct {
	Port      int  `toml:"port"`
	NoBrowser bool `toml:"no_browser"`
}

type LogConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{Threshold: 50, Workers: runtime.NumCPU()},
		Output:   OutputConfig{Format: string(report.FormatText), MaxPairs: 200},
		Server:   ServerConfig{Port: 8080},
		Log: LogConfig{
			File:       "logs/artistpairs.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Load builds a configuration from defaults, the optional TOML file at path
// and the environment, in that order of precedence (later wins). A .env file
// in the working directory is loaded into the environment first if present.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"THRESHOLD": &c.Analysis.Threshold,
		"WORKERS":   &c.Analysis.Workers,
		"MAX_PAIRS": &c.Output.MaxPairs,
		"PORT":      &c.Server.Port,
	}
	for key, dst := range ints {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s=%q: %w", EnvPrefix, key, v, err)
		}
		*dst = n
	}

	strs := map[string]*string{
		"FORMAT":    &c.Output.Format,
		"OUTPUT":    &c.Output.File,
		"LOG_FILE":  &c.Log.File,
		"LOG_LEVEL": &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	return nil
}

// Validate rejects configurations the pipeline must never see.
func (c *Config) Validate() error {
	if err := c.AnalysisOptions().Validate(); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	return nil
}

// AnalysisOptions returns the counting options. The same threshold drives
// both candidate filtering and pair selection.
func (c *Config) AnalysisOptions() cooccur.Options {
	return cooccur.Options{Threshold: c.Analysis.Threshold, Workers: c.Analysis.Workers}
}
