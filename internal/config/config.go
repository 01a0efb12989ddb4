// Package config holds the run configuration of the almanac command.
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-almanac/internal/logging"
	"github.com/askiada/go-almanac/pkg/solver"
)

var ErrInvalidConcurrency = errors.New("concurrency must be at least 1")

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is a run of the solver.
type Config struct {
	Input           string `yaml:"input"`
	Mode            string `yaml:"mode"`
	Concurrency     int    `yaml:"concurrency"`
	Graph           string `yaml:"graph"`
	TolerateOverlap bool   `yaml:"tolerate_overlap"`
	Stream          bool   `yaml:"stream"`
	Log             Log    `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mode:        string(solver.ModeBoth),
		Concurrency: 1,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path on top of the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config %s", path)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	err = decoder.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "unable to decode config %s", path)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}

// Validate checks every enumerated field.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return errors.Wrapf(ErrInvalidConcurrency, "got %d", c.Concurrency)
	}
	if _, err := solver.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return err
	}

	return nil
}

// Logger builds the logger described by c.Log. c must be valid.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := logging.ParseLevel(c.Log.Level)
	format, _ := logging.ParseFormat(c.Log.Format)

	return logging.New(w, level, format)
}
