// SPDX-License-Identifier: MIT
// Package config loads and validates run settings for the almanac CLI.
//
// Settings come from an optional YAML file; command-line flags override them
// afterwards. A missing file path means "defaults only".
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Solve modes.
const (
	ModeRanges = "ranges"
	ModeSeeds  = "seeds"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

var validate = validator.New()

// RunConfig holds the settings of one solve run.
type RunConfig struct {
	// From is the category the seeds belong to; To is the terminal category.
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required,nefield=From"`

	// Mode selects how the seed line is read: pairs of ranges or single values.
	Mode string `yaml:"mode" validate:"oneof=ranges seeds"`

	// Workers bounds concurrent range minimization; 0 means unbounded.
	Workers int `yaml:"workers" validate:"gte=0,lte=1024"`

	RunKey      string `yaml:"run_key" validate:"oneof=segments path"`
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the settings of the canonical seed-to-location problem.
func Default() RunConfig {
	return RunConfig{
		From:     "seed",
		To:       "location",
		Mode:     ModeRanges,
		RunKey:   "segments",
		LogLevel: "info",
	}
}

// Load reads path over the defaults and validates the result.
// An empty path returns the validated defaults.
func Load(path string) (RunConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks every field tag and reports all violations at once.
func (c RunConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Level maps LogLevel to a slog.Level; unknown names map to Info.
func (c RunConfig) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}
