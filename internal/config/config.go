// Package config layers detection settings: built-in defaults, then an
// optional YAML file, then TRSCAN_* environment variables (optionally seeded
// from a .env file). Command-line flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"trscan/internal/engine"
)

// EnvPrefix prefixes every environment override, e.g. TRSCAN_MIN_SCORE.
const EnvPrefix = "TRSCAN_"

// ErrInvalidConfig is wrapped by every Validate failure that is not a
// parameter range error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full set of settings that affect a scan.
type Config struct {
	engine.Params `yaml:",inline"`

	Mode      string `yaml:"mode"`       // parallel | sequential
	Threads   int    `yaml:"threads"`    // 0 = all CPUs
	ChunkSize int    `yaml:"chunk_size"` // parallel partition width
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Params:    engine.DefaultParams(),
		Mode:      string(engine.ModeParallel),
		ChunkSize: engine.DefaultChunkSize,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if _, err := engine.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Threads < 0 {
		return fmt.Errorf("%w: threads must be ≥ 0 (got %d)", ErrInvalidConfig, c.Threads)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: chunk size must be ≥ 1 (got %d)", ErrInvalidConfig, c.ChunkSize)
	}
	return nil
}

// field is one settable key, shared by the env layer and Set.
type field struct {
	key string
	set func(string) error
}

func intField(key string, dst *int) field {
	return field{key: key, set: func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}}
}

func floatField(key string, dst *float64) field {
	return field{key: key, set: func(v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		*dst = f
		return nil
	}}
}

func stringField(key string, dst *string) field {
	return field{key: key, set: func(v string) error {
		*dst = strings.ToLower(strings.TrimSpace(v))
		return nil
	}}
}

func (c *Config) fields() []field {
	return []field{
		intField("match_weight", &c.MatchWeight),
		intField("mismatch_penalty", &c.MismatchPenalty),
		intField("indel_penalty", &c.IndelPenalty),
		intField("min_score", &c.MinScore),
		intField("max_period", &c.MaxPeriod),
		floatField("prefilter_fraction", &c.PrefilterFraction),
		intField("max_copies", &c.MaxCopies),
		intField("refine_flank", &c.RefineFlank),
		intField("refine_band", &c.RefineBand),
		intField("chunk_min_score", &c.ChunkMinScore),
		stringField("mode", &c.Mode),
		intField("threads", &c.Threads),
		intField("chunk_size", &c.ChunkSize),
	}
}

// Keys lists every configurable key in file order.
func Keys() []string {
	var c Config
	flds := c.fields()
	out := make([]string, len(flds))
	for i, f := range flds {
		out[i] = f.key
	}
	return out
}

// Set assigns one key from its string form.
func (c *Config) Set(key, value string) error {
	for _, f := range c.fields() {
		if f.key == key {
			if err := f.set(value); err != nil {
				return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
}

// Decode overlays YAML from r onto c. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto c. An empty path is a no-op.
func (c *Config) LoadFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := c.Decode(bytes.NewReader(bs)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays TRSCAN_<KEY> values found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, f := range c.fields() {
		name := EnvPrefix + strings.ToUpper(f.key)
		v, ok := lookup(name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if err := f.set(v); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, name, v, err)
		}
	}
	return nil
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from defaults, the YAML file at path (optional), the
// .env file at envFile (optional) and the process environment.
func Load(path, envFile string) (Config, error) {
	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		return cfg, err
	}
	if err := LoadDotEnv(envFile); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}
