// Package config loads antroute settings from YAML.
//
// Config file locations (priority order):
//  1. $ANTROUTE_CONFIG
//  2. ./antroute.yaml
//  3. $XDG_CONFIG_HOME/antroute/config.yaml
//  4. ~/.config/antroute/config.yaml
//
// Keys missing from the file keep their DefaultConfig values.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/antroute/aco"
	"github.com/katalvlaran/antroute/internal/logging"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// Defaults that aco.DefaultOptions does not cover.
const (
	DefaultRandomVertices  = 20
	DefaultWidth           = 800
	DefaultHeight          = 600
	DefaultIterationsPerS  = 10.0
	DefaultRemoveRadius    = 25.0
	DefaultLogLevel        = "info"
	DefaultLogFormat       = logging.FormatText
	DefaultShutdownTimeout = 5 * time.Second
)

// Config is the root of the YAML document.
type Config struct {
	Colony  ColonyConfig  `yaml:"colony"`
	Problem ProblemConfig `yaml:"problem"`
	Run     RunConfig     `yaml:"run"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// ColonyConfig mirrors aco.Options.
type ColonyConfig struct {
	Alpha            float64 `yaml:"alpha"`
	Beta             float64 `yaml:"beta"`
	EvaporationRate  float64 `yaml:"evaporation_rate"`
	Ants             int     `yaml:"ants"`
	InitialPheromone float64 `yaml:"initial_pheromone"`
	Seed             int64   `yaml:"seed"`
	Workers          int     `yaml:"workers"`
}

// ProblemConfig selects the vertex set: a file when VerticesFile is set,
// otherwise RandomVertices points on a Width×Height board. File points
// outside the board are skipped.
type ProblemConfig struct {
	VerticesFile   string `yaml:"vertices_file,omitempty"`
	RandomVertices int    `yaml:"random_vertices"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
}

// RunConfig controls the iteration loop. Zero Iterations or StagnationLimit
// means unbounded; zero IterationsPerSecond means as fast as possible.
type RunConfig struct {
	Iterations          int     `yaml:"iterations"`
	IterationsPerSecond float64 `yaml:"iterations_per_second"`
	StagnationLimit     int     `yaml:"stagnation_limit"`
	ExportPath          string  `yaml:"export_path,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig holds the optional HTTP control surface. Empty Listen disables it.
type ServerConfig struct {
	Listen          string   `yaml:"listen,omitempty"`
	RemoveRadius    float64  `yaml:"remove_radius"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// Duration wraps time.Duration for YAML ("5s", "250ms").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load finds and loads the config file, or returns defaults if none found.
// The returned path is empty when defaults were used.
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

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, path, nil
}

// Save writes config to the specified path.
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the defaults of a fresh installation.
func DefaultConfig() *Config {
	o := aco.DefaultOptions()

	return &Config{
		Colony: ColonyConfig{
			Alpha:            o.Alpha,
			Beta:             o.Beta,
			EvaporationRate:  o.EvaporationRate,
			Ants:             o.NumAnts,
			InitialPheromone: o.InitialPheromone,
			Seed:             o.Seed,
			Workers:          o.Workers,
		},
		Problem: ProblemConfig{
			RandomVertices: DefaultRandomVertices,
			Width:          DefaultWidth,
			Height:         DefaultHeight,
		},
		Run: RunConfig{
			IterationsPerSecond: DefaultIterationsPerS,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Server: ServerConfig{
			RemoveRadius:    DefaultRemoveRadius,
			ShutdownTimeout: Duration(DefaultShutdownTimeout),
		},
	}
}

// applyDefaults fills in values that were explicitly emptied.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Problem.Width <= 0 {
		c.Problem.Width = DefaultWidth
	}
	if c.Problem.Height <= 0 {
		c.Problem.Height = DefaultHeight
	}
	if c.Server.RemoveRadius <= 0 {
		c.Server.RemoveRadius = DefaultRemoveRadius
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = Duration(DefaultShutdownTimeout)
	}
}

// EngineOptions converts the colony section into engine options.
func (c *Config) EngineOptions() aco.Options {
	o := aco.DefaultOptions()
	o.Alpha = c.Colony.Alpha
	o.Beta = c.Colony.Beta
	o.EvaporationRate = c.Colony.EvaporationRate
	o.NumAnts = c.Colony.Ants
	o.InitialPheromone = c.Colony.InitialPheromone
	o.Seed = c.Colony.Seed
	o.Workers = c.Colony.Workers

	return o
}

// Validate checks every section. Colony errors wrap both ErrInvalid and the
// matching aco sentinel.
func (c *Config) Validate() error {
	if err := c.EngineOptions().Validate(); err != nil {
		return fmt.Errorf("colony: %w: %w", ErrInvalid, err)
	}
	if c.Problem.VerticesFile == "" && c.Problem.RandomVertices <= 0 {
		return fmt.Errorf("problem: random_vertices must be > 0 without vertices_file: %w", ErrInvalid)
	}
	if c.Run.Iterations < 0 {
		return fmt.Errorf("run: iterations must be >= 0: %w", ErrInvalid)
	}
	if !(c.Run.IterationsPerSecond >= 0) || math.IsInf(c.Run.IterationsPerSecond, 1) {
		return fmt.Errorf("run: iterations_per_second must be finite and >= 0: %w", ErrInvalid)
	}
	if c.Run.StagnationLimit < 0 {
		return fmt.Errorf("run: stagnation_limit must be >= 0: %w", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w: %w", ErrInvalid, err)
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log: unknown format %q: %w", c.Log.Format, ErrInvalid)
	}

	return nil
}
