// Package config provides Viper-based configuration loading for the simulation server.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SimulationConfig holds the fixed-step simulation loop settings.
type SimulationConfig struct {
	// TickRate is the number of simulation ticks per second.
	TickRate int `mapstructure:"tick_rate"`
	// Seed is the deterministic random seed; 0 means seed from the clock.
	Seed int64 `mapstructure:"seed"`
}

// TickInterval returns the duration of one tick in seconds.
//
// Precondition: TickRate must be >= 1.
// Postcondition: Returns a positive value.
func (s SimulationConfig) TickInterval() float64 {
	return 1.0 / float64(s.TickRate)
}

// ContentConfig holds paths to the data-driven content files.
type ContentConfig struct {
	// WeaponsPath is the YAML file defining weapon animation and damage templates.
	WeaponsPath string `mapstructure:"weapons_path"`
	// AgentsPath is the YAML file defining agent templates.
	AgentsPath string `mapstructure:"agents_path"`
	// MapPath is the YAML file defining the level grid and spawn points.
	MapPath string `mapstructure:"map_path"`
	// ScriptsDir is the directory of Lua hook scripts; empty disables scripting.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// DefaultWeapon is the weapon template the player starts with.
	DefaultWeapon string `mapstructure:"default_weapon"`
}

// PlayerConfig holds the player's starting state.
type PlayerConfig struct {
	// StartX and StartY are the player's spawn position in world units.
	StartX float64 `mapstructure:"start_x"`
	StartY float64 `mapstructure:"start_y"`
	// MaxHealth is the player's starting and maximum health.
	MaxHealth float64 `mapstructure:"max_health"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Content    ContentConfig    `mapstructure:"content"`
	Player     PlayerConfig     `mapstructure:"player"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePlayer(c.Player); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.TickRate < 1 || s.TickRate > 1000 {
		errs = append(errs, fmt.Sprintf("simulation.tick_rate must be 1-1000, got %d", s.TickRate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.WeaponsPath == "" {
		errs = append(errs, "content.weapons_path must not be empty")
	}
	if c.AgentsPath == "" {
		errs = append(errs, "content.agents_path must not be empty")
	}
	if c.MapPath == "" {
		errs = append(errs, "content.map_path must not be empty")
	}
	if c.DefaultWeapon == "" {
		errs = append(errs, "content.default_weapon must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePlayer(p PlayerConfig) error {
	if p.MaxHealth <= 0 {
		return fmt.Errorf("player.max_health must be > 0, got %g", p.MaxHealth)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path must not be empty")
	}

	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DUSKFALL_ prefix
	v.SetEnvPrefix("DUSKFALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.tick_rate", 60)
	v.SetDefault("simulation.seed", 0)

	v.SetDefault("content.weapons_path", "content/weapons.yaml")
	v.SetDefault("content.agents_path", "content/agents.yaml")
	v.SetDefault("content.map_path", "content/map.yaml")
	v.SetDefault("content.scripts_dir", "content/scripts")
	v.SetDefault("content.default_weapon", "sword")

	v.SetDefault("player.start_x", 20)
	v.SetDefault("player.start_y", 20)
	v.SetDefault("player.max_health", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
