// Package config loads runtime settings for the miner binary from viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/LanS10t/geminiMiner/internal/logging"
)

// Supported values for Config.Backend.
const (
	BackendGemini = "gemini"
	BackendClaude = "claude"
	BackendNone   = "none"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// apiKeyEnvFallbacks are consulted, in order, when api_key is unset.
var apiKeyEnvFallbacks = []string{"GEMINI_API_KEY", "API_KEY"}

// defaultDepths mirrors elevator.DefaultDepths; config sits below elevator
// in the import graph.
var defaultDepths = []int{100, 250, 500, 1000, 2000, 3500}

// ElevatorConfig holds the candidate floor list.
type ElevatorConfig struct {
	Depths []int `mapstructure:"depths"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config holds all runtime configuration.
// Values are populated from .miner.yaml, MINER_* env vars, and CLI flags.
type Config struct {
	Backend         string            `mapstructure:"backend"`
	APIKey          string            `mapstructure:"api_key"`
	Model           string            `mapstructure:"model"`
	ClaudePath      string            `mapstructure:"claude_path"`
	MaxBudgetUSD    float64           `mapstructure:"max_budget_usd"`
	MaxOutputTokens int               `mapstructure:"max_output_tokens"`
	Temperature     float64           `mapstructure:"temperature"`
	MockDelay       time.Duration     `mapstructure:"mock_delay"`
	UseDelegated    bool              `mapstructure:"use_delegated"`
	PersonaFile     string            `mapstructure:"persona_file"`
	ProgressDB      string            `mapstructure:"progress_db"`
	Verbose         bool              `mapstructure:"verbose"`
	Elevator        ElevatorConfig    `mapstructure:"elevator"`
	Log             logging.LogConfig `mapstructure:"log"`
	Server          ServerConfig      `mapstructure:"server"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("backend", BackendGemini)
	viper.SetDefault("api_key", "")
	viper.SetDefault("model", "gemini-2.5-flash")
	viper.SetDefault("claude_path", "claude")
	viper.SetDefault("max_budget_usd", 0.05)
	viper.SetDefault("max_output_tokens", 60)
	viper.SetDefault("temperature", 0.8)
	viper.SetDefault("mock_delay", 800*time.Millisecond)
	viper.SetDefault("use_delegated", true)
	viper.SetDefault("persona_file", "")
	viper.SetDefault("progress_db", "miner.db")
	viper.SetDefault("verbose", false)
	viper.SetDefault("elevator.depths", defaultDepths)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("server.addr", ":8088")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.APIKey == "" {
		for _, key := range apiKeyEnvFallbacks {
			if v := os.Getenv(key); v != "" {
				cfg.APIKey = v
				break
			}
		}
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendGemini, BackendClaude, BackendNone:
	default:
		return fmt.Errorf("%w: unknown backend %q (want gemini, claude, or none)", ErrInvalidConfig, c.Backend)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: temperature %v outside [0, 2]", ErrInvalidConfig, c.Temperature)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("%w: max_output_tokens must be positive, got %d", ErrInvalidConfig, c.MaxOutputTokens)
	}
	if c.MockDelay < 0 {
		return fmt.Errorf("%w: mock_delay must not be negative, got %s", ErrInvalidConfig, c.MockDelay)
	}
	if c.MaxBudgetUSD < 0 {
		return fmt.Errorf("%w: max_budget_usd must not be negative", ErrInvalidConfig)
	}

	seen := make(map[int]bool, len(c.Elevator.Depths))
	for _, d := range c.Elevator.Depths {
		if d <= 0 {
			return fmt.Errorf("%w: elevator depth %d must be positive", ErrInvalidConfig, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: elevator depth %d listed twice", ErrInvalidConfig, d)
		}
		seen[d] = true
	}
	return nil
}

// HasCredential reports whether the selected backend has what it needs to
// be attempted. The claude backend is checked later against PATH.
func (c Config) HasCredential() bool {
	switch c.Backend {
	case BackendGemini:
		return strings.TrimSpace(c.APIKey) != ""
	case BackendClaude:
		return c.ClaudePath != ""
	default:
		return false
	}
}

type personaFile struct {
	Persona string `toml:"persona"`
}

// LoadPersona reads the appraiser persona from a TOML file with a single
// `persona` key. An empty path returns "".
func LoadPersona(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading persona file: %w", err)
	}
	var pf personaFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return "", fmt.Errorf("parsing persona file %s: %w", path, err)
	}
	return strings.TrimSpace(pf.Persona), nil
}
