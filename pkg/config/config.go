// Package config loads lumina settings from a .lumina config file, the
// environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is where the task store lives unless configured.
	DefaultPath = "~/.lumina.db"
	// DefaultModel is the Gemini model used for natural language parsing.
	DefaultModel = "gemini-2.0-flash"
)

// Config holds all lumina settings.
type Config struct {
	Path   string       `mapstructure:"path"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Gate   GateConfig   `mapstructure:"gate"`
	Log    LogConfig    `mapstructure:"log"`
}

// GeminiConfig configures the natural language parser.
type GeminiConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	Endpoint string `mapstructure:"endpoint"`
}

// GateConfig configures the session password gate of the terminal UI.
type GateConfig struct {
	Secret string `mapstructure:"secret"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BasePath returns the expanded store location.
func (c *Config) BasePath() string {
	p, err := homedir.Expand(c.Path)
	if err != nil {
		return c.Path
	}
	return p
}

// Load reads configuration. A missing config file is not an error.
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith reads configuration into v. Tests pass a fresh viper.
func LoadWith(v *viper.Viper) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	setDefaults(v)

	v.SetConfigName(".lumina") // .yaml is implicit
	v.SetEnvPrefix("LUMINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("LUMINA_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	// The Gemini SDKs read GEMINI_API_KEY; honour it when ours is unset.
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = DefaultModel
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", DefaultModel)
	v.SetDefault("gemini.endpoint", "")
	v.SetDefault("gate.secret", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}
