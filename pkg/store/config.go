package store

import (
	"tableflip.dev/lumina/pkg/config"
)

// Config is what the disk store needs from configuration.
type Config interface {
	BasePath() string
}

// LoadConfig reads lumina's configuration for callers that have none yet.
func LoadConfig() (Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
