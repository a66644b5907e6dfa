package main

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the placement defaults, overridable through the environment.
type Config struct {
	Margin      float64 `envconfig:"PICTOR_MARGIN" default:"160"`
	MaxRowWidth float64 `envconfig:"PICTOR_MAX_ROW_WIDTH" default:"12288"`
}

func loadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
