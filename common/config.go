// /home/krylon/go/src/github.com/blicero/wellspring/common/config.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 19:02:44 krylon>

package common

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings that can be supplied through the environment.
// Command line flags take precedence over them.
type Config struct {
	BaseDir  string `env:"WELLSPRING_BASE_DIR"`
	Address  string `env:"WELLSPRING_ADDRESS"`
	LogLevel string `env:"WELLSPRING_LOG_LEVEL" envDefault:"DEBUG"`
}

// LoadConfig reads the Config from the environment, filling in defaults
// for values that were not set.
func LoadConfig() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.BaseDir == "" {
		pathLock.RLock()
		cfg.BaseDir = BaseDir
		pathLock.RUnlock()
	}

	if cfg.Address == "" {
		cfg.Address = fmt.Sprintf("localhost:%d", DefaultPort)
	}

	return &cfg, nil
} // func LoadConfig() (*Config, error)
