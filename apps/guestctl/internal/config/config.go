// Package config はguestctlの設定を環境変数から読み込む。
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
)

// Config はguestctlの設定を表す。
type Config struct {
	// guestauthのCHAT_UDP_PEERに合わせる
	ListenAddr  string `envconfig:"GUESTCTL_LISTEN_ADDR" default:"127.0.0.1:9999"`
	MaxLines    int    `envconfig:"GUESTCTL_MAX_LINES" default:"1000"`
	HistorySize int    `envconfig:"GUESTCTL_HISTORY_SIZE" default:"100"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MaxLines <= 0 {
		return apperr.NewValidationError("GUESTCTL_MAX_LINES", "must be positive")
	}
	if c.HistorySize <= 0 {
		return apperr.NewValidationError("GUESTCTL_HISTORY_SIZE", "must be positive")
	}
	return nil
}
