package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Authorization Authorization
	Fetch         Fetch
	Scan          Scan
	Server        Server
}

type Authorization struct {
	Cookie string `env:"cookie"`
	Token  string `env:"token"`
}

type Fetch struct {
	Timeout   time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`
	MaxBytes  int64         `env:"FETCH_MAX_BYTES" envDefault:"33554432"`
	Retries   int           `env:"FETCH_RETRIES" envDefault:"1"`
	UserAgent string        `env:"FETCH_USER_AGENT" envDefault:"c2pafinder/1"`
}

type Scan struct {
	Concurrency  int `env:"SCAN_CONCURRENCY" envDefault:"4"`
	MinDimension int `env:"SCAN_MIN_DIMENSION" envDefault:"50"`
	HistorySize  int `env:"HISTORY_SIZE" envDefault:"64"`
}

type Server struct {
	Port     string `env:"PORT" envDefault:"8081"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	UseCache bool   `env:"USE_CACHE" envDefault:"true"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return cfg, err
	}

	if cfg.Scan.Concurrency < 1 {
		cfg.Scan.Concurrency = 1
	}
	if cfg.Scan.HistorySize < 1 {
		cfg.Scan.HistorySize = 1
	}

	return cfg, nil
}
