package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Aiklyra AiklyraConfig
	Server  ServerConfig
}

type AiklyraConfig struct {
	APIKey  string        `envconfig:"AIKLYRA_API_KEY"`
	BaseURL string        `envconfig:"AIKLYRA_BASE_URL" default:"https://api.aiklyra.com"`
	Timeout time.Duration `envconfig:"AIKLYRA_TIMEOUT" default:"30s"`
}

// ServerConfig configures the bundled reference analysis server.
type ServerConfig struct {
	Addr         string        `envconfig:"AIKLYRA_SERVER_ADDR" default:"127.0.0.1:8002"`
	APIKeys      []string      `envconfig:"AIKLYRA_SERVER_API_KEYS"`
	ReadTimeout  time.Duration `envconfig:"AIKLYRA_SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"AIKLYRA_SERVER_WRITE_TIMEOUT" default:"30s"`
}

// LoadConfig reads configuration from the environment. The API key is not
// required here; commands that need it check for it at use time so the
// reference server can run without one.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
