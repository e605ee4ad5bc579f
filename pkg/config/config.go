package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the client configuration. The backend location is the only
// required external setting; everything else has a usable default.
type Config struct {
	ServerURL    string `env:"ROSTER_SERVER_URL" envDefault:"http://localhost:8000"`
	WebSocketURL string `env:"ROSTER_WS_URL" envDefault:"ws://localhost:8000/ws"`
	LogLevel     string `env:"ROSTER_LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and parses the configuration from the
// environment.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %v", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}
