package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel         string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	StoreAddress     string        `yaml:"store_address" env:"STORE_ADDRESS" env-default:"http://localhost:8080"`
	HTTPTimeout      time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT" env-default:"5s"`
	SessionFile      string        `yaml:"session_file" env:"SESSION_FILE" env-default:""`
	RemindersEnabled bool          `yaml:"reminders_enabled" env:"REMINDERS_ENABLED" env-default:"true"`
}

func MustLoad(configPath string) Config {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
		return withDefaults(cfg)
	}

	// try the file first, fall back to env when it is missing
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				log.Fatalf("cannot read env: %s", err)
			}
			return withDefaults(cfg)
		}
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}

	return withDefaults(cfg)
}

func withDefaults(cfg Config) Config {
	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.SessionFile = filepath.Join(home, ".planner", "session.json")
	}
	return cfg
}
