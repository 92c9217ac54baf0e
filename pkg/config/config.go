package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingToken is returned by Load when no TMDB bearer token is configured.
var ErrMissingToken = errors.New("TMDB_API_TOKEN must be set")

type Server struct {
	Port        string `yaml:"port"`
	FrontendURL string `yaml:"frontend_url"`
	GinMode     string `yaml:"gin_mode"`
}

type Database struct {
	Path string `yaml:"path"`
}

type TMDB struct {
	Token        string        `yaml:"token"`
	BaseURL      string        `yaml:"base_url"`
	ImageBaseURL string        `yaml:"image_base_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	TMDB     TMDB     `yaml:"tmdb"`
	Logging  Logging  `yaml:"logging"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Port:        "8080",
			FrontendURL: "http://localhost:8080",
			GinMode:     "release",
		},
		Database: Database{
			Path: "./data/movies.db",
		},
		TMDB: TMDB{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Timeout:      10 * time.Second,
		},
		Logging: Logging{
			Level:  "INFO",
			Format: "text",
		},
	}
}

// Load reads .env (if present), the YAML file named by CONFIG_FILE (if set) and
// then the environment, later sources winning.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML document at path onto cfg.
func (cfg *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (cfg *Config) ApplyEnv() {
	cfg.Server.Port = getEnvOrDefault("API_PORT", cfg.Server.Port)
	cfg.Server.FrontendURL = getEnvOrDefault("FRONTEND_URL", cfg.Server.FrontendURL)
	cfg.Server.GinMode = getEnvOrDefault("GIN_MODE", cfg.Server.GinMode)
	cfg.Database.Path = getEnvOrDefault("DB_PATH", cfg.Database.Path)
	cfg.TMDB.Token = strings.TrimSpace(getEnvOrDefault("TMDB_API_TOKEN", cfg.TMDB.Token))
	cfg.TMDB.BaseURL = getEnvOrDefault("TMDB_BASE_URL", cfg.TMDB.BaseURL)
	cfg.TMDB.ImageBaseURL = getEnvOrDefault("TMDB_IMAGE_BASE_URL", cfg.TMDB.ImageBaseURL)
	cfg.TMDB.Timeout = GetEnvDuration("TMDB_TIMEOUT", cfg.TMDB.Timeout)
	cfg.Logging.Level = getEnvOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnvOrDefault("LOG_FORMAT", cfg.Logging.Format)
}

func (cfg *Config) Validate() error {
	if cfg.TMDB.Token == "" {
		return ErrMissingToken
	}
	if cfg.Database.Path == "" {
		return errors.New("database path must not be empty")
	}
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return fmt.Errorf("invalid API_PORT %q: %w", cfg.Server.Port, err)
	}
	return nil
}

// JSONLogs reports whether structured JSON log output was requested.
func (cfg *Config) JSONLogs() bool {
	return strings.EqualFold(cfg.Logging.Format, "json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func GetEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
