// Package config loads the client and server settings from an optional YAML
// file, a .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-profileform/pkg/api"
	"github.com/goliatone/go-profileform/pkg/notify"
)

// Log configures a logger.
type Log struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// Client configures the profile form.
type Client struct {
	BaseURL       string           `yaml:"base_url"`
	Timeout       time.Duration    `yaml:"timeout"`
	MaxPhotoBytes int64            `yaml:"max_photo_bytes"`
	Log           Log              `yaml:"log"`
	Notifications notify.Templates `yaml:"notifications"`
}

// Mongo configures the profile store. An empty URI selects the in-memory
// store.
type Mongo struct {
	URI        string        `yaml:"uri"`
	Database   string        `yaml:"database"`
	Collection string        `yaml:"collection"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Server configures the profile service.
type Server struct {
	Addr            string        `yaml:"addr"`
	// Env also sets Log.Env when the log section leaves it empty.
	Env             string        `yaml:"env"`
	Log             Log           `yaml:"log"`
	RateLimit       int           `yaml:"rate_limit"`
	BodyLimit       int64         `yaml:"body_limit"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	OccupationsFile string        `yaml:"occupations_file"`
	Mongo           Mongo         `yaml:"mongo"`
}

// DefaultClient returns the client defaults. No HTTP timeout is applied.
func DefaultClient() Client {
	return Client{
		BaseURL:       api.DefaultBaseURL,
		Log:           Log{Level: "info", Env: "production"},
		Notifications: notify.DefaultTemplates(),
	}
}

// DefaultServer returns the server defaults.
func DefaultServer() Server {
	return Server{
		Addr:            ":8081",
		Env:             "production",
		Log:             Log{Level: "info"},
		RateLimit:       100,
		BodyLimit:       10 << 20,
		ShutdownTimeout: 10 * time.Second,
		Mongo: Mongo{
			Database:   "profileform",
			Collection: "profiles",
			Timeout:    10 * time.Second,
		},
	}
}

// LoadClient reads path (if set), loads envFiles (default .env) and applies
// PROFILEFORM_* overrides.
func LoadClient(path string, envFiles ...string) (Client, error) {
	cfg := DefaultClient()
	if err := readYAML(path, &cfg); err != nil {
		return Client{}, err
	}
	if err := loadEnvFiles(envFiles...); err != nil {
		return Client{}, err
	}

	cfg.BaseURL = getEnv("PROFILEFORM_BASE_URL", cfg.BaseURL)
	cfg.Log.Level = getEnv("PROFILEFORM_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Env = getEnv("PROFILEFORM_ENV", cfg.Log.Env)
	cfg.Notifications.Title = getEnv("PROFILEFORM_NOTIFY_TITLE", cfg.Notifications.Title)
	cfg.Notifications.Success = getEnv("PROFILEFORM_NOTIFY_SUCCESS", cfg.Notifications.Success)
	cfg.Notifications.Failure = getEnv("PROFILEFORM_NOTIFY_FAILURE", cfg.Notifications.Failure)

	var err error
	if cfg.Timeout, err = getEnvDuration("PROFILEFORM_TIMEOUT", cfg.Timeout); err != nil {
		return Client{}, err
	}
	if cfg.MaxPhotoBytes, err = getEnvInt64("PROFILEFORM_MAX_PHOTO_BYTES", cfg.MaxPhotoBytes); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// LoadServer reads path (if set), loads envFiles (default .env) and applies
// PROFILE_SERVER_* overrides.
func LoadServer(path string, envFiles ...string) (Server, error) {
	cfg := DefaultServer()
	if err := readYAML(path, &cfg); err != nil {
		return Server{}, err
	}
	if err := loadEnvFiles(envFiles...); err != nil {
		return Server{}, err
	}

	cfg.Addr = getEnv("PROFILE_SERVER_ADDR", cfg.Addr)
	cfg.Env = getEnv("PROFILE_SERVER_ENV", cfg.Env)
	cfg.Log.Level = getEnv("PROFILE_SERVER_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Env = getEnv("PROFILE_SERVER_ENV", cfg.Log.Env)
	if strings.TrimSpace(cfg.Log.Env) == "" {
		cfg.Log.Env = cfg.Env
	}
	cfg.OccupationsFile = getEnv("PROFILE_SERVER_OCCUPATIONS_FILE", cfg.OccupationsFile)
	cfg.Mongo.URI = getEnv("PROFILE_SERVER_MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.Database = getEnv("PROFILE_SERVER_MONGO_DATABASE", cfg.Mongo.Database)
	cfg.Mongo.Collection = getEnv("PROFILE_SERVER_MONGO_COLLECTION", cfg.Mongo.Collection)

	var err error
	if cfg.RateLimit, err = getEnvInt("PROFILE_SERVER_RATE_LIMIT", cfg.RateLimit); err != nil {
		return Server{}, err
	}
	if cfg.BodyLimit, err = getEnvInt64("PROFILE_SERVER_BODY_LIMIT", cfg.BodyLimit); err != nil {
		return Server{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("PROFILE_SERVER_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Server{}, err
	}
	if cfg.Mongo.Timeout, err = getEnvDuration("PROFILE_SERVER_MONGO_TIMEOUT", cfg.Mongo.Timeout); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func readYAML(path string, out any) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// loadEnvFiles never overrides variables already set. A missing default .env
// is ignored; explicitly named files must exist.
func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return value, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return value, nil
}
