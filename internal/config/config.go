package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds every runtime setting. Values come from defaults, an
// optional YAML file and finally environment variables, in that order.
type AppConfig struct {
	AppPort       string `yaml:"port"`
	GinMode       string `yaml:"gin_mode"`
	DBDriver      string `yaml:"db_driver"` // postgres, mysql
	DatabaseURL   string `yaml:"database_url"`
	AutoMigrate   bool   `yaml:"auto_migrate"`
	SessionSecret string `yaml:"session_secret"`
	TemplatesDir  string `yaml:"templates_dir"`
	StaticDir     string `yaml:"static_dir"`

	// Logging
	LogLevel      string `yaml:"log_level"`
	LogPath       string `yaml:"log_path"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAgeDays int    `yaml:"log_max_age_days"`
	LogCompress   bool   `yaml:"log_compress"`

	// Requests per minute per client IP; 0 disables the limiter.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

// Default returns the configuration used when nothing else is provided.
func Default() AppConfig {
	return AppConfig{
		AppPort:            "8080",
		GinMode:            "release",
		DBDriver:           "postgres",
		DatabaseURL:        "host=localhost user=postgres password=postgres dbname=blogly port=5432 sslmode=disable",
		AutoMigrate:        true,
		SessionSecret:      "secret_key_change_me",
		TemplatesDir:       "./web/templates",
		StaticDir:          "./web/static",
		LogLevel:           "info",
		LogMaxSizeMB:       100,
		LogMaxBackups:      3,
		LogMaxAgeDays:      7,
		RateLimitPerMinute: 600,
	}
}

// Load builds the configuration. path may be empty, in which case
// BLOGLY_CONFIG is consulted; a missing .env file is not an error.
func Load(path string) (AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading config from environment")
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("BLOGLY_CONFIG")
	}
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}

	switch cfg.DBDriver {
	case "postgres", "mysql":
	default:
		return cfg, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func loadYAML(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *AppConfig) error {
	str := map[string]*string{
		"PORT":           &cfg.AppPort,
		"GIN_MODE":       &cfg.GinMode,
		"DB_DRIVER":      &cfg.DBDriver,
		"DATABASE_URL":   &cfg.DatabaseURL,
		"SESSION_SECRET": &cfg.SessionSecret,
		"TEMPLATES_DIR":  &cfg.TemplatesDir,
		"STATIC_DIR":     &cfg.StaticDir,
		"LOG_LEVEL":      &cfg.LogLevel,
		"LOG_PATH":       &cfg.LogPath,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	ints := map[string]*int{
		"LOG_MAX_SIZE_MB":       &cfg.LogMaxSizeMB,
		"LOG_MAX_BACKUPS":       &cfg.LogMaxBackups,
		"LOG_MAX_AGE_DAYS":      &cfg.LogMaxAgeDays,
		"RATE_LIMIT_PER_MINUTE": &cfg.RateLimitPerMinute,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"LOG_COMPRESS": &cfg.LogCompress,
		"AUTO_MIGRATE": &cfg.AutoMigrate,
	}
	for key, dst := range bools {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
	}
	return nil
}
