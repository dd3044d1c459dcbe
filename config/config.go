// Package config loads runtime settings from an optional YAML file,
// a .env file and the process environment, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Port string `yaml:"port" validate:"required,numeric"`
	Mode string `yaml:"mode" validate:"omitempty,oneof=debug release test"`
}

type Database struct {
	Driver   string `yaml:"driver" validate:"oneof=postgres sqlite"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Port     string `yaml:"port"`
	TimeZone string `yaml:"timezone"`
}

type Auth struct {
	JWTSecret  string        `yaml:"jwt_secret" validate:"required"`
	AccessTTL  time.Duration `yaml:"access_ttl" validate:"gt=0"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" validate:"gtfield=AccessTTL"`
}

type Redis struct {
	URL      string        `yaml:"url"`
	StatsTTL time.Duration `yaml:"stats_ttl"`
}

type Cloudinary struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Folder    string `yaml:"folder"`
}

type SendGrid struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email" validate:"omitempty,email"`
	FromName  string `yaml:"from_name"`
}

type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

type Config struct {
	Server     Server     `yaml:"server"`
	Database   Database   `yaml:"database"`
	Auth       Auth       `yaml:"auth"`
	Redis      Redis      `yaml:"redis"`
	Cloudinary Cloudinary `yaml:"cloudinary"`
	SendGrid   SendGrid   `yaml:"sendgrid"`
	Log        Log        `yaml:"log"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Server:   Server{Port: "8080", Mode: "debug"},
		Database: Database{Driver: "postgres", Host: "localhost", Port: "5432", TimeZone: "UTC"},
		Auth:     Auth{AccessTTL: time.Hour, RefreshTTL: 7 * 24 * time.Hour},
		Redis:    Redis{StatsTTL: 30 * time.Second},
		SendGrid: SendGrid{FromEmail: "noreply@rentease.com", FromName: "RentEase"},
		Log:      Log{Level: "info", Format: "json"},
	}
}

// Load reads path (if it exists), then .env, then the environment, and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == "sqlite" {
		return "rentease.db"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.TimeZone,
	)
}

func (c Cloudinary) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("PORT", &cfg.Server.Port)
	str("GIN_MODE", &cfg.Server.Mode)

	str("DB_DRIVER", &cfg.Database.Driver)
	str("DATABASE_URL", &cfg.Database.URL)
	str("DB_HOST", &cfg.Database.Host)
	str("DB_USERNAME", &cfg.Database.User)
	str("DB_PASSWORD", &cfg.Database.Password)
	str("DB_NAME", &cfg.Database.Name)
	str("DB_PORT", &cfg.Database.Port)
	str("DB_TIMEZONE", &cfg.Database.TimeZone)

	str("JWT_SECRET_KEY", &cfg.Auth.JWTSecret)
	if err := dur("ACCESS_TOKEN_TTL", &cfg.Auth.AccessTTL); err != nil {
		return err
	}
	if err := dur("REFRESH_TOKEN_TTL", &cfg.Auth.RefreshTTL); err != nil {
		return err
	}

	str("REDIS_URL", &cfg.Redis.URL)
	if err := dur("STATS_CACHE_TTL", &cfg.Redis.StatsTTL); err != nil {
		return err
	}

	str("CLOUDINARY_CLOUD_NAME", &cfg.Cloudinary.CloudName)
	str("CLOUDINARY_API_KEY", &cfg.Cloudinary.APIKey)
	str("CLOUDINARY_API_SECRET", &cfg.Cloudinary.APISecret)
	str("CLOUDINARY_FOLDER", &cfg.Cloudinary.Folder)

	str("SENDGRID_API_KEY", &cfg.SendGrid.APIKey)
	str("SENDGRID_FROM_EMAIL", &cfg.SendGrid.FromEmail)

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	return nil
}
