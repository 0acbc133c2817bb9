package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v2"

	"portal-go/internal/models"
)

const (
	DefaultPath = "config/app.yaml"

	// MaxMediaFiles is the hard cap on attachments per project.
	MaxMediaFiles = 5
)

type Config struct {
	Port          string        `yaml:"port" env:"PORT"`
	SessionSecret string        `yaml:"session_secret" env:"SESSION_SECRET"`
	SessionMaxAge time.Duration `yaml:"session_max_age" env:"SESSION_MAX_AGE"`
	UploadDir     string        `yaml:"upload_dir" env:"UPLOAD_DIR"`
	MaxMedia      int           `yaml:"max_media_files" env:"MAX_MEDIA_FILES"`
	StoreDriver   string        `yaml:"store_driver" env:"STORE_DRIVER"`
	DBDSN         string        `yaml:"db_dsn" env:"DB_DSN"`
	LogLevel      string        `yaml:"log_level" env:"LOG_LEVEL"`
	Users         []models.User `yaml:"users"`
}

func Default() *Config {
	return &Config{
		Port:          "3000",
		SessionSecret: "portal-session-secret-change-me",
		SessionMaxAge: 24 * time.Hour,
		UploadDir:     "uploads",
		MaxMedia:      MaxMediaFiles,
		StoreDriver:   "memory",
		DBDSN:         "file::memory:?cache=shared",
		LogLevel:      "info",
		Users:         DefaultUsers(),
	}
}

// DefaultUsers are the sample accounts printed at startup.
func DefaultUsers() []models.User {
	return []models.User{
		{Username: "admin", Password: "admin123", Role: models.RoleAdmin, Name: "Administrator"},
		{Username: "student1", Password: "student123", Role: models.RoleStudent, Name: "Student One"},
		{Username: "student2", Password: "student@123", Role: models.RoleStudent, Name: "Student Two"},
	}
}

// Load reads filename over the defaults. Keys absent from the file keep
// their default values.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	config.Users = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if len(config.Users) == 0 {
		config.Users = DefaultUsers()
	}

	return config, nil
}

// ApplyEnv overrides fields from environment variables named by the env tags.
func (c *Config) ApplyEnv() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("session_secret is required"))
	}
	if c.SessionMaxAge <= 0 {
		errs = append(errs, errors.New("session_max_age must be positive"))
	}
	if c.UploadDir == "" {
		errs = append(errs, errors.New("upload_dir is required"))
	}
	if c.MaxMedia < 1 || c.MaxMedia > MaxMediaFiles {
		errs = append(errs, fmt.Errorf("max_media_files must be between 1 and %d", MaxMediaFiles))
	}
	switch c.StoreDriver {
	case "memory":
	case "sqlite3", "postgres":
		if c.DBDSN == "" {
			errs = append(errs, fmt.Errorf("db_dsn is required for store_driver %q", c.StoreDriver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store_driver %q", c.StoreDriver))
	}

	seen := make(map[string]bool, len(c.Users))
	for i, u := range c.Users {
		if u.Username == "" {
			errs = append(errs, fmt.Errorf("users[%d]: username is required", i))
			continue
		}
		if seen[u.Username] {
			errs = append(errs, fmt.Errorf("users[%d]: duplicate username %q", i, u.Username))
		}
		seen[u.Username] = true
		if _, err := models.ParseRole(string(u.Role)); err != nil {
			errs = append(errs, fmt.Errorf("users[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
