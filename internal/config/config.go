// Package config loads prodview settings from defaults, a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/me/prodview/internal/catalog"
	"github.com/me/prodview/internal/search"
	"github.com/me/prodview/pkg/model"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PRODVIEW_"

// ViewerConfig holds configuration for the catalog viewer.
type ViewerConfig struct {
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	PageSize  int           `yaml:"page_size" validate:"min=1,max=100"`
	Mode      string        `yaml:"mode" validate:"oneof=paged infinite"`
	Debounce  time.Duration `yaml:"debounce" validate:"gte=0"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	RateLimit float64       `yaml:"rate_limit" validate:"gte=0"` // requests per second, 0 = unpaced
	RateBurst int           `yaml:"rate_burst" validate:"gte=0"`
	LogLevel  string        `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string        `yaml:"log_format" validate:"oneof=text json"`
	LogFile   string        `yaml:"log_file"` // browse logs here; empty discards
}

// DefaultViewerConfig returns sensible defaults.
func DefaultViewerConfig() ViewerConfig {
	client := catalog.DefaultClientConfig()
	return ViewerConfig{
		BaseURL:   client.BaseURL,
		PageSize:  model.DefaultPageSize,
		Mode:      string(model.ModePaged),
		Debounce:  search.DefaultDelay,
		Timeout:   client.Timeout,
		RateLimit: client.RequestsPerSecond,
		RateBurst: client.Burst,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// ClientConfig derives the catalog client settings.
func (c ViewerConfig) ClientConfig() catalog.ClientConfig {
	return catalog.ClientConfig{
		BaseURL:           c.BaseURL,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RateLimit,
		Burst:             c.RateBurst,
	}
}

// PaginationMode returns Mode as a model value.
func (c ViewerConfig) PaginationMode() model.PaginationMode {
	return model.PaginationMode(c.Mode)
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c ViewerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultPath returns ~/.prodview/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".prodview", "config.yaml"), nil
}

// Load layers defaults, the YAML file and the environment, in that order.
// An explicit path must exist; with an empty path the default location is
// used only if present. A .env file in the working directory is read first
// and never overrides variables already set.
func Load(path string) (ViewerConfig, error) {
	cfg := DefaultViewerConfig()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, err
			}
		}
	}

	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *ViewerConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *ViewerConfig) error {
	strs := map[string]*string{
		"BASE_URL":   &cfg.BaseURL,
		"MODE":       &cfg.Mode,
		"LOG_LEVEL":  &cfg.LogLevel,
		"LOG_FORMAT": &cfg.LogFormat,
		"LOG_FILE":   &cfg.LogFile,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "PAGE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPAGE_SIZE: %w", EnvPrefix, err)
		}
		cfg.PageSize = n
	}

	durations := map[string]*time.Duration{
		"DEBOUNCE": &cfg.Debounce,
		"TIMEOUT":  &cfg.Timeout,
	}
	for key, dst := range durations {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = d
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", EnvPrefix, err)
		}
		cfg.RateLimit = f
	}

	if v, ok := os.LookupEnv(EnvPrefix + "RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRATE_BURST: %w", EnvPrefix, err)
		}
		cfg.RateBurst = n
	}
	return nil
}
