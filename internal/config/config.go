package config

import (
	"embed"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	APIURL      string `yaml:"api_url" env:"NEWSDESK_API_URL"`
	Timeout     string `yaml:"timeout" env:"NEWSDESK_TIMEOUT"`
	PageSize    int    `yaml:"page_size" env:"NEWSDESK_PAGE_SIZE"`
	TopKeywords int    `yaml:"top_keywords" env:"NEWSDESK_TOP_KEYWORDS"`
	TrendDays   int    `yaml:"trend_days" env:"NEWSDESK_TREND_DAYS"`
	LogLevel    string `yaml:"log_level" env:"NEWSDESK_LOG_LEVEL"`
	LogFile     string `yaml:"log_file,omitempty" env:"NEWSDESK_LOG_FILE"`
	// MetricsAddr, when set, serves /metrics on that address while running.
	MetricsAddr string `yaml:"metrics_addr,omitempty" env:"NEWSDESK_METRICS_ADDR"`
}

func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsdesk", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path (DefaultConfigPath when empty) over the
// embedded defaults, then applies NEWSDESK_* environment overrides. A missing
// file is created from the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: the embedded defaults still apply.
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url: host is required")
	}
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("timeout: invalid duration %q", cfg.Timeout)
		}
	}
	if cfg.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", cfg.PageSize)
	}
	if cfg.TopKeywords < 1 || cfg.TopKeywords > 100 {
		return fmt.Errorf("top_keywords must be between 1 and 100, got %d", cfg.TopKeywords)
	}
	if cfg.TrendDays < 1 || cfg.TrendDays > 365 {
		return fmt.Errorf("trend_days must be between 1 and 365, got %d", cfg.TrendDays)
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}
	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			return fmt.Errorf("metrics_addr: %w", err)
		}
	}
	return nil
}
