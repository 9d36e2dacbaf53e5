package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL    = "http://localhost:3001"
	DefaultTimeout   = 15 * time.Second
	DefaultNoticeTTL = 10 * time.Second
)

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type Config struct {
	APIURL    string        `yaml:"api_url"`
	Timeout   time.Duration `yaml:"timeout"`
	NoticeTTL time.Duration `yaml:"notice_ttl"`
	Log       LogConfig     `yaml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout,
		NoticeTTL: DefaultNoticeTTL,
		Log: LogConfig{
			Level: "info",
		},
	}
}

func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "phonebook")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path on top of the defaults, then applies
// .env and environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile()
	}
	if cfg.NoticeTTL == 0 {
		cfg.NoticeTTL = DefaultNoticeTTL
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("PHONEBOOK_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PHONEBOOK_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("PHONEBOOK_LOG_FILE")); v != "" {
		c.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("PHONEBOOK_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url cannot be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.NoticeTTL < 0 {
		return fmt.Errorf("notice_ttl cannot be negative")
	}
	return nil
}

func Save(path string, cfg *Config) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0644)
}

func defaultLogFile() string {
	dir, err := GetConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "phonebook.log")
	}
	return filepath.Join(dir, "logs", "phonebook.log")
}
