package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultPort           = "8000"
	defaultHomeAPIBase    = "https://consumer-api.development.dev.woltapi.com"
	defaultClientTimeout  = 8 * time.Second
	defaultRequestTimeout = 5 * time.Second
	defaultMaxAttempts    = 3
	defaultBackoff        = 200 * time.Millisecond
	defaultLogLevel       = "info"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	HomeAPI HomeAPIConfig `yaml:"home_api"`
	CORS    CORSConfig    `yaml:"cors"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port              string        `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
}

type HomeAPIConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	Backoff     time.Duration `yaml:"backoff"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:              defaultPort,
			ReadHeaderTimeout: 5 * time.Second,
			RequestTimeout:    defaultRequestTimeout,
		},
		HomeAPI: HomeAPIConfig{
			BaseURL:     defaultHomeAPIBase,
			Timeout:     defaultClientTimeout,
			MaxAttempts: defaultMaxAttempts,
			Backoff:     defaultBackoff,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Log: LogConfig{Level: defaultLogLevel},
	}
}

// Load starts from Default, applies the YAML file at path if it exists, then
// environment overrides, and validates the result. An empty path skips the
// file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %q: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := getEnv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := getEnv("HOME_ASSIGNMENT_API_BASE"); v != "" {
		cfg.HomeAPI.BaseURL = v
	}
	if v := getEnv("HOME_API_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse HOME_API_MAX_ATTEMPTS: %w", err)
		}
		cfg.HomeAPI.MaxAttempts = n
	}
	if v := getEnv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server port is required")
	}
	if strings.TrimSpace(c.HomeAPI.BaseURL) == "" {
		return errors.New("home api base url is required")
	}
	if c.HomeAPI.MaxAttempts < 1 {
		return errors.New("home api max_attempts must be >= 1")
	}
	if c.HomeAPI.Timeout <= 0 || c.Server.RequestTimeout <= 0 || c.Server.ReadHeaderTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.HomeAPI.Backoff < 0 {
		return errors.New("home api backoff must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
