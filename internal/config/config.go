package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server ServerConfig `json:"server"`
	Jobs   JobsConfig   `json:"jobs"`
	Log    LogConfig    `json:"log"`
}

type ServerConfig struct {
	Port         string `json:"port"`
	ReadTimeout  string `json:"read_timeout"`
	WriteTimeout string `json:"write_timeout"`
}

type JobsConfig struct {
	File             string `json:"file"`
	ScheduleCacheTTL string `json:"schedule_cache_ttl"`
	ReloadInterval   string `json:"reload_interval"`
}

type LogConfig struct {
	Level string `json:"level"`
}

// DashboardConfig configures the terminal dashboard.
type DashboardConfig struct {
	FeedURL  string `envconfig:"FEED_URL" default:"http://localhost:8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
	NoColor  bool   `envconfig:"NO_COLOR" default:"false"`
}

type serverEnv struct {
	Port             string `envconfig:"PORT" default:"8080"`
	ReadTimeout      string `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout     string `envconfig:"WRITE_TIMEOUT" default:"10s"`
	JobsFile         string `envconfig:"JOBS_FILE" default:"config/jobs.yaml"`
	ScheduleCacheTTL string `envconfig:"SCHEDULE_CACHE_TTL" default:"10m"`
	ReloadInterval   string `envconfig:"RELOAD_INTERVAL" default:"1m"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadEnvFiles loads .env, falling back to .env.local.
func LoadEnvFiles() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load(".env.local"); err != nil {
			fmt.Printf("No .env or .env.local file found. Using environment variables.\n")
		}
	}
}

// Load reads the JSON config at configPath. Without a config file the
// configuration comes from the environment.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return FromEnv()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.InitDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func FromEnv() (*Config, error) {
	var env serverEnv
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         env.Port,
			ReadTimeout:  env.ReadTimeout,
			WriteTimeout: env.WriteTimeout,
		},
		Jobs: JobsConfig{
			File:             env.JobsFile,
			ScheduleCacheTTL: env.ScheduleCacheTTL,
			ReloadInterval:   env.ReloadInterval,
		},
		Log: LogConfig{
			Level: env.LogLevel,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func DefaultConfig() *Config {
	config := &Config{}
	config.InitDefaults()
	return config
}

func (c *Config) InitDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "10s"
	}
	if c.Jobs.File == "" {
		c.Jobs.File = "config/jobs.yaml"
	}
	if c.Jobs.ScheduleCacheTTL == "" {
		c.Jobs.ScheduleCacheTTL = "10m"
	}
	if c.Jobs.ReloadInterval == "" {
		c.Jobs.ReloadInterval = "1m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	// a zero cache TTL means entries never expire; the others must be positive
	for _, field := range []struct {
		name      string
		value     string
		allowZero bool
	}{
		{"server.read_timeout", c.Server.ReadTimeout, false},
		{"server.write_timeout", c.Server.WriteTimeout, false},
		{"jobs.schedule_cache_ttl", c.Jobs.ScheduleCacheTTL, true},
		{"jobs.reload_interval", c.Jobs.ReloadInterval, false},
	} {
		d, err := time.ParseDuration(field.value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, field.name, err)
		}
		if d < 0 || (d == 0 && !field.allowZero) {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, field.name, field.value)
		}
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}

	if c.Jobs.File == "" {
		return fmt.Errorf("%w: jobs.file is required", ErrInvalidConfig)
	}

	return nil
}

// ReadTimeout, WriteTimeout, CacheTTL and ReloadInterval assume a validated config.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

func (c *Config) WriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

func (c *Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Jobs.ScheduleCacheTTL)
	return d
}

func (c *Config) ReloadInterval() time.Duration {
	d, _ := time.ParseDuration(c.Jobs.ReloadInterval)
	return d
}

func LoadDashboard() (*DashboardConfig, error) {
	var config DashboardConfig
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if _, err := logrus.ParseLevel(config.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}
