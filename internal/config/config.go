package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr       = "0.0.0.0:3000"
	DefaultStaticRoot = "/home/sergey/projects/simple-server/staticfiles"
	DefaultDocument   = "index.html"
	DefaultReadSize   = 512
	DefaultLogLevel   = "info"
)

// Config holds the startup settings of the server.
type Config struct {
	// Addr is the TCP address to listen on.
	Addr string `yaml:"addr" validate:"required"`
	// StaticRoot is the directory requested URIs are checked against.
	StaticRoot string `yaml:"static_root" validate:"required"`
	// Document is the file sent on every accepted request, relative to the
	// working directory unless absolute.
	Document string `yaml:"document" validate:"required"`
	// ReadSize bounds how much of each connection is read.
	ReadSize int `yaml:"read_size" validate:"gt=0"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr:       DefaultAddr,
		StaticRoot: DefaultStaticRoot,
		Document:   DefaultDocument,
		ReadSize:   DefaultReadSize,
		LogLevel:   DefaultLogLevel,
	}
}

// Load builds the config from defaults, then the YAML file at path (if path
// is not empty), then SIMPLE_SERVER_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Addr = getEnvOrDefault("SIMPLE_SERVER_ADDR", c.Addr)
	c.StaticRoot = getEnvOrDefault("SIMPLE_SERVER_ROOT", c.StaticRoot)
	c.Document = getEnvOrDefault("SIMPLE_SERVER_DOCUMENT", c.Document)
	c.ReadSize = getEnvAsIntOrDefault("SIMPLE_SERVER_READ_SIZE", c.ReadSize)
	c.LogLevel = getEnvOrDefault("SIMPLE_SERVER_LOG_LEVEL", c.LogLevel)
}

var validate = validator.New()

// Validate checks the config for values the server cannot start with.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("addr %q: %w", c.Addr, err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
