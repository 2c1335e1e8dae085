package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where LoadConfig looks when no path is given
const DefaultPath = "config/config.yaml"

// PasswordEnv overrides Database.Password when set
const PasswordEnv = "DAYSQUARE_DATABASE_PASSWORD"

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  Database        `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Batch     BatchConfig     `yaml:"batch"`
	Reporting ReportingConfig `yaml:"reporting"`
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secure bool   `yaml:"secure"`
}

// Database holds service registry storage configuration
type Database struct {
	// Type is one of postgres, mysql, sqlserver or memory
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
}

// RateLimitConfig bounds POST requests per client IP
type RateLimitConfig struct {
	Requests int `yaml:"requests"`
	Window   int `yaml:"window"`
}

// BatchConfig holds catalog parsing configuration
type BatchConfig struct {
	MaxWorkers int `yaml:"max_workers"`
	Timeout    int `yaml:"timeout"`
}

// ReportingConfig holds reporting configuration
type ReportingConfig struct {
	Format    []string `yaml:"format"`
	OutputDir string   `yaml:"output_dir"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// LoadConfig loads the configuration from the given YAML file (DefaultPath
// when empty) and the environment
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.finish(); err != nil {
		return nil, err
	}
	return &config, nil
}

// FromEnv builds the configuration from defaults and the environment alone,
// for commands that run without a config file
func FromEnv() (*Config, error) {
	config := Default()
	if err := config.finish(); err != nil {
		return nil, err
	}
	return config, nil
}

// finish applies the environment and defaults on top of the loaded values
// and validates the result
func (c *Config) finish() error {
	if password := os.Getenv(PasswordEnv); password != "" {
		c.Database.Password = password
	}
	c.applyDefaults()
	return c.Validate()
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Database.Type == "" {
		c.Database.Type = "postgres"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort(c.Database.Type)
	}
	if c.Database.Name == "" {
		c.Database.Name = "daysquare"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 60
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = 60
	}
	if c.Batch.MaxWorkers == 0 {
		c.Batch.MaxWorkers = 5
	}
	if c.Batch.Timeout == 0 {
		c.Batch.Timeout = 30
	}
	if len(c.Reporting.Format) == 0 {
		c.Reporting.Format = []string{"json"}
	}
	if c.Reporting.OutputDir == "" {
		c.Reporting.OutputDir = filepath.Join("reports")
	}
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "postgres", "mysql", "sqlserver", "memory":
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}
	for _, format := range c.Reporting.Format {
		if format != "json" && format != "yaml" {
			return fmt.Errorf("unsupported report format: %s", format)
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Batch.MaxWorkers < 0 {
		return fmt.Errorf("invalid batch max_workers: %d", c.Batch.MaxWorkers)
	}
	return nil
}

func defaultDBPort(dbType string) int {
	switch dbType {
	case "mysql":
		return 3306
	case "sqlserver":
		return 1433
	default:
		return 5432
	}
}

// Address is the host:port the server listens on
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Scheme is the scheme of the public server address
func (s ServerConfig) Scheme() string {
	if s.Secure {
		return "https"
	}
	return "http"
}

// RateWindow is the rate limit window as a duration
func (r RateLimitConfig) RateWindow() time.Duration {
	return time.Duration(r.Window) * time.Second
}

// DSN renders the driver specific data source name with credentials escaped
func (d Database) DSN() (string, error) {
	switch d.Type {
	case "postgres":
		return d.ConnectionString(), nil
	case "mysql":
		cfg := mysql.NewConfig()
		cfg.User = d.User
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = d.address()
		cfg.DBName = d.Name
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil
	case "sqlserver":
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(d.User, d.Password),
			Host:     d.address(),
			RawQuery: url.Values{"database": {d.Name}}.Encode(),
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", d.Type)
	}
}

// ConnectionString renders the postgres URL form including the database
func (d Database) ConnectionString() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.address(),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

func (d Database) address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}
