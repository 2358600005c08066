// Package config provides XML-based configuration management for the dashboard server.
package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// FileName is the config file looked up next to the executable.
const FileName = "dashboard.config.xml"

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"MachineDashboard"`

	// Server configuration
	Server ServerConfig `xml:"Server"`

	// Activity log source
	Data DataConfig `xml:"Data"`

	// Storage configuration
	Storage StorageConfig `xml:"Storage"`

	// Chart rendering
	Charts ChartsConfig `xml:"Charts"`

	// Advanced options
	Advanced AdvancedConfig `xml:"Advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
	BodyLimit    string `xml:"BodyLimit"`
}

// DataConfig locates the activity CSV
type DataConfig struct {
	// CSVPath is resolved against the working directory when relative.
	CSVPath         string `xml:"CSVPath"`
	WatchForChanges bool   `xml:"WatchForChanges"`
}

// StorageConfig selects where the parsed table lives
type StorageConfig struct {
	Engine            string `xml:"Engine"`
	DataDirectory     string `xml:"DataDirectory"`
	DuckDBThreads     int    `xml:"DuckDBThreads"`
	DuckDBMemoryLimit string `xml:"DuckDBMemoryLimit"`
}

// ChartsConfig contains page and chart settings
type ChartsConfig struct {
	PlotlyURL string `xml:"PlotlyURL"`
	ThemeFile string `xml:"ThemeFile"`
	PNGWidth  int    `xml:"PNGWidth"`
	PNGHeight int    `xml:"PNGHeight"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel             string `xml:"LogLevel"`
	EnableRequestLogging bool   `xml:"EnableRequestLogging"`
	EnableCompression    bool   `xml:"EnableCompression"`
	CompressionLevel     int    `xml:"CompressionLevel"`
	DevelopmentMode      bool   `xml:"DevelopmentMode"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8050,
			BindAddress:  "127.0.0.1",
			EnableCORS:   false,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "1M",
		},
		Data: DataConfig{
			CSVPath:         "Python Exercise Data.csv",
			WatchForChanges: true,
		},
		Storage: StorageConfig{
			Engine:            "memory",
			DataDirectory:     "./data",
			DuckDBThreads:     2,
			DuckDBMemoryLimit: "512MB",
		},
		Charts: ChartsConfig{
			PlotlyURL: "https://cdn.plot.ly/plotly-2.35.2.min.js",
			ThemeFile: "",
			PNGWidth:  1024,
			PNGHeight: 512,
		},
		Advanced: AdvancedConfig{
			LogLevel:             "info",
			EnableRequestLogging: true,
			EnableCompression:    true,
			CompressionLevel:     5,
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	config := DefaultConfig()

	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := xml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	// Resolve relative paths
	config.resolvePaths(filepath.Dir(configPath))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- Machine Activity Dashboard Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if csvPath := os.Getenv("CSV_PATH"); csvPath != "" {
		c.Data.CSVPath = csvPath
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		c.Storage.DataDirectory = dataDir
	}

	if engine := os.Getenv("STORE_ENGINE"); engine != "" {
		c.Storage.Engine = strings.ToLower(engine)
	}
}

// resolvePaths converts relative paths to absolute based on config file location.
// The CSV path is left alone so it keeps following the working directory.
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.DataDirectory) {
		c.Storage.DataDirectory = filepath.Join(configDir, c.Storage.DataDirectory)
	}
	if c.Charts.ThemeFile != "" && !filepath.IsAbs(c.Charts.ThemeFile) {
		c.Charts.ThemeFile = filepath.Join(configDir, c.Charts.ThemeFile)
	}
}

// Validate reports every invalid setting at once.
func (c *AppConfig) Validate() error {
	var err error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("Server.Port %d out of range", c.Server.Port))
	}
	if strings.TrimSpace(c.Data.CSVPath) == "" {
		err = multierr.Append(err, errors.New("Data.CSVPath is empty"))
	}
	switch c.Storage.Engine {
	case "memory", "duckdb":
	default:
		err = multierr.Append(err, fmt.Errorf("Storage.Engine %q must be memory or duckdb", c.Storage.Engine))
	}
	if c.Storage.DuckDBThreads < 0 {
		err = multierr.Append(err, fmt.Errorf("Storage.DuckDBThreads %d is negative", c.Storage.DuckDBThreads))
	}
	if c.Charts.PlotlyURL == "" {
		err = multierr.Append(err, errors.New("Charts.PlotlyURL is empty"))
	}
	if c.Charts.PNGWidth <= 0 || c.Charts.PNGHeight <= 0 {
		err = multierr.Append(err, errors.New("Charts.PNGWidth/PNGHeight must be positive"))
	}
	if c.Advanced.CompressionLevel < -1 || c.Advanced.CompressionLevel > 9 {
		err = multierr.Append(err, fmt.Errorf("Advanced.CompressionLevel %d out of range", c.Advanced.CompressionLevel))
	}
	return err
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// Timeouts returns the read, write and idle timeouts as durations.
func (c *AppConfig) Timeouts() (read, write, idle time.Duration) {
	return time.Duration(c.Server.ReadTimeout) * time.Second,
		time.Duration(c.Server.WriteTimeout) * time.Second,
		time.Duration(c.Server.IdleTimeout) * time.Second
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	if c.Storage.Engine != "duckdb" {
		return nil
	}
	if err := os.MkdirAll(c.Storage.DataDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Storage.DataDirectory, err)
	}
	return nil
}
