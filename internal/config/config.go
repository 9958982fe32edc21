package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Gallery GalleryConfig `mapstructure:"gallery"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds gallery server configuration
type ServerConfig struct {
	URL      string `mapstructure:"url"`      // Server URL, may include a base path
	Username string `mapstructure:"username"` // Basic auth, optional
	Password string `mapstructure:"password"` // Basic auth, optional
	Timeout  int    `mapstructure:"timeout"`  // Request timeout in seconds
}

// GalleryConfig holds paging and thumbnail preferences
type GalleryConfig struct {
	PageSize    int `mapstructure:"page_size"`    // 0 = server default
	PreviewSize int `mapstructure:"preview_size"` // On-screen preview edge in pixels
}

// ViewerConfig holds the external image viewer
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowInspector bool `mapstructure:"show_inspector"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Timeout: 30,
		},
		Gallery: GalleryConfig{
			PageSize:    0,
			PreviewSize: 300,
		},
		Viewer: ViewerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			ShowInspector: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "openview", "openview.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "openview", "openview.log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "openview")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "openview")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigDir(), ".")
}

// LoadConfigFrom loads config.yaml from the first of dirs that has one.
// OPENVIEW_* environment variables override file values
// (e.g. OPENVIEW_SERVER_URL, OPENVIEW_GALLERY_PAGE_SIZE).
func LoadConfigFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// newViper registers every key with its default so environment overrides
// apply even when no config file exists.
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("OPENVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range settings(cfg) {
		v.SetDefault(key, value)
	}
	return v
}

// settings flattens cfg into viper keys (snake_case)
func settings(cfg *Config) map[string]any {
	return map[string]any{
		"server.url":           cfg.Server.URL,
		"server.username":      cfg.Server.Username,
		"server.password":      cfg.Server.Password,
		"server.timeout":       cfg.Server.Timeout,
		"gallery.page_size":    cfg.Gallery.PageSize,
		"gallery.preview_size": cfg.Gallery.PreviewSize,
		"viewer.command":       cfg.Viewer.Command,
		"viewer.args":          cfg.Viewer.Args,
		"ui.show_inspector":    cfg.UI.ShowInspector,
		"logging.file":         cfg.Logging.File,
		"logging.level":        cfg.Logging.Level,
	}
}

// SaveConfig saves the configuration to the default location
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(DefaultConfigDir(), cfg)
}

// SaveConfigTo writes cfg as dir/config.yaml
func SaveConfigTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	for key, value := range settings(cfg) {
		v.Set(key, value)
	}

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the server URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}
