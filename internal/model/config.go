package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// defaultAPIURL is used when neither the config file nor the
// environment names an API endpoint.
const defaultAPIURL = "http://localhost:8000"

// DesktopPermission tracks whether the user has allowed mirroring
// notifications to the OS notification surface.
type DesktopPermission string

const (
	// PermissionDefault means the user has never been asked.
	PermissionDefault DesktopPermission = "default"
	PermissionGranted DesktopPermission = "granted"
	PermissionDenied  DesktopPermission = "denied"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// NotificationsConfig holds desktop notification settings.
type NotificationsConfig struct {
	// DesktopPermission persists the one-shot permission decision so
	// the client never re-prompts after an explicit grant or denial.
	DesktopPermission DesktopPermission `mapstructure:"desktop_permission" yaml:"desktop_permission"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// APIURL is the base URL of the SchoolQuest HTTP API. The realtime
	// endpoint is derived from it by swapping the scheme to ws/wss.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// RefreshIntervalSec is how often background screens re-fetch
	// their data from the API.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`

	Display       DisplayConfig       `mapstructure:"display" yaml:"display"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/schoolquest/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "schoolquest", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		APIURL:             defaultAPIURL,
		RefreshIntervalSec: 120,
		Display:            DisplayConfig{Theme: "default"},
		Notifications: NotificationsConfig{
			DesktopPermission: PermissionDefault,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns a default
// configuration. SCHOOLQUEST_API_URL overrides the configured API URL.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("refresh_interval_sec", 120)
	v.SetDefault("display.theme", "default")
	v.SetDefault("notifications.desktop_permission", string(PermissionDefault))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnv(defaultAppConfig()), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnv(defaultAppConfig()), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.RefreshIntervalSec <= 0 {
		cfg.RefreshIntervalSec = 120
	}

	return applyEnv(cfg), nil
}

// applyEnv layers environment overrides on top of a loaded config.
func applyEnv(cfg *AppConfig) *AppConfig {
	if url := os.Getenv("SCHOOLQUEST_API_URL"); url != "" {
		cfg.APIURL = url
	}
	return cfg
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api_url", cfg.APIURL)
	v.Set("refresh_interval_sec", cfg.RefreshIntervalSec)
	v.Set("display", cfg.Display)
	v.Set("notifications", cfg.Notifications)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
