package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmcdole/whatsleft/internal/tutorial"
)

// EnvPrefix prefixes environment overrides, e.g. WHATSLEFT_LOGGING_LEVEL
const EnvPrefix = "WHATSLEFT"

// Config holds all application configuration
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Tutorial TutorialConfig `mapstructure:"tutorial"`
	Scanner  ScannerConfig  `mapstructure:"scanner"`
	UI       UIConfig       `mapstructure:"ui"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// StoreConfig locates the local database. An empty path keeps everything in memory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// TutorialConfig holds the onboarding walkthrough delays
type TutorialConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	FormSettle   time.Duration `mapstructure:"form_settle"`
	Stagger      time.Duration `mapstructure:"stagger"`
	SaveBind     time.Duration `mapstructure:"save_bind"`
	SaveSettle   time.Duration `mapstructure:"save_settle"`
	NextReveal   time.Duration `mapstructure:"next_reveal"`
	FirstTouch   time.Duration `mapstructure:"first_touch"`
	AutoAdvance  time.Duration `mapstructure:"auto_advance"`
	ResizeSettle time.Duration `mapstructure:"resize_settle"`
	NavLead      time.Duration `mapstructure:"nav_lead"`
	NavStagger   time.Duration `mapstructure:"nav_stagger"`
}

// Timings converts the section for the tutorial machine
func (c TutorialConfig) Timings() tutorial.Timings {
	return tutorial.Timings{
		FormSettle:   c.FormSettle,
		Stagger:      c.Stagger,
		SaveBind:     c.SaveBind,
		SaveSettle:   c.SaveSettle,
		NextReveal:   c.NextReveal,
		FirstTouch:   c.FirstTouch,
		AutoAdvance:  c.AutoAdvance,
		ResizeSettle: c.ResizeSettle,
		NavLead:      c.NavLead,
		NavStagger:   c.NavStagger,
	}
}

// ScannerConfig holds barcode scanner settings
type ScannerConfig struct {
	GuidanceTimeout time.Duration `mapstructure:"guidance_timeout"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"` // timer resolution of the event loop
	MouseEnabled bool          `mapstructure:"mouse"`
}

// ProfileConfig is shown in the profile modal
type ProfileConfig struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	t := tutorial.DefaultTimings()
	return &Config{
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "whatsleft.db"),
		},
		Tutorial: TutorialConfig{
			Enabled:      true,
			FormSettle:   t.FormSettle,
			Stagger:      t.Stagger,
			SaveBind:     t.SaveBind,
			SaveSettle:   t.SaveSettle,
			NextReveal:   t.NextReveal,
			FirstTouch:   t.FirstTouch,
			AutoAdvance:  t.AutoAdvance,
			ResizeSettle: t.ResizeSettle,
			NavLead:      t.NavLead,
			NavStagger:   t.NavStagger,
		},
		Scanner: ScannerConfig{
			GuidanceTimeout: 5 * time.Second,
		},
		UI: UIConfig{
			TickInterval: 50 * time.Millisecond,
			MouseEnabled: true,
		},
		Profile: ProfileConfig{
			Name: "Guest",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "whatsleft.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "whatsleft")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "whatsleft")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "whatsleft")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "whatsleft")
	}
}

// newViper builds a viper instance with every key defaulted, so that
// environment overrides apply to keys missing from the file.
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range settings(cfg) {
		v.SetDefault(key, value)
	}
	return v
}

// settings flattens cfg into viper keys
func settings(cfg *Config) map[string]any {
	return map[string]any{
		"store.path": cfg.Store.Path,

		"tutorial.enabled":       cfg.Tutorial.Enabled,
		"tutorial.form_settle":   cfg.Tutorial.FormSettle.String(),
		"tutorial.stagger":       cfg.Tutorial.Stagger.String(),
		"tutorial.save_bind":     cfg.Tutorial.SaveBind.String(),
		"tutorial.save_settle":   cfg.Tutorial.SaveSettle.String(),
		"tutorial.next_reveal":   cfg.Tutorial.NextReveal.String(),
		"tutorial.first_touch":   cfg.Tutorial.FirstTouch.String(),
		"tutorial.auto_advance":  cfg.Tutorial.AutoAdvance.String(),
		"tutorial.resize_settle": cfg.Tutorial.ResizeSettle.String(),
		"tutorial.nav_lead":      cfg.Tutorial.NavLead.String(),
		"tutorial.nav_stagger":   cfg.Tutorial.NavStagger.String(),

		"scanner.guidance_timeout": cfg.Scanner.GuidanceTimeout.String(),

		"ui.tick_interval": cfg.UI.TickInterval.String(),
		"ui.mouse":         cfg.UI.MouseEnabled,

		"profile.name":  cfg.Profile.Name,
		"profile.email": cfg.Profile.Email,

		"logging.file":  cfg.Logging.File,
		"logging.level": cfg.Logging.Level,
	}
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory for
// config.yaml; a missing file there is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML. An empty path writes config.yaml in the
// default config directory. Returns the file written.
func SaveConfig(cfg *Config, path string) (string, error) {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range settings(cfg) {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
