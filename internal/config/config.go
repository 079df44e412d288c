package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"formdeck/internal/eventbus"
)

// FileName is the default config file looked up in the working directory
const FileName = ".formdeck.toml"

// Config represents the application configuration
type Config struct {
	Version      int                `toml:"version"`
	Autocomplete AutocompleteConfig `toml:"autocomplete"`
	SearchField  SearchFieldConfig  `toml:"search_field"`
	Catalog      CatalogConfig      `toml:"catalog"`
	UISettings   UISettings         `toml:"ui"`
}

// AutocompleteConfig tunes the autocomplete search coordinator
type AutocompleteConfig struct {
	DebounceWindowMs   int  `toml:"debounce_window_ms"`
	FireDelayMs        int  `toml:"fire_delay_ms"`
	SuppressSingleChar bool `toml:"suppress_single_char"`
	DiscardStale       bool `toml:"discard_stale"`
	MaxResults         int  `toml:"max_results"`
}

// SearchFieldConfig tunes the plain debounced search field
type SearchFieldConfig struct {
	DelayMs int `toml:"delay_ms"`
}

// CatalogConfig describes where place data comes from and how fast it answers
type CatalogConfig struct {
	Path       string  `toml:"path"` // YAML file; empty means the embedded catalog
	LatencyMs  int     `toml:"latency_ms"`
	RatePerSec float64 `toml:"rate_per_sec"` // 0 disables throttling
	Burst      int     `toml:"burst"`
	Fuzzy      bool    `toml:"fuzzy"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowEventLog bool `toml:"show_event_log"`
	EventLogSize int  `toml:"event_log_size"`
}

// DebounceWindow returns the cancellation window as a duration
func (c AutocompleteConfig) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceWindowMs) * time.Millisecond
}

// FireDelay returns the delay between scheduling and firing a search
func (c AutocompleteConfig) FireDelay() time.Duration {
	return time.Duration(c.FireDelayMs) * time.Millisecond
}

// Delay returns the search field debounce delay as a duration
func (c SearchFieldConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// Latency returns the simulated catalog latency as a duration
func (c CatalogConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMs) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service bound to the given file
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = FileName
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the service's file.
// A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so omitted keys keep sane values
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publish(event eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(event)
	}
}

// normalize clamps values a hand-edited file may have broken
func (c *Config) normalize() {
	if c.Autocomplete.DebounceWindowMs < 0 {
		c.Autocomplete.DebounceWindowMs = 0
	}
	if c.Autocomplete.FireDelayMs < 0 {
		c.Autocomplete.FireDelayMs = 0
	}
	if c.Autocomplete.MaxResults <= 0 {
		c.Autocomplete.MaxResults = DefaultConfig().Autocomplete.MaxResults
	}
	if c.SearchField.DelayMs < 0 {
		c.SearchField.DelayMs = 0
	}
	if c.Catalog.LatencyMs < 0 {
		c.Catalog.LatencyMs = 0
	}
	if c.Catalog.RatePerSec < 0 {
		c.Catalog.RatePerSec = 0
	}
	if c.Catalog.Burst <= 0 {
		c.Catalog.Burst = 1
	}
	if c.UISettings.EventLogSize <= 0 {
		c.UISettings.EventLogSize = DefaultConfig().UISettings.EventLogSize
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Autocomplete: AutocompleteConfig{
			DebounceWindowMs:   300,
			FireDelayMs:        0,
			SuppressSingleChar: true,
			DiscardStale:       true,
			MaxResults:         8,
		},
		SearchField: SearchFieldConfig{
			DelayMs: 500,
		},
		Catalog: CatalogConfig{
			Burst: 1,
		},
		UISettings: UISettings{
			ShowEventLog: true,
			EventLogSize: 200,
		},
	}
}
