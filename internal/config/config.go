package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version    int        `toml:"version"`
	SearchURL  string     `toml:"search_url"`  // base URL of the search service
	ListenAddr string     `toml:"listen_addr"` // serve command bind address
	StorePath  string     `toml:"store_path"`  // BadgerDB index directory
	UISettings UISettings `toml:"ui"`
	Triggers   Triggers   `toml:"triggers"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	DebounceMS  int  `toml:"debounce_ms"`  // quiescence interval for typed input
	ShowLoading bool `toml:"show_loading"` // render a loading indicator while a request is in flight
	MaxResults  int  `toml:"max_results"`  // cap on rendered results
}

// Triggers controls which UI events fire a search. Input is debounced,
// Enter and Button dispatch immediately. Each is independently enableable.
type Triggers struct {
	Input  bool `toml:"input"`
	Enter  bool `toml:"enter"`
	Button bool `toml:"button"`
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
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	filmseekDir := filepath.Join(configDir, "filmseek")
	os.MkdirAll(filmseekDir, 0755)

	return &configService{
		filePath: filepath.Join(filmseekDir, "config.toml"),
	}
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
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

// applyDefaults fills in zero values a hand-edited config may have dropped
func applyDefaults(cfg *Config) {
	if cfg.SearchURL == "" {
		cfg.SearchURL = "http://127.0.0.1:8080"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:8080"
	}
	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath()
	}
	if cfg.UISettings.DebounceMS <= 0 {
		cfg.UISettings.DebounceMS = 300
	}
	if cfg.UISettings.MaxResults <= 0 {
		cfg.UISettings.MaxResults = 20
	}
}

func defaultStorePath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = "."
	}
	return filepath.Join(cacheDir, "filmseek", "index")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		SearchURL:  "http://127.0.0.1:8080",
		ListenAddr: "127.0.0.1:8080",
		StorePath:  defaultStorePath(),
		UISettings: UISettings{
			DebounceMS:  300,
			ShowLoading: true,
			MaxResults:  20,
		},
		Triggers: Triggers{
			Input:  true,
			Enter:  true,
			Button: true,
		},
	}
}
