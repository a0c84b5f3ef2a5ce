package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// HubConfig stores connection details for a paired DIRIGERA hub
type HubConfig struct {
	// IP address or hostname of the hub
	Host string `json:"host"`
	// Bearer token obtained during pairing
	Token string `json:"token"`
	// Unique hub identifier
	HubID string `json:"hub_id"`
}

// Config stores all application configuration
type Config struct {
	// List of paired hubs
	Hubs []HubConfig `json:"hubs"`
	// ID of the last used hub
	LastHubID string `json:"last_hub_id,omitempty"`
}

var (
	ErrHubNotFound = errors.New("hub not found")
	ErrNoHubs      = errors.New("no hubs configured")
)

// configDir returns the configuration directory path
func configDir() (string, error) {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dirigera-tui"), nil
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dirigera-tui"), nil
}

// configPath returns the full path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to disk. The file holds the hub token,
// hence the 0600 mode.
func (c *Config) Save() error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// AddHub adds or updates a hub configuration
func (c *Config) AddHub(hub HubConfig) {
	for i, h := range c.Hubs {
		if h.HubID == hub.HubID {
			c.Hubs[i] = hub
			return
		}
	}
	c.Hubs = append(c.Hubs, hub)
}

// GetHub returns the hub configuration by ID
func (c *Config) GetHub(hubID string) (*HubConfig, error) {
	for i := range c.Hubs {
		if c.Hubs[i].HubID == hubID {
			return &c.Hubs[i], nil
		}
	}
	return nil, ErrHubNotFound
}

// GetLastHub returns the last used hub or the first available
func (c *Config) GetLastHub() (*HubConfig, error) {
	if len(c.Hubs) == 0 {
		return nil, ErrNoHubs
	}

	if c.LastHubID != "" {
		hub, err := c.GetHub(c.LastHubID)
		if err == nil {
			return hub, nil
		}
	}

	// Fall back to first hub
	return &c.Hubs[0], nil
}

// RemoveHub removes a hub by ID
func (c *Config) RemoveHub(hubID string) {
	for i, h := range c.Hubs {
		if h.HubID == hubID {
			c.Hubs = append(c.Hubs[:i], c.Hubs[i+1:]...)
			return
		}
	}
}

// HasHubs returns true if at least one hub is paired
func (c *Config) HasHubs() bool {
	return len(c.Hubs) > 0
}
