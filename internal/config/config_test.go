package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempConfigDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	return tmpDir
}

func TestConfigLoadSave(t *testing.T) {
	tmpDir := withTempConfigDir(t)

	cfg := &Config{
		Hubs: []HubConfig{
			{
				Host:  "192.168.1.50",
				Token: "eyJhbGciOiJIUzI1NiJ9.test-token",
				HubID: "gw-iot-test-0001",
			},
		},
		LastHubID: "gw-iot-test-0001",
	}
	require.NoError(t, cfg.Save())

	// Token-bearing file must not be world readable
	path := filepath.Join(tmpDir, "dirigera-tui", "config.json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	require.Len(t, loaded.Hubs, 1)
	assert.Equal(t, "192.168.1.50", loaded.Hubs[0].Host)
	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.test-token", loaded.Hubs[0].Token)
	assert.Equal(t, "gw-iot-test-0001", loaded.LastHubID)
}

func TestConfigAddHub(t *testing.T) {
	cfg := &Config{}

	cfg.AddHub(HubConfig{Host: "192.168.1.50", Token: "t1", HubID: "hub1"})
	cfg.AddHub(HubConfig{Host: "192.168.1.51", Token: "t2", HubID: "hub2"})
	assert.Len(t, cfg.Hubs, 2)

	// Same HubID updates in place
	cfg.AddHub(HubConfig{Host: "192.168.1.60", Token: "t1-new", HubID: "hub1"})
	assert.Len(t, cfg.Hubs, 2)

	hub, err := cfg.GetHub("hub1")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.60", hub.Host)
	assert.Equal(t, "t1-new", hub.Token)
}

func TestConfigGetHub(t *testing.T) {
	cfg := &Config{
		Hubs: []HubConfig{
			{Host: "192.168.1.50", Token: "t1", HubID: "hub1"},
			{Host: "192.168.1.51", Token: "t2", HubID: "hub2"},
		},
	}

	hub, err := cfg.GetHub("hub2")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.51", hub.Host)

	_, err = cfg.GetHub("nonexistent")
	assert.ErrorIs(t, err, ErrHubNotFound)
}

func TestConfigGetLastHub(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.GetLastHub()
	assert.ErrorIs(t, err, ErrNoHubs)

	cfg.Hubs = []HubConfig{{Host: "192.168.1.50", Token: "t1", HubID: "hub1"}}
	hub, err := cfg.GetLastHub()
	require.NoError(t, err)
	assert.Equal(t, "hub1", hub.HubID)

	cfg.Hubs = append(cfg.Hubs, HubConfig{Host: "192.168.1.51", Token: "t2", HubID: "hub2"})
	cfg.LastHubID = "hub2"
	hub, err = cfg.GetLastHub()
	require.NoError(t, err)
	assert.Equal(t, "hub2", hub.HubID)

	// Stale last-hub id falls back to the first hub
	cfg.LastHubID = "gone"
	hub, err = cfg.GetLastHub()
	require.NoError(t, err)
	assert.Equal(t, "hub1", hub.HubID)
}

func TestConfigRemoveHub(t *testing.T) {
	cfg := &Config{
		Hubs: []HubConfig{
			{HubID: "hub1"},
			{HubID: "hub2"},
		},
	}

	cfg.RemoveHub("hub1")
	require.Len(t, cfg.Hubs, 1)
	assert.Equal(t, "hub2", cfg.Hubs[0].HubID)

	// Removing an unknown hub is a no-op
	cfg.RemoveHub("nonexistent")
	assert.Len(t, cfg.Hubs, 1)
}

func TestConfigHasHubs(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasHubs())

	cfg.Hubs = []HubConfig{{HubID: "hub1"}}
	assert.True(t, cfg.HasHubs())
}

func TestLoadNonExistent(t *testing.T) {
	withTempConfigDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Hubs)
}
