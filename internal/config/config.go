// Package config handles configuration for the console bridge, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the backup-server console bridge.
//
// Fields:
//   - StatePath: path of the JSON document the simulated store persists to.
//   - SettingsPath: path of the user-settings JSON document.
//   - DownloadDir: directory where downloaded files are materialized.
//   - Workers: size of the worker pool blocking calls are offloaded to.
//   - BackendTimeout: per-call deadline for delegated real-backend calls.
//   - ActivityCap: retention cap of the activity log (oldest drop first).
//   - SeedDemo: populate an empty store with demo clients and files.
//   - WatchState: reload the store when the state file changes on disk.
type Config struct {
	StatePath      string
	SettingsPath   string
	DownloadDir    string
	Workers        int
	BackendTimeout time.Duration
	ActivityCap    int
	SeedDemo       bool
	WatchState     bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.StatePath = "bridge_state.json"
	c.SettingsPath = "bridge_settings.json"
	c.DownloadDir = "downloads"
	c.Workers = 4
	c.BackendTimeout = 5 * time.Second
	c.ActivityCap = 500
	c.SeedDemo = true
	c.WatchState = false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
