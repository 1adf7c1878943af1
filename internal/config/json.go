package config

import (
	"encoding/json"
	"os"
	"time"

	"backupbridge/internal/flagx"
	"backupbridge/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. It uses timex.Duration for interval fields, which
// accepts both string values such as "5s" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	StatePath      string         `json:"state_path"`
	SettingsPath   string         `json:"settings_path"`
	DownloadDir    string         `json:"download_dir"`
	Workers        int            `json:"workers"`
	BackendTimeout timex.Duration `json:"backend_timeout"`
	ActivityCap    int            `json:"activity_cap"`
	SeedDemo       bool           `json:"seed_demo"`
	WatchState     bool           `json:"watch_state"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If no file is named, nothing
// is loaded. Read or parse failures panic: a config file that exists but
// cannot be used is a startup error, not something to limp past.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.StatePath = c.StatePath
	config.SettingsPath = c.SettingsPath
	config.DownloadDir = c.DownloadDir
	config.Workers = c.Workers
	config.BackendTimeout = time.Duration(c.BackendTimeout.Duration)
	config.ActivityCap = c.ActivityCap
	config.SeedDemo = c.SeedDemo
	config.WatchState = c.WatchState
}
