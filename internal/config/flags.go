package config

import (
	"flag"
	"os"
	"time"

	"backupbridge/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   state file path
//	-s string   settings file path
//	-d string   download directory
//	-w int      worker pool size
//	-t int      backend call timeout, seconds
//	-l int      activity log retention cap
//	-m bool     seed demo data into an empty store
//	-x bool     watch the state file for out-of-band changes
//
// Boolean flags take the single-argument form: -m=false, -x=true. The
// two-argument form "-m false" is not supported — the standard flag
// package reads the detached "false" as a positional argument and stops
// parsing there.
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-s", "-d", "-w", "-t", "-l", "-m", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.StatePath, "f", config.StatePath, "state file path")
	fs.StringVar(&config.SettingsPath, "s", config.SettingsPath, "settings file path")
	fs.StringVar(&config.DownloadDir, "d", config.DownloadDir, "download directory")
	fs.IntVar(&config.Workers, "w", config.Workers, "worker pool size")

	backendTimeout := fs.Int("t", int(config.BackendTimeout.Seconds()), "backend call timeout (in seconds)")

	fs.IntVar(&config.ActivityCap, "l", config.ActivityCap, "activity log retention cap")
	fs.BoolVar(&config.SeedDemo, "m", config.SeedDemo, "seed demo data into an empty store")
	fs.BoolVar(&config.WatchState, "x", config.WatchState, "watch state file for changes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.BackendTimeout = time.Duration(*backendTimeout) * time.Second
}
