// Package console is the interactive REPL over the bridge. It consumes
// response envelopes and nothing else; all data semantics live behind the
// bridge facade.
package console

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"backupbridge/internal/bridge"
	"backupbridge/internal/config"
	"backupbridge/internal/logging"
	"backupbridge/internal/models"
	"backupbridge/internal/settings"
	"backupbridge/internal/store"
)

type App struct {
	config *config.Config
	bridge *bridge.Bridge
	store  *store.Store
	logger logging.Logger
	reader *bufio.Reader
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	ctx := context.Background()

	st := store.New(cfg.StatePath, cfg.ActivityCap, logger, store.SystemClock{}, store.UUIDGenerator{})
	if err := st.Restore(); err != nil {
		// persistence trouble never blocks startup; the store begins empty
		logger.Warn(ctx, "could not restore persisted state", "error", err)
	}
	if cfg.SeedDemo {
		if err := st.SeedDemoData(); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	sm, err := settings.NewManager(cfg.SettingsPath, logger)
	if err != nil {
		return nil, err
	}

	exec := bridge.NewExecutor(cfg.Workers)
	dispatcher := bridge.NewDispatcher(exec, cfg.BackendTimeout, logger)

	return &App{
		config: cfg,
		bridge: bridge.New(st, sm, dispatcher),
		store:  st,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// AttachBackend registers a real backend; operations it implements stop
// being served by the simulated store.
func (a *App) AttachBackend(b bridge.Backend) {
	a.bridge.Attach(b)
}

// Run drives the REPL until the user exits or ctx is cancelled. The
// optional state-file watcher runs alongside and stops with the REPL.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	if a.config.WatchState {
		g.Go(func() error {
			return a.store.Watch(ctx)
		})
	}

	g.Go(func() error {
		defer cancel()
		printlnFn("Backup server console (type 'help' for commands)")
		runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))
		return nil
	})

	return g.Wait()
}

func (a *App) statusLine() string {
	resp := a.bridge.GetServerStatus(context.Background())
	if !resp.Success {
		return fmt.Sprintf("(%s)", resp.Mode)
	}
	status := resp.Data.(models.ServerStatus)
	state := "stopped"
	if status.Running {
		state = "running"
	}
	return fmt.Sprintf("(%s, %s)", resp.Mode, state)
}
