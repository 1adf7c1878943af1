// Package store implements the simulated backup-server store: a
// thread-safe, referentially consistent graph of clients, files, and
// activity history, persisted as a single JSON document on disk.
//
// The whole graph is guarded by one readers–writer lock. Reads return
// copies; writes (including the cascading client delete) are single
// critical sections, so a concurrent reader never observes a client
// without its files or vice versa. Disk I/O always happens outside the
// lock.
package store

import (
	"sync"
	"time"

	"backupbridge/internal/logging"
	"backupbridge/internal/models"
)

// serverVersion tags status snapshots produced by the simulated server.
const serverVersion = "1.4.2-sim"

// DefaultActivityCap bounds the activity log when no cap is configured.
const DefaultActivityCap = 500

// Store owns every Client, File, and ActivityEntry in the process. All
// Bridge instances must share one Store; a second instance would silently
// fork state.
type Store struct {
	logger logging.Logger
	clock  Clock
	idgen  IDGenerator

	statePath   string
	activityCap int

	mu          sync.RWMutex
	clients     map[string]*models.Client
	files       map[string]*models.File
	clientOrder []string
	fileOrder   []string
	activity    []models.ActivityEntry
	running     bool
	startedAt   time.Time
	version     string
}

// New constructs an empty store that persists to statePath. The simulated
// server starts in the running state.
func New(statePath string, activityCap int, logger logging.Logger, clock Clock, idgen IDGenerator) *Store {
	if activityCap <= 0 {
		activityCap = DefaultActivityCap
	}
	return &Store{
		logger:      logger.With("module", "store"),
		clock:       clock,
		idgen:       idgen,
		statePath:   statePath,
		activityCap: activityCap,
		clients:     make(map[string]*models.Client),
		files:       make(map[string]*models.File),
		running:     true,
		startedAt:   clock.Now(),
		version:     serverVersion,
	}
}

// Empty reports whether the store holds no clients, files, or activity.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients) == 0 && len(s.files) == 0 && len(s.activity) == 0
}

func cloneClient(c *models.Client) models.Client {
	out := *c
	if c.ConnectedAt != nil {
		t := *c.ConnectedAt
		out.ConnectedAt = &t
	}
	return out
}

func cloneFile(f *models.File) models.File {
	out := *f
	if f.LastBackup != nil {
		t := *f.LastBackup
		out.LastBackup = &t
	}
	return out
}
