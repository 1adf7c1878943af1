package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"backupbridge/internal/common"
	"backupbridge/internal/filex"
	"backupbridge/internal/models"
)

// persistedState is the on-disk layout: one JSON document with clients and
// files keyed by ID, the activity log in order, the server-status
// singleton, and the write timestamp. All timestamps serialize as RFC 3339
// strings.
type persistedState struct {
	Clients      map[string]models.Client `json:"clients"`
	Files        map[string]models.File   `json:"files"`
	ActivityLog  []models.ActivityEntry   `json:"activity_log"`
	ServerStatus persistedStatus          `json:"server_status"`
	SavedAt      time.Time                `json:"saved_at"`
}

type persistedStatus struct {
	Running   bool      `json:"running"`
	StartedAt time.Time `json:"started_at"`
	Version   string    `json:"version"`
}

// snapshotLocked captures a consistent copy of the graph. Callers must hold
// at least the read lock.
func (s *Store) snapshotLocked() persistedState {
	snap := persistedState{
		Clients:     make(map[string]models.Client, len(s.clients)),
		Files:       make(map[string]models.File, len(s.files)),
		ActivityLog: make([]models.ActivityEntry, len(s.activity)),
		ServerStatus: persistedStatus{
			Running:   s.running,
			StartedAt: s.startedAt,
			Version:   s.version,
		},
		SavedAt: s.clock.Now(),
	}
	for id, c := range s.clients {
		snap.Clients[id] = cloneClient(c)
	}
	for id, f := range s.files {
		snap.Files[id] = cloneFile(f)
	}
	copy(snap.ActivityLog, s.activity)
	return snap
}

// Persist serializes the whole graph to the state file. The snapshot is
// taken under the read lock; the disk write happens after it is released.
func (s *Store) Persist() error {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode state: %v", common.ErrorPersistence, err)
	}
	if err := filex.WriteFileAtomic(s.statePath, b, 0o600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorPersistence, err)
	}
	return nil
}

// persistBestEffort saves after a mutation. Disk failures never fail the
// in-memory operation; they are only logged.
func (s *Store) persistBestEffort() {
	if err := s.Persist(); err != nil {
		s.logger.Warn(context.Background(), "state persist failed", "path", s.statePath, "error", err)
	}
}

// Restore loads the state file and replaces the in-memory graph. A missing
// file is not an error. Referential integrity is re-validated: any file
// whose owning client is gone is dropped with a warning instead of failing
// the load, and aggregate counters are recomputed from the surviving files.
func (s *Store) Restore() error {
	ctx := context.Background()

	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug(ctx, "no state file, starting empty", "path", s.statePath)
			return nil
		}
		return fmt.Errorf("%w: read state: %v", common.ErrorPersistence, err)
	}

	var snap persistedState
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: decode state: %v", common.ErrorPersistence, err)
	}

	clients := make(map[string]*models.Client, len(snap.Clients))
	for id, c := range snap.Clients {
		client := c
		client.FileCount = 0
		client.TotalBytes = 0
		clients[id] = &client
	}

	files := make(map[string]*models.File, len(snap.Files))
	orphans := 0
	for id, f := range snap.Files {
		owner, ok := clients[f.ClientID]
		if !ok {
			orphans++
			s.logger.Warn(ctx, "dropping orphan file on restore",
				"file_id", id, "file_name", f.Name, "client_id", f.ClientID)
			continue
		}
		file := f
		files[id] = &file
		owner.FileCount++
		owner.TotalBytes += file.Size
	}

	clientOrder := orderedIDs(len(clients), func(yield func(id string, at time.Time)) {
		for id, c := range clients {
			yield(id, c.CreatedAt)
		}
	})
	fileOrder := orderedIDs(len(files), func(yield func(id string, at time.Time)) {
		for id, f := range files {
			yield(id, f.CreatedAt)
		}
	})

	s.mu.Lock()
	s.clients = clients
	s.files = files
	s.clientOrder = clientOrder
	s.fileOrder = fileOrder
	s.activity = snap.ActivityLog
	if len(s.activity) > s.activityCap {
		s.activity = s.activity[len(s.activity)-s.activityCap:]
	}
	s.running = snap.ServerStatus.Running
	s.startedAt = snap.ServerStatus.StartedAt
	if snap.ServerStatus.Version != "" {
		s.version = snap.ServerStatus.Version
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "state restored",
		"clients", len(clients), "files", len(files), "orphans_dropped", orphans)
	return nil
}

// orderedIDs rebuilds insertion order from creation timestamps; the JSON
// maps cannot carry it. Ties break on ID.
func orderedIDs(n int, collect func(yield func(id string, at time.Time))) []string {
	type entry struct {
		id string
		at time.Time
	}
	entries := make([]entry, 0, n)
	collect(func(id string, at time.Time) {
		entries = append(entries, entry{id: id, at: at})
	})
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].at.Equal(entries[j].at) {
			return entries[i].id < entries[j].id
		}
		return entries[i].at.Before(entries[j].at)
	})
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out
}
