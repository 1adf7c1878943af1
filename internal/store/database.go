package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"backupbridge/internal/common"
	"backupbridge/internal/models"
)

// Table names exposed by the database projections.
const (
	TableClients  = "clients"
	TableFiles    = "files"
	TableActivity = "activity_log"
)

// Tables lists the projections in display order.
func Tables() []string {
	return []string{TableClients, TableFiles, TableActivity}
}

// DatabaseInfo summarizes the table projections. SizeBytes approximates the
// serialized size of the graph.
func (s *Store) DatabaseInfo() models.DatabaseInfo {
	s.mu.RLock()
	snap := s.snapshotLocked()
	records := len(s.clients) + len(s.files) + len(s.activity)
	s.mu.RUnlock()

	size := int64(0)
	if b, err := json.Marshal(snap); err == nil {
		size = int64(len(b))
	}
	return models.DatabaseInfo{
		TableCount:  len(Tables()),
		RecordCount: records,
		SizeBytes:   size,
		Tables:      Tables(),
	}
}

// TableData returns the rows of one table projection.
func (s *Store) TableData(table string) ([]models.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch table {
	case TableClients:
		rows := make([]models.Row, 0, len(s.clientOrder))
		for _, id := range s.clientOrder {
			rows = append(rows, clientRow(s.clients[id]))
		}
		return rows, nil
	case TableFiles:
		rows := make([]models.Row, 0, len(s.fileOrder))
		for _, id := range s.fileOrder {
			rows = append(rows, fileRow(s.files[id]))
		}
		return rows, nil
	case TableActivity:
		rows := make([]models.Row, 0, len(s.activity))
		for _, e := range s.activity {
			rows = append(rows, models.Row{
				"timestamp": e.Timestamp.Format(time.RFC3339Nano),
				"category":  string(e.Category),
				"severity":  string(e.Severity),
				"message":   e.Message,
			})
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("table %q: %w", table, common.ErrorNotFound)
	}
}

// UpdateRow applies a column→value patch to one row of the clients or
// files table. The activity log is append-only. Aggregates stay consistent:
// editing a file's size adjusts the owning client's byte total.
func (s *Store) UpdateRow(table, id string, values models.Row) (models.Row, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no values to update: %w", common.ErrorValidation)
	}

	var row models.Row

	switch table {
	case TableClients:
		s.mu.Lock()
		c, ok := s.clients[id]
		if !ok {
			s.mu.Unlock()
			return nil, fmt.Errorf("client %q: %w", id, common.ErrorNotFound)
		}
		if err := applyClientPatch(c, values); err != nil {
			s.mu.Unlock()
			return nil, err
		}
		s.appendActivityLocked(models.ActivitySystem, models.SeverityInfo,
			fmt.Sprintf("row updated in clients: %s", c.Name))
		row = clientRow(c)
		s.mu.Unlock()

	case TableFiles:
		s.mu.Lock()
		f, ok := s.files[id]
		if !ok {
			s.mu.Unlock()
			return nil, fmt.Errorf("file %q: %w", id, common.ErrorNotFound)
		}
		if err := s.applyFilePatchLocked(f, values); err != nil {
			s.mu.Unlock()
			return nil, err
		}
		f.ModifiedAt = s.clock.Now()
		s.appendActivityLocked(models.ActivitySystem, models.SeverityInfo,
			fmt.Sprintf("row updated in files: %s", f.Name))
		row = fileRow(f)
		s.mu.Unlock()

	case TableActivity:
		return nil, fmt.Errorf("table %q is append-only: %w", table, common.ErrorValidation)

	default:
		return nil, fmt.Errorf("table %q: %w", table, common.ErrorNotFound)
	}

	s.persistBestEffort()
	return row, nil
}

// DeleteRow removes one row. Deleting from the clients table cascades the
// same way DeleteClient does.
func (s *Store) DeleteRow(table, id string) error {
	switch table {
	case TableClients:
		_, err := s.DeleteClient(id)
		return err
	case TableFiles:
		return s.DeleteFile(id)
	case TableActivity:
		return fmt.Errorf("table %q is append-only: %w", table, common.ErrorValidation)
	default:
		return fmt.Errorf("table %q: %w", table, common.ErrorNotFound)
	}
}

func clientRow(c *models.Client) models.Row {
	row := models.Row{
		"id":          c.ID,
		"name":        c.Name,
		"address":     c.Address,
		"status":      string(c.Status),
		"created_at":  c.CreatedAt.Format(time.RFC3339Nano),
		"last_seen":   c.LastSeen.Format(time.RFC3339Nano),
		"version":     c.Version,
		"platform":    c.Platform,
		"file_count":  c.FileCount,
		"total_bytes": c.TotalBytes,
	}
	if c.ConnectedAt != nil {
		row["connected_at"] = c.ConnectedAt.Format(time.RFC3339Nano)
	} else {
		row["connected_at"] = nil
	}
	return row
}

func fileRow(f *models.File) models.Row {
	row := models.Row{
		"id":           f.ID,
		"client_id":    f.ClientID,
		"name":         f.Name,
		"path":         f.Path,
		"size":         f.Size,
		"hash":         f.Hash,
		"created_at":   f.CreatedAt.Format(time.RFC3339Nano),
		"modified_at":  f.ModifiedAt.Format(time.RFC3339Nano),
		"status":       string(f.Status),
		"backup_count": f.BackupCount,
	}
	if f.LastBackup != nil {
		row["last_backup"] = f.LastBackup.Format(time.RFC3339Nano)
	} else {
		row["last_backup"] = nil
	}
	return row
}

// applyClientPatch stages the patch on a copy and commits it only after
// every column validated, so a rejected patch leaves the row untouched.
func applyClientPatch(c *models.Client, values models.Row) error {
	patched := *c
	for column, value := range values {
		switch column {
		case "name", "address", "version", "platform":
			str, ok := value.(string)
			if !ok || (column != "version" && column != "platform" && strings.TrimSpace(str) == "") {
				return fmt.Errorf("column %q needs a non-empty string: %w", column, common.ErrorValidation)
			}
			switch column {
			case "name":
				patched.Name = str
			case "address":
				patched.Address = str
			case "version":
				patched.Version = str
			case "platform":
				patched.Platform = str
			}
		case "status":
			str, _ := value.(string)
			status := models.ClientStatus(str)
			if !status.Valid() {
				return fmt.Errorf("invalid client status %q: %w", str, common.ErrorValidation)
			}
			patched.Status = status
		default:
			return fmt.Errorf("column %q is not editable: %w", column, common.ErrorValidation)
		}
	}
	*c = patched
	return nil
}

// applyFilePatchLocked stages the patch on a copy and commits the row and
// the owner aggregate together, only after every column validated. A patch
// that mixes valid and invalid columns therefore applies nothing.
func (s *Store) applyFilePatchLocked(f *models.File, values models.Row) error {
	patched := *f
	for column, value := range values {
		switch column {
		case "name", "path":
			str, ok := value.(string)
			if !ok || (column == "name" && strings.TrimSpace(str) == "") {
				return fmt.Errorf("column %q needs a non-empty string: %w", column, common.ErrorValidation)
			}
			if column == "name" {
				patched.Name = str
			} else {
				patched.Path = str
			}
		case "status":
			str, _ := value.(string)
			status := models.FileStatus(str)
			if !status.Valid() {
				return fmt.Errorf("invalid file status %q: %w", str, common.ErrorValidation)
			}
			patched.Status = status
		case "size":
			size, ok := toInt64(value)
			if !ok || size < 0 {
				return fmt.Errorf("column %q needs a non-negative number: %w", column, common.ErrorValidation)
			}
			patched.Size = size
		default:
			return fmt.Errorf("column %q is not editable: %w", column, common.ErrorValidation)
		}
	}
	if owner, ok := s.clients[patched.ClientID]; ok && patched.Size != f.Size {
		owner.TotalBytes += patched.Size - f.Size
	}
	*f = patched
	return nil
}

// toInt64 accepts the numeric types a JSON decoder or a Go caller may hand
// us for a size column.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
