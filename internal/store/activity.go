package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"backupbridge/internal/common"
	"backupbridge/internal/models"
)

// appendActivityLocked appends one entry and enforces the retention cap.
// Callers must hold the write lock.
func (s *Store) appendActivityLocked(category models.ActivityCategory, severity models.Severity, message string) {
	s.activity = append(s.activity, models.ActivityEntry{
		Timestamp: s.clock.Now(),
		Category:  category,
		Message:   message,
		Severity:  severity,
	})
	if len(s.activity) > s.activityCap {
		s.activity = s.activity[len(s.activity)-s.activityCap:]
	}
}

// AppendActivity records a caller-supplied entry. A zero timestamp is
// stamped with the current time.
func (s *Store) AppendActivity(entry models.ActivityEntry) error {
	if !entry.Category.Valid() {
		return fmt.Errorf("unknown activity category %q: %w", entry.Category, common.ErrorValidation)
	}
	if !entry.Severity.Valid() {
		return fmt.Errorf("unknown severity %q: %w", entry.Severity, common.ErrorValidation)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.clock.Now()
	}

	s.mu.Lock()
	s.activity = append(s.activity, entry)
	if len(s.activity) > s.activityCap {
		s.activity = s.activity[len(s.activity)-s.activityCap:]
	}
	s.mu.Unlock()

	s.persistBestEffort()
	return nil
}

// RecentActivity returns up to limit entries, newest first. A non-positive
// limit defaults to 20.
func (s *Store) RecentActivity(limit int) []models.ActivityEntry {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ActivityEntry, 0, limit)
	for i := len(s.activity) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.activity[i])
	}
	return out
}

// Logs returns activity entries matching the filter, newest first.
func (s *Store) Logs(filter models.LogFilter) ([]models.ActivityEntry, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, fmt.Errorf("unknown activity category %q: %w", filter.Category, common.ErrorValidation)
	}
	if filter.Severity != "" && !filter.Severity.Valid() {
		return nil, fmt.Errorf("unknown severity %q: %w", filter.Severity, common.ErrorValidation)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ActivityEntry, 0, len(s.activity))
	for i := len(s.activity) - 1; i >= 0; i-- {
		e := s.activity[i]
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Severity != "" && e.Severity != filter.Severity {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// LogStatistics aggregates the whole activity log.
func (s *Store) LogStatistics() models.LogStatistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.LogStatistics{
		Total:      len(s.activity),
		ByCategory: make(map[models.ActivityCategory]int),
		BySeverity: make(map[models.Severity]int),
	}
	for _, e := range s.activity {
		stats.ByCategory[e.Category]++
		stats.BySeverity[e.Severity]++
	}
	if len(s.activity) > 0 {
		oldest := s.activity[0].Timestamp
		newest := s.activity[len(s.activity)-1].Timestamp
		stats.Oldest = &oldest
		stats.Newest = &newest
	}
	return stats
}

// ExportLogs serializes the activity log, oldest first, as "json" or "csv".
func (s *Store) ExportLogs(format string) ([]byte, error) {
	s.mu.RLock()
	entries := make([]models.ActivityEntry, len(s.activity))
	copy(entries, s.activity)
	s.mu.RUnlock()

	switch format {
	case "json":
		return json.MarshalIndent(entries, "", "  ")
	case "csv":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"timestamp", "category", "severity", "message"}); err != nil {
			return nil, err
		}
		for _, e := range entries {
			record := []string{
				e.Timestamp.Format(time.RFC3339Nano),
				string(e.Category),
				string(e.Severity),
				e.Message,
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q: %w", format, common.ErrorValidation)
	}
}

// ClearLogs drops the whole activity log and returns the number of entries
// removed. The clear itself is recorded as the first entry of the new log.
func (s *Store) ClearLogs() int {
	s.mu.Lock()
	removed := len(s.activity)
	s.activity = s.activity[:0]
	s.appendActivityLocked(models.ActivitySystem, models.SeverityInfo,
		"activity log cleared ("+strconv.Itoa(removed)+" entries removed)")
	s.mu.Unlock()

	s.persistBestEffort()
	return removed
}
