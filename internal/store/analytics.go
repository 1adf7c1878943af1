package store

import (
	"fmt"
	"sort"
	"time"

	"backupbridge/internal/common"
	"backupbridge/internal/models"
)

// analyticsTopClients caps the per-client usage ranking.
const analyticsTopClients = 5

// Analytics aggregates store contents and activity over one reporting
// window. Supported periods: "24h" (default), "7d", "30d".
func (s *Store) Analytics(period string) (models.Analytics, error) {
	if period == "" {
		period = "24h"
	}

	var window time.Duration
	switch period {
	case "24h":
		window = 24 * time.Hour
	case "7d":
		window = 7 * 24 * time.Hour
	case "30d":
		window = 30 * 24 * time.Hour
	default:
		return models.Analytics{}, fmt.Errorf("unknown analytics period %q: %w", period, common.ErrorValidation)
	}
	windowStart := s.clock.Now().Add(-window)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := models.Analytics{
		Period:      period,
		WindowStart: windowStart,
		ClientCount: len(s.clients),
		FileCount:   len(s.files),
		ByCategory:  make(map[models.ActivityCategory]int),
	}

	usage := make([]models.ClientUsage, 0, len(s.clientOrder))
	for _, id := range s.clientOrder {
		c := s.clients[id]
		if c.Status == models.ClientConnected {
			out.ConnectedClients++
		}
		out.TotalBytes += c.TotalBytes
		usage = append(usage, models.ClientUsage{
			ClientID:   c.ID,
			Name:       c.Name,
			FileCount:  c.FileCount,
			TotalBytes: c.TotalBytes,
		})
	}

	for _, e := range s.activity {
		if e.Timestamp.Before(windowStart) {
			continue
		}
		out.ActivityTotal++
		out.ByCategory[e.Category]++
		if e.Severity == models.SeverityError {
			out.ErrorCount++
		}
	}

	for _, f := range s.files {
		if f.LastBackup != nil && !f.LastBackup.Before(windowStart) {
			out.BackupsInPeriod++
		}
	}

	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].TotalBytes > usage[j].TotalBytes
	})
	if len(usage) > analyticsTopClients {
		usage = usage[:analyticsTopClients]
	}
	out.TopClients = usage

	return out, nil
}
