package store

import (
	"math"

	"backupbridge/internal/models"
)

// ServerStatus derives a point-in-time snapshot from the store's running
// state and elapsed time.
func (s *Store) ServerStatus() models.ServerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverStatusLocked()
}

func (s *Store) serverStatusLocked() models.ServerStatus {
	status := models.ServerStatus{
		Running:   s.running,
		StartedAt: s.startedAt,
		Version:   s.version,
	}
	if s.running {
		status.UptimeSeconds = int64(s.clock.Now().Sub(s.startedAt).Seconds())
	}
	m := s.syntheticMetricsLocked(status.UptimeSeconds)
	status.CPUPercent = m.CPUPercent
	status.MemoryPercent = m.MemoryPercent
	return status
}

// SystemMetrics returns the detailed synthetic resource view. Values are a
// deterministic function of uptime and store contents, so repeated reads in
// the same state agree.
func (s *Store) SystemMetrics() models.SystemMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var uptime int64
	if s.running {
		uptime = int64(s.clock.Now().Sub(s.startedAt).Seconds())
	}
	return s.syntheticMetricsLocked(uptime)
}

func (s *Store) syntheticMetricsLocked(uptimeSeconds int64) models.SystemMetrics {
	connected := 0
	var stored int64
	for _, c := range s.clients {
		if c.Status == models.ClientConnected {
			connected++
		}
		stored += c.TotalBytes
	}

	m := models.SystemMetrics{
		ActiveConnections: connected,
		StoredBytes:       stored,
	}
	if !s.running {
		return m
	}
	m.CPUPercent = clampPercent(12 + 8*math.Sin(float64(uptimeSeconds)/45) + 2*float64(connected))
	m.MemoryPercent = clampPercent(28 + 0.4*float64(len(s.files)) + 3*math.Sin(float64(uptimeSeconds)/300))
	m.DiskPercent = clampPercent(5 + float64(stored)/(16*1024*1024*1024)*100)
	return m
}

func clampPercent(v float64) float64 {
	return math.Round(math.Min(100, math.Max(0, v))*10) / 10
}

// StartServer transitions the simulated server to running. Starting an
// already-running server is a no-op that still reports the current status.
func (s *Store) StartServer() models.ServerStatus {
	s.mu.Lock()
	if !s.running {
		s.running = true
		s.startedAt = s.clock.Now()
		s.appendActivityLocked(models.ActivityServer, models.SeverityInfo, "server started")
	}
	status := s.serverStatusLocked()
	s.mu.Unlock()

	s.persistBestEffort()
	return status
}

// StopServer transitions the simulated server to stopped; stopping twice is
// a no-op.
func (s *Store) StopServer() models.ServerStatus {
	s.mu.Lock()
	if s.running {
		s.running = false
		s.appendActivityLocked(models.ActivityServer, models.SeverityWarning, "server stopped")
	}
	status := s.serverStatusLocked()
	s.mu.Unlock()

	s.persistBestEffort()
	return status
}
