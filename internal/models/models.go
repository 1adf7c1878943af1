// Package models defines the data types shared by the simulated store, the
// real-backend capability interfaces, and the console. Every value handed
// out by the store is a copy; callers never hold references into the graph.
package models

import "time"

// ClientStatus is the connection state of a backup client.
type ClientStatus string

const (
	ClientConnected    ClientStatus = "connected"
	ClientDisconnected ClientStatus = "disconnected"
	ClientError        ClientStatus = "error"
)

// Valid reports whether s is one of the known client states.
func (s ClientStatus) Valid() bool {
	switch s {
	case ClientConnected, ClientDisconnected, ClientError:
		return true
	}
	return false
}

// Client is a backup client registered with the server. FileCount and
// TotalBytes always agree with the set of files currently owned by the
// client; the store maintains them on every file mutation.
type Client struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Status      ClientStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	LastSeen    time.Time    `json:"last_seen"`
	ConnectedAt *time.Time   `json:"connected_at"`
	Version     string       `json:"version"`
	Platform    string       `json:"platform"`
	FileCount   int          `json:"file_count"`
	TotalBytes  int64        `json:"total_bytes"`
}

// FileStatus is the verification state of a backed-up file.
type FileStatus string

const (
	FileUploaded FileStatus = "uploaded"
	FileVerified FileStatus = "verified"
	FileError    FileStatus = "error"
)

// Valid reports whether s is one of the known file states.
func (s FileStatus) Valid() bool {
	switch s {
	case FileUploaded, FileVerified, FileError:
		return true
	}
	return false
}

// File is a backed-up file owned by exactly one client. ClientID always
// references an existing client; the store drops orphans on restore.
type File struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	Name        string     `json:"name"`
	Path        string     `json:"path"`
	Size        int64      `json:"size"`
	Hash        string     `json:"hash"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  time.Time  `json:"modified_at"`
	Status      FileStatus `json:"status"`
	BackupCount int        `json:"backup_count"`
	LastBackup  *time.Time `json:"last_backup"`
}

// ActivityCategory groups activity log entries by the subsystem they
// describe.
type ActivityCategory string

const (
	ActivityClient ActivityCategory = "client"
	ActivityFile   ActivityCategory = "file"
	ActivityServer ActivityCategory = "server"
	ActivitySystem ActivityCategory = "system"
)

// Valid reports whether c is one of the known categories.
func (c ActivityCategory) Valid() bool {
	switch c {
	case ActivityClient, ActivityFile, ActivityServer, ActivitySystem:
		return true
	}
	return false
}

// Severity is the level of an activity log entry.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// ActivityEntry is one append-only record in the activity log. Client and
// file IDs appear only inside Message, for display; entries carry no
// foreign-key constraints.
type ActivityEntry struct {
	Timestamp time.Time        `json:"timestamp"`
	Category  ActivityCategory `json:"category"`
	Message   string           `json:"message"`
	Severity  Severity         `json:"severity"`
}

// ServerStatus is a point-in-time snapshot of the (simulated) backup
// server. Uptime and the resource metrics are derived on read.
type ServerStatus struct {
	Running       bool      `json:"running"`
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	Version       string    `json:"version"`
}

// SystemMetrics is the detailed resource view behind the status snapshot.
type SystemMetrics struct {
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	DiskPercent       float64 `json:"disk_percent"`
	ActiveConnections int     `json:"active_connections"`
	StoredBytes       int64   `json:"stored_bytes"`
}

// DatabaseInfo summarizes the table projections exposed by the store.
type DatabaseInfo struct {
	TableCount  int      `json:"table_count"`
	RecordCount int      `json:"record_count"`
	SizeBytes   int64    `json:"size_bytes"`
	Tables      []string `json:"tables"`
}

// Row is one record of a table projection in column→value form.
type Row map[string]any

// LogFilter narrows GetLogs results. Zero values mean "no constraint";
// Limit <= 0 means no limit.
type LogFilter struct {
	Category ActivityCategory `json:"category"`
	Severity Severity         `json:"severity"`
	Limit    int              `json:"limit"`
}

// LogStatistics aggregates the activity log for the logs dashboard.
type LogStatistics struct {
	Total      int                      `json:"total"`
	ByCategory map[ActivityCategory]int `json:"by_category"`
	BySeverity map[Severity]int         `json:"by_severity"`
	Oldest     *time.Time               `json:"oldest"`
	Newest     *time.Time               `json:"newest"`
}

// VerifyResult is the outcome of a file hash recheck.
type VerifyResult struct {
	FileID    string     `json:"file_id"`
	Status    FileStatus `json:"status"`
	HashMatch bool       `json:"hash_match"`
}

// DownloadResult reports a file materialized to a local path.
type DownloadResult struct {
	FileID string `json:"file_id"`
	Path   string `json:"path"`
	Bytes  int64  `json:"bytes"`
}

// DeleteClientResult summarizes a cascading client deletion.
type DeleteClientResult struct {
	ClientID     string `json:"client_id"`
	FilesRemoved int    `json:"files_removed"`
}

// ClientDetails is the full per-client view: the client record, the files
// it owns, and recent activity mentioning it.
type ClientDetails struct {
	Client   Client          `json:"client"`
	Files    []File          `json:"files"`
	Activity []ActivityEntry `json:"activity"`
}

// ClientUsage ranks a client by the storage it consumes.
type ClientUsage struct {
	ClientID   string `json:"client_id"`
	Name       string `json:"name"`
	FileCount  int    `json:"file_count"`
	TotalBytes int64  `json:"total_bytes"`
}

// Analytics is the aggregate view over one reporting window.
type Analytics struct {
	Period           string                   `json:"period"`
	WindowStart      time.Time                `json:"window_start"`
	ClientCount      int                      `json:"client_count"`
	ConnectedClients int                      `json:"connected_clients"`
	FileCount        int                      `json:"file_count"`
	TotalBytes       int64                    `json:"total_bytes"`
	ActivityTotal    int                      `json:"activity_total"`
	ByCategory       map[ActivityCategory]int `json:"by_category"`
	ErrorCount       int                      `json:"error_count"`
	BackupsInPeriod  int                      `json:"backups_in_period"`
	TopClients       []ClientUsage            `json:"top_clients"`
}

// AddClientRequest carries the caller-supplied attributes for a new client.
type AddClientRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

// AddFileRequest carries the caller-supplied attributes for a new file.
type AddFileRequest struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}
