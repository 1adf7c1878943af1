package bridge

import (
	"context"

	"backupbridge/internal/models"
	"backupbridge/internal/settings"
)

// Backend is a handle to a real backup server. Capabilities are declared
// by implementing the per-domain interfaces below; the dispatcher checks
// conformance once at attach time, so a backend exposes exactly the
// domains it implements and the store serves the rest.
type Backend any

// NonBlocking marks a backend whose methods suspend cooperatively on the
// given context instead of blocking the calling goroutine. Calls to such
// a backend are invoked inline and never submitted to the worker pool,
// so a single operation is offloaded at most once.
type NonBlocking interface {
	NonBlocking()
}

type ClientOperations interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (models.Client, error)
	GetClientDetails(ctx context.Context, id string) (models.ClientDetails, error)
	AddClient(ctx context.Context, req models.AddClientRequest) (models.Client, error)
	DeleteClient(ctx context.Context, id string) (models.DeleteClientResult, error)
	ConnectClient(ctx context.Context, id string) (models.Client, error)
	DisconnectClient(ctx context.Context, id string) (models.Client, error)
}

type FileOperations interface {
	ListFiles(ctx context.Context, clientID string) ([]models.File, error)
	AddFile(ctx context.Context, req models.AddFileRequest) (models.File, error)
	DeleteFile(ctx context.Context, id string) error
	VerifyFile(ctx context.Context, id string) (models.VerifyResult, error)
	DownloadFile(ctx context.Context, id, destPath string) (models.DownloadResult, error)
}

type DatabaseOperations interface {
	DatabaseInfo(ctx context.Context) (models.DatabaseInfo, error)
	TableData(ctx context.Context, table string) ([]models.Row, error)
	UpdateRow(ctx context.Context, table, id string, values models.Row) (models.Row, error)
	DeleteRow(ctx context.Context, table, id string) error
}

type LogOperations interface {
	Logs(ctx context.Context, filter models.LogFilter) ([]models.ActivityEntry, error)
	LogStatistics(ctx context.Context) (models.LogStatistics, error)
	ExportLogs(ctx context.Context, format string) ([]byte, error)
	ClearLogs(ctx context.Context) (int, error)
}

type ServerOperations interface {
	ServerStatus(ctx context.Context) (models.ServerStatus, error)
	SystemMetrics(ctx context.Context) (models.SystemMetrics, error)
	StartServer(ctx context.Context) (models.ServerStatus, error)
	StopServer(ctx context.Context) (models.ServerStatus, error)
	RecentActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error)
}

type AnalyticsOperations interface {
	Analytics(ctx context.Context, period string) (models.Analytics, error)
}

type SettingsOperations interface {
	LoadSettings(ctx context.Context) (settings.Settings, error)
	SaveSettings(ctx context.Context, s settings.Settings) error
	ValidateSettings(ctx context.Context, s settings.Settings) error
}
