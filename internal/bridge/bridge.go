// Package bridge exposes backup-server operations behind one facade that
// serves every call from a real backend when one is attached and from the
// simulated store otherwise. Every operation returns the same envelope:
// success flag, data, error message, and the mode that served it.
package bridge

import (
	"context"

	"backupbridge/internal/models"
	"backupbridge/internal/settings"
	"backupbridge/internal/store"
)

// Bridge is the single object callers use. Each method is a thin mapping
// from an operation name to the dispatcher; no business logic lives here.
// All Bridge values in a process must share one store.
type Bridge struct {
	d        *Dispatcher
	store    *store.Store
	settings *settings.Manager
}

func New(st *store.Store, sm *settings.Manager, d *Dispatcher) *Bridge {
	return &Bridge{d: d, store: st, settings: sm}
}

// Attach registers a real backend for capability-based routing.
func (b *Bridge) Attach(backend Backend) { b.d.Attach(backend) }

// Detach reverts every operation to the simulated store.
func (b *Bridge) Detach() { b.d.Detach() }

// Store exposes the shared simulated store for lifecycle plumbing
// (restore, seed, watch). Domain calls go through the envelope methods.
func (b *Bridge) Store() *store.Store { return b.store }

// --- clients ---

func (b *Bridge) ListClients(ctx context.Context) Response {
	var real func(context.Context) ([]models.Client, error)
	if ops := b.d.clientOps(); ops != nil {
		real = ops.ListClients
	}
	return dispatch(ctx, b.d, "list_clients", real, func() ([]models.Client, error) {
		return b.store.ListClients(), nil
	})
}

func (b *Bridge) GetClient(ctx context.Context, id string) Response {
	var real func(context.Context) (models.Client, error)
	if ops := b.d.clientOps(); ops != nil {
		real = func(ctx context.Context) (models.Client, error) { return ops.GetClient(ctx, id) }
	}
	return dispatch(ctx, b.d, "get_client", real, func() (models.Client, error) {
		return b.store.GetClient(id)
	})
}

func (b *Bridge) GetClientDetails(ctx context.Context, id string) Response {
	var real func(context.Context) (models.ClientDetails, error)
	if ops := b.d.clientOps(); ops != nil {
		real = func(ctx context.Context) (models.ClientDetails, error) { return ops.GetClientDetails(ctx, id) }
	}
	return dispatch(ctx, b.d, "get_client_details", real, func() (models.ClientDetails, error) {
		return b.store.GetClientDetails(id)
	})
}

func (b *Bridge) AddClient(ctx context.Context, req models.AddClientRequest) Response {
	var real func(context.Context) (models.Client, error)
	if ops := b.d.clientOps(); ops != nil {
		real = func(ctx context.Context) (models.Client, error) { return ops.AddClient(ctx, req) }
	}
	return dispatch(ctx, b.d, "add_client", real, func() (models.Client, error) {
		return b.store.AddClient(req)
	})
}

func (b *Bridge) DeleteClient(ctx context.Context, id string) Response {
	var real func(context.Context) (models.DeleteClientResult, error)
	if ops := b.d.clientOps(); ops != nil {
		real = func(ctx context.Context) (models.DeleteClientResult, error) { return ops.DeleteClient(ctx, id) }
	}
	return dispatch(ctx, b.d, "delete_client", real, func() (models.DeleteClientResult, error) {
		return b.store.DeleteClient(id)
	})
}

func (b *Bridge) ConnectClient(ctx context.Context, id string) Response {
	var real func(context.Context) (models.Client, error)
	if ops := b.d.clientOps(); ops != nil {
		real = func(ctx context.Context) (models.Client, error) { return ops.ConnectClient(ctx, id) }
	}
	return dispatch(ctx, b.d, "connect_client", real, func() (models.Client, error) {
		return b.store.ConnectClient(id)
	})
}

func (b *Bridge) DisconnectClient(ctx context.Context, id string) Response {
	var real func(context.Context) (models.Client, error)
	if ops := b.d.clientOps(); ops != nil {
		real = func(ctx context.Context) (models.Client, error) { return ops.DisconnectClient(ctx, id) }
	}
	return dispatch(ctx, b.d, "disconnect_client", real, func() (models.Client, error) {
		return b.store.DisconnectClient(id)
	})
}

// --- files ---

func (b *Bridge) ListFiles(ctx context.Context, clientID string) Response {
	var real func(context.Context) ([]models.File, error)
	if ops := b.d.fileOps(); ops != nil {
		real = func(ctx context.Context) ([]models.File, error) { return ops.ListFiles(ctx, clientID) }
	}
	return dispatch(ctx, b.d, "list_files", real, func() ([]models.File, error) {
		return b.store.ListFiles(clientID)
	})
}

func (b *Bridge) AddFile(ctx context.Context, req models.AddFileRequest) Response {
	var real func(context.Context) (models.File, error)
	if ops := b.d.fileOps(); ops != nil {
		real = func(ctx context.Context) (models.File, error) { return ops.AddFile(ctx, req) }
	}
	return dispatch(ctx, b.d, "add_file", real, func() (models.File, error) {
		return b.store.AddFile(req)
	})
}

func (b *Bridge) DeleteFile(ctx context.Context, id string) Response {
	var real func(context.Context) (bool, error)
	if ops := b.d.fileOps(); ops != nil {
		real = func(ctx context.Context) (bool, error) { return true, ops.DeleteFile(ctx, id) }
	}
	return dispatch(ctx, b.d, "delete_file", real, func() (bool, error) {
		return true, b.store.DeleteFile(id)
	})
}

func (b *Bridge) VerifyFile(ctx context.Context, id string) Response {
	var real func(context.Context) (models.VerifyResult, error)
	if ops := b.d.fileOps(); ops != nil {
		real = func(ctx context.Context) (models.VerifyResult, error) { return ops.VerifyFile(ctx, id) }
	}
	return dispatch(ctx, b.d, "verify_file", real, func() (models.VerifyResult, error) {
		return b.store.VerifyFile(id)
	})
}

func (b *Bridge) DownloadFile(ctx context.Context, id, destPath string) Response {
	var real func(context.Context) (models.DownloadResult, error)
	if ops := b.d.fileOps(); ops != nil {
		real = func(ctx context.Context) (models.DownloadResult, error) { return ops.DownloadFile(ctx, id, destPath) }
	}
	return dispatch(ctx, b.d, "download_file", real, func() (models.DownloadResult, error) {
		return b.store.DownloadFile(id, destPath)
	})
}

// --- database ---

func (b *Bridge) GetDatabaseInfo(ctx context.Context) Response {
	var real func(context.Context) (models.DatabaseInfo, error)
	if ops := b.d.databaseOps(); ops != nil {
		real = ops.DatabaseInfo
	}
	return dispatch(ctx, b.d, "get_database_info", real, func() (models.DatabaseInfo, error) {
		return b.store.DatabaseInfo(), nil
	})
}

func (b *Bridge) GetTableData(ctx context.Context, table string) Response {
	var real func(context.Context) ([]models.Row, error)
	if ops := b.d.databaseOps(); ops != nil {
		real = func(ctx context.Context) ([]models.Row, error) { return ops.TableData(ctx, table) }
	}
	return dispatch(ctx, b.d, "get_table_data", real, func() ([]models.Row, error) {
		return b.store.TableData(table)
	})
}

func (b *Bridge) UpdateRow(ctx context.Context, table, id string, values models.Row) Response {
	var real func(context.Context) (models.Row, error)
	if ops := b.d.databaseOps(); ops != nil {
		real = func(ctx context.Context) (models.Row, error) { return ops.UpdateRow(ctx, table, id, values) }
	}
	return dispatch(ctx, b.d, "update_row", real, func() (models.Row, error) {
		return b.store.UpdateRow(table, id, values)
	})
}

func (b *Bridge) DeleteRow(ctx context.Context, table, id string) Response {
	var real func(context.Context) (bool, error)
	if ops := b.d.databaseOps(); ops != nil {
		real = func(ctx context.Context) (bool, error) { return true, ops.DeleteRow(ctx, table, id) }
	}
	return dispatch(ctx, b.d, "delete_row", real, func() (bool, error) {
		return true, b.store.DeleteRow(table, id)
	})
}

// --- logs ---

func (b *Bridge) GetLogs(ctx context.Context, filter models.LogFilter) Response {
	var real func(context.Context) ([]models.ActivityEntry, error)
	if ops := b.d.logOps(); ops != nil {
		real = func(ctx context.Context) ([]models.ActivityEntry, error) { return ops.Logs(ctx, filter) }
	}
	return dispatch(ctx, b.d, "get_logs", real, func() ([]models.ActivityEntry, error) {
		return b.store.Logs(filter)
	})
}

func (b *Bridge) GetLogStatistics(ctx context.Context) Response {
	var real func(context.Context) (models.LogStatistics, error)
	if ops := b.d.logOps(); ops != nil {
		real = ops.LogStatistics
	}
	return dispatch(ctx, b.d, "get_log_statistics", real, func() (models.LogStatistics, error) {
		return b.store.LogStatistics(), nil
	})
}

func (b *Bridge) ExportLogs(ctx context.Context, format string) Response {
	var real func(context.Context) (string, error)
	if ops := b.d.logOps(); ops != nil {
		real = func(ctx context.Context) (string, error) {
			data, err := ops.ExportLogs(ctx, format)
			return string(data), err
		}
	}
	return dispatch(ctx, b.d, "export_logs", real, func() (string, error) {
		data, err := b.store.ExportLogs(format)
		return string(data), err
	})
}

func (b *Bridge) ClearLogs(ctx context.Context) Response {
	var real func(context.Context) (int, error)
	if ops := b.d.logOps(); ops != nil {
		real = ops.ClearLogs
	}
	return dispatch(ctx, b.d, "clear_logs", real, func() (int, error) {
		return b.store.ClearLogs(), nil
	})
}

// --- server ---

func (b *Bridge) GetServerStatus(ctx context.Context) Response {
	var real func(context.Context) (models.ServerStatus, error)
	if ops := b.d.serverOps(); ops != nil {
		real = ops.ServerStatus
	}
	return dispatch(ctx, b.d, "get_server_status", real, func() (models.ServerStatus, error) {
		return b.store.ServerStatus(), nil
	})
}

func (b *Bridge) GetSystemMetrics(ctx context.Context) Response {
	var real func(context.Context) (models.SystemMetrics, error)
	if ops := b.d.serverOps(); ops != nil {
		real = ops.SystemMetrics
	}
	return dispatch(ctx, b.d, "get_system_metrics", real, func() (models.SystemMetrics, error) {
		return b.store.SystemMetrics(), nil
	})
}

func (b *Bridge) StartServer(ctx context.Context) Response {
	var real func(context.Context) (models.ServerStatus, error)
	if ops := b.d.serverOps(); ops != nil {
		real = ops.StartServer
	}
	return dispatch(ctx, b.d, "start_server", real, func() (models.ServerStatus, error) {
		return b.store.StartServer(), nil
	})
}

func (b *Bridge) StopServer(ctx context.Context) Response {
	var real func(context.Context) (models.ServerStatus, error)
	if ops := b.d.serverOps(); ops != nil {
		real = ops.StopServer
	}
	return dispatch(ctx, b.d, "stop_server", real, func() (models.ServerStatus, error) {
		return b.store.StopServer(), nil
	})
}

func (b *Bridge) GetRecentActivity(ctx context.Context, limit int) Response {
	var real func(context.Context) ([]models.ActivityEntry, error)
	if ops := b.d.serverOps(); ops != nil {
		real = func(ctx context.Context) ([]models.ActivityEntry, error) { return ops.RecentActivity(ctx, limit) }
	}
	return dispatch(ctx, b.d, "get_recent_activity", real, func() ([]models.ActivityEntry, error) {
		return b.store.RecentActivity(limit), nil
	})
}

// --- analytics ---

func (b *Bridge) GetAnalytics(ctx context.Context, period string) Response {
	var real func(context.Context) (models.Analytics, error)
	if ops := b.d.analyticsOps(); ops != nil {
		real = func(ctx context.Context) (models.Analytics, error) { return ops.Analytics(ctx, period) }
	}
	return dispatch(ctx, b.d, "get_analytics", real, func() (models.Analytics, error) {
		return b.store.Analytics(period)
	})
}

// --- settings ---

func (b *Bridge) LoadSettings(ctx context.Context) Response {
	var real func(context.Context) (settings.Settings, error)
	if ops := b.d.settingsOps(); ops != nil {
		real = ops.LoadSettings
	}
	return dispatch(ctx, b.d, "load_settings", real, func() (settings.Settings, error) {
		return b.settings.Load()
	})
}

func (b *Bridge) SaveSettings(ctx context.Context, s settings.Settings) Response {
	var real func(context.Context) (settings.Settings, error)
	if ops := b.d.settingsOps(); ops != nil {
		real = func(ctx context.Context) (settings.Settings, error) { return s, ops.SaveSettings(ctx, s) }
	}
	return dispatch(ctx, b.d, "save_settings", real, func() (settings.Settings, error) {
		return s, b.settings.Save(s)
	})
}

func (b *Bridge) ValidateSettings(ctx context.Context, s settings.Settings) Response {
	var real func(context.Context) (bool, error)
	if ops := b.d.settingsOps(); ops != nil {
		real = func(ctx context.Context) (bool, error) { return true, ops.ValidateSettings(ctx, s) }
	}
	return dispatch(ctx, b.d, "validate_settings", real, func() (bool, error) {
		return true, b.settings.Validate(s)
	})
}
