package console

import (
	"context"
	"fmt"

	"backupbridge/internal/models"
)

func (a *App) Status(ctx context.Context) error {
	resp := a.bridge.GetServerStatus(ctx)
	if !unwrap(resp) {
		return nil
	}
	status := resp.Data.(models.ServerStatus)
	state := "stopped"
	if status.Running {
		state = "running"
	}
	printlnFn(fmt.Sprintf("Server %s (version %s)", state, status.Version))
	printlnFn(fmt.Sprintf("  started: %s, uptime: %ds", formatTime(status.StartedAt), status.UptimeSeconds))
	printlnFn(fmt.Sprintf("  cpu: %.1f%%, memory: %.1f%%", status.CPUPercent, status.MemoryPercent))
	return nil
}

func (a *App) Metrics(ctx context.Context) error {
	resp := a.bridge.GetSystemMetrics(ctx)
	if !unwrap(resp) {
		return nil
	}
	m := resp.Data.(models.SystemMetrics)
	printlnFn(fmt.Sprintf("cpu: %.1f%%, memory: %.1f%%, disk: %.1f%%", m.CPUPercent, m.MemoryPercent, m.DiskPercent))
	printlnFn(fmt.Sprintf("connections: %d, stored: %s", m.ActiveConnections, formatBytes(m.StoredBytes)))
	return nil
}

func (a *App) StartServer(ctx context.Context) error {
	resp := a.bridge.StartServer(ctx)
	if !unwrap(resp) {
		return nil
	}
	printlnFn("Server running")
	return nil
}

func (a *App) StopServer(ctx context.Context) error {
	resp := a.bridge.StopServer(ctx)
	if !unwrap(resp) {
		return nil
	}
	printlnFn("Server stopped")
	return nil
}

func (a *App) Activity(ctx context.Context) error {
	resp := a.bridge.GetRecentActivity(ctx, 20)
	if !unwrap(resp) {
		return nil
	}
	entries := resp.Data.([]models.ActivityEntry)
	if len(entries) == 0 {
		printlnFn("No recent activity")
		return nil
	}
	for _, e := range entries {
		printlnFn(formatActivity(e))
	}
	return nil
}

func (a *App) Analytics(ctx context.Context, period string) error {
	resp := a.bridge.GetAnalytics(ctx, period)
	if !unwrap(resp) {
		return nil
	}
	an := resp.Data.(models.Analytics)
	printlnFn(fmt.Sprintf("Analytics for %s (since %s)", an.Period, formatTime(an.WindowStart)))
	printlnFn(fmt.Sprintf("  clients: %d (%d connected), files: %d, stored: %s",
		an.ClientCount, an.ConnectedClients, an.FileCount, formatBytes(an.TotalBytes)))
	printlnFn(fmt.Sprintf("  activity: %d entries, %d errors, %d backups",
		an.ActivityTotal, an.ErrorCount, an.BackupsInPeriod))
	if len(an.TopClients) > 0 {
		printlnFn("  top clients:")
		for _, u := range an.TopClients {
			printlnFn(fmt.Sprintf("    %-20s %s in %d files", u.Name, formatBytes(u.TotalBytes), u.FileCount))
		}
	}
	return nil
}
