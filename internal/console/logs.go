package console

import (
	"context"
	"fmt"

	"backupbridge/internal/models"
)

func (a *App) Logs(ctx context.Context) error {
	resp := a.bridge.GetLogs(ctx, models.LogFilter{Limit: 50})
	if !unwrap(resp) {
		return nil
	}
	entries := resp.Data.([]models.ActivityEntry)
	if len(entries) == 0 {
		printlnFn("Log is empty")
		return nil
	}
	for _, e := range entries {
		printlnFn(formatActivity(e))
	}
	return nil
}

func (a *App) LogStatistics(ctx context.Context) error {
	resp := a.bridge.GetLogStatistics(ctx)
	if !unwrap(resp) {
		return nil
	}
	stats := resp.Data.(models.LogStatistics)
	printlnFn(fmt.Sprintf("Total entries: %d", stats.Total))
	for category, n := range stats.ByCategory {
		printlnFn(fmt.Sprintf("  %-8s %d", category, n))
	}
	for severity, n := range stats.BySeverity {
		printlnFn(fmt.Sprintf("  %-8s %d", severity, n))
	}
	if stats.Oldest != nil && stats.Newest != nil {
		printlnFn(fmt.Sprintf("  span: %s .. %s", formatTime(*stats.Oldest), formatTime(*stats.Newest)))
	}
	return nil
}

func (a *App) ExportLogs(ctx context.Context, format string) error {
	resp := a.bridge.ExportLogs(ctx, format)
	if !unwrap(resp) {
		return nil
	}
	printlnFn(resp.Data.(string))
	return nil
}

func (a *App) ClearLogs(ctx context.Context) error {
	resp := a.bridge.ClearLogs(ctx)
	if !unwrap(resp) {
		return nil
	}
	printlnFn(fmt.Sprintf("Cleared %d entries", resp.Data.(int)))
	return nil
}
