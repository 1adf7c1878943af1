package console

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"backupbridge/internal/models"
)

func (a *App) Database(ctx context.Context) error {
	resp := a.bridge.GetDatabaseInfo(ctx)
	if !unwrap(resp) {
		return nil
	}
	info := resp.Data.(models.DatabaseInfo)
	printlnFn(fmt.Sprintf("Tables: %s", strings.Join(info.Tables, ", ")))
	printlnFn(fmt.Sprintf("Records: %d, size: %s", info.RecordCount, formatBytes(info.SizeBytes)))
	return nil
}

func (a *App) Table(ctx context.Context, name string) error {
	resp := a.bridge.GetTableData(ctx, name)
	if !unwrap(resp) {
		return nil
	}
	rows := resp.Data.([]models.Row)
	if len(rows) == 0 {
		printlnFn("Table is empty")
		return nil
	}
	for _, row := range rows {
		printlnFn(formatRow(row))
	}
	return nil
}

// formatRow renders one projection row with stable column order.
func formatRow(row models.Row) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, row[k]))
	}
	return strings.Join(pairs, "  ")
}
