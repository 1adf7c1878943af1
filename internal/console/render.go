package console

import (
	"fmt"
	"time"

	"backupbridge/internal/bridge"
	"backupbridge/internal/models"
)

// unwrap prints the envelope's error and reports whether data is usable.
// The console never crashes on a failed envelope.
func unwrap(resp bridge.Response) bool {
	if !resp.Success {
		printlnFn("Error:", resp.Error)
		return false
	}
	return true
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func formatClient(c models.Client) string {
	return fmt.Sprintf("%s  %-20s %-15s %-12s files=%d size=%s",
		c.ID, c.Name, c.Address, c.Status, c.FileCount, formatBytes(c.TotalBytes))
}

func formatFile(f models.File) string {
	return fmt.Sprintf("%s  %-28s %-10s size=%s backups=%d client=%s",
		f.ID, f.Name, f.Status, formatBytes(f.Size), f.BackupCount, f.ClientID)
}

func formatActivity(e models.ActivityEntry) string {
	return fmt.Sprintf("%s  [%-7s] %-8s %s",
		formatTime(e.Timestamp), e.Category, e.Severity, e.Message)
}
