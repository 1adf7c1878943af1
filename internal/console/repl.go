package console

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Clients(ctx context.Context) error
	ClientDetails(ctx context.Context, id string) error
	AddClient(ctx context.Context) error
	DeleteClient(ctx context.Context, id string) error
	ConnectClient(ctx context.Context, id string) error
	DisconnectClient(ctx context.Context, id string) error
	Files(ctx context.Context, clientID string) error
	AddFile(ctx context.Context) error
	DeleteFile(ctx context.Context, id string) error
	VerifyFile(ctx context.Context, id string) error
	DownloadFile(ctx context.Context, id string) error
	Database(ctx context.Context) error
	Table(ctx context.Context, name string) error
	Logs(ctx context.Context) error
	LogStatistics(ctx context.Context) error
	ExportLogs(ctx context.Context, format string) error
	ClearLogs(ctx context.Context) error
	Status(ctx context.Context) error
	Metrics(ctx context.Context) error
	StartServer(ctx context.Context) error
	StopServer(ctx context.Context) error
	Activity(ctx context.Context) error
	Analytics(ctx context.Context, period string) error
	ShowSettings(ctx context.Context) error
	EditSettings(ctx context.Context) error
}

// runREPL starts a read–eval–print loop over the bridge commands.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		fmt.Printf("bridge %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		switch cmd {
		case "help":
			printlnFn("Clients:   clients, client <id>, addclient, rmclient <id>, connect <id>, disconnect <id>")
			printlnFn("Files:     files [client-id], addfile, rmfile <id>, verify <id>, download <id>")
			printlnFn("Database:  db, table <clients|files|activity_log>")
			printlnFn("Logs:      logs, logstats, export <json|csv>, clearlogs")
			printlnFn("Server:    status, metrics, start, stop, activity")
			printlnFn("Other:     analytics [24h|7d|30d], settings, editsettings, exit")

		case "clients":
			_ = a.Clients(ctx)

		case "client":
			if arg == "" {
				printlnFn("Usage: client <id>")
				continue
			}
			_ = a.ClientDetails(ctx, arg)

		case "addclient":
			_ = a.AddClient(ctx)

		case "rmclient":
			if arg == "" {
				printlnFn("Usage: rmclient <id>")
				continue
			}
			_ = a.DeleteClient(ctx, arg)

		case "connect":
			if arg == "" {
				printlnFn("Usage: connect <id>")
				continue
			}
			_ = a.ConnectClient(ctx, arg)

		case "disconnect":
			if arg == "" {
				printlnFn("Usage: disconnect <id>")
				continue
			}
			_ = a.DisconnectClient(ctx, arg)

		case "files":
			_ = a.Files(ctx, arg)

		case "addfile":
			_ = a.AddFile(ctx)

		case "rmfile":
			if arg == "" {
				printlnFn("Usage: rmfile <id>")
				continue
			}
			_ = a.DeleteFile(ctx, arg)

		case "verify":
			if arg == "" {
				printlnFn("Usage: verify <id>")
				continue
			}
			_ = a.VerifyFile(ctx, arg)

		case "download":
			if arg == "" {
				printlnFn("Usage: download <id>")
				continue
			}
			_ = a.DownloadFile(ctx, arg)

		case "db":
			_ = a.Database(ctx)

		case "table":
			if arg == "" {
				printlnFn("Usage: table <name>")
				continue
			}
			_ = a.Table(ctx, arg)

		case "logs":
			_ = a.Logs(ctx)

		case "logstats":
			_ = a.LogStatistics(ctx)

		case "export":
			if arg == "" {
				printlnFn("Usage: export <json|csv>")
				continue
			}
			_ = a.ExportLogs(ctx, arg)

		case "clearlogs":
			_ = a.ClearLogs(ctx)

		case "status":
			_ = a.Status(ctx)

		case "metrics":
			_ = a.Metrics(ctx)

		case "start":
			_ = a.StartServer(ctx)

		case "stop":
			_ = a.StopServer(ctx)

		case "activity":
			_ = a.Activity(ctx)

		case "analytics":
			_ = a.Analytics(ctx, arg)

		case "settings":
			_ = a.ShowSettings(ctx)

		case "editsettings":
			_ = a.EditSettings(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
