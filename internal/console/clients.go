package console

import (
	"context"
	"fmt"
	"os"

	"backupbridge/internal/models"
)

func (a *App) Clients(ctx context.Context) error {
	resp := a.bridge.ListClients(ctx)
	if !unwrap(resp) {
		return nil
	}
	clients := resp.Data.([]models.Client)
	if len(clients) == 0 {
		printlnFn("No clients registered")
		return nil
	}
	for _, c := range clients {
		printlnFn(formatClient(c))
	}
	return nil
}

func (a *App) ClientDetails(ctx context.Context, id string) error {
	resp := a.bridge.GetClientDetails(ctx, id)
	if !unwrap(resp) {
		return nil
	}
	details := resp.Data.(models.ClientDetails)
	c := details.Client
	printlnFn(formatClient(c))
	printlnFn(fmt.Sprintf("  version=%s platform=%s last_seen=%s", c.Version, c.Platform, formatTime(c.LastSeen)))
	if len(details.Files) > 0 {
		printlnFn("Files:")
		for _, f := range details.Files {
			printlnFn("  " + formatFile(f))
		}
	}
	if len(details.Activity) > 0 {
		printlnFn("Recent activity:")
		for _, e := range details.Activity {
			printlnFn("  " + formatActivity(e))
		}
	}
	return nil
}

func (a *App) AddClient(ctx context.Context) error {
	req := models.AddClientRequest{}
	var err error
	if req.Name, err = GetSimpleText(a.reader, "Client name", os.Stdout); err != nil {
		return err
	}
	if req.Address, err = GetSimpleText(a.reader, "Network address", os.Stdout); err != nil {
		return err
	}
	if req.Version, err = GetSimpleText(a.reader, "Client version (optional)", os.Stdout); err != nil {
		return err
	}
	if req.Platform, err = GetSimpleText(a.reader, "Platform (optional)", os.Stdout); err != nil {
		return err
	}

	resp := a.bridge.AddClient(ctx, req)
	if !unwrap(resp) {
		return nil
	}
	printlnFn("Added:", formatClient(resp.Data.(models.Client)))
	return nil
}

func (a *App) DeleteClient(ctx context.Context, id string) error {
	resp := a.bridge.DeleteClient(ctx, id)
	if !unwrap(resp) {
		return nil
	}
	result := resp.Data.(models.DeleteClientResult)
	printlnFn(fmt.Sprintf("Removed client %s (%d files removed in cascade)", result.ClientID, result.FilesRemoved))
	return nil
}

func (a *App) ConnectClient(ctx context.Context, id string) error {
	resp := a.bridge.ConnectClient(ctx, id)
	if !unwrap(resp) {
		return nil
	}
	printlnFn(formatClient(resp.Data.(models.Client)))
	return nil
}

func (a *App) DisconnectClient(ctx context.Context, id string) error {
	resp := a.bridge.DisconnectClient(ctx, id)
	if !unwrap(resp) {
		return nil
	}
	printlnFn(formatClient(resp.Data.(models.Client)))
	return nil
}
