package console

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"backupbridge/internal/models"
)

func (a *App) Files(ctx context.Context, clientID string) error {
	resp := a.bridge.ListFiles(ctx, clientID)
	if !unwrap(resp) {
		return nil
	}
	files := resp.Data.([]models.File)
	if len(files) == 0 {
		printlnFn("No files")
		return nil
	}
	for _, f := range files {
		printlnFn(formatFile(f))
	}
	return nil
}

func (a *App) AddFile(ctx context.Context) error {
	req := models.AddFileRequest{}
	var err error
	if req.ClientID, err = GetSimpleText(a.reader, "Owning client id", os.Stdout); err != nil {
		return err
	}
	if req.Name, err = GetSimpleText(a.reader, "File name", os.Stdout); err != nil {
		return err
	}
	if req.Path, err = GetSimpleText(a.reader, "Logical path", os.Stdout); err != nil {
		return err
	}
	sizeText, err := GetSimpleText(a.reader, "Size in bytes", os.Stdout)
	if err != nil {
		return err
	}
	req.Size, err = strconv.ParseInt(sizeText, 10, 64)
	if err != nil {
		printlnFn("Error: size must be an integer")
		return nil
	}

	resp := a.bridge.AddFile(ctx, req)
	if !unwrap(resp) {
		return nil
	}
	printlnFn("Added:", formatFile(resp.Data.(models.File)))
	return nil
}

func (a *App) DeleteFile(ctx context.Context, id string) error {
	resp := a.bridge.DeleteFile(ctx, id)
	if !unwrap(resp) {
		return nil
	}
	printlnFn("Removed file", id)
	return nil
}

func (a *App) VerifyFile(ctx context.Context, id string) error {
	resp := a.bridge.VerifyFile(ctx, id)
	if !unwrap(resp) {
		return nil
	}
	result := resp.Data.(models.VerifyResult)
	if result.HashMatch {
		printlnFn(fmt.Sprintf("File %s verified, status=%s", result.FileID, result.Status))
	} else {
		printlnFn(fmt.Sprintf("File %s FAILED verification, status=%s", result.FileID, result.Status))
	}
	return nil
}

func (a *App) DownloadFile(ctx context.Context, id string) error {
	dest, err := GetSimpleText(a.reader, "Destination path (blank for download dir)", os.Stdout)
	if err != nil {
		return err
	}
	if dest == "" {
		dest = filepath.Join(a.config.DownloadDir, id)
	}

	resp := a.bridge.DownloadFile(ctx, id, dest)
	if !unwrap(resp) {
		return nil
	}
	result := resp.Data.(models.DownloadResult)
	printlnFn(fmt.Sprintf("Downloaded %s (%s) to %s", result.FileID, formatBytes(result.Bytes), result.Path))
	return nil
}
