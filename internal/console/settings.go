package console

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"backupbridge/internal/settings"
)

func (a *App) ShowSettings(ctx context.Context) error {
	resp := a.bridge.LoadSettings(ctx)
	if !unwrap(resp) {
		return nil
	}
	s := resp.Data.(settings.Settings)
	printlnFn(fmt.Sprintf("backup interval: %d min", s.BackupIntervalMinutes))
	printlnFn(fmt.Sprintf("max file size:   %d MB", s.MaxFileSizeMB))
	printlnFn(fmt.Sprintf("retention:       %d days", s.RetentionDays))
	printlnFn(fmt.Sprintf("compression:     %v", s.Compression))
	printlnFn(fmt.Sprintf("notifications:   %v", s.Notifications))
	printlnFn(fmt.Sprintf("theme:           %s", s.Theme))
	printlnFn(fmt.Sprintf("backend url:     %s", s.BackendURL))
	token := "(not set)"
	if s.APIToken != "" {
		token = "(set)"
	}
	printlnFn(fmt.Sprintf("api token:       %s", token))
	return nil
}

// EditSettings prompts per field; a blank answer keeps the current value.
func (a *App) EditSettings(ctx context.Context) error {
	resp := a.bridge.LoadSettings(ctx)
	if !unwrap(resp) {
		return nil
	}
	s := resp.Data.(settings.Settings)

	var err error
	if s.BackupIntervalMinutes, err = a.promptInt("Backup interval, minutes", s.BackupIntervalMinutes); err != nil {
		return err
	}
	if s.MaxFileSizeMB, err = a.promptInt("Max file size, MB", s.MaxFileSizeMB); err != nil {
		return err
	}
	if s.RetentionDays, err = a.promptInt("Retention, days", s.RetentionDays); err != nil {
		return err
	}
	if s.Compression, err = a.promptBool("Compression (true/false)", s.Compression); err != nil {
		return err
	}
	if s.Notifications, err = a.promptBool("Notifications (true/false)", s.Notifications); err != nil {
		return err
	}
	if s.Theme, err = a.promptText("Theme (dark/light/system)", s.Theme); err != nil {
		return err
	}
	if s.BackendURL, err = a.promptText("Backend URL", s.BackendURL); err != nil {
		return err
	}

	token, err := GetSecret("API token (blank keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	if len(token) > 0 {
		s.APIToken = string(token)
	}

	resp = a.bridge.SaveSettings(ctx, s)
	if !unwrap(resp) {
		return nil
	}
	printlnFn("Settings saved")
	return nil
}

func (a *App) promptText(prompt, current string) (string, error) {
	text, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", prompt, current), os.Stdout)
	if err != nil {
		return "", err
	}
	if text == "" {
		return current, nil
	}
	return text, nil
}

func (a *App) promptInt(prompt string, current int) (int, error) {
	text, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%d]", prompt, current), os.Stdout)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return current, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		printlnFn("Not a number, keeping", current)
		return current, nil
	}
	return n, nil
}

func (a *App) promptBool(prompt string, current bool) (bool, error) {
	text, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%v]", prompt, current), os.Stdout)
	if err != nil {
		return false, err
	}
	if text == "" {
		return current, nil
	}
	v, err := strconv.ParseBool(text)
	if err != nil {
		printlnFn("Not a boolean, keeping", current)
		return current, nil
	}
	return v, nil
}
