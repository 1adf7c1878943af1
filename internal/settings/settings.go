// Package settings stores the console's tunable backup options as a
// small JSON document validated against an embedded JSON schema.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"backupbridge/internal/common"
	"backupbridge/internal/filex"
	"backupbridge/internal/logging"
)

// Settings holds the user-adjustable options of the backup server.
type Settings struct {
	BackupIntervalMinutes int    `json:"backup_interval_minutes"`
	MaxFileSizeMB         int    `json:"max_file_size_mb"`
	RetentionDays         int    `json:"retention_days"`
	Compression           bool   `json:"compression"`
	Notifications         bool   `json:"notifications"`
	Theme                 string `json:"theme"`
	BackendURL            string `json:"backend_url"`
	APIToken              string `json:"api_token,omitempty"`
}

// Defaults returns the settings a fresh installation starts with.
func Defaults() Settings {
	return Settings{
		BackupIntervalMinutes: 60,
		MaxFileSizeMB:         2048,
		RetentionDays:         30,
		Compression:           true,
		Notifications:         true,
		Theme:                 "dark",
		BackendURL:            "grpc://localhost:9090",
	}
}

// Manager loads, validates and saves the settings document.
type Manager struct {
	path   string
	logger logging.Logger
	schema *jsonschema.Schema

	mu sync.Mutex
}

func NewManager(path string, logger logging.Logger) (*Manager, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(settingsSchema))
	if err != nil {
		return nil, fmt.Errorf("parse settings schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("settings.schema.json", doc); err != nil {
		return nil, fmt.Errorf("register settings schema: %w", err)
	}
	schema, err := compiler.Compile("settings.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile settings schema: %w", err)
	}

	return &Manager{
		path:   path,
		logger: logger.With("module", "settings"),
		schema: schema,
	}, nil
}

// Load reads the settings file. A missing file yields the defaults.
func (m *Manager) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		m.logger.Info(context.Background(), "settings file missing, using defaults", "path", m.path)
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("%w: read settings %s: %v", common.ErrorPersistence, m.path, err)
	}

	if err := m.validateDocument(data); err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: decode settings: %v", common.ErrorPersistence, err)
	}
	return s, nil
}

// Save validates the settings and writes them atomically.
func (m *Manager) Save(s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := m.validateDocument(data); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := filex.EnsureDir(filepath.Dir(m.path)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorPersistence, err)
	}
	if err := filex.WriteFileAtomic(m.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: write settings %s: %v", common.ErrorPersistence, m.path, err)
	}
	m.logger.Info(context.Background(), "settings saved", "path", m.path)
	return nil
}

// Validate checks a settings value against the schema without saving it.
func (m *Manager) Validate(s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return m.validateDocument(data)
}

// ValidateDocument checks a raw JSON settings document against the schema.
func (m *Manager) ValidateDocument(data []byte) error {
	return m.validateDocument(data)
}

func (m *Manager) validateDocument(data []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: settings are not valid JSON: %v", common.ErrorValidation, err)
	}
	if err := m.schema.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}
