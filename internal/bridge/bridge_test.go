package bridge

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"backupbridge/internal/logging"
	"backupbridge/internal/models"
	"backupbridge/internal/settings"
	"backupbridge/internal/store"
)

func newTestBridge(t *testing.T) (*Bridge, *Executor) {
	t.Helper()
	dir := t.TempDir()

	st := store.New(filepath.Join(dir, "state.json"), 0, logging.NewNopLogger(), store.SystemClock{}, store.UUIDGenerator{})
	sm, err := settings.NewManager(filepath.Join(dir, "settings.json"), logging.NewNopLogger())
	require.NoError(t, err)

	exec := NewExecutor(2)
	d := NewDispatcher(exec, time.Second, logging.NewNopLogger())
	return New(st, sm, d), exec
}

// failingClientBackend implements the client domain and fails every call.
type failingClientBackend struct{}

func (failingClientBackend) ListClients(context.Context) ([]models.Client, error) {
	return nil, errors.New("connection refused")
}
func (failingClientBackend) GetClient(context.Context, string) (models.Client, error) {
	return models.Client{}, errors.New("connection refused")
}
func (failingClientBackend) GetClientDetails(context.Context, string) (models.ClientDetails, error) {
	return models.ClientDetails{}, errors.New("connection refused")
}
func (failingClientBackend) AddClient(context.Context, models.AddClientRequest) (models.Client, error) {
	return models.Client{}, errors.New("connection refused")
}
func (failingClientBackend) DeleteClient(context.Context, string) (models.DeleteClientResult, error) {
	return models.DeleteClientResult{}, errors.New("connection refused")
}
func (failingClientBackend) ConnectClient(context.Context, string) (models.Client, error) {
	return models.Client{}, errors.New("connection refused")
}
func (failingClientBackend) DisconnectClient(context.Context, string) (models.Client, error) {
	return models.Client{}, errors.New("connection refused")
}

// realClientBackend serves the client list itself.
type realClientBackend struct {
	failingClientBackend
	clients []models.Client
	calls   int
}

func (b *realClientBackend) ListClients(context.Context) ([]models.Client, error) {
	b.calls++
	return b.clients, nil
}

// asyncClientBackend is a cooperative backend: marked NonBlocking, so its
// calls must never reach the worker pool.
type asyncClientBackend struct {
	realClientBackend
}

func (*asyncClientBackend) NonBlocking() {}

func TestBridge_NoBackendServesSimulated(t *testing.T) {
	b, _ := newTestBridge(t)

	resp := b.ListClients(context.Background())
	require.True(t, resp.Success)
	assert.Equal(t, ModeSimulated, resp.Mode)
	assert.Empty(t, resp.Data)
}

func TestBridge_AddClientScenario(t *testing.T) {
	b, _ := newTestBridge(t)

	resp := b.AddClient(context.Background(), models.AddClientRequest{Name: "Acme", Address: "10.0.0.5"})
	require.True(t, resp.Success)
	client := resp.Data.(models.Client)
	assert.Equal(t, "Acme", client.Name)
	assert.Zero(t, client.FileCount)
}

func TestBridge_CascadeDeleteScenario(t *testing.T) {
	b, _ := newTestBridge(t)
	ctx := context.Background()

	resp := b.AddClient(ctx, models.AddClientRequest{Name: "Acme", Address: "10.0.0.5"})
	require.True(t, resp.Success)
	client := resp.Data.(models.Client)

	for _, name := range []string{"a.bin", "b.bin"} {
		resp = b.AddFile(ctx, models.AddFileRequest{ClientID: client.ID, Name: name, Path: "/" + name, Size: 10})
		require.True(t, resp.Success)
	}

	resp = b.DeleteClient(ctx, client.ID)
	require.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.(models.DeleteClientResult).FilesRemoved)

	resp = b.ListFiles(ctx, "")
	require.True(t, resp.Success)
	assert.Empty(t, resp.Data.([]models.File))
}

func TestBridge_DeleteUnknownClientFailsWithNotFound(t *testing.T) {
	b, _ := newTestBridge(t)

	resp := b.DeleteClient(context.Background(), "never-added")
	require.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Contains(t, resp.Error, "not found")
	assert.Equal(t, ModeSimulated, resp.Mode)
}

func TestBridge_FallbackIsTransparent(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, _ := newTestBridge(t)
	b.Attach(failingClientBackend{})

	resp := b.AddClient(context.Background(), models.AddClientRequest{Name: "Acme", Address: "10.0.0.5"})
	require.True(t, resp.Success)
	assert.Equal(t, ModeSimulated, resp.Mode)

	resp = b.ListClients(context.Background())
	require.True(t, resp.Success)
	assert.Equal(t, ModeSimulated, resp.Mode)
	assert.Len(t, resp.Data.([]models.Client), 1)
}

func TestBridge_RealBackendServesAndEmptyIsSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, _ := newTestBridge(t)
	backend := &realClientBackend{clients: []models.Client{}}
	b.Attach(backend)

	// an empty result from the real backend is success, not a fallback trigger
	resp := b.ListClients(context.Background())
	require.True(t, resp.Success)
	assert.Equal(t, ModeReal, resp.Mode)
	assert.Equal(t, 1, backend.calls)
}

func TestBridge_PartialCapabilityBackend(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, _ := newTestBridge(t)
	b.Attach(&realClientBackend{clients: []models.Client{{ID: "r1", Name: "remote"}}})

	resp := b.ListClients(context.Background())
	require.True(t, resp.Success)
	assert.Equal(t, ModeReal, resp.Mode)

	// file domain is not implemented by the backend
	resp = b.ListFiles(context.Background(), "")
	require.True(t, resp.Success)
	assert.Equal(t, ModeSimulated, resp.Mode)
}

func TestBridge_NonBlockingBackendNeverHitsPool(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, exec := newTestBridge(t)
	b.Attach(&asyncClientBackend{})

	resp := b.ListClients(context.Background())
	require.True(t, resp.Success)
	assert.Equal(t, ModeReal, resp.Mode)
	assert.Zero(t, exec.Submitted(), "cooperative backend must not be offloaded")
}

func TestBridge_BlockingBackendIsOffloadedExactlyOnce(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, exec := newTestBridge(t)
	b.Attach(&realClientBackend{})

	resp := b.ListClients(context.Background())
	require.True(t, resp.Success)
	assert.Equal(t, int64(1), exec.Submitted())
}

func TestBridge_BackendTimeoutFallsBack(t *testing.T) {
	dir := t.TempDir()
	st := store.New(filepath.Join(dir, "state.json"), 0, logging.NewNopLogger(), store.SystemClock{}, store.UUIDGenerator{})
	sm, err := settings.NewManager(filepath.Join(dir, "settings.json"), logging.NewNopLogger())
	require.NoError(t, err)

	exec := NewExecutor(1)
	d := NewDispatcher(exec, 20*time.Millisecond, logging.NewNopLogger())
	b := New(st, sm, d)

	release := make(chan struct{})
	b.Attach(&stallingBackend{release: release})

	resp := b.ListClients(context.Background())
	require.True(t, resp.Success)
	assert.Equal(t, ModeSimulated, resp.Mode)

	close(release)
	require.NoError(t, exec.Drain(context.Background()))
}

// stallingBackend never answers until released.
type stallingBackend struct {
	failingClientBackend
	release chan struct{}
}

func (b *stallingBackend) ListClients(context.Context) ([]models.Client, error) {
	<-b.release
	return nil, nil
}

func TestBridge_DetachRevertsToSimulated(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, _ := newTestBridge(t)
	b.Attach(&realClientBackend{})

	resp := b.ListClients(context.Background())
	assert.Equal(t, ModeReal, resp.Mode)

	b.Detach()
	resp = b.ListClients(context.Background())
	assert.Equal(t, ModeSimulated, resp.Mode)
}

// panickyBackend panics inside the call.
type panickyBackend struct {
	failingClientBackend
}

func (panickyBackend) ListClients(context.Context) ([]models.Client, error) {
	panic("backend bug")
}

func (panickyBackend) NonBlocking() {}

func TestBridge_BackendPanicIsContainedAndFallsBack(t *testing.T) {
	defer goleak.VerifyNone(t)
	b, _ := newTestBridge(t)
	b.Attach(panickyBackend{})

	resp := b.ListClients(context.Background())
	require.True(t, resp.Success)
	assert.Equal(t, ModeSimulated, resp.Mode)
}

func TestBridge_VerifyMismatchScenario(t *testing.T) {
	b, _ := newTestBridge(t)
	ctx := context.Background()

	resp := b.AddClient(ctx, models.AddClientRequest{Name: "Acme", Address: "10.0.0.5"})
	require.True(t, resp.Success)
	client := resp.Data.(models.Client)

	resp = b.AddFile(ctx, models.AddFileRequest{ClientID: client.ID, Name: "x.bin", Path: "/x.bin", Size: 8})
	require.True(t, resp.Success)
	file := resp.Data.(models.File)

	// renaming through the table projection invalidates the stored hash
	resp = b.UpdateRow(ctx, store.TableFiles, file.ID, models.Row{"name": "y.bin"})
	require.True(t, resp.Success)

	resp = b.VerifyFile(ctx, file.ID)
	require.True(t, resp.Success)
	result := resp.Data.(models.VerifyResult)
	assert.False(t, result.HashMatch)
	assert.Equal(t, models.FileError, result.Status)
}

func TestBridge_SettingsRoundTrip(t *testing.T) {
	b, _ := newTestBridge(t)
	ctx := context.Background()

	resp := b.LoadSettings(ctx)
	require.True(t, resp.Success)
	loaded := resp.Data.(settings.Settings)
	assert.Equal(t, settings.Defaults(), loaded)

	loaded.Theme = "light"
	resp = b.SaveSettings(ctx, loaded)
	require.True(t, resp.Success)

	resp = b.LoadSettings(ctx)
	require.True(t, resp.Success)
	assert.Equal(t, "light", resp.Data.(settings.Settings).Theme)

	loaded.Theme = "neon"
	resp = b.ValidateSettings(ctx, loaded)
	require.False(t, resp.Success)
	assert.Contains(t, resp.Error, "validation")
}
