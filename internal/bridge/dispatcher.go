package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"backupbridge/internal/common"
	"backupbridge/internal/logging"
)

// DefaultBackendTimeout bounds a single real-backend call.
const DefaultBackendTimeout = 5 * time.Second

// Dispatcher routes each operation to the real backend when the matching
// capability is attached, falling back to the simulated path on any
// backend failure. Capability checks happen once, at attach time.
type Dispatcher struct {
	exec    *Executor
	logger  logging.Logger
	timeout time.Duration

	mu          sync.RWMutex
	nonBlocking bool
	clients     ClientOperations
	files       FileOperations
	database    DatabaseOperations
	logs        LogOperations
	server      ServerOperations
	analytics   AnalyticsOperations
	settings    SettingsOperations
}

func NewDispatcher(exec *Executor, timeout time.Duration, logger logging.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultBackendTimeout
	}
	return &Dispatcher{
		exec:    exec,
		logger:  logger.With("module", "dispatcher"),
		timeout: timeout,
	}
}

// Attach registers a real backend. Each domain capability is resolved by
// a single interface assertion; anything the backend does not implement
// keeps being served by the store.
func (d *Dispatcher) Attach(b Backend) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.clients, _ = b.(ClientOperations)
	d.files, _ = b.(FileOperations)
	d.database, _ = b.(DatabaseOperations)
	d.logs, _ = b.(LogOperations)
	d.server, _ = b.(ServerOperations)
	d.analytics, _ = b.(AnalyticsOperations)
	d.settings, _ = b.(SettingsOperations)
	_, d.nonBlocking = b.(NonBlocking)

	d.logger.Info(context.Background(), "backend attached",
		"clients", d.clients != nil,
		"files", d.files != nil,
		"database", d.database != nil,
		"logs", d.logs != nil,
		"server", d.server != nil,
		"analytics", d.analytics != nil,
		"settings", d.settings != nil,
		"non_blocking", d.nonBlocking,
	)
}

// Detach drops the real backend; every operation reverts to the store.
func (d *Dispatcher) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clients = nil
	d.files = nil
	d.database = nil
	d.logs = nil
	d.server = nil
	d.analytics = nil
	d.settings = nil
	d.nonBlocking = false
}

func (d *Dispatcher) clientOps() ClientOperations {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.clients
}

func (d *Dispatcher) fileOps() FileOperations {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.files
}

func (d *Dispatcher) databaseOps() DatabaseOperations {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.database
}

func (d *Dispatcher) logOps() LogOperations {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.logs
}

func (d *Dispatcher) serverOps() ServerOperations {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.server
}

func (d *Dispatcher) analyticsOps() AnalyticsOperations {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.analytics
}

func (d *Dispatcher) settingsOps() SettingsOperations {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings
}

// dispatch executes one operation. The real call runs first when the
// capability is present; any error there is logged and recovered by the
// simulated call, so backend trouble never surfaces to the caller. Only
// a simulated-side error becomes a failed envelope.
func dispatch[T any](ctx context.Context, d *Dispatcher, op string, real func(context.Context) (T, error), sim func() (T, error)) Response {
	if real != nil {
		value, err := invokeReal(ctx, d, op, real)
		if err == nil {
			return succeed(ModeReal, value)
		}
		d.logger.Warn(ctx, "real backend call failed, falling back to simulated store",
			"op", op, "error", err)
	}

	value, err := guard(op, sim)
	if err != nil {
		return failure(ModeSimulated, err)
	}
	return succeed(ModeSimulated, value)
}

// invokeReal picks exactly one calling convention: a cooperative backend
// is called inline on the caller's goroutine, a blocking one goes through
// the worker pool. Never both.
func invokeReal[T any](ctx context.Context, d *Dispatcher, op string, real func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	d.mu.RLock()
	nonBlocking := d.nonBlocking
	d.mu.RUnlock()

	if nonBlocking {
		return guard(op, func() (T, error) { return real(ctx) })
	}

	out, err := d.exec.Submit(ctx, op, func() (any, error) { return real(ctx) })
	if err != nil {
		var zero T
		return zero, err
	}
	value, ok := out.(T)
	if !ok && out != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: unexpected result type %T", common.ErrorInternal, op, out)
	}
	return value, nil
}

// guard converts a panic into an internal error so it ends up as a failed
// envelope instead of crossing the bridge boundary.
func guard[T any](op string, fn func() (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: panic: %v", common.ErrorInternal, op, r)
		}
	}()
	return fn()
}
