// Package common defines shared constants and sentinel errors used across
// the store, bridge, and console layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound   = errors.New("not found")
	ErrorValidation = errors.New("validation error")

	// Dispatcher-level error. A failed, missing, or timed-out real backend
	// call is always recovered by falling back to the simulated store, so
	// this value never reaches an envelope directly.
	ErrorBackendUnavailable = errors.New("backend unavailable")

	// Disk read/write failures. Persistence is best-effort: the in-memory
	// operation still succeeds and the error is only logged.
	ErrorPersistence = errors.New("persistence error")

	// Unexpected failures converted to a failed envelope at the bridge
	// boundary instead of propagating to the caller.
	ErrorInternal = errors.New("internal error")
)
