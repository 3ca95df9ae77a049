package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrBackendOffline indicates the backend is unreachable or returned
	// a non-success status. Transient: prior state is kept and the user
	// may retry via the refresh action.
	ErrBackendOffline = errors.New("backend is unreachable")

	// ErrEntryNotFound indicates the requested game entry does not exist
	ErrEntryNotFound = errors.New("game entry not found")

	// ErrNotLaunchable indicates no launch command can be built for the
	// entry's source. Must surface to the user, never sent to the backend.
	ErrNotLaunchable = errors.New("no launch command for this source")

	// ErrNoSelection indicates an entry action was invoked with nothing
	// selected. Callers treat this as a silent no-op.
	ErrNoSelection = errors.New("no entry selected")
)
