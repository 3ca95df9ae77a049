package domain

import "context"

// EventType identifies a push event from the backend.
type EventType string

const (
	// EventFileSystemChanged: a watched library file changed on the
	// backend host. The client responds by triggering a scan.
	EventFileSystemChanged EventType = "library_updated"

	// EventScanFinished: a library scan completed. The client responds
	// by fetching a fresh snapshot.
	EventScanFinished EventType = "scan_complete"

	// EventGameFieldsChanged: a single entry's mutable fields changed.
	// Carries the full entry; applied as a patch by identity key.
	EventGameFieldsChanged EventType = "game_updated"
)

// Event is one push notification from the backend.
type Event struct {
	Type    EventType
	Entry   *GameEntry // Set for EventGameFieldsChanged
	Message string     // Optional human-readable detail
}

// EventSource is an abstract push-event subscription. Implementations
// own the transport; consumers only see the ordered event channel.
type EventSource interface {
	// Events returns the channel push events are delivered on, in
	// arrival order. Closed when Run returns.
	Events() <-chan Event

	// Run connects and pumps events until ctx is cancelled. Reconnects
	// on transient failures.
	Run(ctx context.Context) error
}
