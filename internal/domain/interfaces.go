package domain

import (
	"context"
	"time"
)

// LibraryClient is the backend REST API surface the client consumes.
// All calls are request/response; completion of long-running work
// (scans) is signaled separately through the EventSource.
type LibraryClient interface {
	// FetchAllGames returns a full snapshot of the library.
	FetchAllGames(ctx context.Context) ([]GameEntry, error)

	// TriggerScan asks the backend to rescan. Fire-and-forget:
	// completion arrives later as EventScanFinished.
	TriggerScan(ctx context.Context) error

	// UpdateGameFields persists a partial update for one entry.
	UpdateGameFields(ctx context.Context, key Key, patch FieldPatch) error

	// LaunchGame asks the backend to launch the given command.
	// Fire-and-forget: the call returns once the request is accepted.
	LaunchGame(ctx context.Context, command string, key Key, installPath string) error

	// AddGame registers a manual game by executable path.
	AddGame(ctx context.Context, name, path string) error

	// RemoveManualGame unregisters a manually added game.
	RemoveManualGame(ctx context.Context, name string) error

	// OpenFolder asks the backend host to reveal the path in its file
	// manager.
	OpenFolder(ctx context.Context, path string) error

	// GetSettings and SaveSettings round-trip backend settings.
	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) error

	// CheckForUpdates asks the backend whether a newer release exists.
	CheckForUpdates(ctx context.Context) (UpdateInfo, error)

	// SystemStats returns the backend host's current load figures.
	SystemStats(ctx context.Context) (SystemStats, error)
}

// Settings are the backend-side scan settings.
type Settings struct {
	SteamGridDBAPIKey string   `json:"steamgriddb_api_key"`
	ScanPaths         []string `json:"scan_paths"`
}

// UpdateInfo describes an available backend release.
type UpdateInfo struct {
	Available bool   `json:"update_available"`
	Version   string `json:"version,omitempty"`
	URL       string `json:"url,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// SystemStats is a point-in-time load sample from the backend host.
type SystemStats struct {
	CPU  float64 `json:"cpu"`  // Percent
	RAM  float64 `json:"ram"`  // Percent
	Ping string  `json:"ping"` // Milliseconds, or "Err"
}

// Store persists the last known library snapshot locally so the UI can
// paint immediately at startup. The backend stays authoritative; the
// store is disposable cache, never a source of truth.
type Store interface {
	// GetSnapshot returns the persisted entry list, if any.
	GetSnapshot() ([]GameEntry, bool)

	// SaveSnapshot replaces the persisted entry list wholesale.
	SaveSnapshot(entries []GameEntry) error

	// SavedAt returns when the snapshot was last persisted.
	SavedAt() (time.Time, bool)

	// InvalidateAll drops everything cached.
	InvalidateAll()

	Close() error
}
