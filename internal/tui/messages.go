package tui

import (
	"time"

	"github.com/zorkosss/GameHub/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CachedGamesMsg carries the snapshot restored from the local store
type CachedGamesMsg struct {
	Entries []domain.GameEntry
	SavedAt time.Time
	OK      bool
}

// GamesLoadedMsg signals that a fresh library snapshot was fetched
type GamesLoadedMsg struct {
	Entries []domain.GameEntry
}

// ScanStartedMsg signals that the backend accepted a rescan request
type ScanStartedMsg struct{}

// LibraryEventMsg wraps a push event from the backend
type LibraryEventMsg struct {
	Event domain.Event
}

// EventStreamClosedMsg signals that the push channel shut down
type EventStreamClosedMsg struct{}

// FieldsSavedMsg acknowledges a persisted field update
type FieldsSavedMsg struct {
	Key   domain.Key
	Patch domain.FieldPatch
}

// LaunchedMsg signals that a game launch was dispatched
type LaunchedMsg struct {
	Name string
}

// GameAddedMsg signals that a manual game was registered
type GameAddedMsg struct {
	Name string
}

// GameRemovedMsg signals that a manual game was removed
type GameRemovedMsg struct {
	Name string
}

// SettingsLoadedMsg carries backend settings for the settings modal
type SettingsLoadedMsg struct {
	Settings domain.Settings
}

// SettingsSavedMsg acknowledges a settings save
type SettingsSavedMsg struct{}

// UpdateCheckMsg carries the result of a launcher update check
type UpdateCheckMsg struct {
	Info domain.UpdateInfo
}

// StatsMsg carries backend host statistics for the footer
type StatsMsg struct {
	Stats domain.SystemStats
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// StatsTickMsg triggers a periodic stats poll
type StatsTickMsg struct{}

// statsFailedMsg keeps the poll loop alive after a failed sample
type statsFailedMsg struct{}
