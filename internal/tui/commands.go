package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zorkosss/GameHub/internal/domain"
	"github.com/zorkosss/GameHub/internal/library"
)

// Command factories for async operations

// LoadCachedCmd restores the last persisted snapshot from the local store
func LoadCachedCmd(svc *library.Service) tea.Cmd {
	return func() tea.Msg {
		entries, savedAt, ok := svc.LoadCached()
		return CachedGamesMsg{Entries: entries, SavedAt: savedAt, OK: ok}
	}
}

// RefreshCmd fetches a fresh library snapshot from the backend
func RefreshCmd(svc *library.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		entries, err := svc.RefreshAll(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading library"}
		}
		return GamesLoadedMsg{Entries: entries}
	}
}

// TriggerScanCmd asks the backend to rescan its platform libraries
func TriggerScanCmd(svc *library.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.TriggerScan(ctx); err != nil {
			return ErrMsg{Err: err, Context: "starting scan"}
		}
		return ScanStartedMsg{}
	}
}

// SaveFieldsCmd persists a field update for one entry
func SaveFieldsCmd(svc *library.Service, key domain.Key, patch domain.FieldPatch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.UpdateFields(ctx, key, patch); err != nil {
			return ErrMsg{Err: err, Context: "saving " + key.Name}
		}
		return FieldsSavedMsg{Key: key, Patch: patch}
	}
}

// LaunchGameCmd asks the backend to launch the selected game
func LaunchGameCmd(svc *library.Service, entry domain.GameEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := svc.Launch(ctx, entry); err != nil {
			return ErrMsg{Err: err, Context: "launching " + entry.Name}
		}
		return LaunchedMsg{Name: entry.Name}
	}
}

// AddGameCmd registers a manually added game
func AddGameCmd(svc *library.Service, name, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.AddGame(ctx, name, path); err != nil {
			return ErrMsg{Err: err, Context: "adding " + name}
		}
		return GameAddedMsg{Name: name}
	}
}

// OpenFolderCmd reveals the entry's install folder on the backend host
func OpenFolderCmd(svc *library.Service, entry domain.GameEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.OpenInstallFolder(ctx, entry); err != nil {
			return ErrMsg{Err: err, Context: "opening folder for " + entry.Name}
		}
		return StatusMsg{Message: "Opened folder: " + entry.InstallPath}
	}
}

// RemoveGameCmd removes a manually added game
func RemoveGameCmd(svc *library.Service, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.RemoveManualGame(ctx, name); err != nil {
			return ErrMsg{Err: err, Context: "removing " + name}
		}
		return GameRemovedMsg{Name: name}
	}
}

// LoadSettingsCmd fetches backend settings
func LoadSettingsCmd(svc *library.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		settings, err := svc.Settings(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading settings"}
		}
		return SettingsLoadedMsg{Settings: settings}
	}
}

// SaveSettingsCmd persists backend settings
func SaveSettingsCmd(svc *library.Service, settings domain.Settings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.SaveSettings(ctx, settings); err != nil {
			return ErrMsg{Err: err, Context: "saving settings"}
		}
		return SettingsSavedMsg{}
	}
}

// CheckUpdatesCmd checks whether a newer launcher release exists
func CheckUpdatesCmd(svc *library.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		info, err := svc.CheckForUpdates(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "checking for updates"}
		}
		return UpdateCheckMsg{Info: info}
	}
}

// LoadStatsCmd polls backend host statistics
func LoadStatsCmd(svc *library.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		stats, err := svc.SystemStats(ctx)
		if err != nil {
			// Stats are decorative, retry next tick without surfacing
			return statsFailedMsg{}
		}
		return StatsMsg{Stats: stats}
	}
}

// WaitForEventCmd blocks on the push channel and delivers the next event.
// The handler re-arms this command after each delivery so events arrive
// one at a time, in order.
func WaitForEventCmd(events <-chan domain.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return EventStreamClosedMsg{}
		}
		return LibraryEventMsg{Event: ev}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// StatsTickCmd schedules the next stats poll
func StatsTickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return StatsTickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
