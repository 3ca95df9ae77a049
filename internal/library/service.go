package library

import (
	"context"
	"log/slog"
	"time"

	"github.com/zorkosss/GameHub/internal/domain"
)

// Service orchestrates backend client + local store operations.
// It owns no view state; the View is patched by the caller from the
// values the service returns.
type Service struct {
	client domain.LibraryClient
	store  domain.Store
	logger *slog.Logger
}

// NewService creates a new library service.
func NewService(client domain.LibraryClient, store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, store: store, logger: logger}
}

// LoadCached returns the last persisted snapshot and its save time, if
// any, so the UI can paint before the first refresh lands.
func (s *Service) LoadCached() ([]domain.GameEntry, time.Time, bool) {
	entries, ok := s.store.GetSnapshot()
	if !ok {
		return nil, time.Time{}, false
	}
	savedAt, _ := s.store.SavedAt()
	s.logger.Debug("loaded cached snapshot", "count", len(entries), "saved_at", savedAt)
	return entries, savedAt, true
}

// RefreshAll fetches a full snapshot from the backend and persists it.
// A persist failure is logged, never propagated: the store is cache.
func (s *Service) RefreshAll(ctx context.Context) ([]domain.GameEntry, error) {
	entries, err := s.client.FetchAllGames(ctx)
	if err != nil {
		s.logger.Error("failed to fetch games", "error", err)
		return nil, err
	}
	if err := s.store.SaveSnapshot(entries); err != nil {
		s.logger.Error("failed to persist snapshot", "error", err)
	}
	s.logger.Info("refreshed library", "count", len(entries))
	return entries, nil
}

// TriggerScan asks the backend to rescan. Completion arrives later as
// a scan-finished push event.
func (s *Service) TriggerScan(ctx context.Context) error {
	if err := s.client.TriggerScan(ctx); err != nil {
		s.logger.Error("failed to trigger scan", "error", err)
		return err
	}
	s.logger.Debug("scan triggered")
	return nil
}

// UpdateFields persists a partial update for one entry. The caller
// applies the same patch to the view model optimistically; a failed
// POST leaves the local state as-is and surfaces a transient error.
func (s *Service) UpdateFields(ctx context.Context, key domain.Key, patch domain.FieldPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if err := s.client.UpdateGameFields(ctx, key, patch); err != nil {
		s.logger.Error("failed to update game fields", "error", err, "game", key.String())
		return err
	}
	s.logger.Debug("updated game fields", "game", key.String())
	return nil
}

// Launch resolves the entry's launch command and hands it to the
// backend. Entries with an unknown source return ErrNotLaunchable and
// no request is issued.
func (s *Service) Launch(ctx context.Context, entry domain.GameEntry) (string, error) {
	command, ok := entry.LaunchCommand()
	if !ok {
		s.logger.Warn("entry not launchable", "game", entry.Key().String(), "source", entry.Source)
		return "", domain.ErrNotLaunchable
	}
	if err := s.client.LaunchGame(ctx, command, entry.Key(), entry.InstallPath); err != nil {
		s.logger.Error("failed to launch game", "error", err, "game", entry.Key().String())
		return command, err
	}
	s.logger.Info("launch requested", "game", entry.Key().String(), "command", command)
	return command, nil
}

// AddGame registers a manual executable with the backend. The entry
// shows up after the backend's next scan.
func (s *Service) AddGame(ctx context.Context, name, path string) error {
	name = domain.NormalizeName(name)
	if err := s.client.AddGame(ctx, name, path); err != nil {
		s.logger.Error("failed to add game", "error", err, "name", name)
		return err
	}
	s.logger.Info("manual game added", "name", name, "path", path)
	return nil
}

// RemoveManualGame unregisters a manually added game. The caller drops
// the matching "Other Games" entry from the view on success.
func (s *Service) RemoveManualGame(ctx context.Context, name string) error {
	if err := s.client.RemoveManualGame(ctx, name); err != nil {
		s.logger.Error("failed to remove manual game", "error", err, "name", name)
		return err
	}
	s.logger.Info("manual game removed", "name", name)
	return nil
}

// OpenInstallFolder asks the backend host to reveal the entry's
// install location in its file manager.
func (s *Service) OpenInstallFolder(ctx context.Context, entry domain.GameEntry) error {
	if err := s.client.OpenFolder(ctx, entry.InstallPath); err != nil {
		s.logger.Error("failed to open folder", "error", err, "game", entry.Key().String())
		return err
	}
	s.logger.Debug("folder opened", "game", entry.Key().String(), "path", entry.InstallPath)
	return nil
}

// PersistLocal updates the stored snapshot after local patches so a
// restart paints current state. Errors are logged only.
func (s *Service) PersistLocal(entries []domain.GameEntry) {
	if err := s.store.SaveSnapshot(entries); err != nil {
		s.logger.Error("failed to persist snapshot", "error", err)
	}
}

// Settings round-trips the backend scan settings.
func (s *Service) Settings(ctx context.Context) (domain.Settings, error) {
	settings, err := s.client.GetSettings(ctx)
	if err != nil {
		s.logger.Error("failed to fetch settings", "error", err)
	}
	return settings, err
}

// SaveSettings persists backend scan settings.
func (s *Service) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if err := s.client.SaveSettings(ctx, settings); err != nil {
		s.logger.Error("failed to save settings", "error", err)
		return err
	}
	return nil
}

// CheckForUpdates asks the backend whether a newer release exists.
func (s *Service) CheckForUpdates(ctx context.Context) (domain.UpdateInfo, error) {
	info, err := s.client.CheckForUpdates(ctx)
	if err != nil {
		s.logger.Warn("update check failed", "error", err)
	}
	return info, err
}

// SystemStats samples the backend host's load figures.
func (s *Service) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	return s.client.SystemStats(ctx)
}

// InvalidateCache drops the local snapshot cache.
func (s *Service) InvalidateCache() {
	s.store.InvalidateAll()
	s.logger.Info("invalidated local cache")
}
