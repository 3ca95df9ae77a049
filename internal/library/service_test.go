package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zorkosss/GameHub/internal/domain"
)

// fakeClient records calls and returns canned responses.
type fakeClient struct {
	games     []domain.GameEntry
	fetchErr  error
	updateErr error

	scanCalls   int
	launched    []string
	updatedKeys []domain.Key
	removed     []string
	openedPaths []string
}

func (f *fakeClient) FetchAllGames(ctx context.Context) ([]domain.GameEntry, error) {
	return f.games, f.fetchErr
}

func (f *fakeClient) TriggerScan(ctx context.Context) error {
	f.scanCalls++
	return nil
}

func (f *fakeClient) UpdateGameFields(ctx context.Context, key domain.Key, patch domain.FieldPatch) error {
	f.updatedKeys = append(f.updatedKeys, key)
	return f.updateErr
}

func (f *fakeClient) LaunchGame(ctx context.Context, command string, key domain.Key, installPath string) error {
	f.launched = append(f.launched, command)
	return nil
}

func (f *fakeClient) AddGame(ctx context.Context, name, path string) error { return nil }

func (f *fakeClient) OpenFolder(ctx context.Context, path string) error {
	f.openedPaths = append(f.openedPaths, path)
	return nil
}

func (f *fakeClient) RemoveManualGame(ctx context.Context, name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func (f *fakeClient) GetSettings(ctx context.Context) (domain.Settings, error) {
	return domain.Settings{}, nil
}

func (f *fakeClient) SaveSettings(ctx context.Context, settings domain.Settings) error { return nil }

func (f *fakeClient) CheckForUpdates(ctx context.Context) (domain.UpdateInfo, error) {
	return domain.UpdateInfo{}, nil
}

func (f *fakeClient) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	return domain.SystemStats{}, nil
}

// fakeStore is an in-memory domain.Store.
type fakeStore struct {
	snapshot []domain.GameEntry
	savedAt  time.Time
	saved    int
	has      bool
}

func (f *fakeStore) GetSnapshot() ([]domain.GameEntry, bool) { return f.snapshot, f.has }

func (f *fakeStore) SaveSnapshot(entries []domain.GameEntry) error {
	f.snapshot = entries
	f.savedAt = time.Now()
	f.has = true
	f.saved++
	return nil
}

func (f *fakeStore) SavedAt() (time.Time, bool) { return f.savedAt, !f.savedAt.IsZero() }

func (f *fakeStore) InvalidateAll() { f.snapshot, f.has = nil, false }
func (f *fakeStore) Close() error   { return nil }

func TestRefreshAllPersistsSnapshot(t *testing.T) {
	client := &fakeClient{games: []domain.GameEntry{
		{Name: "Portal", Source: domain.SourceSteam, LaunchID: "400"},
	}}
	store := &fakeStore{}
	svc := NewService(client, store, nil)

	entries, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll() error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Portal" {
		t.Errorf("entries = %v", entries)
	}
	if store.saved != 1 {
		t.Errorf("snapshot saved %d times, want 1", store.saved)
	}
}

func TestRefreshAllFailureKeepsPriorState(t *testing.T) {
	client := &fakeClient{fetchErr: domain.ErrBackendOffline}
	store := &fakeStore{snapshot: []domain.GameEntry{{Name: "Old", Source: domain.SourceSteam}}, has: true}
	svc := NewService(client, store, nil)

	if _, err := svc.RefreshAll(context.Background()); !errors.Is(err, domain.ErrBackendOffline) {
		t.Fatalf("error = %v, want ErrBackendOffline", err)
	}

	// Prior snapshot untouched: the user can keep browsing and retry.
	cached, _, ok := svc.LoadCached()
	if !ok || len(cached) != 1 || cached[0].Name != "Old" {
		t.Errorf("cached = %v ok=%v, want prior snapshot intact", cached, ok)
	}
}

func TestUpdateFieldsReportsBackendFailure(t *testing.T) {
	client := &fakeClient{updateErr: domain.ErrBackendOffline}
	svc := NewService(client, &fakeStore{}, nil)

	fav := true
	key := domain.Key{Name: "Portal", Source: domain.SourceSteam}
	err := svc.UpdateFields(context.Background(), key, domain.FieldPatch{Favorite: &fav})
	if !errors.Is(err, domain.ErrBackendOffline) {
		t.Errorf("error = %v, want ErrBackendOffline", err)
	}
	if len(client.updatedKeys) != 1 || client.updatedKeys[0] != key {
		t.Errorf("updated keys = %v", client.updatedKeys)
	}
}

func TestUpdateFieldsEmptyPatchSkipsRequest(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, &fakeStore{}, nil)

	if err := svc.UpdateFields(context.Background(), domain.Key{Name: "X"}, domain.FieldPatch{}); err != nil {
		t.Fatalf("empty patch error: %v", err)
	}
	if len(client.updatedKeys) != 0 {
		t.Error("empty patch should not hit the backend")
	}
}

func TestLaunchResolvesCommand(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, &fakeStore{}, nil)

	cmd, err := svc.Launch(context.Background(), domain.GameEntry{
		Name: "Apex", Source: domain.SourceEA, LaunchID: "1234",
	})
	if err != nil {
		t.Fatalf("Launch() error: %v", err)
	}
	if cmd != "origin://launchgame/1234" {
		t.Errorf("command = %q", cmd)
	}
	if len(client.launched) != 1 {
		t.Errorf("launch calls = %d, want 1", len(client.launched))
	}
}

func TestLaunchUnknownSource(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, &fakeStore{}, nil)

	_, err := svc.Launch(context.Background(), domain.GameEntry{Name: "Mystery", Source: "Itch"})
	if !errors.Is(err, domain.ErrNotLaunchable) {
		t.Fatalf("error = %v, want ErrNotLaunchable", err)
	}
	// No request may reach the backend for an unresolvable command.
	if len(client.launched) != 0 {
		t.Error("unresolvable command was sent to the backend")
	}
}

func TestOpenInstallFolder(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, &fakeStore{}, nil)

	err := svc.OpenInstallFolder(context.Background(), domain.GameEntry{
		Name: "Doom", Source: domain.SourceOther, InstallPath: `D:\Games\Doom`,
	})
	if err != nil {
		t.Fatalf("OpenInstallFolder() error: %v", err)
	}
	if len(client.openedPaths) != 1 || client.openedPaths[0] != `D:\Games\Doom` {
		t.Errorf("opened paths = %v", client.openedPaths)
	}
}

func TestTriggerScan(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, &fakeStore{}, nil)

	if err := svc.TriggerScan(context.Background()); err != nil {
		t.Fatalf("TriggerScan() error: %v", err)
	}
	if client.scanCalls != 1 {
		t.Errorf("scan calls = %d, want 1", client.scanCalls)
	}
}
