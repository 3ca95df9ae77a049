package store

import (
	"testing"

	"github.com/zorkosss/GameHub/internal/domain"
)

func sample() []domain.GameEntry {
	return []domain.GameEntry{
		{Name: "Portal", Source: domain.SourceSteam, LaunchID: "400", Favorite: true},
		{Name: "Apex", Source: domain.SourceEA, LaunchID: "1234", PlaytimeSeconds: 7200},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, err := New(t.TempDir(), "http://127.0.0.1:5000")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, ok := s.GetSnapshot(); ok {
		t.Fatal("fresh store should have no snapshot")
	}

	if err := s.SaveSnapshot(sample()); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}

	got, ok := s.GetSnapshot()
	if !ok {
		t.Fatal("snapshot missing after save")
	}
	if len(got) != 2 || got[0].Name != "Portal" || !got[0].Favorite || got[1].PlaytimeSeconds != 7200 {
		t.Errorf("snapshot = %+v", got)
	}

	if _, ok := s.SavedAt(); !ok {
		t.Error("SavedAt missing after save")
	}
}

func TestSnapshotReplacedWholesale(t *testing.T) {
	s, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if err := s.SaveSnapshot(sample()); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot([]domain.GameEntry{{Name: "Solo", Source: domain.SourceOther}}); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetSnapshot()
	if len(got) != 1 || got[0].Name != "Solo" {
		t.Errorf("snapshot = %+v, want only Solo", got)
	}
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := New("", "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if err := s.SaveSnapshot(sample()); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}
	if got, ok := s.GetSnapshot(); !ok || len(got) != 2 {
		t.Errorf("memory-only snapshot = %v ok=%v", got, ok)
	}
}

func TestInvalidateAll(t *testing.T) {
	s, err := New(t.TempDir(), "http://127.0.0.1:5000")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.SaveSnapshot(sample()); err != nil {
		t.Fatal(err)
	}
	s.InvalidateAll()

	if _, ok := s.GetSnapshot(); ok {
		t.Error("snapshot survived InvalidateAll")
	}
}
