package search

import (
	"testing"

	"github.com/zorkosss/GameHub/internal/domain"
)

func testEntries() []domain.GameEntry {
	return []domain.GameEntry{
		{Name: "Half-Life 2", Source: domain.SourceSteam},
		{Name: "Rocket League", Source: domain.SourceEpic},
		{Name: "Apex Legends", Source: domain.SourceEA},
		{Name: "Hades", Source: domain.SourceOther},
	}
}

func TestQueryMatchesSubsequence(t *testing.T) {
	s := NewService(nil)
	s.Rebuild(testEntries())

	results := s.Query("hlf")
	if len(results) == 0 {
		t.Fatal("expected at least one match for hlf")
	}
	if results[0].Entry.Name != "Half-Life 2" {
		t.Errorf("best match = %q, want Half-Life 2", results[0].Entry.Name)
	}
	if len(results[0].MatchedIndexes) != 3 {
		t.Errorf("matched indexes = %v, want 3 positions", results[0].MatchedIndexes)
	}
}

func TestQueryCaseInsensitive(t *testing.T) {
	s := NewService(nil)
	s.Rebuild(testEntries())

	if got := s.Query("HADES"); len(got) == 0 || got[0].Entry.Name != "Hades" {
		t.Fatalf("Query(HADES) = %v, want Hades first", got)
	}
}

func TestQueryEmptyAndNoIndex(t *testing.T) {
	s := NewService(nil)
	if got := s.Query("anything"); got != nil {
		t.Errorf("query before rebuild = %v, want nil", got)
	}
	s.Rebuild(testEntries())
	if got := s.Query("   "); got != nil {
		t.Errorf("blank query = %v, want nil", got)
	}
}

func TestQueryToleratesTypo(t *testing.T) {
	s := NewService(nil)
	s.Rebuild(testEntries())

	// A wrong trailing letter defeats subsequence matching; the
	// edit-distance fallback should still find the game.
	results := s.Query("hadez")
	if len(results) == 0 || results[0].Entry.Name != "Hades" {
		t.Fatalf("Query(hadez) = %v, want Hades first", results)
	}
	if len(results[0].MatchedIndexes) != 0 {
		t.Errorf("fallback result carries match positions: %v", results[0].MatchedIndexes)
	}

	if got := s.Query("zzzzz"); len(got) != 0 {
		t.Errorf("unrelated query matched: %v", got)
	}
}

func TestRebuildReplacesIndex(t *testing.T) {
	s := NewService(nil)
	s.Rebuild(testEntries())
	s.Rebuild([]domain.GameEntry{{Name: "Celeste", Source: domain.SourceSteam}})

	if got := s.Query("celeste"); len(got) != 1 {
		t.Fatalf("Query(celeste) after rebuild = %v, want one match", got)
	}
	if got := s.Query("half"); len(got) != 0 {
		t.Errorf("stale entry still matched: %v", got)
	}
}
