package library

import (
	"reflect"
	"testing"

	"github.com/zorkosss/GameHub/internal/domain"
)

func entry(name string, source domain.Source) domain.GameEntry {
	return domain.GameEntry{Name: name, Source: source, LaunchID: "id-" + name}
}

func names(entries []domain.GameEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestVisibleSetDeterministic(t *testing.T) {
	v := NewView()
	v.ReplaceAll([]domain.GameEntry{
		entry("Zelda", domain.SourceOther),
		entry("Apex", domain.SourceEA),
		entry("mario", domain.SourceOther),
	})

	first := v.VisibleSet()
	second := v.VisibleSet()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("VisibleSet not deterministic:\n%v\n%v", first, second)
	}
}

func TestVisibleSetSortLocaleAware(t *testing.T) {
	v := NewView()
	v.ReplaceAll([]domain.GameEntry{
		entry("Zelda", domain.SourceOther),
		entry("Apex", domain.SourceEA),
		entry("mario", domain.SourceOther),
	})

	got := names(v.VisibleSet())
	want := []string{"Apex", "mario", "Zelda"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("visible order = %v, want %v", got, want)
	}
}

func TestHiddenIsExclusive(t *testing.T) {
	hidden := entry("Secret", domain.SourceSteam)
	hidden.Hidden = true
	hidden.Favorite = true

	v := NewView()
	v.ReplaceAll([]domain.GameEntry{hidden, entry("Public", domain.SourceSteam)})

	for _, f := range []Filter{
		{Kind: FilterAll},
		{Kind: FilterFavorites},
		{Kind: FilterSource, Source: domain.SourceSteam},
	} {
		v.SetFilter(f)
		for _, e := range v.VisibleSet() {
			if e.Hidden {
				t.Errorf("hidden entry visible under %s", f.Label())
			}
		}
	}

	v.SetFilter(Filter{Kind: FilterHidden})
	got := names(v.VisibleSet())
	if !reflect.DeepEqual(got, []string{"Secret"}) {
		t.Errorf("Hidden filter shows %v, want [Secret]", got)
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	v := NewView()
	v.ReplaceAll([]domain.GameEntry{
		entry("Half-Life", domain.SourceSteam),
		entry("Halo", domain.SourceSteam),
		entry("Portal", domain.SourceSteam),
	})

	v.SetSearch("hAl")
	got := names(v.VisibleSet())
	want := []string{"Half-Life", "Halo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("search result = %v, want %v", got, want)
	}

	// Empty search matches everything.
	v.SetSearch("")
	if len(v.VisibleSet()) != 3 {
		t.Errorf("empty search hides entries: %v", names(v.VisibleSet()))
	}
}

func TestFilterMenuDerivation(t *testing.T) {
	v := NewView()
	v.ReplaceAll([]domain.GameEntry{
		entry("A", domain.SourceEpic),
		entry("B", domain.SourceSteam),
		entry("C", domain.SourceEpic),
	})

	var labels []string
	for _, f := range v.FilterMenu() {
		labels = append(labels, f.Label())
	}
	// Sources keep first-seen order between the fixed menu ends.
	want := []string{"All", "Favorites", "Epic Games", "Steam", "Hidden"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("menu = %v, want %v", labels, want)
	}
}

func TestActiveFilterPreservedAcrossSnapshot(t *testing.T) {
	v := NewView()
	v.ReplaceAll([]domain.GameEntry{entry("A", domain.SourceSteam)})
	v.SetFilter(Filter{Kind: FilterSource, Source: domain.SourceSteam})

	// Source still present: filter survives.
	v.ReplaceAll([]domain.GameEntry{entry("B", domain.SourceSteam)})
	if v.ActiveFilter() != (Filter{Kind: FilterSource, Source: domain.SourceSteam}) {
		t.Errorf("filter not preserved: %+v", v.ActiveFilter())
	}

	// Source gone: fall back to All.
	v.ReplaceAll([]domain.GameEntry{entry("C", domain.SourceEpic)})
	if v.ActiveFilter() != (Filter{Kind: FilterAll}) {
		t.Errorf("filter = %+v, want All", v.ActiveFilter())
	}
}

func TestApplyPartialUpdateUnknownKeyIsNoop(t *testing.T) {
	v := NewView()
	v.ReplaceAll([]domain.GameEntry{entry("A", domain.SourceSteam)})

	fav := true
	applied := v.ApplyPartialUpdate(
		domain.Key{Name: "Ghost", Source: domain.SourceSteam},
		domain.FieldPatch{Favorite: &fav},
	)
	if applied {
		t.Error("patch for unknown key reported as applied")
	}
	if v.Len() != 1 {
		t.Errorf("entry count = %d, want 1 (no insert)", v.Len())
	}
}

func TestPartialUpdateReflectsInSelection(t *testing.T) {
	v := NewView()
	a := entry("A", domain.SourceSteam)
	v.ReplaceAll([]domain.GameEntry{a})

	if sel, ok := v.Selected(); !ok || sel.Favorite {
		t.Fatalf("precondition: selected A unfavorited, got %+v ok=%v", sel, ok)
	}

	fav := true
	if !v.ApplyPartialUpdate(a.Key(), domain.FieldPatch{Favorite: &fav}) {
		t.Fatal("patch not applied")
	}

	// The detail view re-derives from the patched object, no snapshot needed.
	sel, ok := v.Selected()
	if !ok || !sel.Favorite {
		t.Errorf("selected entry = %+v ok=%v, want favorite=true", sel, ok)
	}
}

func TestSelectionPreservation(t *testing.T) {
	v := NewView()
	v.ReplaceAll([]domain.GameEntry{
		entry("Banjo", domain.SourceSteam),
		entry("Apex", domain.SourceEA),
	})

	// First in sort order is selected initially.
	if sel, _ := v.Selected(); sel.Name != "Apex" {
		t.Errorf("initial selection = %q, want Apex", sel.Name)
	}

	v.Select(domain.Key{Name: "Banjo", Source: domain.SourceSteam})

	// Selected entry filtered out: selection moves to first visible.
	v.SetFilter(Filter{Kind: FilterSource, Source: domain.SourceEA})
	if sel, _ := v.Selected(); sel.Name != "Apex" {
		t.Errorf("selection after filter = %q, want Apex", sel.Name)
	}

	// Empty visible set: selection cleared.
	v.SetSearch("zzz")
	if _, ok := v.Selected(); ok {
		t.Error("selection should be cleared for empty visible set")
	}

	// Entries reappear: first visible selected again.
	v.SetSearch("")
	if _, ok := v.Selected(); !ok {
		t.Error("selection should return when entries reappear")
	}
}

func TestScenarioFavoriteFlow(t *testing.T) {
	a := entry("Alpha", domain.SourceSteam)
	b := entry("Beta", domain.SourceSteam)
	c := entry("Gamma", domain.SourceSteam)

	v := NewView()
	v.ReplaceAll([]domain.GameEntry{c, a, b})

	// Selected becomes the first entry in sorted order.
	if sel, _ := v.Selected(); sel.Name != "Alpha" {
		t.Fatalf("selected = %q, want Alpha", sel.Name)
	}

	fav := true
	v.ApplyPartialUpdate(b.Key(), domain.FieldPatch{Favorite: &fav})

	v.SetFilter(Filter{Kind: FilterFavorites})
	got := names(v.VisibleSet())
	if !reflect.DeepEqual(got, []string{"Beta"}) {
		t.Fatalf("favorites = %v, want [Beta]", got)
	}
	if sel, _ := v.Selected(); sel.Name != "Beta" {
		t.Errorf("selected = %q, want Beta", sel.Name)
	}
}

func TestEmptySnapshotValid(t *testing.T) {
	v := NewView()
	v.ReplaceAll([]domain.GameEntry{entry("A", domain.SourceSteam)})
	v.ReplaceAll(nil)

	if len(v.VisibleSet()) != 0 {
		t.Error("empty snapshot should yield empty visible set")
	}
	if _, ok := v.Selected(); ok {
		t.Error("empty snapshot should clear selection")
	}
	// Menu collapses to the fixed ends.
	if len(v.FilterMenu()) != 3 {
		t.Errorf("menu = %v, want All/Favorites/Hidden", v.FilterMenu())
	}
}
