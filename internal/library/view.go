package library

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/zorkosss/GameHub/internal/domain"
)

// FilterKind distinguishes the category filters in the sidebar menu.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterFavorites
	FilterSource
	FilterHidden
)

// Filter is one entry of the category filter menu. Source is only set
// for FilterSource.
type Filter struct {
	Kind   FilterKind
	Source domain.Source
}

// Label returns the menu display name for the filter.
func (f Filter) Label() string {
	switch f.Kind {
	case FilterAll:
		return "All"
	case FilterFavorites:
		return "Favorites"
	case FilterHidden:
		return "Hidden"
	default:
		return string(f.Source)
	}
}

// ViewMode selects how the visible set is rendered.
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

// View is the library view model: the in-memory entry list plus the
// current filter/search/selection state, reconciled against backend
// snapshots and push patches. All methods run on the UI event loop;
// every state transition completes before the next message is handled.
type View struct {
	entries  []domain.GameEntry
	menu     []Filter
	filter   Filter
	search   string
	mode     ViewMode
	selected *domain.Key

	collator *collate.Collator
}

// NewView creates an empty view model showing the All filter.
func NewView() *View {
	return &View{
		menu:     []Filter{{Kind: FilterAll}, {Kind: FilterFavorites}, {Kind: FilterHidden}},
		filter:   Filter{Kind: FilterAll},
		collator: collate.New(language.Und, collate.Loose),
	}
}

// ReplaceAll discards the current entries and installs a fresh backend
// snapshot. The filter menu is re-derived; the active filter survives
// if it still exists in the new menu, otherwise it falls back to All.
// An empty snapshot is valid and yields an empty-state view.
func (v *View) ReplaceAll(entries []domain.GameEntry) {
	v.entries = make([]domain.GameEntry, len(entries))
	copy(v.entries, entries)

	v.menu = deriveMenu(v.entries)
	if !menuContains(v.menu, v.filter) {
		v.filter = Filter{Kind: FilterAll}
	}

	v.preserveSelection()
}

// ApplyPartialUpdate merges a patch into the entry identified by key.
// Unknown keys are dropped: partial updates only amend known entries,
// the next snapshot re-syncs anything that raced ahead of it. Returns
// whether the patch landed.
func (v *View) ApplyPartialUpdate(key domain.Key, patch domain.FieldPatch) bool {
	for i := range v.entries {
		if v.entries[i].Key() == key {
			patch.Apply(&v.entries[i])
			v.preserveSelection()
			return true
		}
	}
	return false
}

// VisibleSet returns the entries surviving the category filter and the
// search text, in display order. Pure: same state, same output, and the
// view is never mutated.
func (v *View) VisibleSet() []domain.GameEntry {
	visible := make([]domain.GameEntry, 0, len(v.entries))
	needle := strings.ToLower(v.search)

	for _, e := range v.entries {
		if !v.filter.Matches(e) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(e.Name), needle) {
			continue
		}
		visible = append(visible, e)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if c := v.collator.CompareString(visible[i].Name, visible[j].Name); c != 0 {
			return c < 0
		}
		return visible[i].Source < visible[j].Source
	})

	return visible
}

// Matches implements the category filter. Hidden entries only ever
// appear under the Hidden filter.
func (f Filter) Matches(e domain.GameEntry) bool {
	switch f.Kind {
	case FilterAll:
		return !e.Hidden
	case FilterFavorites:
		return e.Favorite && !e.Hidden
	case FilterHidden:
		return e.Hidden
	default:
		return e.Source == f.Source && !e.Hidden
	}
}

// FilterMenu returns the derived category menu:
// All, Favorites, sources in first-seen order, Hidden.
func (v *View) FilterMenu() []Filter {
	return v.menu
}

// ActiveFilter returns the currently selected category filter.
func (v *View) ActiveFilter() Filter { return v.filter }

// SetFilter switches the category filter and re-runs selection
// preservation against the new visible set.
func (v *View) SetFilter(f Filter) {
	v.filter = f
	v.preserveSelection()
}

// SearchText returns the current search input.
func (v *View) SearchText() string { return v.search }

// SetSearch updates the search text and re-runs selection preservation.
func (v *View) SetSearch(text string) {
	v.search = text
	v.preserveSelection()
}

// Mode returns the current view mode.
func (v *View) Mode() ViewMode { return v.mode }

// SetMode switches between grid and list rendering.
func (v *View) SetMode(m ViewMode) { v.mode = m }

// ToggleMode flips between grid and list rendering.
func (v *View) ToggleMode() {
	if v.mode == ViewGrid {
		v.mode = ViewList
	} else {
		v.mode = ViewGrid
	}
}

// Selected re-derives the selected entry from the entry list, so the
// detail panel always reflects the latest patched object rather than a
// stale copy. Returns false when nothing is selected.
func (v *View) Selected() (domain.GameEntry, bool) {
	if v.selected == nil {
		return domain.GameEntry{}, false
	}
	for _, e := range v.entries {
		if e.Key() == *v.selected {
			return e, true
		}
	}
	return domain.GameEntry{}, false
}

// SelectedKey returns the identity of the selected entry, if any.
func (v *View) SelectedKey() (domain.Key, bool) {
	if v.selected == nil {
		return domain.Key{}, false
	}
	return *v.selected, true
}

// Select moves the selection to the given key.
func (v *View) Select(key domain.Key) {
	k := key
	v.selected = &k
}

// SelectIndex selects the i-th entry of the visible set. Out-of-range
// indexes clear the selection.
func (v *View) SelectIndex(i int) {
	visible := v.VisibleSet()
	if i < 0 || i >= len(visible) {
		v.selected = nil
		return
	}
	v.Select(visible[i].Key())
}

// SelectedIndex returns the selected entry's position in the visible
// set, or -1.
func (v *View) SelectedIndex() int {
	if v.selected == nil {
		return -1
	}
	for i, e := range v.VisibleSet() {
		if e.Key() == *v.selected {
			return i
		}
	}
	return -1
}

// MoveSelection moves the selection by delta within the visible set,
// clamped at the ends.
func (v *View) MoveSelection(delta int) {
	visible := v.VisibleSet()
	if len(visible) == 0 {
		v.selected = nil
		return
	}

	idx := -1
	if v.selected != nil {
		for i, e := range visible {
			if e.Key() == *v.selected {
				idx = i
				break
			}
		}
	}

	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	v.Select(visible[idx].Key())
}

// Entries returns the full entry list in snapshot order.
func (v *View) Entries() []domain.GameEntry { return v.entries }

// Len returns the number of entries, visible or not.
func (v *View) Len() int { return len(v.entries) }

// preserveSelection re-validates the selection against the visible set:
// keep it if still present, else select the first visible entry, else
// clear it so the detail panel shows an explicit no-selection state.
func (v *View) preserveSelection() {
	visible := v.VisibleSet()

	if v.selected != nil {
		for _, e := range visible {
			if e.Key() == *v.selected {
				return
			}
		}
	}

	if len(visible) > 0 {
		v.Select(visible[0].Key())
		return
	}
	v.selected = nil
}

// deriveMenu builds the filter menu for a snapshot: All, Favorites,
// the distinct sources in first-seen order, then Hidden.
func deriveMenu(entries []domain.GameEntry) []Filter {
	menu := []Filter{{Kind: FilterAll}, {Kind: FilterFavorites}}

	seen := make(map[domain.Source]bool)
	for _, e := range entries {
		if seen[e.Source] {
			continue
		}
		seen[e.Source] = true
		menu = append(menu, Filter{Kind: FilterSource, Source: e.Source})
	}

	return append(menu, Filter{Kind: FilterHidden})
}

func menuContains(menu []Filter, f Filter) bool {
	for _, m := range menu {
		if m == f {
			return true
		}
	}
	return false
}
