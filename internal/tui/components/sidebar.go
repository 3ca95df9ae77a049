package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zorkosss/GameHub/internal/library"
	"github.com/zorkosss/GameHub/internal/tui/styles"
)

// FilterMenuItem implements list.Item for category filters
type FilterMenuItem struct {
	Filter library.Filter
	Count  int
}

func (i FilterMenuItem) FilterValue() string { return i.Filter.Label() }

func (i FilterMenuItem) Title() string {
	if i.Count > 0 {
		return fmt.Sprintf("%s (%d)", i.Filter.Label(), i.Count)
	}
	return i.Filter.Label()
}

func (i FilterMenuItem) Description() string { return "" }

// Border overhead for the sidebar panel
const BorderSize = 2

// Sidebar is the category filter sidebar component
type Sidebar struct {
	list    list.Model
	focused bool
	width   int
	height  int
	filters []library.Filter
	counts  map[string]int
}

// NewSidebar creates a new sidebar component
func NewSidebar() Sidebar {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.White).
		Background(styles.SlateLight).
		Padding(0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(styles.LightGray).
		Padding(0, 1)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Library"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(styles.SteamBlue).
		Bold(true).
		Padding(0, 1)

	return Sidebar{
		list:   l,
		counts: make(map[string]int),
	}
}

// SetFilters updates the filter menu entries
func (s *Sidebar) SetFilters(filters []library.Filter) {
	s.filters = filters
	s.refreshItems()
}

// SetCounts updates per-filter entry counts
func (s *Sidebar) SetCounts(counts map[string]int) {
	s.counts = counts
	s.refreshItems()
}

// refreshItems rebuilds the list items with current state
func (s *Sidebar) refreshItems() {
	items := make([]list.Item, len(s.filters))
	for i, f := range s.filters {
		items[i] = FilterMenuItem{
			Filter: f,
			Count:  s.counts[f.Label()],
		}
	}
	s.list.SetItems(items)
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(width-BorderSize, height-BorderSize)
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s Sidebar) IsFocused() bool {
	return s.focused
}

// SelectedFilter returns the currently highlighted filter
func (s Sidebar) SelectedFilter() *library.Filter {
	item := s.list.SelectedItem()
	if item == nil {
		return nil
	}
	fi := item.(FilterMenuItem)
	return &fi.Filter
}

// SelectedIndex returns the selected index
func (s Sidebar) SelectedIndex() int {
	return s.list.Index()
}

// SetSelectedIndex sets the selected index
func (s *Sidebar) SetSelectedIndex(index int) {
	s.list.Select(index)
}

// Update handles messages
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			s.list.CursorDown()
		case "k", "up":
			s.list.CursorUp()
		case "g":
			s.list.Select(0)
		case "G":
			s.list.Select(len(s.list.Items()) - 1)
		}
	}

	return s, nil
}

// View renders the component
func (s Sidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(s.list.View())
}
