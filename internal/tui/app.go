package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zorkosss/GameHub/internal/domain"
	"github.com/zorkosss/GameHub/internal/library"
	"github.com/zorkosss/GameHub/internal/search"
	"github.com/zorkosss/GameHub/internal/tui/components"
	"github.com/zorkosss/GameHub/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmRemove
)

// formKind identifies which workflow owns the form modal
type formKind int

const (
	formNone formKind = iota
	formAddGame
	formSettings
)

// Layout proportions
const (
	SidebarPercent   = 20
	InspectorPercent = 28
	MinPaneWidth     = 18

	// Single footer line
	ChromeHeight = 1
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Svc       *library.Service
	SearchSvc *search.Service

	// View model: entry list + filter/search/selection state
	LibView *library.View

	// Push channel from the backend
	Events <-chan domain.Event

	// UI components
	Sidebar   components.Sidebar
	Browser   components.Browser
	Inspector components.Inspector
	Omnibar   components.Omnibar
	Form      components.FormModal

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	Scanning     bool
	SpinnerFrame int
	focusSidebar bool

	form         formKind
	removeTarget *domain.GameEntry
	stats        *domain.SystemStats
}

// NewModel creates a new application model
func NewModel(svc *library.Service, searchSvc *search.Service, events <-chan domain.Event, mode library.ViewMode, gridColumns int) Model {
	view := library.NewView()
	view.SetMode(mode)

	browser := components.NewBrowser(gridColumns)
	browser.SetMode(mode)
	browser.SetFocused(true)

	return Model{
		State:     StateBrowsing,
		Loading:   true,
		Svc:       svc,
		SearchSvc: searchSvc,
		LibView:   view,
		Events:    events,
		Sidebar:   components.NewSidebar(),
		Browser:   browser,
		Inspector: components.NewInspector(),
		Omnibar:   components.NewOmnibar(),
		Form:      components.NewFormModal(),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCachedCmd(m.Svc),
		RefreshCmd(m.Svc),
		WaitForEventCmd(m.Events),
		LoadStatsCmd(m.Svc),
		TickCmd(100*time.Millisecond),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		if m.Loading || m.Scanning {
			return m, TickCmd(100 * time.Millisecond)
		}
		return m, nil

	case CachedGamesMsg:
		// Paint from cache only while the first refresh is in flight
		if msg.OK && m.LibView.Len() == 0 {
			m.applySnapshot(msg.Entries)
			m.StatusMsg = fmt.Sprintf("Loaded %d games from cache%s",
				len(msg.Entries), cacheAge(msg.SavedAt))
			cmds = append(cmds, ClearStatusCmd(3*time.Second))
		}
		return m, tea.Batch(cmds...)

	case GamesLoadedMsg:
		m.Loading = false
		m.applySnapshot(msg.Entries)
		m.StatusMsg = fmt.Sprintf("Library loaded (%d games)", len(msg.Entries))
		cmds = append(cmds, ClearStatusCmd(3*time.Second))
		return m, tea.Batch(cmds...)

	case LibraryEventMsg:
		cmds = append(cmds, m.handleLibraryEvent(msg.Event)...)
		// Re-arm the pump: one event per message keeps arrival order
		cmds = append(cmds, WaitForEventCmd(m.Events))
		return m, tea.Batch(cmds...)

	case EventStreamClosedMsg:
		m.StatusMsg = "Lost connection to backend events"
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case ScanStartedMsg:
		m.Scanning = true
		m.StatusMsg = "Scanning platform libraries..."
		cmds = append(cmds, TickCmd(100*time.Millisecond))
		return m, tea.Batch(cmds...)

	case FieldsSavedMsg:
		// Optimistic patch already applied; keep the local cache current
		m.Svc.PersistLocal(m.LibView.Entries())
		return m, nil

	case LaunchedMsg:
		m.StatusMsg = "Launched: " + msg.Name
		return m, ClearStatusCmd(3*time.Second)

	case GameAddedMsg:
		m.StatusMsg = "Added: " + msg.Name
		cmds = append(cmds, RefreshCmd(m.Svc), ClearStatusCmd(3*time.Second))
		return m, tea.Batch(cmds...)

	case GameRemovedMsg:
		m.StatusMsg = "Removed: " + msg.Name
		cmds = append(cmds, RefreshCmd(m.Svc), ClearStatusCmd(3*time.Second))
		return m, tea.Batch(cmds...)

	case SettingsLoadedMsg:
		m.form = formSettings
		m.Form.Show("Settings",
			components.FormField{
				Label:       "SteamGridDB API key",
				Placeholder: "leave empty to keep artwork disabled",
				Value:       msg.Settings.SteamGridDBAPIKey,
				Masked:      true,
			},
			components.FormField{
				Label:       "Scan paths (separated by ;)",
				Placeholder: "D:\\Games;E:\\Games",
				Value:       strings.Join(msg.Settings.ScanPaths, ";"),
			},
		)
		return m, nil

	case SettingsSavedMsg:
		m.StatusMsg = "Settings saved"
		return m, ClearStatusCmd(3 * time.Second)

	case UpdateCheckMsg:
		if msg.Info.Available {
			m.StatusMsg = fmt.Sprintf("Update available: %s (%s)", msg.Info.Version, msg.Info.URL)
		} else {
			m.StatusMsg = "You are on the latest version"
		}
		return m, ClearStatusCmd(6 * time.Second)

	case StatsMsg:
		stats := msg.Stats
		m.stats = &stats
		m.Inspector.SetStats(m.stats)
		return m, StatsTickCmd(30 * time.Second)

	case statsFailedMsg:
		return m, StatsTickCmd(30 * time.Second)

	case StatsTickMsg:
		return m, LoadStatsCmd(m.Svc)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		m.Loading = false
		m.Scanning = false
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Forward other messages (cursor blink etc) to the active input
	if m.Omnibar.IsVisible() {
		var cmd tea.Cmd
		m.Omnibar, cmd, _ = m.Omnibar.Update(msg)
		return m, cmd
	}
	if m.Form.IsVisible() {
		var cmd tea.Cmd
		m.Form, cmd, _ = m.Form.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.Browser, cmd = m.Browser.Update(msg)
	return m, cmd
}

// handleLibraryEvent applies one push event.
// Events are handled one at a time, in the order they arrived.
func (m *Model) handleLibraryEvent(ev domain.Event) []tea.Cmd {
	var cmds []tea.Cmd

	switch ev.Type {
	case domain.EventFileSystemChanged:
		// The backend's library changed on disk; kick off a rescan.
		// A scan_complete event follows and drives the refetch.
		cmds = append(cmds, TriggerScanCmd(m.Svc))

	case domain.EventScanFinished:
		m.Scanning = false
		m.Loading = true
		m.StatusMsg = "Scan complete"
		cmds = append(cmds, RefreshCmd(m.Svc), ClearStatusCmd(3*time.Second))

	case domain.EventGameFieldsChanged:
		if ev.Entry == nil {
			break
		}
		// Unknown keys are dropped: the next snapshot re-syncs them
		if m.LibView.ApplyPartialUpdate(ev.Entry.Key(), domain.PatchFromEntry(*ev.Entry)) {
			m.Svc.PersistLocal(m.LibView.Entries())
			m.syncComponents()
		}
	}

	return cmds
}

// cacheAge renders how stale the cached snapshot is, or nothing when
// the save time is unknown
func cacheAge(savedAt time.Time) string {
	if savedAt.IsZero() {
		return ""
	}
	age := time.Since(savedAt)
	switch {
	case age < time.Minute:
		return " (just saved)"
	case age < time.Hour:
		return fmt.Sprintf(" (%dm old)", int(age.Minutes()))
	default:
		return fmt.Sprintf(" (%dh old)", int(age.Hours()))
	}
}

// applySnapshot installs a fresh entry list into the view model
func (m *Model) applySnapshot(entries []domain.GameEntry) {
	m.LibView.ReplaceAll(entries)
	m.SearchSvc.Rebuild(entries)
	m.syncComponents()
}

// syncComponents pushes view-model state into the render components
func (m *Model) syncComponents() {
	visible := m.LibView.VisibleSet()

	m.Browser.SetMode(m.LibView.Mode())
	m.Browser.SetEntries(visible, m.LibView.SelectedIndex())
	m.Browser.SetHeader(m.headerText(len(visible)))

	m.Sidebar.SetFilters(m.LibView.FilterMenu())
	m.Sidebar.SetCounts(m.filterCounts())

	m.syncInspector()
}

// selectedEntry returns the current selection, or ErrNoSelection.
// Entry actions treat the error as a silent no-op.
func (m Model) selectedEntry() (domain.GameEntry, error) {
	e, ok := m.LibView.Selected()
	if !ok {
		return domain.GameEntry{}, domain.ErrNoSelection
	}
	return e, nil
}

func (m *Model) syncInspector() {
	if e, ok := m.LibView.Selected(); ok {
		m.Inspector.SetEntry(&e)
	} else {
		m.Inspector.SetEntry(nil)
	}
}

func (m *Model) headerText(visibleCount int) string {
	header := fmt.Sprintf("%s (%d)", m.LibView.ActiveFilter().Label(), visibleCount)
	if q := m.LibView.SearchText(); q != "" {
		header += fmt.Sprintf("  /%s", q)
	}
	return header
}

// filterCounts computes entry counts per menu filter label
func (m *Model) filterCounts() map[string]int {
	counts := make(map[string]int)
	for _, f := range m.LibView.FilterMenu() {
		n := 0
		for _, e := range m.LibView.Entries() {
			if f.Matches(e) {
				n++
			}
		}
		counts[f.Label()] = n
	}
	return counts
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmRemove:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			if m.removeTarget != nil {
				name := m.removeTarget.Name
				m.removeTarget = nil
				return m, RemoveGameCmd(m.Svc, name)
			}
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
			m.removeTarget = nil
		}
		return m, nil
	}

	// Omnibar captures all keys while visible
	if m.Omnibar.IsVisible() {
		var cmd tea.Cmd
		var selected bool
		m.Omnibar, cmd, selected = m.Omnibar.Update(msg)

		if m.Omnibar.QueryChanged() {
			m.Omnibar.SetResults(m.SearchSvc.Query(m.Omnibar.Query()))
		}

		if selected {
			if result := m.Omnibar.SelectedResult(); result != nil {
				m.Omnibar.Hide()
				m.jumpTo(*result)
			}
		}
		return m, cmd
	}

	// Form modal captures all keys while visible
	if m.Form.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.Form, cmd, submitted = m.Form.Update(msg)
		if submitted {
			return m.submitForm()
		}
		return m, cmd
	}

	// Inline search typing captures keys until enter/esc
	if m.Browser.IsSearchTyping() {
		var cmd tea.Cmd
		m.Browser, cmd = m.Browser.Update(msg)
		if m.LibView.SearchText() != m.Browser.Query() {
			m.LibView.SetSearch(m.Browser.Query())
			m.syncComponents()
		}
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Browser.IsSearching() {
			m.Browser.ClearSearch()
			m.LibView.SetSearch("")
			m.syncComponents()
		}
		return m, nil

	case key.Matches(msg, Keys.Tab):
		m.focusSidebar = !m.focusSidebar
		m.Sidebar.SetFocused(m.focusSidebar)
		m.Browser.SetFocused(!m.focusSidebar)
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.focusSidebar = false
		m.Sidebar.SetFocused(false)
		m.Browser.SetFocused(true)
		m.Browser.ToggleSearch()
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.QuickJump):
		m.Omnibar.Show()
		m.Omnibar.SetSize(m.Width, m.Height)
		return m, m.Omnibar.Init()

	case key.Matches(msg, Keys.ToggleView):
		m.LibView.ToggleMode()
		m.syncComponents()
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, Keys.Favorite):
		return m.toggleField(func(e domain.GameEntry) domain.FieldPatch {
			fav := !e.Favorite
			return domain.FieldPatch{Favorite: &fav}
		})

	case key.Matches(msg, Keys.Hide):
		return m.toggleField(func(e domain.GameEntry) domain.FieldPatch {
			hidden := !e.Hidden
			return domain.FieldPatch{Hidden: &hidden}
		})

	case key.Matches(msg, Keys.OpenFolder):
		e, err := m.selectedEntry()
		if err != nil {
			return m, nil
		}
		if e.InstallPath == "" {
			m.StatusMsg = "No install path recorded for this game"
			return m, ClearStatusCmd(3 * time.Second)
		}
		return m, OpenFolderCmd(m.Svc, e)

	case key.Matches(msg, Keys.Rescan):
		return m, TriggerScanCmd(m.Svc)

	case key.Matches(msg, Keys.Refresh):
		m.Loading = true
		return m, tea.Batch(RefreshCmd(m.Svc), TickCmd(100*time.Millisecond))

	case key.Matches(msg, Keys.AddGame):
		m.form = formAddGame
		m.Form.Show("Add Game",
			components.FormField{Label: "Name", Placeholder: "Display name"},
			components.FormField{Label: "Executable path", Placeholder: "C:\\Games\\game.exe"},
		)
		return m, nil

	case key.Matches(msg, Keys.Remove):
		e, err := m.selectedEntry()
		if err != nil {
			return m, nil
		}
		if e.Source != domain.SourceOther {
			m.StatusMsg = "Only manually added games can be removed"
			return m, ClearStatusCmd(3 * time.Second)
		}
		entry := e
		m.removeTarget = &entry
		m.State = StateConfirmRemove
		return m, nil

	case key.Matches(msg, Keys.Settings):
		return m, LoadSettingsCmd(m.Svc)

	case key.Matches(msg, Keys.CheckUpdates):
		return m, CheckUpdatesCmd(m.Svc)
	}

	// Pane-local navigation
	if m.focusSidebar {
		var cmd tea.Cmd
		m.Sidebar, cmd = m.Sidebar.Update(msg)
		return m, cmd
	}

	oldCursor := m.Browser.Cursor()
	var cmd tea.Cmd
	m.Browser, cmd = m.Browser.Update(msg)
	if m.Browser.Cursor() != oldCursor {
		m.LibView.SelectIndex(m.Browser.Cursor())
		m.syncInspector()
	}
	return m, cmd
}

// handleEnter applies the filter (sidebar) or launches (browser)
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.focusSidebar {
		if f := m.Sidebar.SelectedFilter(); f != nil {
			m.LibView.SetFilter(*f)
			m.focusSidebar = false
			m.Sidebar.SetFocused(false)
			m.Browser.SetFocused(true)
			m.syncComponents()
		}
		return m, nil
	}

	e, err := m.selectedEntry()
	if err != nil {
		return m, nil
	}
	return m, LaunchGameCmd(m.Svc, e)
}

// toggleField applies an optimistic field patch to the selection and
// persists it in the background
func (m Model) toggleField(patchFor func(domain.GameEntry) domain.FieldPatch) (tea.Model, tea.Cmd) {
	e, err := m.selectedEntry()
	if err != nil {
		return m, nil
	}

	patch := patchFor(e)
	m.LibView.ApplyPartialUpdate(e.Key(), patch)
	m.syncComponents()
	return m, SaveFieldsCmd(m.Svc, e.Key(), patch)
}

// jumpTo selects a quick-jump result, resetting filter and search if
// they would hide it
func (m *Model) jumpTo(result search.Result) {
	m.Browser.ClearSearch()
	m.LibView.SetSearch("")
	m.LibView.Select(result.Entry.Key())

	if m.LibView.SelectedIndex() < 0 {
		if result.Entry.Hidden {
			m.LibView.SetFilter(library.Filter{Kind: library.FilterHidden})
		} else {
			m.LibView.SetFilter(library.Filter{Kind: library.FilterAll})
		}
		m.LibView.Select(result.Entry.Key())
	}

	m.syncComponents()
}

// submitForm dispatches the form modal's values
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	values := m.Form.Values()
	kind := m.form
	m.form = formNone
	m.Form.Hide()

	switch kind {
	case formAddGame:
		if len(values) == 2 && values[0] != "" && values[1] != "" {
			return m, AddGameCmd(m.Svc, values[0], values[1])
		}
		m.StatusMsg = "Name and path are both required"
		m.StatusIsErr = true
		return m, ClearStatusCmd(3 * time.Second)

	case formSettings:
		if len(values) == 2 {
			settings := domain.Settings{SteamGridDBAPIKey: values[0]}
			for _, p := range strings.Split(values[1], ";") {
				if p = strings.TrimSpace(p); p != "" {
					settings.ScanPaths = append(settings.ScanPaths, p)
				}
			}
			return m, SaveSettingsCmd(m.Svc, settings)
		}
	}
	return m, nil
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight
	m.Omnibar.SetSize(m.Width, m.Height)

	sidebarWidth := m.Width * SidebarPercent / 100
	if sidebarWidth < MinPaneWidth {
		sidebarWidth = MinPaneWidth
	}
	inspectorWidth := m.Width * InspectorPercent / 100
	if inspectorWidth < MinPaneWidth {
		inspectorWidth = MinPaneWidth
	}
	browserWidth := m.Width - sidebarWidth - inspectorWidth
	if browserWidth < MinPaneWidth {
		browserWidth = MinPaneWidth
	}

	m.Sidebar.SetSize(sidebarWidth, contentHeight)
	m.Browser.SetSize(browserWidth, contentHeight)
	m.Inspector.SetSize(inspectorWidth, contentHeight)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.State == StateConfirmRemove {
		return m.renderRemoveConfirmation()
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.Sidebar.View(),
		m.Browser.View(),
		m.Inspector.View(),
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderFooter(),
	)

	if m.Omnibar.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Omnibar.View())
	}

	if m.Form.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Form.View())
	}

	return view
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Scanning:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Scanning...")
	case m.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading library...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var center string
	if m.stats != nil {
		center = styles.DimStyle.Render(fmt.Sprintf(
			"CPU %.0f%%  RAM %.0f%%  Ping %s", m.stats.CPU, m.stats.RAM, m.stats.Ping))
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      LIBRARY
  j/k/h/l    Move cursor           Enter  Launch game
  tab        Switch pane           *      Toggle favorite
  g/G        First/last item       H      Toggle hidden
                                   o      Open install folder
SEARCH & VIEW                      a      Add manual game
  /          Search in view        x      Remove manual game
  f          Quick jump
  v          Grid/list view      OTHER
                                   r      Rescan libraries
                                   R      Reload from backend
                                   s      Settings
                                   u      Check for updates
                                   q      Quit
                                   ?      This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderRemoveConfirmation renders the remove-game confirmation modal
func (m Model) renderRemoveConfirmation() string {
	name := ""
	if m.removeTarget != nil {
		name = m.removeTarget.Name
	}
	modal := fmt.Sprintf(`
        Remove %q?

  The game stays on disk; only the
  library entry is removed.

        [Y] Yes      [N] No
`, name)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}
