package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zorkosss/GameHub/internal/domain"
	"github.com/zorkosss/GameHub/internal/library"
	"github.com/zorkosss/GameHub/internal/tui/styles"
)

// Layout constants for the browser panel
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Header line showing the active filter
	HeaderLines = 1

	// Scroll indicators each take 1 line
	ScrollIndicatorLines = 2

	// Grid cell dimensions (interior)
	GridCellHeight = 3
	MinCellWidth   = 16
)

// Browser displays the visible portion of the game library as either
// a grid of cells or a flat list.
type Browser struct {
	entries []domain.GameEntry
	mode    library.ViewMode
	columns int

	cursor     int
	offset     int // first visible row (list) or cell row (grid)
	maxVisible int // visible rows

	width   int
	height  int
	focused bool

	header string

	// Quick-filter typing state
	searchActive bool
	searchInput  textinput.Model
}

// NewBrowser creates a new browser component
func NewBrowser(columns int) Browser {
	ti := textinput.New()
	ti.Placeholder = "type to search..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = styles.SearchStyle

	if columns < 1 {
		columns = 4
	}

	return Browser{
		columns:     columns,
		searchInput: ti,
	}
}

// SetEntries replaces the displayed entries and moves the cursor to
// the given index (clamped).
func (b *Browser) SetEntries(entries []domain.GameEntry, cursor int) {
	b.entries = entries
	b.SetCursor(cursor)
}

// SetMode switches between grid and list presentation
func (b *Browser) SetMode(mode library.ViewMode) {
	b.mode = mode
	b.ensureVisible()
}

// Mode returns the current presentation mode
func (b Browser) Mode() library.ViewMode {
	return b.mode
}

// SetHeader sets the panel header text (active filter label)
func (b *Browser) SetHeader(header string) {
	b.header = header
}

// SetSize updates the component dimensions
func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.recalcMaxVisible()
	b.ensureVisible()
}

func (b *Browser) recalcMaxVisible() {
	interior := b.height - BorderHeight - HeaderLines - ScrollIndicatorLines
	if b.searchActive {
		interior--
	}
	if b.mode == library.ViewGrid {
		interior /= GridCellHeight + BorderHeight
	}
	if interior < 1 {
		interior = 1
	}
	b.maxVisible = interior
}

// SetFocused sets the focus state
func (b *Browser) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused returns the focus state
func (b Browser) IsFocused() bool {
	return b.focused
}

// Cursor returns the current cursor position
func (b Browser) Cursor() int {
	return b.cursor
}

// SetCursor clamps and sets the cursor position
func (b *Browser) SetCursor(pos int) {
	max := len(b.entries) - 1
	if max < 0 {
		b.cursor = 0
		b.offset = 0
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > max {
		pos = max
	}
	b.cursor = pos
	b.ensureVisible()
}

// SelectedEntry returns the entry under the cursor
func (b Browser) SelectedEntry() *domain.GameEntry {
	if len(b.entries) == 0 || b.cursor >= len(b.entries) {
		return nil
	}
	e := b.entries[b.cursor]
	return &e
}

// Len returns the number of displayed entries
func (b Browser) Len() int {
	return len(b.entries)
}

// MoveUp moves the cursor up one row
func (b *Browser) MoveUp() {
	if b.mode == library.ViewGrid {
		b.SetCursor(b.cursor - b.columns)
		return
	}
	b.SetCursor(b.cursor - 1)
}

// MoveDown moves the cursor down one row
func (b *Browser) MoveDown() {
	if b.mode == library.ViewGrid {
		if b.cursor+b.columns < len(b.entries) {
			b.SetCursor(b.cursor + b.columns)
		}
		return
	}
	b.SetCursor(b.cursor + 1)
}

// MoveLeft moves the cursor left one cell (grid mode only)
func (b *Browser) MoveLeft() {
	if b.mode == library.ViewGrid && b.cursor%b.columns > 0 {
		b.SetCursor(b.cursor - 1)
	}
}

// MoveRight moves the cursor right one cell (grid mode only)
func (b *Browser) MoveRight() {
	if b.mode == library.ViewGrid && b.cursor%b.columns < b.columns-1 {
		b.SetCursor(b.cursor + 1)
	}
}

// MoveHome moves the cursor to the first entry
func (b *Browser) MoveHome() {
	b.SetCursor(0)
}

// MoveEnd moves the cursor to the last entry
func (b *Browser) MoveEnd() {
	b.SetCursor(len(b.entries) - 1)
}

// ensureVisible scrolls so the cursor row stays on screen
func (b *Browser) ensureVisible() {
	row := b.cursor
	if b.mode == library.ViewGrid && b.columns > 0 {
		row = b.cursor / b.columns
	}
	if row < b.offset {
		b.offset = row
	}
	if row >= b.offset+b.maxVisible {
		b.offset = row - b.maxVisible + 1
	}
	if b.offset < 0 {
		b.offset = 0
	}
}

// Search state

// ToggleSearch activates the inline search input
func (b *Browser) ToggleSearch() {
	b.searchActive = true
	b.searchInput.Focus()
	b.recalcMaxVisible()
}

// ClearSearch deactivates and resets the search input
func (b *Browser) ClearSearch() {
	b.searchActive = false
	b.searchInput.SetValue("")
	b.searchInput.Blur()
	b.recalcMaxVisible()
}

// IsSearchTyping reports whether the search input is capturing keys
func (b Browser) IsSearchTyping() bool {
	return b.searchActive && b.searchInput.Focused()
}

// IsSearching reports whether a search is active
func (b Browser) IsSearching() bool {
	return b.searchActive
}

// Query returns the current search text
func (b Browser) Query() string {
	return b.searchInput.Value()
}

// CommitSearch keeps the query applied but stops capturing keys
func (b *Browser) CommitSearch() {
	b.searchInput.Blur()
}

// Update handles messages
func (b Browser) Update(msg tea.Msg) (Browser, tea.Cmd) {
	if b.IsSearchTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				b.CommitSearch()
				return b, nil
			case "esc":
				b.ClearSearch()
				return b, nil
			}
		}
		var cmd tea.Cmd
		b.searchInput, cmd = b.searchInput.Update(msg)
		return b, cmd
	}

	if !b.focused {
		return b, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			b.MoveDown()
		case "k", "up":
			b.MoveUp()
		case "h", "left":
			b.MoveLeft()
		case "l", "right":
			b.MoveRight()
		case "g", "home":
			b.MoveHome()
		case "G", "end":
			b.MoveEnd()
		}
	}

	return b, nil
}

// View renders the component
func (b Browser) View() string {
	style := styles.InactiveBorder
	if b.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	interiorWidth := b.width - frameW

	var lines []string

	header := styles.AccentStyle.Render(styles.Truncate(b.header, interiorWidth))
	lines = append(lines, header)

	if b.searchActive {
		lines = append(lines, b.searchInput.View())
	}

	if len(b.entries) == 0 {
		lines = append(lines, "", styles.DimStyle.Render(b.emptyMessage()))
	} else if b.mode == library.ViewGrid {
		lines = append(lines, b.renderGrid(interiorWidth)...)
	} else {
		lines = append(lines, b.renderList(interiorWidth)...)
	}

	content := strings.Join(lines, "\n")
	return style.
		Width(interiorWidth).
		Height(b.height - frameH).
		Render(content)
}

func (b Browser) emptyMessage() string {
	if b.searchActive && b.Query() != "" {
		return "No games match the search."
	}
	return "No games here. Press r to scan, or a to add one."
}

func (b Browser) renderList(width int) []string {
	var lines []string

	if b.offset > 0 {
		lines = append(lines, styles.DimStyle.Render("↑ more"))
	} else {
		lines = append(lines, "")
	}

	end := b.offset + b.maxVisible
	if end > len(b.entries) {
		end = len(b.entries)
	}

	for i := b.offset; i < end; i++ {
		lines = append(lines, renderGameRow(b.entries[i], i == b.cursor, width))
	}

	if end < len(b.entries) {
		lines = append(lines, styles.DimStyle.Render("↓ more"))
	}

	return lines
}

func (b Browser) renderGrid(width int) []string {
	var lines []string

	if b.offset > 0 {
		lines = append(lines, styles.DimStyle.Render("↑ more"))
	} else {
		lines = append(lines, "")
	}

	cellWidth := width/b.columns - BorderWidth
	if cellWidth < MinCellWidth {
		cellWidth = MinCellWidth
	}

	startIdx := b.offset * b.columns
	endRow := b.offset + b.maxVisible

	for row := b.offset; row < endRow; row++ {
		base := row * b.columns
		if base >= len(b.entries) {
			break
		}
		cells := make([]string, 0, b.columns)
		for col := 0; col < b.columns; col++ {
			idx := base + col
			if idx >= len(b.entries) {
				break
			}
			cells = append(cells, renderGameCell(b.entries[idx], idx == b.cursor, cellWidth))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if startIdx+b.maxVisible*b.columns < len(b.entries) {
		lines = append(lines, styles.DimStyle.Render("↓ more"))
	}

	return lines
}

// renderGameRow renders one list row
func renderGameRow(e domain.GameEntry, selected bool, width int) string {
	style := styles.NormalItemStyle
	if selected {
		style = styles.SelectedItemStyle
	}

	indicator := " "
	if e.Favorite {
		indicator = styles.FavoriteChar
	} else if e.Hidden {
		indicator = styles.HiddenChar
	}

	playtime := e.FormattedPlaytime()
	badge := sourceBadgeText(e.Source)

	// Drop the trailing columns when the pane is too narrow for them
	nameWidth := width - len(playtime) - len(badge) - 8
	if nameWidth < 4 {
		return style.Width(width).Render(
			indicator + " " + styles.Truncate(e.Name, width-2),
		)
	}
	name := styles.Truncate(e.Name, nameWidth)

	return style.Width(width).Render(
		fmt.Sprintf("%s %s %s %s", indicator, styles.Pad(name, nameWidth), badge, playtime),
	)
}

// renderGameCell renders one grid cell
func renderGameCell(e domain.GameEntry, selected bool, width int) string {
	style := styles.GridCellStyle
	if selected {
		style = styles.GridCellSelectedStyle
	}

	name := styles.Truncate(e.Name, width-2)
	if e.Favorite {
		name = styles.FavoriteChar + " " + styles.Truncate(e.Name, width-4)
	}

	sub := styles.DimStyle.Render(styles.Truncate(sourceBadgeText(e.Source), width-2))
	played := styles.DimStyle.Render(styles.Truncate(e.FormattedLastPlayed(), width-2))

	content := lipgloss.JoinVertical(lipgloss.Left, name, sub, played)
	return style.Width(width).Render(content)
}

// sourceBadgeText returns the short label for a source
func sourceBadgeText(s domain.Source) string {
	switch s {
	case domain.SourceSteam:
		return "Steam"
	case domain.SourceEpic:
		return "Epic"
	case domain.SourceEA:
		return "EA"
	case domain.SourceOther:
		return "Manual"
	default:
		return string(s)
	}
}
