package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zorkosss/GameHub/internal/search"
	"github.com/zorkosss/GameHub/internal/tui/styles"
)

// Omnibar is the fuzzy quick-jump modal component
type Omnibar struct {
	input     textinput.Model
	results   []search.Result
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string // Track query changes for live filtering
}

// NewOmnibar creates a new omnibar component
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "Type a game name..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Omnibar{
		input: ti,
	}
}

// Show makes the omnibar visible and focuses the input
func (o *Omnibar) Show() {
	o.visible = true
	o.input.Focus()
	o.input.SetValue("")
	o.results = nil
	o.cursor = 0
	o.prevQuery = ""
}

// Hide hides the omnibar
func (o *Omnibar) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns true if the omnibar is visible
func (o Omnibar) IsVisible() bool {
	return o.visible
}

// SetResults sets the match list
func (o *Omnibar) SetResults(results []search.Result) {
	o.results = results
	o.cursor = 0
}

// SetSize updates the component dimensions
func (o *Omnibar) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = width - 10
}

// Query returns the current search query
func (o Omnibar) Query() string {
	return o.input.Value()
}

// QueryChanged returns true if the query changed since last check
func (o *Omnibar) QueryChanged() bool {
	current := o.input.Value()
	if current != o.prevQuery {
		o.prevQuery = current
		return true
	}
	return false
}

// SelectedResult returns the match under the cursor
func (o Omnibar) SelectedResult() *search.Result {
	if len(o.results) == 0 || o.cursor >= len(o.results) {
		return nil
	}
	return &o.results[o.cursor]
}

// Init initializes the component
func (o Omnibar) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages, returns (omnibar, cmd, selected)
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			o.Hide()
			return o, nil, false

		case "enter":
			if len(o.results) > 0 {
				return o, nil, true
			}
			return o, nil, false

		case "down", "ctrl+n":
			if o.cursor < len(o.results)-1 {
				o.cursor++
			}
			return o, nil, false

		case "up", "ctrl+p":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, false

		default:
			o.input, cmd = o.input.Update(msg)
			return o, cmd, false
		}
	}

	o.input, cmd = o.input.Update(msg)
	return o, cmd, false
}

// View renders the component
func (o Omnibar) View() string {
	if !o.visible {
		return ""
	}

	modalWidth := o.width * 2 / 3
	if modalWidth < 40 {
		modalWidth = 40
	}
	if modalWidth > 80 {
		modalWidth = 80
	}
	maxResults := 10

	var b strings.Builder

	b.WriteString(o.input.View())
	b.WriteString("\n\n")

	o.renderResults(&b, modalWidth, maxResults)

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		o.width,
		o.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func (o Omnibar) renderResults(b *strings.Builder, modalWidth, maxResults int) {
	if len(o.results) == 0 {
		if o.input.Value() != "" {
			b.WriteString(styles.DimStyle.Render("No matches found"))
		}
		return
	}

	displayCount := len(o.results)
	if displayCount > maxResults {
		displayCount = maxResults
	}

	for i := 0; i < displayCount; i++ {
		result := o.results[i]
		selected := i == o.cursor

		var line strings.Builder
		line.WriteString(styles.DimBadgeStyle.Render(sourceBadgeText(result.Entry.Source)))
		line.WriteString(" ")

		name := highlightMatches(result.Entry.Name, result.MatchedIndexes, selected)
		line.WriteString(name)

		b.WriteString(line.String())
		b.WriteString("\n")
	}

	if len(o.results) > maxResults {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.results)-maxResults)))
	}
}

// highlightMatches renders a name with matched characters emphasized
func highlightMatches(name string, indexes []int, selected bool) string {
	base := styles.NormalItemStyle
	if selected {
		base = styles.SelectedItemStyle
	}

	var out strings.Builder
	for _, seg := range splitMatches(name, indexes) {
		if seg.matched {
			out.WriteString(styles.MatchHighlightStyle.Render(seg.text))
		} else {
			out.WriteString(base.UnsetPadding().Render(seg.text))
		}
	}
	return out.String()
}

type matchSegment struct {
	text    string
	matched bool
}

// splitMatches groups a name into runs of matched and unmatched runes.
// Match positions are byte offsets into the name, as the fuzzy matcher
// reports them, so multi-byte names stay aligned.
func splitMatches(name string, indexes []int) []matchSegment {
	matched := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		matched[idx] = true
	}

	var segs []matchSegment
	for i, r := range name {
		m := matched[i]
		if n := len(segs); n > 0 && segs[n-1].matched == m {
			segs[n-1].text += string(r)
		} else {
			segs = append(segs, matchSegment{text: string(r), matched: m})
		}
	}
	return segs
}
