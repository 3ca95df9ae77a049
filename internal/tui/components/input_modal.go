package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zorkosss/GameHub/internal/tui/styles"
)

// FormModal is a small modal with one or more labeled text inputs.
// Used for adding manual games and editing backend settings.
type FormModal struct {
	visible bool
	title   string
	labels  []string
	inputs  []textinput.Model
	focus   int
}

// NewFormModal creates a new form modal
func NewFormModal() FormModal {
	return FormModal{}
}

func newField(placeholder string, masked bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 34
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	if masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// FormField describes one input in the modal
type FormField struct {
	Label       string
	Placeholder string
	Value       string
	Masked      bool
}

// Show displays the modal with the given fields
func (m *FormModal) Show(title string, fields ...FormField) {
	m.visible = true
	m.title = title
	m.labels = make([]string, len(fields))
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		m.labels[i] = f.Label
		m.inputs[i] = newField(f.Placeholder, f.Masked)
		m.inputs[i].SetValue(f.Value)
	}
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

// Hide dismisses the modal
func (m *FormModal) Hide() {
	m.visible = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// IsVisible returns whether the modal is shown
func (m FormModal) IsVisible() bool {
	return m.visible
}

// Title returns the modal title
func (m FormModal) Title() string {
	return m.title
}

// Values returns the current values of all fields in order
func (m FormModal) Values() []string {
	vals := make([]string, len(m.inputs))
	for i := range m.inputs {
		vals[i] = strings.TrimSpace(m.inputs[i].Value())
	}
	return vals
}

// Update handles input events, returns (modal, cmd, submitted)
func (m FormModal) Update(msg tea.Msg) (FormModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil, false
			}
			return m, nil, true
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil, false
		case "shift+tab", "up":
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil, false
		case "esc":
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, false
}

func (m *FormModal) setFocus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// View renders the form modal
func (m FormModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 40

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.LightGray).
		Width(modalWidth)

	parts := []string{styles.ModalTitleStyle.Render(m.title)}
	for i := range m.inputs {
		parts = append(parts,
			labelStyle.Render(m.labels[i]),
			m.inputs[i].View(),
			"",
		)
	}
	parts = append(parts, styles.DimStyle.Render("enter to submit, esc to cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.SteamBlue).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(content)
}
