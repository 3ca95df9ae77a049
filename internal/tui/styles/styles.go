package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	SteamBlue  = lipgloss.Color("#66C0F4")
	SlateDark  = lipgloss.Color("#1B2838")
	SlateLight = lipgloss.Color("#2A475E")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Gold       = lipgloss.Color("#F59E0B")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SteamBlue)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(SteamBlue)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(Gold)
)

// Raw status characters (unstyled)
const (
	FavoriteChar = "★"
	HiddenChar   = "∅"
)

// Pre-rendered indicators
var (
	FavoriteStar = FavoriteStyle.Render(FavoriteChar)
	HiddenMark   = DimStyle.Render(HiddenChar)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	FocusedItemStyle = lipgloss.NewStyle().
				Foreground(SteamBlue).
				Bold(true).
				Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SteamBlue).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Grid cell styles
var (
	GridCellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	GridCellSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(SteamBlue).
				Padding(0, 1)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(SteamBlue)

	SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// Search prompt styles
var (
	SearchStyle = lipgloss.NewStyle().
			Foreground(SteamBlue)

	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(SteamBlue).
				Bold(true)
)

// Match highlight style for search results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(SteamBlue).
				Bold(true)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(SteamBlue)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		if width > len(s) {
			return s
		}
		return s[:width]
	}
	return s[:width-3] + "..."
}

// Pad pads or cuts a string to the given width
func Pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) >= width {
		return s[:width]
	}
	return s + spaces(width-len(s))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
