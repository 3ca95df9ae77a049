package components

import (
	"fmt"
	"strings"

	"github.com/zorkosss/GameHub/internal/domain"
	"github.com/zorkosss/GameHub/internal/tui/styles"
)

// Inspector is the detail panel for the selected game
type Inspector struct {
	entry  *domain.GameEntry
	stats  *domain.SystemStats
	width  int
	height int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetEntry sets the entry to display
func (i *Inspector) SetEntry(entry *domain.GameEntry) {
	i.entry = entry
}

// SetStats sets the backend host statistics shown at the bottom
func (i *Inspector) SetStats(stats *domain.SystemStats) {
	i.stats = stats
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder
	frameW, frameH := style.GetFrameSize()
	interiorWidth := i.width - frameW

	var b strings.Builder

	if i.entry == nil {
		b.WriteString(styles.DimStyle.Render("No game selected"))
	} else {
		i.renderEntry(&b, interiorWidth)
	}

	if i.stats != nil {
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(
			"Host: CPU %.0f%%  RAM %.0f%%  Ping %s",
			i.stats.CPU, i.stats.RAM, i.stats.Ping)))
	}

	return style.
		Width(interiorWidth).
		Height(i.height - frameH).
		Render(b.String())
}

func (i Inspector) renderEntry(b *strings.Builder, width int) {
	e := i.entry

	title := e.Name
	if e.Favorite {
		title = styles.FavoriteChar + " " + title
	}
	b.WriteString(styles.TitleStyle.Width(width).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(string(e.Source)))
	b.WriteString("\n\n")

	b.WriteString(styles.DimStyle.Render("Playtime: " + e.FormattedPlaytime()))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Last played: " + e.FormattedLastPlayed()))
	b.WriteString("\n")

	if e.AvgFPS != "" {
		b.WriteString(styles.DimStyle.Render("Avg FPS: " + e.AvgFPS))
		b.WriteString("\n")
	}
	if e.BestPing != "" {
		b.WriteString(styles.DimStyle.Render("Best ping: " + e.BestPing))
		b.WriteString("\n")
	}

	if e.Hidden {
		b.WriteString(styles.DimStyle.Render("Hidden from the main view"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if command, ok := e.LaunchCommand(); ok {
		b.WriteString(styles.DimStyle.Render("Launch: " + styles.Truncate(command, width-8)))
	} else {
		b.WriteString(styles.ErrorStyle.Render("Not launchable from here"))
	}
	b.WriteString("\n")

	art := domain.ResolveArtwork(*e)
	if art.HasPrimary() {
		b.WriteString(styles.DimStyle.Render("Artwork: " + styles.Truncate(art.Primary, width-10)))
		b.WriteString("\n")
	}

	if e.InstallPath != "" {
		b.WriteString(styles.DimStyle.Render("Path: " + styles.Truncate(e.InstallPath, width-7)))
		b.WriteString("\n")
	}
}
