package domain

import (
	"fmt"
	"strings"
	"time"
)

// Source identifies the platform a game was registered from.
// Values match the backend wire format.
type Source string

const (
	SourceSteam Source = "Steam"
	SourceEpic  Source = "Epic Games"
	SourceEA    Source = "EA"
	SourceOther Source = "Other Games"
)

// GridImageMissing is the sentinel the backend stores when a cover
// lookup has already been attempted and found nothing.
const GridImageMissing = "MISSING"

// steamHeaderURLFormat builds the Steam CDN header image for an app ID.
const steamHeaderURLFormat = "https://steamcdn-a.akamaihd.net/steam/apps/%s/header.jpg"

// Key is the identity of a game entry. There is no global unique ID;
// a game is identified by its name and the platform it came from.
type Key struct {
	Name   string
	Source Source
}

// String returns the backend's composite ID form ("source|name").
func (k Key) String() string {
	return string(k.Source) + "|" + k.Name
}

// GameEntry is one registered game. The entry list is a disposable
// local cache of backend state; the backend stays authoritative.
type GameEntry struct {
	Name        string `json:"name"`
	Source      Source `json:"source"`
	LaunchID    string `json:"launch_id,omitempty"`    // Platform-specific launch identifier
	InstallPath string `json:"install_path,omitempty"` // Filesystem location, when known

	// User-set flags
	Favorite bool `json:"favorite"`
	Hidden   bool `json:"hidden"`

	// Play tracking
	LastPlayed      int64 `json:"last_played,omitempty"` // Unix seconds, 0 = never played
	PlaytimeSeconds int64 `json:"playtime_seconds"`

	// Metadata
	GridImageURL string `json:"grid_image_url,omitempty"`

	// Free-text performance notes
	AvgFPS   string `json:"avg_fps,omitempty"`
	BestPing string `json:"best_ping,omitempty"`
}

// Key returns the entry's identity.
func (g GameEntry) Key() Key {
	return Key{Name: g.Name, Source: g.Source}
}

// LaunchCommand returns the platform launch URI for the entry.
// Returns false for sources the client does not know how to launch;
// callers must surface that to the user instead of sending a command.
func (g GameEntry) LaunchCommand() (string, bool) {
	switch g.Source {
	case SourceSteam:
		return "steam://run/" + g.LaunchID, true
	case SourceEpic:
		return "com.epicgames.launcher://apps/" + g.LaunchID + "?action=launch&silent=true", true
	case SourceEA:
		return "origin://launchgame/" + g.LaunchID, true
	case SourceOther:
		return g.InstallPath, true
	default:
		return "", false
	}
}

// FormattedPlaytime returns the playtime in a human-readable format.
func (g GameEntry) FormattedPlaytime() string {
	if g.PlaytimeSeconds <= 0 {
		return "Never played"
	}
	d := time.Duration(g.PlaytimeSeconds) * time.Second
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return "<1m"
}

// FormattedLastPlayed returns the last-played date, or "Never".
func (g GameEntry) FormattedLastPlayed() string {
	if g.LastPlayed <= 0 {
		return "Never"
	}
	return time.Unix(g.LastPlayed, 0).Format("Jan 2, 2006")
}

// Artwork is the primary/backup display image pair for an entry.
type Artwork struct {
	Primary string
	Backup  string
}

// HasPrimary reports whether any image can be attempted at all.
func (a Artwork) HasPrimary() bool { return a.Primary != "" }

// Fallback returns the image to try after failedURL did not load.
// Returns false when no usable backup remains and the renderer should
// show a placeholder.
func (a Artwork) Fallback(failedURL string) (string, bool) {
	if a.Backup != "" && a.Backup != failedURL {
		return a.Backup, true
	}
	return "", false
}

// ResolveArtwork maps an entry to its display image pair. Pure, no I/O.
// Steam entries derive a primary from the CDN and keep the stored grid
// image as backup; everything else only has the stored grid image.
func ResolveArtwork(g GameEntry) Artwork {
	grid := g.GridImageURL
	if grid == GridImageMissing {
		grid = ""
	}

	if g.Source == SourceSteam && g.LaunchID != "" {
		return Artwork{
			Primary: fmt.Sprintf(steamHeaderURLFormat, g.LaunchID),
			Backup:  grid,
		}
	}
	return Artwork{Primary: grid}
}

// FieldPatch is a partial update to an entry's mutable fields.
// Identity fields (name, source) are never part of a patch.
type FieldPatch struct {
	LaunchID        *string `json:"launch_id,omitempty"`
	InstallPath     *string `json:"install_path,omitempty"`
	Favorite        *bool   `json:"favorite,omitempty"`
	Hidden          *bool   `json:"hidden,omitempty"`
	LastPlayed      *int64  `json:"last_played,omitempty"`
	PlaytimeSeconds *int64  `json:"playtime_seconds,omitempty"`
	GridImageURL    *string `json:"grid_image_url,omitempty"`
	AvgFPS          *string `json:"avg_fps,omitempty"`
	BestPing        *string `json:"best_ping,omitempty"`
}

// IsEmpty reports whether the patch sets no fields.
func (p FieldPatch) IsEmpty() bool {
	return p.LaunchID == nil && p.InstallPath == nil &&
		p.Favorite == nil && p.Hidden == nil &&
		p.LastPlayed == nil && p.PlaytimeSeconds == nil &&
		p.GridImageURL == nil && p.AvgFPS == nil && p.BestPing == nil
}

// Apply merges the patch into the entry, field by field, in place.
func (p FieldPatch) Apply(g *GameEntry) {
	if p.LaunchID != nil {
		g.LaunchID = *p.LaunchID
	}
	if p.InstallPath != nil {
		g.InstallPath = *p.InstallPath
	}
	if p.Favorite != nil {
		g.Favorite = *p.Favorite
	}
	if p.Hidden != nil {
		g.Hidden = *p.Hidden
	}
	if p.LastPlayed != nil {
		g.LastPlayed = *p.LastPlayed
	}
	if p.PlaytimeSeconds != nil {
		g.PlaytimeSeconds = *p.PlaytimeSeconds
	}
	if p.GridImageURL != nil {
		g.GridImageURL = *p.GridImageURL
	}
	if p.AvgFPS != nil {
		g.AvgFPS = *p.AvgFPS
	}
	if p.BestPing != nil {
		g.BestPing = *p.BestPing
	}
}

// PatchFromEntry builds a full patch of every mutable field from a
// complete entry. Push events carry whole entries; the view model
// applies them as patches so identity is never overwritten.
func PatchFromEntry(g GameEntry) FieldPatch {
	return FieldPatch{
		LaunchID:        &g.LaunchID,
		InstallPath:     &g.InstallPath,
		Favorite:        &g.Favorite,
		Hidden:          &g.Hidden,
		LastPlayed:      &g.LastPlayed,
		PlaytimeSeconds: &g.PlaytimeSeconds,
		GridImageURL:    &g.GridImageURL,
		AvgFPS:          &g.AvgFPS,
		BestPing:        &g.BestPing,
	}
}

// NormalizeName trims the surrounding whitespace the scanners sometimes
// leave on manifest names.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
