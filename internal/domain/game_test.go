package domain

import "testing"

func TestLaunchCommand(t *testing.T) {
	tests := []struct {
		name    string
		entry   GameEntry
		want    string
		wantOK  bool
	}{
		{
			name:   "steam",
			entry:  GameEntry{Name: "Half-Life", Source: SourceSteam, LaunchID: "70"},
			want:   "steam://run/70",
			wantOK: true,
		},
		{
			name:   "epic",
			entry:  GameEntry{Name: "Fortnite", Source: SourceEpic, LaunchID: "fn"},
			want:   "com.epicgames.launcher://apps/fn?action=launch&silent=true",
			wantOK: true,
		},
		{
			name:   "ea",
			entry:  GameEntry{Name: "Apex", Source: SourceEA, LaunchID: "1234"},
			want:   "origin://launchgame/1234",
			wantOK: true,
		},
		{
			name:   "other uses install path verbatim",
			entry:  GameEntry{Name: "Doom", Source: SourceOther, InstallPath: `C:\Games\doom.exe`},
			want:   `C:\Games\doom.exe`,
			wantOK: true,
		},
		{
			name:   "unknown source is not launchable",
			entry:  GameEntry{Name: "Mystery", Source: "Itch", LaunchID: "9"},
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.entry.LaunchCommand()
			if ok != tt.wantOK {
				t.Fatalf("LaunchCommand() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("LaunchCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveArtworkSteam(t *testing.T) {
	entry := GameEntry{
		Name:         "Half-Life",
		Source:       SourceSteam,
		LaunchID:     "70",
		GridImageURL: "https://cdn.example.com/hl.png",
	}

	art := ResolveArtwork(entry)
	if art.Primary != "https://steamcdn-a.akamaihd.net/steam/apps/70/header.jpg" {
		t.Errorf("unexpected primary: %q", art.Primary)
	}
	if art.Backup != entry.GridImageURL {
		t.Errorf("backup = %q, want grid image", art.Backup)
	}

	// Simulated primary-load failure swaps to the backup.
	url, ok := art.Fallback(art.Primary)
	if !ok || url != entry.GridImageURL {
		t.Errorf("Fallback() = %q, %v; want grid image, true", url, ok)
	}

	// If the backup also fails, nothing remains.
	if _, ok := art.Fallback(art.Backup); ok {
		t.Error("Fallback() after backup failure should report none")
	}
}

func TestResolveArtworkSentinel(t *testing.T) {
	// The MISSING sentinel is never offered as a URL.
	steam := GameEntry{Source: SourceSteam, LaunchID: "70", GridImageURL: GridImageMissing}
	if art := ResolveArtwork(steam); art.Backup != "" {
		t.Errorf("steam backup = %q, want empty for sentinel", art.Backup)
	}

	other := GameEntry{Source: SourceEpic, GridImageURL: GridImageMissing}
	art := ResolveArtwork(other)
	if art.HasPrimary() {
		t.Errorf("non-steam primary = %q, want none for sentinel", art.Primary)
	}
	if _, ok := art.Fallback(""); ok {
		t.Error("no backup expected for non-steam entries")
	}
}

func TestFieldPatchApply(t *testing.T) {
	entry := GameEntry{
		Name:            "Celeste",
		Source:          SourceSteam,
		LaunchID:        "504230",
		Favorite:        false,
		PlaytimeSeconds: 100,
	}

	fav := true
	playtime := int64(3600)
	patch := FieldPatch{Favorite: &fav, PlaytimeSeconds: &playtime}
	patch.Apply(&entry)

	if !entry.Favorite {
		t.Error("favorite not applied")
	}
	if entry.PlaytimeSeconds != 3600 {
		t.Errorf("playtime = %d, want 3600", entry.PlaytimeSeconds)
	}
	// Untouched fields survive the merge.
	if entry.LaunchID != "504230" || entry.Name != "Celeste" {
		t.Error("unpatched fields were modified")
	}
}

func TestPatchFromEntryCoversMutableFields(t *testing.T) {
	full := GameEntry{
		Name:            "Hades",
		Source:          SourceEpic,
		LaunchID:        "min",
		Favorite:        true,
		Hidden:          true,
		LastPlayed:      1700000000,
		PlaytimeSeconds: 42,
		GridImageURL:    "https://cdn.example.com/h.png",
		AvgFPS:          "144",
		BestPing:        "12",
	}

	var target GameEntry
	target.Name = full.Name
	target.Source = full.Source
	PatchFromEntry(full).Apply(&target)

	if target != full {
		t.Errorf("patched entry = %+v, want %+v", target, full)
	}
}
