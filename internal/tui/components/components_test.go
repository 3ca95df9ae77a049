package components

import (
	"strings"
	"testing"

	"github.com/zorkosss/GameHub/internal/domain"
)

func TestInspectorShowsPerformanceFields(t *testing.T) {
	entry := &domain.GameEntry{
		Name:     "Apex Legends",
		Source:   domain.SourceEA,
		AvgFPS:   "144",
		BestPing: "12ms",
	}

	var ins Inspector
	ins.SetSize(60, 30)
	ins.SetEntry(entry)

	view := ins.View()
	if !strings.Contains(view, "Avg FPS: 144") {
		t.Errorf("view missing avg fps line:\n%s", view)
	}
	if !strings.Contains(view, "Best ping: 12ms") {
		t.Errorf("view missing best ping line:\n%s", view)
	}
}

func TestInspectorOmitsEmptyPerformanceFields(t *testing.T) {
	var ins Inspector
	ins.SetSize(60, 30)
	ins.SetEntry(&domain.GameEntry{Name: "Doom", Source: domain.SourceOther})

	view := ins.View()
	if strings.Contains(view, "Avg FPS") || strings.Contains(view, "Best ping") {
		t.Errorf("view shows performance lines for entry without data:\n%s", view)
	}
}

func TestRenderGameRowNarrowWidth(t *testing.T) {
	entry := domain.GameEntry{Name: "Doom", Source: domain.SourceOther}

	// Too narrow for the badge and playtime columns. The row drops
	// them instead of slicing the name with a negative width.
	row := renderGameRow(entry, false, 16)
	if !strings.Contains(row, "Doom") {
		t.Errorf("narrow row lost the name: %q", row)
	}

	for width := 0; width < 40; width++ {
		renderGameRow(entry, true, width)
	}
}

func TestSplitMatchesUsesByteOffsets(t *testing.T) {
	// "é" spans bytes 3-4, so the matched offsets for "mon" start at 5.
	segs := splitMatches("Pokémon", []int{0, 1, 2, 5, 6, 7})

	want := []matchSegment{
		{text: "Pok", matched: true},
		{text: "é", matched: false},
		{text: "mon", matched: true},
	}
	if len(segs) != len(want) {
		t.Fatalf("segments = %+v, want %+v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestSplitMatchesNoIndexes(t *testing.T) {
	segs := splitMatches("Hades", nil)
	if len(segs) != 1 || segs[0].matched || segs[0].text != "Hades" {
		t.Errorf("segments = %+v", segs)
	}
}
