package host

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Shape-Reveal/internal/game"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 14
)

// Feed is a ring buffer of the latest round log lines, drawn as an
// overlay panel on the right edge of the window.
type Feed struct {
	entries []game.LogEntry
	head    int
	count   int
	synced  int // round log entries already copied
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{entries: make([]game.LogEntry, feedMaxEntries)}
}

// Add appends an entry, evicting the oldest when full.
func (f *Feed) Add(e game.LogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Sync copies entries appended to rl since the previous call.
func (f *Feed) Sync(rl *game.RoundLog) {
	all := rl.Entries()
	if f.synced > len(all) {
		f.synced = 0
	}
	for _, e := range all[f.synced:] {
		f.Add(e)
	}
	f.synced = len(all)
}

// Reset empties the feed for a new round.
func (f *Feed) Reset() {
	f.head, f.count, f.synced = 0, 0, 0
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []game.LogEntry {
	result := make([]game.LogEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func categoryColor(cat string) color.RGBA {
	switch cat {
	case game.CatShape:
		return color.RGBA{R: 250, G: 180, B: 40, A: 255}
	case game.CatScore:
		return color.RGBA{R: 90, G: 210, B: 90, A: 255}
	case game.CatTimer, game.CatPhase:
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	default:
		return color.RGBA{R: 110, G: 130, B: 210, A: 255}
	}
}

// Draw renders the panel at panelX, newest entry at the bottom.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 10, B: 12, A: 220}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1, color.RGBA{R: 70, G: 60, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "ROUND LOG", panelX+8, 2)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	y := 20
	for _, e := range entries {
		vector.FillRect(screen, float32(panelX+4), float32(y+5), 3, 5, categoryColor(e.Category), false)
		ebitenutil.DebugPrintAt(screen, e.String(), panelX+10, y)
		y += feedLineHeight
	}
}
