package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Shape-Reveal/internal/store"
)

// Log categories and keys.
const (
	CatPhase    = "phase"
	CatStroke   = "stroke"
	CatCoverage = "coverage"
	CatShape    = "shape"
	CatScore    = "score"
	CatTimer    = "timer"

	KeyChange    = "change"
	KeyBegin     = "begin"
	KeyEnd       = "end"
	KeyBaseline  = "baseline"
	KeyProgress  = "progress"
	KeyCompleted = "completed"
	KeyNext      = "next"
	KeyRevealed  = "revealed"
	KeyUp        = "up"
	KeyFinal     = "final"
	KeySecond    = "second"
	KeyExpired   = "expired"
)

// LogEntry is one recorded round event.
type LogEntry struct {
	Frame    int
	Category string
	Key      string
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[F=0042] coverage  progress        63%
func (e LogEntry) String() string {
	return fmt.Sprintf("[F=%04d] %-9s %-15s %s", e.Frame, e.Category, e.Key, e.Value)
}

// RoundLog collects structured events for one round. It is unbounded and
// machine-readable; the host's feed panel keeps only a tail of it.
type RoundLog struct {
	entries []LogEntry
	verbose bool
	frame   int
}

// NewRoundLog creates a RoundLog. If verbose is true, per-frame entries such
// as timer seconds are recorded too.
func NewRoundLog(verbose bool) *RoundLog {
	return &RoundLog{verbose: verbose}
}

// SetFrame sets the frame number stamped on subsequent entries.
func (rl *RoundLog) SetFrame(frame int) {
	rl.frame = frame
}

// Frame returns the current frame number.
func (rl *RoundLog) Frame() int {
	return rl.frame
}

// Add records a new entry at the current frame.
func (rl *RoundLog) Add(category, key, value string, numVal float64) {
	rl.entries = append(rl.entries, LogEntry{
		Frame:    rl.frame,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (rl *RoundLog) AddVerbose(category, key, value string, numVal float64) {
	if !rl.verbose {
		return
	}
	rl.Add(category, key, value, numVal)
}

// Len returns the number of entries.
func (rl *RoundLog) Len() int {
	return len(rl.entries)
}

// Entries returns all recorded entries.
func (rl *RoundLog) Entries() []LogEntry {
	return rl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (rl *RoundLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range rl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (rl *RoundLog) CountCategory(category, key string) int {
	return len(rl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (rl *RoundLog) LastOf(category, key string) (LogEntry, bool) {
	for i := len(rl.entries) - 1; i >= 0; i-- {
		e := rl.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return LogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (rl *RoundLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range rl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (rl *RoundLog) Format() string {
	var sb strings.Builder
	for _, e := range rl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a one-line description of the round so far.
func (rl *RoundLog) Summary(st store.State) string {
	return fmt.Sprintf("frames=%d strokes=%d shapes=%d level=%d score=%d final=%d phase=%s",
		rl.frame,
		rl.CountCategory(CatStroke, KeyEnd),
		rl.CountCategory(CatShape, KeyCompleted),
		st.Level, st.Score, st.FinalScore, st.Phase)
}
