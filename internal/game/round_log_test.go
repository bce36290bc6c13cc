package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Shape-Reveal/internal/store"
)

func TestRoundLog_FilterAndLastOf(t *testing.T) {
	rl := NewRoundLog(false)
	rl.SetFrame(1)
	rl.Add(CatStroke, KeyBegin, "(0,0)", 0)
	rl.SetFrame(2)
	rl.Add(CatCoverage, KeyProgress, "10%", 10)
	rl.SetFrame(5)
	rl.Add(CatCoverage, KeyProgress, "40%", 40)

	if n := rl.CountCategory(CatCoverage, KeyProgress); n != 2 {
		t.Fatalf("progress count = %d, want 2", n)
	}
	if n := len(rl.Filter("", "")); n != 3 {
		t.Fatalf("unfiltered = %d, want 3", n)
	}
	last, ok := rl.LastOf(CatCoverage, KeyProgress)
	if !ok || last.NumVal != 40 || last.Frame != 5 {
		t.Fatalf("LastOf = %+v, %v", last, ok)
	}
	if _, ok := rl.LastOf(CatShape, KeyCompleted); ok {
		t.Fatal("LastOf found an entry that was never added")
	}
	if !rl.HasEntry(CatCoverage, "", "40") {
		t.Fatal("HasEntry missed value substring")
	}
	if rl.HasEntry(CatStroke, KeyEnd, "") {
		t.Fatal("HasEntry matched wrong key")
	}
}

func TestRoundLog_VerboseOnly(t *testing.T) {
	quiet := NewRoundLog(false)
	quiet.AddVerbose(CatTimer, KeySecond, "1s", 1)
	if quiet.Len() != 0 {
		t.Fatalf("quiet log recorded %d verbose entries", quiet.Len())
	}

	loud := NewRoundLog(true)
	loud.AddVerbose(CatTimer, KeySecond, "1s", 1)
	if loud.Len() != 1 {
		t.Fatalf("verbose log has %d entries, want 1", loud.Len())
	}
}

func TestRoundLog_FormatAndSummary(t *testing.T) {
	rl := NewRoundLog(false)
	rl.SetFrame(42)
	rl.Add(CatStroke, KeyEnd, "(1,2)", 0)
	rl.Add(CatShape, KeyCompleted, "shape 0 at 81%", 81)

	out := rl.Format()
	if !strings.Contains(out, "[F=0042] stroke") || strings.Count(out, "\n") != 2 {
		t.Fatalf("Format output:\n%s", out)
	}

	sum := rl.Summary(store.State{Level: 2, Score: 10, FinalScore: 20, Phase: store.GameOver})
	for _, want := range []string{"frames=42", "strokes=1", "shapes=1", "final=20", "phase=GAME_OVER"} {
		if !strings.Contains(sum, want) {
			t.Errorf("Summary %q missing %q", sum, want)
		}
	}
}
