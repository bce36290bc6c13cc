package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Garsondee/Shape-Reveal/internal/game"
	"github.com/Garsondee/Shape-Reveal/internal/scores"
)

type runStats struct {
	runIndex int
	seed     int64
	offset   float64

	firstRevealFrame     int
	firstCompletionFrame int
	frames               int

	strokes     int
	evaluations int
	completions int
	baselines   []int
	completedAt []float64 // progress when each shape completed

	score      int
	finalScore int
	gameOvers  int
}

func main() {
	var runs int
	var level int
	var timeLimit float64
	var profile string
	var spacing float64
	var seedBase int64
	var scoreDB string

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&level, "level", 2, "level passed to Start")
	flag.Float64Var(&timeLimit, "time-limit", 20, "round length in seconds")
	flag.StringVar(&profile, "profile", "desktop", "device profile (desktop, smartphone)")
	flag.Float64Var(&spacing, "spacing", 8, "distance between sweep strokes")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.StringVar(&scoreDB, "scores", "", "optional SQLite file to record rounds into")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if spacing <= 0 {
		fmt.Println("error: -spacing must be > 0")
		return
	}

	var ledger *scores.Store
	if scoreDB != "" {
		s, err := scores.Open(scoreDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		ledger = s
	}

	fmt.Printf("=== Headless Round Report ===\n")
	fmt.Printf("runs=%d level=%d time_limit=%.1fs profile=%s spacing=%.1f seed_base=%d\n\n",
		runs, level, timeLimit, profile, spacing, seedBase)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)
		rs, err := runRound(i+1, seed, level, timeLimit, profile, spacing)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, rs)
		printRun(rs)
		if ledger != nil {
			recordRun(ledger, level, rs)
		}
	}

	printAggregate(all)
}

func runRound(runIndex int, seed int64, level int, timeLimit float64, profile string, spacing float64) (runStats, error) {
	h, err := game.NewHarness(
		game.WithLevel(level),
		game.WithTimeLimit(timeLimit),
		game.WithProfile(profile),
	)
	if err != nil {
		return runStats{}, err
	}
	if err := h.StartRound(); err != nil {
		return runStats{}, err
	}

	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- report determinism
	offset := rng.Float64() * spacing
	maxFrames := int(timeLimit*60) * 4
	h.PlayUntilOver(offset, spacing, maxFrames)

	rs := summarise(h.Log.Entries())
	rs.runIndex = runIndex
	rs.seed = seed
	rs.offset = offset
	rs.frames = h.App.Frame()
	st := h.App.State()
	rs.score = st.Score
	rs.finalScore = st.FinalScore
	rs.gameOvers = len(h.GameOvers)
	return rs, nil
}

// summarise derives per-round counters from the round log.
func summarise(entries []game.LogEntry) runStats {
	rs := runStats{
		firstRevealFrame:     firstFrame(entries, game.CatShape, game.KeyRevealed),
		firstCompletionFrame: firstFrame(entries, game.CatShape, game.KeyCompleted),
	}
	for _, e := range entries {
		switch {
		case e.Category == game.CatStroke && e.Key == game.KeyEnd:
			rs.strokes++
		case e.Category == game.CatCoverage && e.Key == game.KeyProgress:
			rs.evaluations++
		case e.Category == game.CatCoverage && e.Key == game.KeyBaseline:
			rs.baselines = append(rs.baselines, int(e.NumVal))
		case e.Category == game.CatShape && e.Key == game.KeyCompleted:
			rs.completions++
			rs.completedAt = append(rs.completedAt, e.NumVal)
		}
	}
	return rs
}

func firstFrame(entries []game.LogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Frame
		}
	}
	return -1
}

func recordRun(ledger *scores.Store, level int, rs runStats) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ledger.Record(ctx, scores.Result{
		Level:      level,
		Score:      rs.score,
		FinalScore: rs.finalScore,
		Shapes:     rs.completions,
		PlayedAt:   time.Now(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: record run %d: %v\n", rs.runIndex, err)
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d offset=%.2f) ---\n", rs.runIndex, rs.seed, rs.offset)
	fmt.Printf("markers: first_reveal=%d first_completion=%d frames=%d\n",
		rs.firstRevealFrame, rs.firstCompletionFrame, rs.frames)
	fmt.Printf("events: strokes=%d evaluations=%d completions=%d game_over=%d\n",
		rs.strokes, rs.evaluations, rs.completions, rs.gameOvers)
	fmt.Printf("coverage: strokes_per_shape=%s avg_completion=%s baselines=%s\n",
		ratioString(rs.strokes, rs.completions), avgFloatString(rs.completedAt), joinInts(rs.baselines))
	fmt.Printf("score: score=%d final=%d\n\n", rs.score, rs.finalScore)
}

func printAggregate(all []runStats) {
	totalStrokes := 0
	totalCompletions := 0
	totalFinal := 0
	bestFinal := 0
	completionFrames := make([]int, 0, len(all))
	finals := make([]int, 0, len(all))

	for _, rs := range all {
		totalStrokes += rs.strokes
		totalCompletions += rs.completions
		totalFinal += rs.finalScore
		if rs.finalScore > bestFinal {
			bestFinal = rs.finalScore
		}
		if rs.firstCompletionFrame >= 0 {
			completionFrames = append(completionFrames, rs.firstCompletionFrame)
		}
		finals = append(finals, rs.finalScore)
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: strokes=%.1f completions=%.1f final_score=%.1f\n",
		avg(totalStrokes, len(all)), avg(totalCompletions, len(all)), avg(totalFinal, len(all)))
	fmt.Printf("first_completion_avg_frame=%s strokes_per_shape=%s\n",
		avgIntString(completionFrames), ratioString(totalStrokes, totalCompletions))
	message.NewPrinter(language.English).Printf("final_scores: best=%d median=%d\n", bestFinal, median(finals))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgIntString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func avgFloatString(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", sum/float64(len(vals)))
}

func ratioString(num, den int) string {
	if den <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", float64(num)/float64(den))
}

func median(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}

func joinInts(vals []int) string {
	if len(vals) == 0 {
		return "none"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
