package store

// Phase is the round's progress through its lifecycle.
// It only ever moves forward: Loading → Loaded → Play → GameOver.
type Phase int

const (
	Loading Phase = iota
	Loaded
	Play
	GameOver
)

// String returns the upper-case name used in logs.
func (p Phase) String() string {
	switch p {
	case Loading:
		return "LOADING"
	case Loaded:
		return "LOADED"
	case Play:
		return "PLAY"
	case GameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// State is the single shared game record. Values handed out by the Store are
// snapshots; the Store never mutates a State after publishing it.
type State struct {
	Score        int
	ScoreFactor  int // points granted per revealed shape
	FinalScore   int // Score * Level, computed once at round end
	ComboCounter int // shapes revealed this round
	Level        int
	Phase        Phase

	PlayerSketchReady bool
	UISketchReady     bool
}

// Ready reports whether both controllers have latched readiness.
func (s State) Ready() bool {
	return s.PlayerSketchReady && s.UISketchReady
}

func defaultState() *State {
	return &State{Phase: Loading}
}
