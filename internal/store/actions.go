package store

// Action is a named state change. Concrete actions carry their payload as
// struct fields.
type Action interface {
	Type() string
}

// Action type names.
const (
	TypeInit                 = "@@INIT"
	TypeSetScoreFactors      = "SET_SCORE_FACTORS"
	TypeSetGameState         = "SET_GAME_STATE"
	TypeUpScore              = "UP_SCORE"
	TypeUpComboCounter       = "UP_COMBO_COUNTER"
	TypeCalcFinalScore       = "CALC_FINAL_SCORE"
	TypeSetPlayerSketchReady = "SET_PLAYER_SKETCH_READY"
	TypeSetUISketchReady     = "SET_UI_SKETCH_READY"
)

type initAction struct{}

func (initAction) Type() string { return TypeInit }

// SetScoreFactors configures scoring for a round.
type SetScoreFactors struct {
	ScoreFactor int
	Level       int
}

func (SetScoreFactors) Type() string { return TypeSetScoreFactors }

// SetGameState overwrites the phase. It performs no transition validation;
// callers are responsible for only moving forward.
type SetGameState struct {
	Phase Phase
}

func (SetGameState) Type() string { return TypeSetGameState }

// UpScore adds the current score factor to the score.
type UpScore struct{}

func (UpScore) Type() string { return TypeUpScore }

// UpComboCounter counts one more revealed shape.
type UpComboCounter struct{}

func (UpComboCounter) Type() string { return TypeUpComboCounter }

// CalcFinalScore sets FinalScore = Score * Level.
type CalcFinalScore struct{}

func (CalcFinalScore) Type() string { return TypeCalcFinalScore }

// SetPlayerSketchReady latches the drawing surface readiness flag.
type SetPlayerSketchReady struct{}

func (SetPlayerSketchReady) Type() string { return TypeSetPlayerSketchReady }

// SetUISketchReady latches the HUD readiness flag.
type SetUISketchReady struct{}

func (SetUISketchReady) Type() string { return TypeSetUISketchReady }
