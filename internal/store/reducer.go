package store

// Reduce is the game reducer. It is total: unrecognised actions return prev
// unchanged (the same pointer).
func Reduce(prev *State, a Action) *State {
	if prev == nil {
		prev = defaultState()
	}

	next := *prev
	switch act := a.(type) {
	case SetScoreFactors:
		next.ScoreFactor = act.ScoreFactor
		next.Level = act.Level
	case SetGameState:
		next.Phase = act.Phase
	case UpScore:
		next.Score = prev.Score + prev.ScoreFactor
	case UpComboCounter:
		next.ComboCounter = prev.ComboCounter + 1
	case CalcFinalScore:
		next.FinalScore = prev.Score * prev.Level
	case SetPlayerSketchReady:
		next.PlayerSketchReady = true
	case SetUISketchReady:
		next.UISketchReady = true
	default:
		return prev
	}
	return &next
}
