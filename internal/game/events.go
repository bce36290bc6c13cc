package game

// Bus event names.
const (
	// EventAssetsReady carries the *assets.Bundle loaded by the HUD.
	EventAssetsReady = "assetsReady"
	// EventStart is published by App.Start once the round is in Play.
	EventStart = "start"
	// EventDrawingCompleted fires once per revealed shape.
	EventDrawingCompleted = "drawingCompleted"
	// EventLoaded tells the host both controllers are ready. No payload.
	EventLoaded = "loaded"
	// EventGameOver carries a GameOverEvent.
	EventGameOver = "gameOver"
)

// GameOverEvent is the payload of EventGameOver.
type GameOverEvent struct {
	Log   string
	Score int
}
