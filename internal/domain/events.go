package domain

// Event names emitted on the broadcast channel.
const (
	EventGameStarted           = "game_started"
	EventGameStopped           = "game_stopped"
	EventDisplayUpdate         = "display_update"
	EventConnectionEstablished = "connection_established"
)

// Event is the envelope every subscriber receives.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// GameLifecycle is the payload of game_started and game_stopped.
type GameLifecycle struct {
	GameID    string `json:"gameId"`
	GameTitle string `json:"gameTitle"`
}

// ConnectionEstablished greets a new subscriber.
type ConnectionEstablished struct {
	Message string `json:"message"`
}

func GameStarted(rec GameRecord) Event {
	return Event{Type: EventGameStarted, Payload: GameLifecycle{GameID: rec.ID, GameTitle: rec.Title}}
}

func GameStopped(rec GameRecord) Event {
	return Event{Type: EventGameStopped, Payload: GameLifecycle{GameID: rec.ID, GameTitle: rec.Title}}
}

func DisplayUpdate(item DisplayItem) Event {
	return Event{Type: EventDisplayUpdate, Payload: item}
}

func Welcome() Event {
	return Event{Type: EventConnectionEstablished, Payload: ConnectionEstablished{Message: "Connected to quiz server"}}
}
