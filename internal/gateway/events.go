package gateway

import (
	"github.com/gridgames/tictactoe-rooms/internal/entity"
	"github.com/gridgames/tictactoe-rooms/internal/scoreboard"
)

const (
	ActionJoined        = "room:joined"
	ActionWaiting       = "room:waiting"
	ActionOpponentLeft  = "room:opponent_left"
	ActionGameStart     = "game:start"
	ActionGameState     = "game:state"
	ActionGameRestarted = "game:restarted"
	ActionCommentary    = "game:commentary"
	ActionChat          = "chat:message"
	ActionError         = "error"
)

// Event is one outbound message, transport-agnostic. The transport is
// responsible for encoding the payload onto the wire.
type Event struct {
	Action  string
	Payload any
}

// Notifier delivers events to live sessions. Implemented by the websocket
// transport; tests substitute a recording fake.
type Notifier interface {
	Unicast(sessionID string, event Event)
	Broadcast(sessionIDs []string, event Event)
}

type JoinedPayload struct {
	RoomID string `json:"room_id"`
	Mark   string `json:"mark"`
}

type WaitingPayload struct {
	RoomID string `json:"room_id"`
}

type StatePayload struct {
	entity.Snapshot
	Scores *scoreboard.Score `json:"scores,omitempty"`
}

type ChatPayload struct {
	Text   string `json:"text"`
	Mark   string `json:"mark"`
	Sender string `json:"sender"`
}

type OpponentLeftPayload struct {
	RoomID string `json:"room_id"`
}

type CommentaryPayload struct {
	Text string `json:"text"`
}

type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
