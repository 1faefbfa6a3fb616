package websocket

import "encoding/json"

// Message is the wire envelope in both directions: an action name and an
// action-specific payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type joinPayload struct {
	RoomID string `json:"room_id"`
}

type turnPayload struct {
	Cell *int `json:"cell"`
}

type chatPayload struct {
	Text string `json:"text"`
}
