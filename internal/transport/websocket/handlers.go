package websocket

import (
	"context"
	"encoding/json"
)

func (that *Server) handleJoin(ctx context.Context, client *Client, raw json.RawMessage) {
	var payload joinPayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			that.sendError(client, "InvalidMove", "malformed join payload")
			return
		}
	}

	// An empty room ID means "create a new room".
	that.gateway.Join(ctx, client.ID, payload.RoomID)
}

func (that *Server) handleTurn(ctx context.Context, client *Client, raw json.RawMessage) {
	var payload turnPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Cell == nil {
		that.sendError(client, "InvalidMove", "turn payload must carry a cell index")
		return
	}

	that.gateway.Move(ctx, client.ID, *payload.Cell)
}

func (that *Server) handleRestart(ctx context.Context, client *Client, _ json.RawMessage) {
	that.gateway.Restart(ctx, client.ID)
}

func (that *Server) handleChat(ctx context.Context, client *Client, raw json.RawMessage) {
	var payload chatPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Text == "" {
		that.sendError(client, "NotInRoom", "chat payload must carry text")
		return
	}

	that.gateway.Chat(ctx, client.ID, payload.Text)
}
