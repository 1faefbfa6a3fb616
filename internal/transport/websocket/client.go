package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridgames/tictactoe-rooms/internal/pkg"
)

const (
	pongWait     = 30 * time.Second
	pingInterval = (pongWait * 9) / 10
	writeWait    = 10 * time.Second

	maxMessageSize = 1024
	egressBuffer   = 32
)

// Client is one live connection: a session in room terms. Reads and writes
// run in their own goroutines; everything written goes through the egress
// channel so a single writer owns the connection.
type Client struct {
	ID string

	logger *slog.Logger
	conn   *websocket.Conn
	egress chan Message
}

func newClient(logger *slog.Logger, conn *websocket.Conn) *Client {
	id := pkg.GenerateSessionID()

	return &Client{
		ID: id,

		logger: logger.With("sessionID", id),
		conn:   conn,
		egress: make(chan Message, egressBuffer),
	}
}

// send queues a message for delivery. A session that cannot keep up has its
// message dropped rather than stalling the room.
func (that *Client) send(msg Message) {
	select {
	case that.egress <- msg:
	default:
		that.logger.Warn("egress buffer full, dropping message", "action", msg.Action)
	}
}

// readMessages consumes inbound frames and hands decoded messages to handle.
// Returns when the connection drops or the context is canceled.
func (that *Client) readMessages(ctx context.Context, handle func(context.Context, *Client, *Message)) {
	that.conn.SetReadLimit(maxMessageSize)

	if err := that.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		that.logger.Error("failed to set read deadline", "error", err)
		return
	}

	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.logger.Error("error reading message", "error", err)
			}
			return
		}

		var msg Message
		if err = json.Unmarshal(raw, &msg); err != nil {
			that.logger.Warn("malformed message", "error", err)
			handle(ctx, that, nil)
			continue
		}

		handle(ctx, that, &msg)
	}
}

// writeMessages drains the egress channel onto the connection and keeps the
// connection alive with periodic pings.
func (that *Client) writeMessages(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-that.egress:
			data, err := json.Marshal(msg)
			if err != nil {
				that.logger.Error("failed to marshal message", "error", err)
				continue
			}

			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				that.logger.Error("failed to write message", "error", err)
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
