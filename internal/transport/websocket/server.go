package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridgames/tictactoe-rooms/internal/gateway"
)

// intentGateway is the slice of the gateway the transport needs: one call per
// client intent. All replies come back through the Notifier side.
type intentGateway interface {
	Join(ctx context.Context, sessionID, roomID string)
	Move(ctx context.Context, sessionID string, cell int)
	Restart(ctx context.Context, sessionID string)
	Chat(ctx context.Context, sessionID, text string)
	Disconnect(ctx context.Context, sessionID string)
}

type Server struct {
	logger  *slog.Logger
	gateway intentGateway

	upgrader websocket.Upgrader

	clientsMutex sync.RWMutex
	clients      map[string]*Client

	handlers map[string]func(ctx context.Context, client *Client, payload json.RawMessage)
}

func New(logger *slog.Logger) *Server {
	server := &Server{
		logger: logger,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Room codes are the only admission control; origins stay open.
			CheckOrigin: func(*http.Request) bool { return true },
		},

		clients: make(map[string]*Client),
	}

	server.handlers = map[string]func(context.Context, *Client, json.RawMessage){
		"room:join":    server.handleJoin,
		"game:turn":    server.handleTurn,
		"game:restart": server.handleRestart,
		"room:chat":    server.handleChat,
	}

	return server
}

// SetGateway wires the intent sink in after construction: the gateway needs
// the server as its Notifier, so the two are linked once both exist.
func (that *Server) SetGateway(gw intentGateway) {
	that.gateway = gw
}

// Start - starts the WebSocket server and blocks until it fails or the
// context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS upgrades the connection and runs the session until it drops.
func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(that.logger, conn)
	that.addClient(client)

	log.Info("session connected", "sessionID", client.ID)

	connCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		that.removeClient(client)
		that.gateway.Disconnect(ctx, client.ID)
		_ = conn.Close()
		log.Info("session disconnected", "sessionID", client.ID)
	}()

	go client.writeMessages(connCtx)
	client.readMessages(connCtx, that.routeMessage)
}

// routeMessage dispatches one inbound message. A nil message means the frame
// could not be decoded; the sender gets an error reply and the session lives on.
func (that *Server) routeMessage(ctx context.Context, client *Client, msg *Message) {
	if msg == nil {
		that.sendError(client, "InvalidMove", "malformed message")
		return
	}

	handler, ok := that.handlers[msg.Action]
	if !ok {
		that.sendError(client, "InvalidMove", fmt.Sprintf("unknown action %q", msg.Action))
		return
	}

	handler(ctx, client, msg.Payload)
}

// Unicast implements gateway.Notifier for a single session.
func (that *Server) Unicast(sessionID string, event gateway.Event) {
	that.clientsMutex.RLock()
	client, ok := that.clients[sessionID]
	that.clientsMutex.RUnlock()

	if !ok {
		that.logger.Warn("connection not found for session", "sessionID", sessionID)
		return
	}

	that.deliver(client, event)
}

// Broadcast implements gateway.Notifier for a room's session set.
func (that *Server) Broadcast(sessionIDs []string, event gateway.Event) {
	for _, sessionID := range sessionIDs {
		that.Unicast(sessionID, event)
	}
}

func (that *Server) deliver(client *Client, event gateway.Event) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		that.logger.Error("failed to marshal payload", "action", event.Action, "error", err)
		return
	}

	client.send(Message{Action: event.Action, Payload: payload})
}

func (that *Server) sendError(client *Client, kind, message string) {
	that.deliver(client, gateway.Event{
		Action:  gateway.ActionError,
		Payload: gateway.ErrorPayload{Kind: kind, Message: message},
	})
}

func (that *Server) addClient(client *Client) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	that.clients[client.ID] = client
}

func (that *Server) removeClient(client *Client) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	delete(that.clients, client.ID)
}
