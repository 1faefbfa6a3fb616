// Package gateway translates client intents into registry and room
// operations, and fans resulting state out to every session bound to the
// room. Errors are always answered to the originating session alone and are
// never broadcast.
package gateway

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
	"github.com/gridgames/tictactoe-rooms/internal/commentary"
	"github.com/gridgames/tictactoe-rooms/internal/entity"
	"github.com/gridgames/tictactoe-rooms/internal/registry"
	"github.com/gridgames/tictactoe-rooms/internal/scoreboard"
)

type Gateway struct {
	logger *slog.Logger

	registry    *registry.Registry
	scores      scoreboard.Scoreboard
	commentator commentary.Generator
	notifier    Notifier

	bindingsMutex sync.Mutex
	bindings      map[string]string // session ID -> room ID
}

func New(logger *slog.Logger, reg *registry.Registry, scores scoreboard.Scoreboard, commentator commentary.Generator, notifier Notifier) *Gateway {
	return &Gateway{
		logger: logger,

		registry:    reg,
		scores:      scores,
		commentator: commentator,
		notifier:    notifier,

		bindings: make(map[string]string),
	}
}

// Join attaches the session to the room with the given ID, or creates a new
// room when the ID is empty. The joiner alone learns its assigned mark; both
// players get a game-start broadcast once the room fills up.
func (that *Gateway) Join(ctx context.Context, sessionID, roomID string) {
	log := that.logger.With("method", "Join", "sessionID", sessionID)

	var room *entity.Room
	if roomID == "" {
		room = that.registry.CreateRoom()
		log.Info("created room", "roomID", room.ID())
	} else {
		var err error
		room, err = that.registry.GetRoom(roomID)
		if err != nil {
			that.replyError(sessionID, err)
			return
		}
	}

	mark, started, err := room.Join(sessionID)
	if err != nil {
		that.replyError(sessionID, err)
		return
	}

	// A session hopping rooms gives up its old slot first, so the old room
	// can still reach zero occupancy and be deleted.
	if previous, bound := that.currentBinding(sessionID); bound && previous != room.ID() {
		that.release(ctx, sessionID, previous)
	}

	that.bind(sessionID, room.ID())

	that.notifier.Unicast(sessionID, Event{
		Action:  ActionJoined,
		Payload: JoinedPayload{RoomID: room.ID(), Mark: mark},
	})

	if started {
		snapshot := room.Snapshot()
		that.notifier.Broadcast(room.Sessions(), Event{
			Action:  ActionGameStart,
			Payload: StatePayload{Snapshot: snapshot},
		})
		log.Info("game started", "roomID", room.ID())
		return
	}

	that.notifier.Unicast(sessionID, Event{
		Action:  ActionWaiting,
		Payload: WaitingPayload{RoomID: room.ID()},
	})
}

// Move applies one turn. Successful moves are broadcast to the whole room; a
// terminal move also records the result on the scoreboard and kicks off a
// fire-and-forget commentary request.
func (that *Gateway) Move(ctx context.Context, sessionID string, cell int) {
	log := that.logger.With("method", "Move", "sessionID", sessionID)

	room, err := that.boundRoom(sessionID)
	if err != nil {
		that.replyError(sessionID, err)
		return
	}

	snapshot, err := room.Move(sessionID, cell)
	if err != nil {
		that.replyError(sessionID, err)
		return
	}

	payload := StatePayload{Snapshot: snapshot}

	if snapshot.IsFinished() {
		if err = that.scores.RecordResult(ctx, room.ID(), snapshot.Winner); err != nil {
			log.Error("failed to record result", "roomID", room.ID(), "error", err)
		}

		if totals, scoreErr := that.scores.Totals(ctx, room.ID()); scoreErr == nil {
			payload.Scores = &totals
		} else {
			log.Error("failed to get totals", "roomID", room.ID(), "error", scoreErr)
		}
	}

	that.notifier.Broadcast(room.Sessions(), Event{
		Action:  ActionGameState,
		Payload: payload,
	})

	if snapshot.IsFinished() {
		that.announceOutcome(ctx, room, snapshot)
	}
}

// Restart resets the bound room's game. Slots and scores survive.
func (that *Gateway) Restart(ctx context.Context, sessionID string) {
	room, err := that.boundRoom(sessionID)
	if err != nil {
		that.replyError(sessionID, err)
		return
	}

	snapshot := room.Restart()

	that.notifier.Broadcast(room.Sessions(), Event{
		Action:  ActionGameRestarted,
		Payload: StatePayload{Snapshot: snapshot},
	})
}

// Chat relays a message to every session in the sender's room, the sender
// included, tagged with the sender's mark and ID.
func (that *Gateway) Chat(ctx context.Context, sessionID, text string) {
	room, err := that.boundRoom(sessionID)
	if err != nil {
		that.replyError(sessionID, err)
		return
	}

	mark, ok := room.PlayerMark(sessionID)
	if !ok {
		that.replyError(sessionID, apperror.ErrNotInRoom)
		return
	}

	that.notifier.Broadcast(room.Sessions(), Event{
		Action:  ActionChat,
		Payload: ChatPayload{Text: text, Mark: mark, Sender: sessionID},
	})
}

// Disconnect releases the session's slot. The last player leaving tears the
// room down; otherwise the remaining player is told its opponent left.
func (that *Gateway) Disconnect(ctx context.Context, sessionID string) {
	roomID, ok := that.unbind(sessionID)
	if !ok {
		return
	}

	that.release(ctx, sessionID, roomID)
}

// release frees the session's slot in the given room: the last player out
// tears the room and its tally down, otherwise the remaining player is
// notified.
func (that *Gateway) release(ctx context.Context, sessionID, roomID string) {
	log := that.logger.With("method", "release", "sessionID", sessionID)

	room, err := that.registry.GetRoom(roomID)
	if err != nil {
		return
	}

	remaining := room.Leave(sessionID)
	if remaining == 0 {
		that.registry.DeleteRoom(roomID)

		if err = that.scores.Delete(ctx, roomID); err != nil {
			log.Error("failed to delete score", "roomID", roomID, "error", err)
		}

		log.Info("room deleted", "roomID", roomID)
		return
	}

	that.notifier.Broadcast(room.Sessions(), Event{
		Action:  ActionOpponentLeft,
		Payload: OpponentLeftPayload{RoomID: roomID},
	})
}

// announceOutcome asks the commentary generator for a closing line off the
// hot path and pushes it to the room when it arrives.
func (that *Gateway) announceOutcome(ctx context.Context, room *entity.Room, snapshot entity.Snapshot) {
	sessions := room.Sessions()
	detached := context.WithoutCancel(ctx)

	go func() {
		text := that.commentator.Remark(detached, outcomeDescription(snapshot))

		that.notifier.Broadcast(sessions, Event{
			Action:  ActionCommentary,
			Payload: CommentaryPayload{Text: text},
		})
	}()
}

func outcomeDescription(snapshot entity.Snapshot) string {
	switch snapshot.Winner {
	case entity.MarkO:
		return "circle won the game"
	case entity.MarkX:
		return "cross won the game"
	default:
		return "the game ended in a draw"
	}
}

func (that *Gateway) boundRoom(sessionID string) (*entity.Room, error) {
	that.bindingsMutex.Lock()
	roomID, ok := that.bindings[sessionID]
	that.bindingsMutex.Unlock()

	if !ok {
		return nil, apperror.ErrNotInRoom
	}

	room, err := that.registry.GetRoom(roomID)
	if err != nil {
		return nil, apperror.ErrNotInRoom
	}

	return room, nil
}

func (that *Gateway) currentBinding(sessionID string) (string, bool) {
	that.bindingsMutex.Lock()
	defer that.bindingsMutex.Unlock()

	roomID, ok := that.bindings[sessionID]

	return roomID, ok
}

func (that *Gateway) bind(sessionID, roomID string) {
	that.bindingsMutex.Lock()
	defer that.bindingsMutex.Unlock()

	that.bindings[sessionID] = roomID
}

func (that *Gateway) unbind(sessionID string) (string, bool) {
	that.bindingsMutex.Lock()
	defer that.bindingsMutex.Unlock()

	roomID, ok := that.bindings[sessionID]
	delete(that.bindings, sessionID)

	return roomID, ok
}

func (that *Gateway) replyError(sessionID string, err error) {
	that.notifier.Unicast(sessionID, Event{
		Action:  ActionError,
		Payload: ErrorPayload{Kind: apperror.Kind(err), Message: err.Error()},
	})
}
