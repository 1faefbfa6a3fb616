package entity

import (
	"sync"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

const maxPlayers = 2

// Room is one isolated game: a board, the turn marker and up to two bound
// sessions. All state transitions go through its methods; the internal mutex
// serializes concurrent intents so two moves can never land in the same turn.
type Room struct {
	mu sync.Mutex

	id      string
	board   Board
	turn    string
	status  string
	winner  string
	players map[string]string // session ID -> mark
}

// Snapshot is a consistent copy of the room state, safe to hand to transports.
type Snapshot struct {
	RoomID string    `json:"room_id"`
	Board  [9]string `json:"board"`
	Turn   string    `json:"turn,omitempty"`
	Status string    `json:"status"`
	Winner string    `json:"winner,omitempty"`
}

func NewRoom(id string) *Room {
	return &Room{
		id:      id,
		board:   NewBoard(),
		turn:    MarkO,
		status:  StatusWaiting,
		players: make(map[string]string),
	}
}

func (that *Room) ID() string {
	return that.id
}

// Join assigns a mark to the session: MarkO for the first joiner, the free
// mark for the second, so no mark is ever held by two sessions. The started
// flag is true only on the waiting->ongoing transition, so game-start is
// broadcast exactly once. Joining again with a session that already holds a
// slot returns its existing mark.
func (that *Room) Join(sessionID string) (mark string, started bool, err error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok := that.players[sessionID]; ok {
		return existing, false, nil
	}

	if len(that.players) >= maxPlayers {
		return "", false, apperror.ErrRoomFull
	}

	// A slot vacated mid-game is never refilled; the room becomes joinable
	// again only once a restart puts it back into waiting.
	if len(that.players) == 1 && that.status != StatusWaiting {
		return "", false, apperror.ErrRoomFull
	}

	mark = MarkO
	for _, held := range that.players {
		// one slot is taken: the joiner gets whichever mark is free
		mark = toggleMark(held)
	}

	that.players[sessionID] = mark

	if len(that.players) == maxPlayers && that.status == StatusWaiting {
		that.status = StatusOngoing
		started = true
	}

	return mark, started, nil
}

// Move validates and applies one turn for the given session. On any error the
// room state is left unchanged. On success the win check runs first with the
// mark that just moved, then the draw check, then the turn flips.
func (that *Room) Move(sessionID string, cell int) (Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	mark, ok := that.players[sessionID]
	if !ok {
		return Snapshot{}, apperror.ErrNotInRoom
	}

	switch that.status {
	case StatusFinished:
		return Snapshot{}, apperror.ErrGameFinished
	case StatusWaiting:
		return Snapshot{}, apperror.ErrGameIsNotStarted
	}

	if that.turn != mark {
		return Snapshot{}, apperror.ErrNotYourTurn
	}

	if err := that.board.Apply(cell, mark); err != nil {
		return Snapshot{}, err
	}

	switch {
	case that.board.HasWin(mark):
		that.status = StatusFinished
		that.winner = mark
		that.turn = EmptyCell
	case that.board.IsFull():
		that.status = StatusFinished
		that.winner = MarkTie
		that.turn = EmptyCell
	default:
		that.turn = toggleMark(mark)
	}

	return that.snapshot(), nil
}

// Restart clears the board and gives the first move back to MarkO. Slot
// assignments are preserved; a half-empty room drops back to waiting.
func (that *Room) Restart() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = NewBoard()
	that.turn = MarkO
	that.winner = EmptyCell

	if len(that.players) == maxPlayers {
		that.status = StatusOngoing
	} else {
		that.status = StatusWaiting
	}

	return that.snapshot()
}

// Leave releases the session's slot and returns how many players remain.
// The board and turn state are deliberately untouched: a vacated slot is
// never reassigned mid-game, the remaining player has to start a fresh room.
func (that *Room) Leave(sessionID string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.players, sessionID)

	return len(that.players)
}

// PlayerMark returns the mark held by the session, if any.
func (that *Room) PlayerMark(sessionID string) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	mark, ok := that.players[sessionID]

	return mark, ok
}

// Sessions returns the IDs of all sessions bound to the room. This is the
// broadcast set: the gateway fans state out to exactly these sessions.
func (that *Room) Sessions() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	ids := make([]string, 0, len(that.players))
	for id := range that.players {
		ids = append(ids, id)
	}

	return ids
}

func (that *Room) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Room) snapshot() Snapshot {
	return Snapshot{
		RoomID: that.id,
		Board:  that.board,
		Turn:   that.turn,
		Status: that.status,
		Winner: that.winner,
	}
}

func (that *Snapshot) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Snapshot) IsDraw() bool {
	return that.Winner == MarkTie
}
