package apperror

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrNotInRoom        = errors.New("player is not in a room")
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrCellOccupied     = errors.New("cell is already occupied")
)

// Kind maps a sentinel error to the error kind sent over the wire.
// Unknown errors are reported as invalid input rather than leaked as-is.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "RoomNotFound"
	case errors.Is(err, ErrRoomFull):
		return "RoomFull"
	case errors.Is(err, ErrNotInRoom):
		return "NotInRoom"
	case errors.Is(err, ErrGameFinished):
		return "GameEnded"
	case errors.Is(err, ErrGameIsNotStarted):
		return "GameNotStarted"
	case errors.Is(err, ErrNotYourTurn):
		return "WrongTurn"
	default:
		return "InvalidMove"
	}
}
