// Package scoreboard keeps per-room win tallies. A tally lives as long as its
// room: restarts preserve it, teardown removes it. The Redis implementation
// lets several coordinator processes share tallies; the in-memory one serves
// single-process deployments and tests.
package scoreboard

import "context"

// Score is the running tally for one room.
type Score struct {
	CircleWins int `json:"circle_wins"`
	CrossWins  int `json:"cross_wins"`
	Draws      int `json:"draws"`
}

type Scoreboard interface {
	// RecordResult increments the tally for a terminal outcome. The winner
	// argument is a mark, or entity.MarkTie for a draw.
	RecordResult(ctx context.Context, roomID, winner string) error
	// Totals returns the room's tally; a room with no recorded games yields
	// the zero Score.
	Totals(ctx context.Context, roomID string) (Score, error)
	// Delete drops the tally, typically when its room is torn down.
	Delete(ctx context.Context, roomID string) error
}
