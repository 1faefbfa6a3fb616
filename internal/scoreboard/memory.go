package scoreboard

import (
	"context"
	"sync"

	"github.com/gridgames/tictactoe-rooms/internal/entity"
)

type memoryScoreboard struct {
	mu     sync.Mutex
	scores map[string]Score
}

func NewMemory() Scoreboard {
	return &memoryScoreboard{
		scores: make(map[string]Score),
	}
}

func (that *memoryScoreboard) RecordResult(_ context.Context, roomID, winner string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	score := that.scores[roomID]

	switch winner {
	case entity.MarkO:
		score.CircleWins++
	case entity.MarkX:
		score.CrossWins++
	case entity.MarkTie:
		score.Draws++
	}

	that.scores[roomID] = score

	return nil
}

func (that *memoryScoreboard) Totals(_ context.Context, roomID string) (Score, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.scores[roomID], nil
}

func (that *memoryScoreboard) Delete(_ context.Context, roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.scores, roomID)

	return nil
}
