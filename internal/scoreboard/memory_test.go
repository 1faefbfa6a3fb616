package scoreboard

import (
	"context"
	"testing"

	"github.com/gridgames/tictactoe-rooms/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryScoreboard(t *testing.T) {
	ctx := context.Background()

	t.Run("Totals of an unknown room are zero", func(t *testing.T) {
		// Given: a fresh scoreboard
		board := NewMemory()

		// When: asking for a room with no recorded games
		score, err := board.Totals(ctx, "r1")

		// Then: the zero score is returned
		require.NoError(t, err)
		assert.Equal(t, Score{}, score)
	})

	t.Run("Results accumulate per room", func(t *testing.T) {
		// Given: a scoreboard with a few finished games
		board := NewMemory()
		require.NoError(t, board.RecordResult(ctx, "r1", entity.MarkO))
		require.NoError(t, board.RecordResult(ctx, "r1", entity.MarkO))
		require.NoError(t, board.RecordResult(ctx, "r1", entity.MarkX))
		require.NoError(t, board.RecordResult(ctx, "r1", entity.MarkTie))
		require.NoError(t, board.RecordResult(ctx, "r2", entity.MarkX))

		// When: reading back the tallies
		score, err := board.Totals(ctx, "r1")
		require.NoError(t, err)

		// Then: only r1's games are counted
		assert.Equal(t, Score{CircleWins: 2, CrossWins: 1, Draws: 1}, score)

		other, err := board.Totals(ctx, "r2")
		require.NoError(t, err)
		assert.Equal(t, Score{CrossWins: 1}, other)
	})

	t.Run("Delete drops the tally", func(t *testing.T) {
		// Given: a room with one recorded win
		board := NewMemory()
		require.NoError(t, board.RecordResult(ctx, "r1", entity.MarkO))

		// When: the tally is deleted
		require.NoError(t, board.Delete(ctx, "r1"))

		// Then: totals are back to zero
		score, err := board.Totals(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, Score{}, score)
	})
}
