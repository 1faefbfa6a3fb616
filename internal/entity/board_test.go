package entity

import (
	"testing"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Apply(t *testing.T) {
	t.Run("Places mark into an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: applying a move to cell 4
		err := board.Apply(4, MarkO)

		// Then: the cell holds the mark and no other cell changed
		require.NoError(t, err)
		assert.Equal(t, MarkO, board[4])
		for i, cell := range board {
			if i == 4 {
				continue
			}
			assert.Equal(t, EmptyCell, cell)
		}
	})

	t.Run("Returns ErrCellOccupied for a taken cell", func(t *testing.T) {
		// Given: a board with cell 0 occupied
		board := NewBoard()
		require.NoError(t, board.Apply(0, MarkO))

		// When: the other mark targets the same cell
		err := board.Apply(0, MarkX)

		// Then: ErrCellOccupied is returned and the cell keeps its mark
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, MarkO, board[0])
	})

	t.Run("Returns ErrInvalidCell for an index above the range", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: applying a move outside the grid
		err := board.Apply(9, MarkO)

		// Then: ErrInvalidCell is returned and the board stays empty
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Equal(t, NewBoard(), board)
	})

	t.Run("Returns ErrInvalidCell for a negative index", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: applying a move with a negative index
		err := board.Apply(-1, MarkX)

		// Then: ErrInvalidCell is returned
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})
}

func TestBoard_HasWin(t *testing.T) {
	t.Run("Detects every canonical winning triple", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board where MarkX holds exactly one triple
			board := NewBoard()
			for _, cell := range combo {
				board[cell] = MarkX
			}

			// Then: the triple wins for MarkX and not for MarkO
			assert.True(t, board.HasWin(MarkX), "combo %v", combo)
			assert.False(t, board.HasWin(MarkO), "combo %v", combo)
		}
	})

	t.Run("Returns false for a full board with no triple", func(t *testing.T) {
		// Given: a drawn board
		board := Board{
			MarkO, MarkX, MarkO,
			MarkX, MarkO, MarkX,
			MarkX, MarkO, MarkX,
		}

		// Then: neither mark wins, but the board is full
		assert.False(t, board.HasWin(MarkO))
		assert.False(t, board.HasWin(MarkX))
		assert.True(t, board.IsFull())
	})

	t.Run("Returns false for a mixed triple", func(t *testing.T) {
		// Given: a row shared by both marks
		board := NewBoard()
		board[0], board[1], board[2] = MarkO, MarkX, MarkO

		// Then: nobody wins
		assert.False(t, board.HasWin(MarkO))
		assert.False(t, board.HasWin(MarkX))
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Returns false while any cell is empty", func(t *testing.T) {
		// Given: a board with a single free cell
		board := Board{
			MarkO, MarkX, MarkO,
			MarkX, MarkO, MarkX,
			MarkX, MarkO, EmptyCell,
		}

		assert.False(t, board.IsFull())
	})

	t.Run("Returns true once all nine cells are taken", func(t *testing.T) {
		board := Board{
			MarkO, MarkX, MarkO,
			MarkX, MarkO, MarkX,
			MarkX, MarkO, MarkX,
		}

		assert.True(t, board.IsFull())
	})
}
