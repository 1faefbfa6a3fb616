package entity

import (
	"fmt"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
)

const (
	// MarkO is the "circle" role. It is assigned to the first joiner and
	// always moves first, both on game start and after a restart.
	MarkO = "O"
	// MarkX is the "cross" role, assigned to the second joiner.
	MarkX = "X"

	// MarkTie is reported as the winner of a drawn game.
	MarkTie = "-"

	EmptyCell = ""

	BoardSize = 9
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid, row-major. Cells hold MarkO, MarkX or EmptyCell.
type Board [BoardSize]string

func NewBoard() Board {
	return Board{}
}

// Apply places mark into the given cell. The board is left untouched on error.
func (that *Board) Apply(cell int, mark string) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that[cell] = mark

	return nil
}

// HasWin reports whether mark occupies one of the eight winning triples.
func (that *Board) HasWin(mark string) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

// IsFull reports whether no empty cell remains. Callers must check HasWin
// first: a final move can fill the board and win at the same time.
func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func toggleMark(mark string) string {
	if mark == MarkO {
		return MarkX
	}

	return MarkO
}
