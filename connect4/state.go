package connect4

import (
	"github.com/stig/Moth/board"
)

const (
	Rows = 6
	Cols = 7
	// ToWin is the length of a winning line.
	ToWin = 4
)

// State is a 6x7 position. Row 0 is the top row; pieces fall towards
// row Rows-1.
type State struct {
	board  [Rows][Cols]board.Cell
	player board.Cell
}

// NewState returns an empty board with Player1 to move.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

func (s *State) Reset() {
	s.board = [Rows][Cols]board.Cell{}
	s.player = board.Player1
}

func (s *State) CopyFrom(o *State) {
	*s = *o
}

func (s *State) PlayerOnTurn() board.Cell     { return s.player }
func (s *State) SetPlayerOnTurn(p board.Cell) { s.player = p }
func (s *State) Dims() (int, int)             { return Rows, Cols }
func (s *State) At(row, col int) board.Cell   { return s.board[row][col] }
func (s *State) Set(row, col int, c board.Cell) {
	s.board[row][col] = c
}

// Count returns the number of cells holding c.
func (s *State) Count(c board.Cell) int {
	n := 0
	for r := 0; r < Rows; r++ {
		for col := 0; col < Cols; col++ {
			if s.board[r][col] == c {
				n++
			}
		}
	}
	return n
}
