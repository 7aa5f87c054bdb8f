package othello

import (
	"github.com/stig/Moth/board"
)

// Size is the board dimension.
const Size = 8

// State is an 8x8 position. The first index is x, the second y.
type State struct {
	board  [Size][Size]board.Cell
	player board.Cell
}

// NewState returns the opening position with Player1 to move.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset sets up the opening cross in the centre.
func (s *State) Reset() {
	s.board = [Size][Size]board.Cell{}
	s.board[3][3] = board.Player2
	s.board[4][4] = board.Player2
	s.board[3][4] = board.Player1
	s.board[4][3] = board.Player1
	s.player = board.Player1
}

// Clear empties the board and gives the move to p.
func (s *State) Clear(p board.Cell) {
	s.board = [Size][Size]board.Cell{}
	s.player = p
}

func (s *State) CopyFrom(o *State) {
	*s = *o
}

func (s *State) PlayerOnTurn() board.Cell     { return s.player }
func (s *State) SetPlayerOnTurn(p board.Cell) { s.player = p }
func (s *State) Dims() (int, int)             { return Size, Size }
func (s *State) At(x, y int) board.Cell       { return s.board[x][y] }
func (s *State) Set(x, y int, c board.Cell)   { s.board[x][y] = c }

// Count returns the number of cells holding c.
func (s *State) Count(c board.Cell) int {
	n := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if s.board[x][y] == c {
				n++
			}
		}
	}
	return n
}
