package othello

import (
	"github.com/stig/Moth/board"
	"github.com/stig/Moth/move"
)

// run returns how many opponent cells lie between (x, y) and the first
// cell of player along d. It is 0 when the run is empty or is not closed
// off by a player cell.
func run(s *State, x, y int, d board.Direction, player board.Cell) int {
	opp := player.Opponent()
	n := 0
	tx, ty := x+d.DX, y+d.DY
	for board.InBounds(tx, ty, Size, Size) && s.board[tx][ty] == opp {
		n++
		tx += d.DX
		ty += d.DY
	}
	if n == 0 || !board.InBounds(tx, ty, Size, Size) || s.board[tx][ty] != player {
		return 0
	}
	return n
}

// IsLegal reports whether player may place a disc at (x, y).
func IsLegal(s *State, x, y int, player board.Cell) bool {
	if !board.InBounds(x, y, Size, Size) || s.board[x][y] != board.Empty {
		return false
	}
	for _, d := range board.Directions {
		if run(s, x, y, d, player) > 0 {
			return true
		}
	}
	return false
}

// HasLegalMove reports whether player has any placement at all.
func HasLegalMove(s *State, player board.Cell) bool {
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if IsLegal(s, x, y, player) {
				return true
			}
		}
	}
	return false
}

// Apply plays m for player and hands the move to the opponent. A pass is
// always accepted and touches no cell. A placement that flips nothing, or
// lies off the board, returns false and leaves s as it was.
func Apply(s *State, m *move.Move, player board.Cell) bool {
	if m.IsPass() {
		s.player = player.Opponent()
		return true
	}
	x, y := m.X(), m.Y()
	if !board.InBounds(x, y, Size, Size) || s.board[x][y] != board.Empty {
		return false
	}

	var runs [len(board.Directions)]int
	flipped := 0
	for i, d := range board.Directions {
		runs[i] = run(s, x, y, d, player)
		flipped += runs[i]
	}
	if flipped == 0 {
		return false
	}

	for i, d := range board.Directions {
		tx, ty := x, y
		for n := 0; n < runs[i]; n++ {
			tx += d.DX
			ty += d.DY
			s.board[tx][ty] = player
		}
	}
	s.board[x][y] = player
	s.player = player.Opponent()
	return true
}

// ForEachLegal calls f for every legal placement of the side to move and
// returns how many there were.
func ForEachLegal(s *State, f func(x, y int)) int {
	n := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if IsLegal(s, x, y, s.player) {
				f(x, y)
				n++
			}
		}
	}
	return n
}

// IsTerminal is true when neither player can place a disc. Whose turn it is
// does not matter.
func IsTerminal(s *State) bool {
	return !HasLegalMove(s, board.Player1) && !HasLegalMove(s, board.Player2)
}

// Winner returns the player holding more cells, or Empty on a tie.
func Winner(s *State) board.Cell {
	p1, p2 := s.Count(board.Player1), s.Count(board.Player2)
	switch {
	case p1 > p2:
		return board.Player1
	case p2 > p1:
		return board.Player2
	}
	return board.Empty
}
