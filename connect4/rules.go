package connect4

import (
	"github.com/stig/Moth/board"
	"github.com/stig/Moth/game"
)

// IsLegal reports whether col can take another piece.
func IsLegal(s *State, col int) bool {
	return col >= 0 && col < Cols && s.board[0][col] == board.Empty
}

// Apply drops a piece for player into col and hands the move to the
// opponent. It returns false, changing nothing, when the column is out of
// range or full.
func Apply(s *State, col int, player board.Cell) bool {
	if !IsLegal(s, col) {
		return false
	}
	r := Rows - 1
	for s.board[r][col] != board.Empty {
		r--
	}
	s.board[r][col] = player
	s.player = player.Opponent()
	return true
}

// ForEachLegal calls f for every open column and returns how many there
// were.
func ForEachLegal(s *State, f func(col int)) int {
	n := 0
	for col := 0; col < Cols; col++ {
		if s.board[0][col] == board.Empty {
			f(col)
			n++
		}
	}
	return n
}

// Full reports whether the top row is occupied.
func Full(s *State) bool {
	for col := 0; col < Cols; col++ {
		if s.board[0][col] == board.Empty {
			return false
		}
	}
	return true
}

// HasFour reports whether player owns a complete line.
func HasFour(s *State, player board.Cell) bool {
	return RunScore(s, player) == game.WinScore
}

// IsTerminal is true once either side has four in a row or the board is
// full.
func IsTerminal(s *State) bool {
	return HasFour(s, board.Player1) || HasFour(s, board.Player2) || Full(s)
}

// Winner is the owner of a four-in-a-row, or Empty.
func Winner(s *State) board.Cell {
	switch {
	case HasFour(s, board.Player1):
		return board.Player1
	case HasFour(s, board.Player2):
		return board.Player2
	}
	return board.Empty
}
