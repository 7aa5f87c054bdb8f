package connect4

import (
	"github.com/stig/Moth/board"
	"github.com/stig/Moth/game"
)

// DeadWindow is the contribution of a window that holds an opponent piece.
// Such windows can never become a line for the scoring player and are left
// out of the total.
const DeadWindow = -1 << 20

// Window is ToWin cells along one line, as (row, col) pairs.
type Window [ToWin][2]int

// windows lists every 4-cell window on the board: horizontal, vertical,
// and both diagonals.
var windows = allWindows()

func allWindows() []Window {
	var ws []Window
	add := func(r, c, dr, dc int) {
		var w Window
		for i := 0; i < ToWin; i++ {
			w[i] = [2]int{r + i*dr, c + i*dc}
		}
		ws = append(ws, w)
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c+ToWin <= Cols; c++ {
			add(r, c, 0, 1)
		}
	}
	for r := 0; r+ToWin <= Rows; r++ {
		for c := 0; c < Cols; c++ {
			add(r, c, 1, 0)
		}
	}
	for r := 0; r+ToWin <= Rows; r++ {
		for c := 0; c+ToWin <= Cols; c++ {
			add(r, c, 1, 1)
		}
	}
	for r := ToWin - 1; r < Rows; r++ {
		for c := 0; c+ToWin <= Cols; c++ {
			add(r, c, -1, 1)
		}
	}
	return ws
}

// Windows returns the number of scoring windows on the board.
func Windows() int { return len(windows) }

var pow10 = [ToWin]int{1, 10, 100, 1000}

// WindowScore scores one window for player: DeadWindow if the opponent has
// a piece in it, WinScore if player fills it, otherwise 10^(n-1) for n
// player pieces (0 for an empty window).
func WindowScore(s *State, w Window, player board.Cell) int {
	opp := player.Opponent()
	n := 0
	for _, rc := range w {
		switch s.board[rc[0]][rc[1]] {
		case opp:
			return DeadWindow
		case player:
			n++
		}
	}
	switch n {
	case 0:
		return 0
	case ToWin:
		return game.WinScore
	}
	return pow10[n-1]
}

// RunScore sums the live windows for player. It returns WinScore as soon as
// one window is complete.
func RunScore(s *State, player board.Cell) int {
	total := 0
	for _, w := range windows {
		sc := WindowScore(s, w, player)
		if sc == game.WinScore {
			return game.WinScore
		}
		if sc > 0 {
			total += sc
		}
	}
	return total
}
