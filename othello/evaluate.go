package othello

import (
	"github.com/stig/Moth/game"
)

// heuristic weights corners and edges highest and the squares next to the
// centre lowest. It is symmetric about both axes and never written to.
var heuristic = [Size][Size]int{
	{9, 2, 7, 8, 8, 7, 2, 9},
	{2, 1, 3, 4, 4, 3, 1, 2},
	{7, 3, 6, 5, 5, 6, 3, 7},
	{8, 4, 5, 1, 1, 5, 4, 8},
	{8, 4, 5, 1, 1, 5, 4, 8},
	{7, 3, 6, 5, 5, 6, 3, 7},
	{2, 1, 3, 4, 4, 3, 1, 2},
	{9, 2, 7, 8, 8, 7, 2, 9},
}

// Weight returns the positional weight of (x, y).
func Weight(x, y int) int {
	return heuristic[x][y]
}

// Evaluate scores s for the side to move. A side with no discs left has
// lost outright; that check comes before the weighted difference.
func Evaluate(s *State) int {
	me := s.player
	opp := me.Opponent()
	myscore, oppscore := 0, 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			switch s.board[x][y] {
			case me:
				myscore += heuristic[x][y]
			case opp:
				oppscore += heuristic[x][y]
			}
		}
	}
	if myscore == 0 {
		return game.LossScore
	}
	if oppscore == 0 {
		return game.WinScore
	}
	return myscore - oppscore
}
