package connect4

import (
	"github.com/stig/Moth/game"
)

// Evaluate scores s for the side to move. A completed line decides the
// score outright; the mover's own line is checked first.
func Evaluate(s *State) int {
	me := s.player
	myscore := RunScore(s, me)
	if myscore == game.WinScore {
		return game.WinScore
	}
	oppscore := RunScore(s, me.Opponent())
	if oppscore == game.WinScore {
		return game.LossScore
	}
	return myscore - oppscore
}
