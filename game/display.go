package game

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stig/Moth/board"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// ToDisplayText draws the board with the side to move, the piece count and
// the last move alongside it.
func (g *Game) ToDisplayText() string {
	bt := g.rules.ToDisplayText(g.cur)
	bts := strings.Split(bt, "\n")
	hpadding := 3
	vpadding := 2

	p1, p2 := g.Score()
	addText(bts, vpadding, hpadding, fmt.Sprintf("Turn %d", g.Turn()))
	addText(bts, vpadding+1, hpadding, fmt.Sprintf("Pieces: %d - %d", p1, p2))
	if n := g.Turn(); n > 0 {
		addText(bts, vpadding+2, hpadding,
			"Last move: "+g.history[n-1].ShortDescription())
	}
	if g.Playing() {
		addText(bts, vpadding+4, hpadding,
			fmt.Sprintf("%s to move", cases.Title(language.English).String(g.PlayerOnTurn().String())))
	} else {
		addText(bts, vpadding+4, hpadding, GameOverText(g.Winner()))
	}
	return strings.Join(bts, "\n")
}

// GameOverText is the line printed once a game has ended.
func GameOverText(winner board.Cell) string {
	switch winner {
	case board.Player1:
		return "Player 1 won!"
	case board.Player2:
		return "Player 2 won!"
	}
	return "The game ended in a draw"
}
