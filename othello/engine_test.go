package othello

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/game"
	"github.com/stig/Moth/move"
)

func TestHeuristicIsMirrored(t *testing.T) {
	is := is.New(t)
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			is.Equal(Weight(x, y), Weight(Size-1-x, y))
			is.Equal(Weight(x, y), Weight(x, Size-1-y))
		}
	}
	is.Equal(Weight(0, 0), 9)
	is.Equal(Weight(1, 1), 1)
}

func TestEvaluate(t *testing.T) {
	is := is.New(t)
	s := NewState()
	is.Equal(Evaluate(s), 0)

	is.True(Apply(s, move.NewPlacementMove(2, 3), board.Player1))
	// Player 2 to move: 1 against 5+1+1+1.
	is.Equal(Evaluate(s), -7)
}

func TestEvaluateZeroPieces(t *testing.T) {
	is := is.New(t)
	s := NewState()
	s.Clear(board.Player1)
	s.Set(0, 0, board.Player1)
	is.Equal(Evaluate(s), game.WinScore)
	s.SetPlayerOnTurn(board.Player2)
	is.Equal(Evaluate(s), game.LossScore)
}

func TestEngineApplyIsCopyOnWrite(t *testing.T) {
	is := is.New(t)
	e := NewEngine(0)
	s := e.NewState()
	next, err := e.Apply(s, move.NewPlacementMove(2, 3))
	is.NoErr(err)
	is.Equal(s.At(3, 3), board.Player2)
	is.Equal(next.At(3, 3), board.Player1)
	is.Equal(next.PlayerOnTurn(), board.Player2)

	e.Release(next)
	e.Release(s)
	is.Equal(e.PoolStats().StatesOutstanding, 0)
}

func TestEngineIllegalApply(t *testing.T) {
	is := is.New(t)
	e := NewEngine(0)
	s := e.NewState()
	before := e.PoolStats()

	_, err := e.Apply(s, move.NewPlacementMove(0, 0))
	is.True(errors.Is(err, game.ErrIllegalMove))
	_, err = e.Apply(s, move.NewDropMove(3))
	is.True(errors.Is(err, game.ErrIllegalMove))
	is.Equal(e.PoolStats().StatesOutstanding, before.StatesOutstanding)
}

func TestEngineMovesArePooled(t *testing.T) {
	is := is.New(t)
	e := NewEngine(0)
	s := e.NewState()
	var buf []*move.Move
	buf = e.LegalMoves(s, buf)
	is.Equal(len(buf), 4)
	is.Equal(e.PoolStats().MovesOutstanding, 4)
	e.ReleaseMoves(buf)
	is.Equal(e.PoolStats().MovesOutstanding, 0)

	buf = e.LegalMoves(s, buf)
	is.Equal(len(buf), 4)
	is.Equal(e.PoolStats().MovesAllocated, 4)
}

func TestEngineWinnerOnlyWhenOver(t *testing.T) {
	is := is.New(t)
	e := NewEngine(0)
	s := e.NewState()
	is.Equal(e.Winner(s), board.Empty)

	st := s.(*State)
	st.Clear(board.Player1)
	st.Set(0, 0, board.Player2)
	st.Set(7, 7, board.Player2)
	st.Set(4, 4, board.Player1)
	is.True(e.IsTerminal(s))
	is.Equal(e.Winner(s), board.Player2)
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	old := board.ColorSupport
	board.ColorSupport = false
	defer func() { board.ColorSupport = old }()

	e := NewEngine(0)
	out := e.ToDisplayText(e.NewState())
	lines := strings.Split(out, "\n")
	is.Equal(lines[0], "    0   1   2   3   4   5   6   7  ")
	is.Equal(lines[1], "  +---+---+---+---+---+---+---+---+")
	is.Equal(lines[8], "3 |   |   |   | 2 | 1 |   |   |   |")
}
