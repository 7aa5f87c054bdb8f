package connect4

import (
	"fmt"
	"strings"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/game"
	"github.com/stig/Moth/move"
	"github.com/stig/Moth/pool"
)

const Name = "connect4"

// Engine adapts the column-drop rules to game.Rules.
type Engine struct {
	states *pool.Pool[State]
	moves  *pool.Pool[move.Move]
}

var _ game.Rules = (*Engine)(nil)

func NewEngine(capacity int) *Engine {
	return &Engine{
		states: pool.New(Name+"-states", capacity, func() *State { return &State{} }),
		moves:  pool.New(Name+"-moves", capacity, func() *move.Move { return &move.Move{} }),
	}
}

func (e *Engine) Name() string            { return Name }
func (e *Engine) MoveKind() move.MoveType { return move.MoveTypeDrop }

func (e *Engine) NewState() game.State {
	s := e.states.Borrow()
	s.Reset()
	return s
}

func (e *Engine) CopyState(s game.State) game.State {
	c := e.states.Borrow()
	c.CopyFrom(s.(*State))
	return c
}

func (e *Engine) Release(s game.State) {
	if s == nil {
		return
	}
	e.states.Return(s.(*State))
}

// LegalMoves yields one drop per open column; there is no pass in this
// game, so a full board yields nothing.
func (e *Engine) LegalMoves(s game.State, buf []*move.Move) []*move.Move {
	buf = buf[:0]
	ForEachLegal(s.(*State), func(col int) {
		m := e.moves.Borrow()
		m.SetDrop(col)
		buf = append(buf, m)
	})
	return buf
}

func (e *Engine) ReleaseMoves(moves []*move.Move) {
	for i := len(moves) - 1; i >= 0; i-- {
		e.moves.Return(moves[i])
	}
}

func (e *Engine) Apply(s game.State, m *move.Move) (game.State, error) {
	src := s.(*State)
	if m.Action() != move.MoveTypeDrop || !IsLegal(src, m.Col()) {
		return nil, game.ErrIllegalMove
	}
	next := e.states.Borrow()
	next.CopyFrom(src)
	Apply(next, m.Col(), src.player)
	return next, nil
}

func (e *Engine) IsTerminal(s game.State) bool   { return IsTerminal(s.(*State)) }
func (e *Engine) Evaluate(s game.State) int      { return Evaluate(s.(*State)) }
func (e *Engine) Winner(s game.State) board.Cell { return Winner(s.(*State)) }

func (e *Engine) PoolStats() game.PoolStats {
	return game.PoolStats{
		StatesAllocated:   e.states.Allocated(),
		StatesOutstanding: e.states.Outstanding(),
		MovesAllocated:    e.moves.Allocated(),
		MovesOutstanding:  e.moves.Outstanding(),
	}
}

// ToDisplayText draws the board with column numbers across the top.
func (e *Engine) ToDisplayText(s game.State) string {
	var str strings.Builder
	sep := "+" + strings.Repeat("---+", Cols) + "\n"
	str.WriteString("\n")
	for col := 0; col < Cols; col++ {
		fmt.Fprintf(&str, "  %d ", col)
	}
	str.WriteString("\n")
	str.WriteString(sep)
	for r := 0; r < Rows; r++ {
		str.WriteString("|")
		for col := 0; col < Cols; col++ {
			fmt.Fprintf(&str, " %s |", board.Glyph(s.At(r, col), "-", "X"))
		}
		str.WriteString("\n")
		str.WriteString(sep)
	}
	return str.String()
}
