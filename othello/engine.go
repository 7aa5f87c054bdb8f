package othello

import (
	"fmt"
	"strings"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/game"
	"github.com/stig/Moth/move"
	"github.com/stig/Moth/pool"
)

const Name = "othello"

// Engine adapts the disc-flip rules to game.Rules. Successor states and
// enumerated moves are borrowed from the engine's pools.
type Engine struct {
	states *pool.Pool[State]
	moves  *pool.Pool[move.Move]
}

var _ game.Rules = (*Engine)(nil)

// NewEngine returns an engine whose pools hold at most capacity objects
// each; 0 means unbounded.
func NewEngine(capacity int) *Engine {
	return &Engine{
		states: pool.New(Name+"-states", capacity, func() *State { return &State{} }),
		moves:  pool.New(Name+"-moves", capacity, func() *move.Move { return &move.Move{} }),
	}
}

func (e *Engine) Name() string            { return Name }
func (e *Engine) MoveKind() move.MoveType { return move.MoveTypePlace }

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

func (e *Engine) LegalMoves(s game.State, buf []*move.Move) []*move.Move {
	st := s.(*State)
	buf = buf[:0]
	n := ForEachLegal(st, func(x, y int) {
		m := e.moves.Borrow()
		m.SetPlacement(x, y)
		buf = append(buf, m)
	})
	if n == 0 {
		m := e.moves.Borrow()
		m.SetPass()
		buf = append(buf, m)
	}
	return buf
}

func (e *Engine) ReleaseMoves(moves []*move.Move) {
	for i := len(moves) - 1; i >= 0; i-- {
		e.moves.Return(moves[i])
	}
}

func (e *Engine) Apply(s game.State, m *move.Move) (game.State, error) {
	src := s.(*State)
	if m.Action() == move.MoveTypeDrop {
		return nil, game.ErrIllegalMove
	}
	next := e.states.Borrow()
	next.CopyFrom(src)
	if !Apply(next, m, src.player) {
		e.states.Return(next)
		return nil, game.ErrIllegalMove
	}
	return next, nil
}

func (e *Engine) IsTerminal(s game.State) bool { return IsTerminal(s.(*State)) }
func (e *Engine) Evaluate(s game.State) int    { return Evaluate(s.(*State)) }

func (e *Engine) Winner(s game.State) board.Cell {
	st := s.(*State)
	if !IsTerminal(st) {
		return board.Empty
	}
	return Winner(st)
}

func (e *Engine) PoolStats() game.PoolStats {
	return game.PoolStats{
		StatesAllocated:   e.states.Allocated(),
		StatesOutstanding: e.states.Outstanding(),
		MovesAllocated:    e.moves.Allocated(),
		MovesOutstanding:  e.moves.Outstanding(),
	}
}

// ToDisplayText draws the board with x down the side and y across the top.
func (e *Engine) ToDisplayText(s game.State) string {
	var str strings.Builder
	sep := "  +" + strings.Repeat("---+", Size) + "\n"
	str.WriteString("   ")
	for y := 0; y < Size; y++ {
		fmt.Fprintf(&str, " %d  ", y)
	}
	str.WriteString("\n")
	str.WriteString(sep)
	for x := 0; x < Size; x++ {
		fmt.Fprintf(&str, "%d |", x)
		for y := 0; y < Size; y++ {
			fmt.Fprintf(&str, " %s |", board.Glyph(s.At(x, y), "1", "2"))
		}
		str.WriteString("\n")
		str.WriteString(sep)
	}
	return str.String()
}
