package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/move"
)

// DefaultStackLength is how many plies of history are preallocated.
const DefaultStackLength = 64

// Game is a game in progress: the position it started from, the current
// position, and enough history to take moves back.
type Game struct {
	rules Rules

	initial State
	cur     State

	// stateStack holds the positions before each played move; stackPtr is
	// the number of entries in use.
	stateStack []State
	stackPtr   int
	history    []*move.Move
}

// NewGame starts a game from the opening position.
func NewGame(rules Rules) *Game {
	return NewGameFrom(rules, rules.NewState())
}

// NewGameFrom starts a game from start. The game takes ownership of start
// and releases it on Close.
func NewGameFrom(rules Rules, start State) *Game {
	g := &Game{
		rules:      rules,
		initial:    start,
		cur:        rules.CopyState(start),
		stateStack: make([]State, 0, DefaultStackLength),
		history:    make([]*move.Move, 0, DefaultStackLength),
	}
	log.Debug().Str("variant", rules.Name()).Msg("new-game")
	return g
}

func (g *Game) Rules() Rules { return g.rules }

// State is the current position. It stays owned by the game.
func (g *Game) State() State { return g.cur }

// Initial is the position the game started from.
func (g *Game) Initial() State { return g.initial }

// History returns the moves played so far, oldest first.
func (g *Game) History() []*move.Move { return g.history[:g.stackPtr] }

// Turn is the number of plies played.
func (g *Game) Turn() int { return g.stackPtr }

// Playing is false once the current position is terminal.
func (g *Game) Playing() bool { return !g.rules.IsTerminal(g.cur) }

func (g *Game) PlayerOnTurn() board.Cell { return g.cur.PlayerOnTurn() }

// Play applies m for the side to move. The game keeps its own copy of m.
func (g *Game) Play(m *move.Move) error {
	if !g.Playing() {
		return ErrGameOver
	}
	next, err := g.rules.Apply(g.cur, m)
	if err != nil {
		return fmt.Errorf("%w: %s", err, m.ShortDescription())
	}
	g.pushState(g.cur)
	g.cur = next

	mv := &move.Move{}
	mv.CopyFrom(m)
	g.history = append(g.history, mv)
	return nil
}

func (g *Game) pushState(s State) {
	if g.stackPtr < len(g.stateStack) {
		g.stateStack[g.stackPtr] = s
	} else {
		g.stateStack = append(g.stateStack, s)
	}
	g.stackPtr++
}

// Undo takes back the last move.
func (g *Game) Undo() error {
	if g.stackPtr == 0 {
		return ErrNothingToUndo
	}
	g.stackPtr--
	g.rules.Release(g.cur)
	g.cur = g.stateStack[g.stackPtr]
	g.stateStack[g.stackPtr] = nil
	g.history = g.history[:g.stackPtr]
	log.Debug().Int("turn", g.stackPtr).Msg("undo")
	return nil
}

// Winner is Empty while the game is running or when it is drawn.
func (g *Game) Winner() board.Cell {
	if g.Playing() {
		return board.Empty
	}
	return g.rules.Winner(g.cur)
}

// Score returns the number of cells each player holds.
func (g *Game) Score() (p1, p2 int) {
	return Count(g.cur, board.Player1), Count(g.cur, board.Player2)
}

// Close hands every position back to the engine's pool. The game must not
// be used afterwards.
func (g *Game) Close() {
	for g.stackPtr > 0 {
		g.Undo()
	}
	g.rules.Release(g.cur)
	g.rules.Release(g.initial)
	g.cur, g.initial = nil, nil
}
