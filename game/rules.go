package game

import (
	"errors"
	"math"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/move"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrGameOver      = errors.New("game is over")
)

// Evaluation sentinels. Every heuristic score lies strictly between them.
const (
	WinScore  = math.MaxInt32
	LossScore = -WinScore
)

// State is a position: a fixed grid of cells plus the side to move. The
// concrete grid type belongs to the engine that created the state.
type State interface {
	PlayerOnTurn() board.Cell
	SetPlayerOnTurn(p board.Cell)
	Dims() (rows, cols int)
	At(x, y int) board.Cell
	Set(x, y int, c board.Cell)
}

// PoolStats reports how many pooled objects an engine has created and how
// many are currently checked out.
type PoolStats struct {
	StatesAllocated   int
	StatesOutstanding int
	MovesAllocated    int
	MovesOutstanding  int
}

// Rules is the surface a game-tree search drives. States and moves handed
// out by a Rules value come from its pools and go back through Release and
// ReleaseMoves. A Rules value must only be used by one goroutine.
type Rules interface {
	Name() string
	// MoveKind is MoveTypePlace for placement games and MoveTypeDrop for
	// column games.
	MoveKind() move.MoveType

	// NewState returns the opening position.
	NewState() State
	CopyState(s State) State
	Release(s State)

	// LegalMoves appends the legal moves for the side to move to buf[:0].
	// It yields at least one move unless s is terminal.
	LegalMoves(s State, buf []*move.Move) []*move.Move
	ReleaseMoves(moves []*move.Move)

	// Apply returns the successor of s. s itself is never modified. An
	// illegal move returns ErrIllegalMove.
	Apply(s State, m *move.Move) (State, error)
	IsTerminal(s State) bool
	// Evaluate scores s for the side to move; higher is better.
	Evaluate(s State) int
	// Winner is Empty for drawn or unfinished games.
	Winner(s State) board.Cell

	ToDisplayText(s State) string
	PoolStats() PoolStats
}

// Count returns how many cells of s hold c.
func Count(s State, c board.Cell) int {
	rows, cols := s.Dims()
	n := 0
	for x := 0; x < rows; x++ {
		for y := 0; y < cols; y++ {
			if s.At(x, y) == c {
				n++
			}
		}
	}
	return n
}

// CopyPosition copies the cells and side to move of src into dst. Both
// states must have the same dimensions.
func CopyPosition(dst, src State) {
	rows, cols := src.Dims()
	for x := 0; x < rows; x++ {
		for y := 0; y < cols; y++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	dst.SetPlayerOnTurn(src.PlayerOnTurn())
}

// SamePosition compares two states cell by cell.
func SamePosition(a, b State) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc || a.PlayerOnTurn() != b.PlayerOnTurn() {
		return false
	}
	for x := 0; x < ar; x++ {
		for y := 0; y < ac; y++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}
