package move

import (
	"fmt"
)

// MoveType is a type of move; a placement, a pass or a column drop.
type MoveType uint8

const (
	MoveTypePlace MoveType = iota
	MoveTypePass
	MoveTypeDrop
)

// PassCoord is the coordinate both axes of a pass move carry.
const PassCoord = -1

// Move is a single action by the side to move. Placement moves use X and Y,
// drop moves use only Col. A pass carries PassCoord on both axes.
type Move struct {
	action MoveType
	x      int
	y      int
}

// NewPlacementMove returns a disc placement at (x, y). Passing PassCoord for
// both coordinates yields a pass move.
func NewPlacementMove(x, y int) *Move {
	m := &Move{}
	m.SetPlacement(x, y)
	return m
}

func NewPassMove() *Move {
	return &Move{action: MoveTypePass, x: PassCoord, y: PassCoord}
}

func NewDropMove(col int) *Move {
	m := &Move{}
	m.SetDrop(col)
	return m
}

// SetPlacement overwrites m in place. Pooled moves are recycled this way.
func (m *Move) SetPlacement(x, y int) {
	if x == PassCoord && y == PassCoord {
		m.SetPass()
		return
	}
	m.action = MoveTypePlace
	m.x = x
	m.y = y
}

func (m *Move) SetPass() {
	m.action = MoveTypePass
	m.x = PassCoord
	m.y = PassCoord
}

func (m *Move) SetDrop(col int) {
	m.action = MoveTypeDrop
	m.x = 0
	m.y = col
}

// CopyFrom makes m equal to o.
func (m *Move) CopyFrom(o *Move) {
	*m = *o
}

func (m *Move) Action() MoveType { return m.action }
func (m *Move) IsPass() bool     { return m.action == MoveTypePass }
func (m *Move) X() int           { return m.x }
func (m *Move) Y() int           { return m.y }

// Col is the column of a drop move.
func (m *Move) Col() int { return m.y }

// Equals compares action and coordinates.
func (m *Move) Equals(o *Move) bool {
	if m.action != o.action {
		return false
	}
	switch m.action {
	case MoveTypePass:
		return true
	case MoveTypeDrop:
		return m.y == o.y
	}
	return m.x == o.x && m.y == o.y
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m *Move) ShortDescription() string {
	switch m.action {
	case MoveTypePlace:
		return fmt.Sprintf("%d,%d", m.x, m.y)
	case MoveTypePass:
		return "(Pass)"
	case MoveTypeDrop:
		return fmt.Sprintf("col %d", m.y)
	}
	return "(?)"
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	switch m.action {
	case MoveTypePlace:
		return fmt.Sprintf("<%p action: place x: %v y: %v>", m, m.x, m.y)
	case MoveTypePass:
		return fmt.Sprintf("<%p action: pass>", m)
	case MoveTypeDrop:
		return fmt.Sprintf("<%p action: drop col: %v>", m, m.y)
	}
	return "<Unhandled move>"
}

