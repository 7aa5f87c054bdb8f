package board

import (
	"fmt"
	"os"
)

var (
	ColorSupport = os.Getenv("MOTH_DISABLE_COLOR") != "on"
)

// A Cell is the content of a single board square. It doubles as the player
// identifier: Player1 and Player2 own the cells holding their value.
type Cell uint8

const (
	Empty Cell = iota
	Player1
	Player2
)

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// IsPlayer is true for Player1 and Player2.
func (c Cell) IsPlayer() bool {
	return c == Player1 || c == Player2
}

// Valid reports whether c is one of the three permitted cell values.
func (c Cell) Valid() bool {
	return c <= Player2
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Player1:
		return "player 1"
	case Player2:
		return "player 2"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// Direction is a unit step on the grid, expressed as a delta on the first
// (x) and second (y) board index.
type Direction struct {
	DX, DY int
}

// Directions lists the eight rays scanned from a cell.
var Directions = [8]Direction{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, 1}, {1, -1},
}

// InBounds reports whether (x, y) lies on a rows x cols grid.
func InBounds(x, y, rows, cols int) bool {
	return x >= 0 && x < rows && y >= 0 && y < cols
}

// Glyph returns the character used when drawing c on a text board. Player
// glyphs are coloured when the terminal supports it.
func Glyph(c Cell, p1, p2 string) string {
	switch c {
	case Player1:
		if ColorSupport {
			return "\x1b[1;31m" + p1 + "\x1b[0m"
		}
		return p1
	case Player2:
		if ColorSupport {
			return "\x1b[1;33m" + p2 + "\x1b[0m"
		}
		return p2
	}
	return " "
}
