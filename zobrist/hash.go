package zobrist

import (
	"lukechampine.com/frand"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/game"
)

const bignum = 1<<63 - 2

// Zobrist generates a zobrist hash for a board position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	p2ToMove uint64

	// posTable holds one key per square and player.
	posTable [][2]uint64

	rows int
	cols int
}

func (z *Zobrist) Initialize(rows, cols int) {
	z.rows = rows
	z.cols = cols
	z.posTable = make([][2]uint64, rows*cols)
	for i := range z.posTable {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.p2ToMove = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) key(x, y int, c board.Cell) uint64 {
	return z.posTable[x*z.cols+y][c-board.Player1]
}

// Hash computes the key of s from scratch.
func (z *Zobrist) Hash(s game.State) uint64 {
	key := uint64(0)
	for x := 0; x < z.rows; x++ {
		for y := 0; y < z.cols; y++ {
			c := s.At(x, y)
			if c == board.Empty {
				continue
			}
			key ^= z.key(x, y, c)
		}
	}
	if s.PlayerOnTurn() == board.Player2 {
		key ^= z.p2ToMove
	}
	return key
}
