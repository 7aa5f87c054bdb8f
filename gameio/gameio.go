// Package gameio reads and writes positions, moves and saved games in the
// line-oriented text format used for save files.
package gameio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/game"
	"github.com/stig/Moth/move"
)

var (
	ErrMalformedState = errors.New("malformed position")
	ErrMalformedMove  = errors.New("malformed move")
)

const playerPrefix = "player start: "

var (
	playerRegex = regexp.MustCompile(`^[12]$`)
	placeRegex  = regexp.MustCompile(`^x: (?P<x>-?[0-9]+), y: (?P<y>-?[0-9]+)$`)
	dropRegex   = regexp.MustCompile(`^col: (?P<col>-?[0-9]+)$`)
)

// EncodeState writes the side to move, one line of digits per row, and a
// closing blank line.
func EncodeState(w io.Writer, s game.State) error {
	rows, cols := s.Dims()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%d\n", playerPrefix, int(s.PlayerOnTurn()))
	for x := 0; x < rows; x++ {
		for y := 0; y < cols; y++ {
			bw.WriteByte('0' + byte(s.At(x, y)))
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// readLine returns one line without its terminator. A line missing its
// '\n' is an error, even at the end of the input.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
		return "", fmt.Errorf("line %q: missing terminator", line)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// DecodeState reads a position into dst. dst is only written once the
// whole position has been read and checked.
func DecodeState(r *bufio.Reader, dst game.State) error {
	rows, cols := dst.Dims()

	header, err := readLine(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	pstr, ok := strings.CutPrefix(header, playerPrefix)
	if !ok {
		return fmt.Errorf("%w: bad header %q", ErrMalformedState, header)
	}
	if !playerRegex.MatchString(pstr) {
		return fmt.Errorf("%w: bad side to move %q", ErrMalformedState, pstr)
	}
	p := board.Cell(pstr[0] - '0')

	cells := make([]board.Cell, rows*cols)
	for x := 0; x < rows; x++ {
		line, err := readLine(r)
		if err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrMalformedState, x, err)
		}
		if len(line) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrMalformedState, x, len(line), cols)
		}
		for y := 0; y < cols; y++ {
			c := line[y]
			if c < '0' || c > '9' || !board.Cell(c-'0').Valid() {
				return fmt.Errorf("%w: row %d: bad cell %q", ErrMalformedState, x, c)
			}
			cells[x*cols+y] = board.Cell(c - '0')
		}
	}
	blank, err := readLine(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	if blank != "" {
		return fmt.Errorf("%w: expected blank line, got %q", ErrMalformedState, blank)
	}

	for x := 0; x < rows; x++ {
		for y := 0; y < cols; y++ {
			dst.Set(x, y, cells[x*cols+y])
		}
	}
	dst.SetPlayerOnTurn(p)
	return nil
}

// EncodeMove writes a move on a single line.
func EncodeMove(w io.Writer, m *move.Move) error {
	var err error
	switch m.Action() {
	case move.MoveTypeDrop:
		_, err = fmt.Fprintf(w, "col: %d\n", m.Col())
	default:
		_, err = fmt.Fprintf(w, "x: %d, y: %d\n", m.X(), m.Y())
	}
	return err
}

// DecodeMove reads one move line. kind selects between the placement and
// the column format. io.EOF is returned unwrapped when there is no more
// input.
func DecodeMove(r *bufio.Reader, kind move.MoveType) (*move.Move, error) {
	line, err := readLine(r)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMove, err)
	}
	return ParseMove(line, kind)
}

// ParseMove parses a move line without its terminator.
func ParseMove(line string, kind move.MoveType) (*move.Move, error) {
	if kind == move.MoveTypeDrop {
		match := dropRegex.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedMove, line)
		}
		col, err := strconv.Atoi(match[dropRegex.SubexpIndex("col")])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMove, err)
		}
		return move.NewDropMove(col), nil
	}
	match := placeRegex.FindStringSubmatch(line)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedMove, line)
	}
	x, err := strconv.Atoi(match[placeRegex.SubexpIndex("x")])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMove, err)
	}
	y, err := strconv.Atoi(match[placeRegex.SubexpIndex("y")])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMove, err)
	}
	return move.NewPlacementMove(x, y), nil
}
