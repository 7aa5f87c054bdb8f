package gameio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/stig/Moth/game"
)

// Save writes the position the game started from followed by every move
// played since.
func Save(w io.Writer, g *game.Game) error {
	bw := bufio.NewWriter(w)
	if err := EncodeState(bw, g.Initial()); err != nil {
		return err
	}
	for _, m := range g.History() {
		if err := EncodeMove(bw, m); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Resume rebuilds a saved game by replaying its moves. Nothing is returned
// unless every move replays cleanly.
func Resume(r io.Reader, rules game.Rules) (*game.Game, error) {
	br := bufio.NewReader(r)
	start := rules.NewState()
	if err := DecodeState(br, start); err != nil {
		rules.Release(start)
		return nil, err
	}
	g := game.NewGameFrom(rules, start)
	for {
		m, err := DecodeMove(br, rules.MoveKind())
		if err == io.EOF {
			break
		}
		n := g.Turn() + 1
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("move %d: %w", n, err)
		}
		if err := g.Play(m); err != nil {
			g.Close()
			return nil, fmt.Errorf("move %d: %w", n, err)
		}
	}
	log.Debug().Str("variant", rules.Name()).Int("plies", g.Turn()).
		Str("position", PositionID(g.State())).Msg("resumed")
	return g, nil
}

// SaveFile saves g to path, replacing anything already there.
func SaveFile(path string, g *game.Game) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ResumeFile(path string, rules game.Rules) (*game.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Resume(f, rules)
}
