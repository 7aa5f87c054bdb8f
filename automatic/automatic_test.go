package automatic

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/connect4"
	"github.com/stig/Moth/game"
	"github.com/stig/Moth/othello"
)

func TestRandomConnect4Game(t *testing.T) {
	is := is.New(t)
	rules := connect4.NewEngine(0)
	for i := 0; i < 20; i++ {
		res, err := PlayRandomGame(rules)
		is.NoErr(err)
		is.True(res.Plies >= 7)
		is.True(res.Plies <= connect4.Rows*connect4.Cols)
		is.Equal(res.Passes, 0)
		is.Equal(res.P1+res.P2, res.Plies)
		if res.Winner == board.Empty {
			is.Equal(res.Plies, connect4.Rows*connect4.Cols)
		}
	}
	is.Equal(rules.PoolStats().StatesOutstanding, 0)
	is.Equal(rules.PoolStats().MovesOutstanding, 0)
}

func TestRandomOthelloGame(t *testing.T) {
	is := is.New(t)
	rules := othello.NewEngine(0)
	for i := 0; i < 10; i++ {
		res, err := PlayRandomGame(rules)
		is.NoErr(err)
		// Every placement adds one disc to the four in the middle.
		is.Equal(res.P1+res.P2, res.Plies-res.Passes+4)
		switch {
		case res.P1 > res.P2:
			is.Equal(res.Winner, board.Player1)
		case res.P2 > res.P1:
			is.Equal(res.Winner, board.Player2)
		default:
			is.Equal(res.Winner, board.Empty)
		}
	}
	is.Equal(rules.PoolStats().StatesOutstanding, 0)
}

func TestRun(t *testing.T) {
	is := is.New(t)
	newRules := func() game.Rules { return connect4.NewEngine(0) }
	stats, err := Run(context.Background(), connect4.Name, newRules, 25, 3)
	is.NoErr(err)
	is.Equal(stats.Games(), 25)
	is.Equal(GamesPlayed.Value(), int64(25))
	is.Equal(IsPlaying.Value(), int64(0))
	is.Equal(stats.Wins(board.Player1)+stats.Wins(board.Player2)+stats.Wins(board.Empty), 25)
	for _, r := range stats.Results {
		is.True(r.Plies > 0)
	}
	is.Equal(stats.Histogram(5).Count, 25)
}

func TestRunWithLog(t *testing.T) {
	is := is.New(t)
	newRules := func() game.Rules { return connect4.NewEngine(0) }
	var buf bytes.Buffer
	stats, err := RunWithLog(context.Background(), connect4.Name, newRules, 6, 2, &buf)
	is.NoErr(err)

	var logged []GameResult
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &logged))
	is.Equal(len(logged), 6)
	seen := map[int]bool{}
	for _, r := range logged {
		seen[r.Game] = true
		is.Equal(len(r.Moves), r.Plies)
		is.Equal(r.Plies, stats.Results[r.Game].Plies)
		is.Equal(r.Result, stats.Results[r.Game].Result)
	}
	is.Equal(len(seen), 6)
	// Only the log keeps the moves.
	for _, r := range stats.Results {
		is.Equal(r.Moves, nil)
	}
}

func TestRunAlreadyPlaying(t *testing.T) {
	is := is.New(t)
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	newRules := func() game.Rules { return connect4.NewEngine(0) }
	_, err := Run(context.Background(), connect4.Name, newRules, 1, 1)
	is.True(errors.Is(err, ErrAlreadyPlaying))
}

func TestRunNegativeGames(t *testing.T) {
	is := is.New(t)
	newRules := func() game.Rules { return connect4.NewEngine(0) }
	_, err := RunWithLog(context.Background(), connect4.Name, newRules, -1, 2, nil)
	is.True(errors.Is(err, ErrNegativeGames))
	is.Equal(IsPlaying.Value(), int64(0))
}

func TestRunCanceled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	newRules := func() game.Rules { return othello.NewEngine(0) }
	_, err := Run(ctx, othello.Name, newRules, 1000, 2)
	is.True(errors.Is(err, context.Canceled))
}

func TestStats(t *testing.T) {
	is := is.New(t)
	stats := NewStats("test", []GameResult{
		{Winner: board.Player1, Plies: 10},
		{Winner: board.Player1, Plies: 20, Passes: 1},
		{Winner: board.Player2, Plies: 30},
		{Winner: board.Empty, Plies: 40, Passes: 2},
	})
	is.Equal(stats.Wins(board.Player1), 2)
	is.Equal(stats.Wins(board.Empty), 1)
	is.Equal(len(stats.ByWinner(board.Player2)), 1)
	is.Equal(stats.MeanLength(), 25.0)
	is.Equal(stats.Passes(), 3)

	var buf bytes.Buffer
	is.NoErr(stats.Fprint(&buf, 3))
	out := buf.String()
	is.True(strings.Contains(out, "Games: 4"))
	is.True(strings.Contains(out, "player 1:"))
	is.True(strings.Contains(out, "mean length 15.00"))
	is.True(strings.Contains(out, "2 (50.0% ± 49.0%)"))
	is.True(strings.Contains(out, "Mean length: 25.00 plies (stdev 12.91), 3 passes"))
}

func TestEmptyStats(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(NewStats("none", nil).Fprint(&buf, 10))
	is.True(strings.Contains(buf.String(), "Games: 0"))
}

func TestFprintNeedsBins(t *testing.T) {
	is := is.New(t)
	stats := NewStats("test", []GameResult{{Winner: board.Player1, Plies: 10}})
	var buf bytes.Buffer
	is.True(stats.Fprint(&buf, 0) != nil)
	is.True(stats.Fprint(&buf, -3) != nil)
	is.Equal(buf.Len(), 0)
}
