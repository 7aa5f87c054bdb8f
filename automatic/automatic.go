// Package automatic plays computer vs computer games with uniformly random
// moves and collects statistics about them.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/game"
	"github.com/stig/Moth/move"
)

var (
	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
	ErrNegativeGames  = errors.New("number of games cannot be negative")
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int
)

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

// GameResult describes one finished game. Moves is only filled in when the
// games are being logged.
type GameResult struct {
	Game   int        `yaml:"game"`
	Thread int        `yaml:"thread"`
	Winner board.Cell `yaml:"-"`
	Result string     `yaml:"result"`
	Plies  int        `yaml:"plies"`
	Passes int        `yaml:"passes"`
	P1     int        `yaml:"p1"`
	P2     int        `yaml:"p2"`
	Moves  []string   `yaml:"moves,omitempty"`
}

// PlayRandomGame plays the opening position of rules out to the end,
// picking every move uniformly at random.
func PlayRandomGame(rules game.Rules) (GameResult, error) {
	return playRandomGame(rules, false)
}

func playRandomGame(rules game.Rules, keepMoves bool) (GameResult, error) {
	g := game.NewGame(rules)
	defer g.Close()

	res := GameResult{}
	var moves []*move.Move
	for g.Playing() {
		moves = rules.LegalMoves(g.State(), moves)
		m := moves[frand.Intn(len(moves))]
		if m.IsPass() {
			res.Passes++
		}
		err := g.Play(m)
		rules.ReleaseMoves(moves)
		if err != nil {
			return res, err
		}
	}
	res.Winner = g.Winner()
	res.Result = game.GameOverText(res.Winner)
	res.Plies = g.Turn()
	res.P1, res.P2 = g.Score()
	if keepMoves {
		res.Moves = lo.Map(g.History(), func(m *move.Move, _ int) string {
			return m.ShortDescription()
		})
	}
	return res, nil
}

// Run plays numGames random games across threads workers. Each worker gets
// its own Rules from newRules.
func Run(ctx context.Context, variant string, newRules func() game.Rules,
	numGames, threads int) (*Stats, error) {
	return RunWithLog(ctx, variant, newRules, numGames, threads, nil)
}

// RunWithLog is Run, also writing every finished game to logw as a YAML
// list entry when logw is not nil.
func RunWithLog(ctx context.Context, variant string, newRules func() game.Rules,
	numGames, threads int, logw io.Writer) (*Stats, error) {

	if numGames < 0 {
		return nil, ErrNegativeGames
	}
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	GamesPlayed.Set(0)

	if threads < 1 {
		threads = 1
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)
	tstart := time.Now()

	results := make([]GameResult, numGames)
	jobs := make(chan int, 100)
	logChan := make(chan []byte, 100)
	g, ctx := errgroup.WithContext(ctx)
	writer := errgroup.Group{}

	if logw != nil {
		writer.Go(func() error {
			defer func() {
				log.Debug().Msg("Exiting game logger goroutine!")
			}()
			for out := range logChan {
				if _, err := logw.Write(out); err != nil {
					// Keep draining so the players never block.
					for range logChan {
					}
					return err
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return ctx.Err()
			}
		}
		return nil
	})

	for t := 0; t < threads; t++ {
		t := t // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			rules := newRules()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := playRandomGame(rules, logw != nil)
				if err != nil {
					return err
				}
				r.Game = i
				r.Thread = t
				if logw != nil {
					out, err := yaml.Marshal([]GameResult{r})
					if err != nil {
						log.Error().Err(err).Msg("marshalling log")
						return err
					}
					logChan <- out
					r.Moves = nil
				}
				results[i] = r
				GamesPlayed.Add(1)
			}
			log.Debug().Int("thread", t).Msg("autoplay-worker-done")
			return nil
		})
	}

	err := g.Wait()
	close(logChan)
	if werr := writer.Wait(); err == nil {
		err = werr
	}
	if err != nil {
		return nil, err
	}
	log.Debug().Int64("games", GamesPlayed.Value()).Dur("elapsed", time.Since(tstart)).
		Msg("All games finished.")
	return NewStats(variant, results), nil
}
