package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/stig/Moth/automatic"
	"github.com/stig/Moth/config"
	"github.com/stig/Moth/game"
	"github.com/stig/Moth/gameio"
	"github.com/stig/Moth/move"
	"github.com/stig/Moth/perft"
	"github.com/stig/Moth/variant"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil || len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}

	key := cmd.args[0]
	value := cmd.args[1]

	sc.config.Set(key, value)

	err := sc.config.Write()
	if err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return msg(fmt.Sprintf("set config %s to %s and saved to file", key, value)), nil
}

// startGame replaces the current game.
func (sc *ShellController) startGame(name string, rules game.Rules, g *game.Game) {
	sc.Cleanup()
	sc.variant = name
	sc.rules = rules
	sc.game = g
	sc.curMoves = nil
}

func (sc *ShellController) variantName(cmd *shellcmd) string {
	if len(cmd.args) > 0 {
		return cmd.args[0]
	}
	if v := cmd.options.String("variant"); v != "" {
		return v
	}
	if sc.variant != "" {
		return sc.variant
	}
	return sc.config.GetString(config.ConfigDefaultVariant)
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	name := sc.variantName(cmd)
	rules, err := variant.New(name, sc.config.GetInt(config.ConfigPoolCapacity))
	if err != nil {
		return nil, err
	}
	sc.startGame(name, rules, game.NewGame(rules))
	return msg(sc.displayGame()), nil
}

// displayGame is the board text followed by the position's stable id.
func (sc *ShellController) displayGame() string {
	return sc.game.ToDisplayText() + "\nPosition id: " + gameio.PositionID(sc.game.State())
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.displayGame()), nil
}

// parseMove reads a move typed at the prompt: `x y` or `pass` for
// placement games, a column number for drop games, or `#n` for the n-th
// entry of the last `moves` listing.
func (sc *ShellController) parseMove(args []string) (*move.Move, error) {
	if len(args) == 1 && strings.HasPrefix(args[0], "#") {
		idx, err := strconv.Atoi(args[0][1:])
		if err != nil {
			return nil, err
		}
		if idx < 1 || idx > len(sc.curMoves) {
			return nil, errors.New("play outside range")
		}
		return sc.curMoves[idx-1], nil
	}
	switch sc.rules.MoveKind() {
	case move.MoveTypePlace:
		if len(args) == 1 && args[0] == "pass" {
			return move.NewPassMove(), nil
		}
		if len(args) != 2 {
			return nil, errors.New("usage: play <x> <y> | play pass")
		}
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, err
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, err
		}
		return move.NewPlacementMove(x, y), nil
	case move.MoveTypeDrop:
		if len(args) != 1 {
			return nil, errors.New("usage: play <col>")
		}
		col, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, err
		}
		return move.NewDropMove(col), nil
	}
	return nil, errors.New("unsupported move kind")
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	m, err := sc.parseMove(cmd.args)
	if err != nil {
		return nil, err
	}
	if err := sc.game.Play(m); err != nil {
		return nil, err
	}
	sc.curMoves = nil
	log.Debug().Str("move", m.ShortDescription()).Int("turn", sc.game.Turn()).Msg("played")
	return msg(sc.displayGame()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, game.ErrGameOver
	}
	legal := sc.rules.LegalMoves(sc.game.State(), nil)
	sc.curMoves = lo.Map(legal, func(m *move.Move, _ int) *move.Move {
		c := &move.Move{}
		c.CopyFrom(m)
		return c
	})
	sc.rules.ReleaseMoves(legal)

	var ss strings.Builder
	fmt.Fprintf(&ss, "%d legal moves for %s:\n", len(sc.curMoves), sc.game.PlayerOnTurn())
	for i, m := range sc.curMoves {
		fmt.Fprintf(&ss, "%3d: %s\n", i+1, m.ShortDescription())
	}
	return msg(strings.TrimSuffix(ss.String(), "\n")), nil
}

func (sc *ShellController) rate(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	score := sc.rules.Evaluate(sc.game.State())
	var val string
	switch score {
	case game.WinScore:
		val = "win"
	case game.LossScore:
		val = "loss"
	default:
		val = strconv.Itoa(score)
	}
	return msg(fmt.Sprintf("Evaluation for %s: %s", sc.game.PlayerOnTurn(), val)), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.Undo(); err != nil {
		return nil, err
	}
	sc.curMoves = nil
	return msg(sc.displayGame()), nil
}

func (sc *ShellController) savePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(sc.config.GetString(config.ConfigSaveDir), name)
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: save <file>")
	}
	path := sc.savePath(cmd.args[0])
	if err := gameio.SaveFile(path, sc.game); err != nil {
		return nil, err
	}
	return msg("saved game to " + path), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file> [-variant name]")
	}
	name := sc.variantName(&shellcmd{options: cmd.options})
	rules, err := variant.New(name, sc.config.GetInt(config.ConfigPoolCapacity))
	if err != nil {
		return nil, err
	}
	g, err := gameio.ResumeFile(sc.savePath(cmd.args[0]), rules)
	if err != nil {
		return nil, err
	}
	sc.startGame(name, rules, g)
	return msg(sc.displayGame()), nil
}

func (sc *ShellController) perft(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: perft <depth> [-threads n]")
	}
	depth, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigPerftThreads))
	if err != nil {
		return nil, err
	}
	name := sc.variantName(&shellcmd{options: cmd.options})
	newRules, err := variant.Factory(name, sc.config.GetInt(config.ConfigPoolCapacity))
	if err != nil {
		return nil, err
	}

	// Count from the current position if there is one.
	var start game.State
	if sc.game != nil && name == sc.variant {
		start = sc.game.State()
	} else {
		r := newRules()
		start = r.NewState()
		defer r.Release(start)
	}

	tstart := time.Now()
	res, err := perft.Count(context.Background(), newRules, start, depth, threads)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("perft %d (%s): %s\nelapsed: %v", depth, name, res,
		time.Since(tstart).Round(time.Millisecond))), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	games, err := cmd.options.IntDefault("games", sc.config.GetInt(config.ConfigAutoplayGames))
	if err != nil {
		return nil, err
	}
	if games < 0 {
		return nil, fmt.Errorf("games must be at least 0, got %d", games)
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	bins, err := cmd.options.IntDefault("bins", sc.config.GetInt(config.ConfigHistogramBins))
	if err != nil {
		return nil, err
	}
	if bins < 1 {
		return nil, fmt.Errorf("bins must be at least 1, got %d", bins)
	}
	name := sc.variantName(cmd)
	newRules, err := variant.Factory(name, sc.config.GetInt(config.ConfigPoolCapacity))
	if err != nil {
		return nil, err
	}
	var logw io.Writer
	if logfile := cmd.options.String("log"); logfile != "" {
		f, err := os.Create(sc.savePath(logfile))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		logw = f
	}
	stats, err := automatic.RunWithLog(context.Background(), name, newRules, games, threads, logw)
	if err != nil {
		return nil, err
	}
	var ss strings.Builder
	if err := stats.Fprint(&ss, bins); err != nil {
		return nil, err
	}
	return msg(strings.TrimSuffix(ss.String(), "\n")), nil
}
