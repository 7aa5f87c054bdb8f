package shell

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/chzyer/readline"
	"github.com/matryer/is"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/config"
	"github.com/stig/Moth/game"
	"github.com/stig/Moth/gameio"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -games 100",
			&shellcmd{"autoplay", nil, CmdOptions{"games": {"100"}}},
			nil},
		{"save my.sav",
			&shellcmd{"save", []string{"my.sav"}, CmdOptions{}},
			nil},
		{"autoplay connect4 -threads 2 -games 10 ",
			&shellcmd{"autoplay",
				[]string{"connect4"},
				CmdOptions{"threads": {"2"}, "games": {"10"}}},
			nil,
		},
		{"play -1 -1",
			&shellcmd{"play", []string{"-1", "-1"}, CmdOptions{}},
			nil},
		{"autoplay connect4 -games",
			nil, errWrongOptionSyntax},
	}
	for _, tc := range cases {
		cmd, err := extractFields(tc.line)
		is.Equal(cmd, tc.expCmd)
		is.Equal(err, tc.expErr)
	}
}

func newTestController(t *testing.T) (*ShellController, *bytes.Buffer) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MOTH_SAVE_DIR", home)
	cfg := &config.Config{}
	if _, err := cfg.Load(nil); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	sc := &ShellController{config: cfg, out: out}
	t.Cleanup(sc.Cleanup)
	return sc, out
}

func run(t *testing.T, sc *ShellController, line string) (*Response, error) {
	t.Helper()
	cmd, err := extractFields(line)
	if err != nil {
		t.Fatal(err)
	}
	return sc.handle(cmd)
}

func TestNoGame(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	for _, line := range []string{"show", "play 2 3", "moves", "rate", "undo", "save x"} {
		_, err := run(t, sc, line)
		is.True(errors.Is(err, errNoGame))
	}
}

func TestOthelloSession(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)

	resp, err := run(t, sc, "new")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Player 1 to move"))
	is.Equal(sc.variant, "othello")

	resp, err = run(t, sc, "moves")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "4 legal moves for player 1"))
	is.True(strings.Contains(resp.message, "  1: 2,3"))

	resp, err = run(t, sc, "play #1")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Last move: 2,3"))
	is.Equal(sc.game.Turn(), 1)

	resp, err = run(t, sc, "rate")
	is.NoErr(err)
	is.Equal(resp.message, "Evaluation for player 2: -7")

	_, err = run(t, sc, "play 0 0")
	is.True(errors.Is(err, game.ErrIllegalMove))
	_, err = run(t, sc, "play 0")
	is.True(err != nil)

	_, err = run(t, sc, "undo")
	is.NoErr(err)
	_, err = run(t, sc, "undo")
	is.True(errors.Is(err, game.ErrNothingToUndo))
}

func TestShowPositionID(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	_, err := run(t, sc, "new connect4")
	is.NoErr(err)

	resp, err := run(t, sc, "show")
	is.NoErr(err)
	start := gameio.PositionID(sc.game.State())
	is.True(strings.HasSuffix(resp.message, "Position id: "+start))

	resp, err = run(t, sc, "play 3")
	is.NoErr(err)
	id := gameio.PositionID(sc.game.State())
	is.True(id != start)
	is.True(strings.HasSuffix(resp.message, "Position id: "+id))
}

func TestCleanupClosesReadline(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	l, err := readline.NewEx(&readline.Config{
		Prompt: "moth> ",
		Stdin:  io.NopCloser(strings.NewReader("")),
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	is.NoErr(err)
	sc.l = l
	_, err = run(t, sc, "new")
	is.NoErr(err)

	sc.Cleanup()
	is.True(sc.l == nil)
	is.True(sc.game == nil)
	sc.Cleanup()
}

func TestConnect4WinReported(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	_, err := run(t, sc, "new connect4")
	is.NoErr(err)

	var resp *Response
	for _, col := range []string{"0", "1", "0", "1", "0", "1", "0"} {
		resp, err = run(t, sc, "play "+col)
		is.NoErr(err)
	}
	is.True(strings.Contains(resp.message, "Player 1 won!"))
	is.Equal(sc.game.Winner(), board.Player1)

	_, err = run(t, sc, "play 3")
	is.True(errors.Is(err, game.ErrGameOver))
	_, err = run(t, sc, "moves")
	is.True(errors.Is(err, game.ErrGameOver))
}

func TestSaveAndLoad(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	_, err := run(t, sc, "new connect4")
	is.NoErr(err)
	_, err = run(t, sc, "play 3")
	is.NoErr(err)
	_, err = run(t, sc, "play 4")
	is.NoErr(err)

	resp, err := run(t, sc, "save game.sav")
	is.NoErr(err)
	is.True(strings.HasSuffix(resp.message, "game.sav"))
	_, err = os.Stat(filepath.Join(sc.config.GetString(config.ConfigSaveDir), "game.sav"))
	is.NoErr(err)

	_, err = run(t, sc, "new othello")
	is.NoErr(err)
	_, err = run(t, sc, "load game.sav -variant connect4")
	is.NoErr(err)
	is.Equal(sc.variant, "connect4")
	is.Equal(sc.game.Turn(), 2)
	is.Equal(sc.game.History()[1].Col(), 4)

	// Reading a drop game as othello fails on the board size.
	_, err = run(t, sc, "load game.sav -variant othello")
	is.True(err != nil)
	is.Equal(sc.variant, "connect4")
}

func TestPerft(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	resp, err := run(t, sc, "perft 3 -threads 2")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "perft 3 (othello): nodes: 56,"))

	_, err = run(t, sc, "new connect4")
	is.NoErr(err)
	_, err = run(t, sc, "play 3")
	is.NoErr(err)
	resp, err = run(t, sc, "perft 1")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "nodes: 7,"))

	_, err = run(t, sc, "perft x")
	is.True(err != nil)
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	resp, err := run(t, sc, "autoplay connect4 -games 12 -threads 2 -bins 4")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Variant: connect4"))
	is.True(strings.Contains(resp.message, "Games: 12"))

	_, err = run(t, sc, "autoplay chess")
	is.True(err != nil)

	_, err = run(t, sc, "autoplay othello -games 3 -log games.yaml")
	is.NoErr(err)
	dat, err := os.ReadFile(filepath.Join(sc.config.GetString(config.ConfigSaveDir), "games.yaml"))
	is.NoErr(err)
	is.Equal(strings.Count(string(dat), "game:"), 3)
}

func TestAutoplayBadCounts(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	_, err := run(t, sc, "autoplay connect4 -games -1")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "games"))

	for _, bins := range []string{"0", "-3"} {
		_, err = run(t, sc, "autoplay connect4 -games 2 -bins "+bins)
		is.True(err != nil)
		is.True(strings.Contains(err.Error(), "bins"))
	}

	// The shell is still usable afterwards.
	resp, err := run(t, sc, "autoplay connect4 -games 2 -bins 2")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Games: 2"))
}

func TestSetConfig(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	resp, err := run(t, sc, "setconfig default-variant connect4")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "saved to file"))
	is.Equal(sc.config.GetString(config.ConfigDefaultVariant), "connect4")

	_, err = run(t, sc, "new")
	is.NoErr(err)
	is.Equal(sc.variant, "connect4")

	_, err = run(t, sc, "setconfig debug")
	is.True(err != nil)
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	resp, err := run(t, sc, "help")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "perft <depth>"))
	resp, err = run(t, sc, "help perft")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "distinct"))
	resp, err = run(t, sc, "help nothing")
	is.NoErr(err)
	is.Equal(resp.message, "There is no help text for the topic nothing")
}

func TestStandardModeSwitch(t *testing.T) {
	is := is.New(t)
	sc, out := newTestController(t)
	sig := make(chan os.Signal, 1)

	is.NoErr(sc.standardModeSwitch("", sig))
	is.NoErr(sc.standardModeSwitch("frobnicate", sig))
	is.True(strings.Contains(out.String(), `Error: command "frobnicate" not found`))

	is.True(errors.Is(sc.standardModeSwitch("exit", sig), errQuit))
	is.Equal(<-sig, os.Signal(syscall.SIGINT))
}

func TestAutocomplete(t *testing.T) {
	is := is.New(t)
	c := NewShellCompleter(&ShellController{})

	matches, n := c.Do([]rune("per"), 3)
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("ft")})

	line := []rune("new c")
	matches, n = c.Do(line, len(line))
	is.Equal(n, 1)
	is.Equal(matches, [][]rune{[]rune("onnect4")})

	line = []rune("perft 3 -variant ")
	matches, _ = c.Do(line, len(line))
	is.Equal(len(matches), 2)

	line = []rune("autoplay -g")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("ames")})
}
