package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	t.Setenv("HOME", t.TempDir())
	c := &Config{}
	rest, err := c.Load(nil)
	is.NoErr(err)
	is.Equal(len(rest), 0)
	is.Equal(c.GetString(ConfigDefaultVariant), "othello")
	is.Equal(c.GetInt(ConfigHistogramBins), 15)
	is.True(!c.GetBool(ConfigDebug))
}

func TestEnvAndArgs(t *testing.T) {
	is := is.New(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MOTH_PERFT_THREADS", "7")
	t.Setenv("MOTH_DEFAULT_VARIANT", "connect4")

	c := &Config{}
	rest, err := c.Load([]string{"--default-variant=othello", "--debug", "perft", "3"})
	is.NoErr(err)
	is.Equal(rest, []string{"perft", "3"})
	is.Equal(c.GetInt(ConfigPerftThreads), 7)
	is.Equal(c.GetString(ConfigDefaultVariant), "othello")
	is.True(c.GetBool(ConfigDebug))
}

func TestConfigFileAndWrite(t *testing.T) {
	is := is.New(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".moth")
	is.NoErr(os.MkdirAll(dir, 0o755))
	is.NoErr(os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("autoplay-games: 12\n"), 0o644))

	c := &Config{}
	_, err := c.Load(nil)
	is.NoErr(err)
	is.Equal(c.GetInt(ConfigAutoplayGames), 12)

	c.Set(ConfigAutoplayGames, 99)
	is.NoErr(c.Write())

	c2 := &Config{}
	_, err = c2.Load(nil)
	is.NoErr(err)
	is.Equal(c2.GetInt(ConfigAutoplayGames), 99)
}

func TestWriteWithoutFile(t *testing.T) {
	is := is.New(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	c := &Config{}
	_, err := c.Load(nil)
	is.NoErr(err)
	c.Set(ConfigSaveDir, "/tmp/saves")
	is.NoErr(c.Write())
	_, err = os.Stat(filepath.Join(home, ".moth", "config.yaml"))
	is.NoErr(err)
}
