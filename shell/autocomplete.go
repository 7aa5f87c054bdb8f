package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/stig/Moth/config"
	"github.com/stig/Moth/variant"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new":      {Args: variant.Names()},
	"play":     {Args: []string{"pass"}},
	"load":     {Options: []string{"-variant"}},
	"perft":    {Options: []string{"-threads", "-variant"}},
	"autoplay": {Options: []string{"-games", "-threads", "-bins", "-log"}, Args: variant.Names()},
	"setconfig": {
		Args: []string{
			config.ConfigDebug, config.ConfigDefaultVariant, config.ConfigSaveDir,
			config.ConfigPoolCapacity, config.ConfigPerftThreads,
			config.ConfigAutoplayThreads, config.ConfigAutoplayGames,
			config.ConfigHistogramBins,
		},
	},
	"help": {
		Args: []string{"play", "load", "perft", "autoplay", "setconfig"},
	},
}

var commandNames = []string{
	"help", "new", "show", "redisp", "play", "moves", "rate", "undo", "save",
	"load", "perft", "autoplay", "setconfig", "exit",
}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}
		if lastCompleteField == "-variant" {
			completions = variant.Names()
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
