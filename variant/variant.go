// Package variant maps game names to rule engines.
package variant

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/stig/Moth/connect4"
	"github.com/stig/Moth/game"
	"github.com/stig/Moth/othello"
)

// Constructor builds an engine whose pools hold at most capacity objects;
// 0 means unbounded.
type Constructor func(capacity int) game.Rules

var registry = map[string]Constructor{
	othello.Name:  func(c int) game.Rules { return othello.NewEngine(c) },
	connect4.Name: func(c int) game.Rules { return connect4.NewEngine(c) },
}

// New returns a fresh engine for the named variant.
func New(name string, capacity int) (game.Rules, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q, try one of %v", name, Names())
	}
	return ctor(capacity), nil
}

// Factory is like New but returns a constructor, for callers that need one
// engine per goroutine.
func Factory(name string, capacity int) (func() game.Rules, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q, try one of %v", name, Names())
	}
	return func() game.Rules { return ctor(capacity) }, nil
}

func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}
