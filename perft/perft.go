// Package perft walks the full game tree to a fixed depth and counts what
// it finds. It is mostly useful for checking move generation.
package perft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/stig/Moth/game"
	"github.com/stig/Moth/move"
	"github.com/stig/Moth/zobrist"
)

// Result tallies a walk. Nodes counts positions reached after exactly depth
// plies, plus finished games cut short before that. Terminals is the number
// of those leaves where the game is over, Passes the number of pass moves
// played anywhere in the tree, and Distinct the number of different leaf
// positions.
type Result struct {
	Nodes     uint64
	Terminals uint64
	Passes    uint64
	Distinct  int
}

func (r Result) String() string {
	return fmt.Sprintf("nodes: %d, terminals: %d, passes: %d, distinct: %d",
		r.Nodes, r.Terminals, r.Passes, r.Distinct)
}

type worker struct {
	rules game.Rules
	zob   *zobrist.Zobrist
	bufs  [][]*move.Move

	nodes     uint64
	terminals uint64
	passes    uint64
	seen      map[uint64]struct{}
}

func (w *worker) leaf(s game.State) {
	w.nodes++
	if w.rules.IsTerminal(s) {
		w.terminals++
	}
	w.seen[w.zob.Hash(s)] = struct{}{}
}

func (w *worker) walk(ctx context.Context, s game.State, ply, depth int) error {
	if ply == depth || w.rules.IsTerminal(s) {
		w.leaf(s)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	w.bufs[ply] = w.rules.LegalMoves(s, w.bufs[ply])
	defer w.rules.ReleaseMoves(w.bufs[ply])
	for _, m := range w.bufs[ply] {
		if err := w.play(ctx, s, m, ply, depth); err != nil {
			return err
		}
	}
	return nil
}

func (w *worker) play(ctx context.Context, s game.State, m *move.Move, ply, depth int) error {
	next, err := w.rules.Apply(s, m)
	if err != nil {
		return fmt.Errorf("%w: %s at ply %d", err, m.ShortDescription(), ply)
	}
	defer w.rules.Release(next)
	if m.IsPass() {
		w.passes++
	}
	return w.walk(ctx, next, ply+1, depth)
}

// Count walks every line of play from start to the given depth. The root
// moves are dealt out round-robin to threads workers; each worker builds
// its own Rules with newRules.
func Count(ctx context.Context, newRules func() game.Rules, start game.State,
	depth, threads int) (Result, error) {

	if depth < 0 {
		return Result{}, fmt.Errorf("depth must be non-negative, got %d", depth)
	}
	if threads < 1 {
		threads = 1
	}
	rows, cols := start.Dims()
	zob := &zobrist.Zobrist{}
	zob.Initialize(rows, cols)

	var mu sync.Mutex
	seen := map[uint64]struct{}{}
	var res Result

	newWorker := func() *worker {
		return &worker{
			rules: newRules(),
			zob:   zob,
			bufs:  make([][]*move.Move, depth+1),
			seen:  map[uint64]struct{}{},
		}
	}
	merge := func(w *worker) {
		mu.Lock()
		defer mu.Unlock()
		res.Nodes += w.nodes
		res.Terminals += w.terminals
		res.Passes += w.passes
		for k := range w.seen {
			seen[k] = struct{}{}
		}
	}

	tstart := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for t := 0; t < threads; t++ {
		t := t // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			w := newWorker()
			root := w.rules.NewState()
			defer w.rules.Release(root)
			game.CopyPosition(root, start)

			if depth == 0 || w.rules.IsTerminal(root) {
				// Nothing to split up; one worker records the root.
				if t == 0 {
					w.leaf(root)
					merge(w)
				}
				return nil
			}
			w.bufs[0] = w.rules.LegalMoves(root, w.bufs[0])
			defer w.rules.ReleaseMoves(w.bufs[0])
			for i, m := range w.bufs[0] {
				if i%threads != t {
					continue
				}
				if err := w.play(ctx, root, m, 0, depth); err != nil {
					return err
				}
			}
			log.Debug().Int("thread", t).Uint64("nodes", w.nodes).Msg("perft-worker-done")
			merge(w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	res.Distinct = len(seen)
	log.Debug().Int("depth", depth).Str("result", res.String()).
		Dur("elapsed", time.Since(tstart)).Msg("perft-done")
	return res, nil
}
