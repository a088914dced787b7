// Package sim plays match-3 games headlessly to measure how a board
// configuration behaves: score per game, cascade depth, bonus and shuffle
// frequency, and how often boards run out of moves.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

// Strategy picks the swap a simulated player makes.
type Strategy string

const (
	// StrategyHint always plays the first move FindHint reports.
	StrategyHint Strategy = "hint"
	// StrategyRandom swaps a random cell with a random neighbour, so many
	// swaps are rejected.
	StrategyRandom Strategy = "random"
)

// ParseStrategy converts a flag value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyHint, StrategyRandom:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("sim: unknown strategy %q (want hint or random)", s)
}

// Options controls a simulation run.
type Options struct {
	Games    int      // games to play
	Moves    int      // swap attempts per game
	Workers  int      // games played in parallel
	Strategy Strategy // how swaps are chosen
	Seed     int64    // first seed; every game gets its own derived seed

	// Target ends a game as won once its score reaches it. Zero plays every
	// game for the full Moves.
	Target int

	// Progress receives a progress bar. Nil hides it.
	Progress io.Writer
}

func (o Options) validate() error {
	switch {
	case o.Games < 1:
		return errors.New("sim: games must be at least 1")
	case o.Moves < 1:
		return errors.New("sim: moves must be at least 1")
	case o.Workers < 1:
		return errors.New("sim: workers must be at least 1")
	}
	_, err := ParseStrategy(string(o.Strategy))
	return err
}

// GameResult records one simulated game.
type GameResult struct {
	Seed       int64
	Score      int
	Swaps      int // swaps kept
	Reverted   int // swaps undone for lack of a match
	Steps      int // cascade steps over the game
	MaxSteps   int // longest cascade of a single swap
	Groups     int // match groups resolved
	Bonuses    int
	Shuffles   int  // no-move shuffles
	Exhausted  bool // the board could not be reshuffled
	Won        bool // Target reached
	MovePoints []float64
}

// groupCounter counts resolved groups through the listener interface.
type groupCounter struct {
	board.NopListener
	groups int
}

func (c *groupCounter) OnGroupResolved(board.Group, board.ItemType) { c.groups++ }

// Run plays opts.Games games of cfg. Results are in seed order, independent
// of the number of workers. A cancelled ctx stops the run after the games in
// flight and returns the partial report with ctx's error.
func Run(ctx context.Context, cfg config.Match3Config, opts Options) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	cat, err := match3.NewCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	seeds := newSeedMaker(opts.Seed)
	jobs := make(chan int)
	results := make([]GameResult, opts.Games)
	for i := range results {
		results[i].Seed = seeds.next()
	}

	bar := pb.StartNew(opts.Games)
	if opts.Progress == nil {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(opts.Progress)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < min(opts.Workers, opts.Games); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := play(cfg, cat, results[i].Seed, opts)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
				results[i] = res
				bar.Increment()
			}
		}()
	}

	played := 0
feed:
	for ; played < opts.Games; played++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- played:
		}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(bar.StartTime())
	bar.Finish()

	report := newReport(opts, results[:played], elapsed)
	if firstErr != nil {
		return report, firstErr
	}
	return report, ctx.Err()
}

// play runs one game to completion.
func play(cfg config.Match3Config, cat *board.Catalog, seed int64, opts Options) (GameResult, error) {
	res := GameResult{Seed: seed}
	counter := &groupCounter{}

	ctrl, err := match3.NewController(cfg, cat, seed, counter)
	if errors.Is(err, board.ErrShuffleExhausted) {
		res.Exhausted = true
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("sim: seed %d: %w", seed, err)
	}

	pick := hintMove
	if opts.Strategy == StrategyRandom {
		rng := board.NewRand(seed ^ 0x5deece66d)
		pick = func(g *board.Grid) (board.Move, bool) { return randomMove(g, rng) }
	}

	for range opts.Moves {
		m, ok := pick(ctrl.Grid())
		if !ok {
			res.Exhausted = true
			break
		}

		ctrl.ClearSelection()
		if _, err := ctrl.Select(m.A); err != nil {
			return res, fmt.Errorf("sim: seed %d: %w", seed, err)
		}
		out, err := ctrl.Select(m.B)
		res.record(out)
		if errors.Is(err, board.ErrShuffleExhausted) {
			res.Exhausted = true
			break
		}
		if err != nil {
			return res, fmt.Errorf("sim: seed %d: %w", seed, err)
		}

		if opts.Target > 0 && ctrl.Score() >= opts.Target {
			res.Won = true
			break
		}
	}

	res.Score = ctrl.Score()
	res.Groups = counter.groups
	return res, nil
}

func (r *GameResult) record(out board.Outcome) {
	switch {
	case out.Swapped:
		r.Swaps++
		r.MovePoints = append(r.MovePoints, float64(out.Points))
	case out.Reverted:
		r.Reverted++
	}
	r.Steps += out.Steps
	r.MaxSteps = max(r.MaxSteps, out.Steps)
	r.Bonuses += len(out.Bonuses)
	if out.Shuffled {
		r.Shuffles++
	}
}

func hintMove(g *board.Grid) (board.Move, bool) {
	return board.FindHint(g)
}

// randomMove picks a random cell and a random in-bounds neighbour.
func randomMove(g *board.Grid, rng *board.Rand) (board.Move, bool) {
	if g.Width()*g.Height() < 2 {
		return board.Move{}, false
	}
	dirs := []board.Dir{board.DirLeft, board.DirUp, board.DirRight, board.DirDown}
	for {
		a := board.C(rng.RandomInt(0, g.Width()), rng.RandomInt(0, g.Height()))
		if b, ok := g.Neighbor(a, dirs[rng.RandomInt(0, len(dirs))]); ok {
			return board.Move{A: a, B: b}, true
		}
	}
}

const mask63 = 1<<63 - 1

// seedMaker derives well-spread non-negative seeds from one starting seed
// with a full-period LCG and a splitmix finaliser.
type seedMaker struct {
	state uint64
}

func newSeedMaker(seed int64) *seedMaker {
	return &seedMaker{state: uint64(seed) & mask63}
}

func (s *seedMaker) next() int64 {
	s.state = (s.state*6364136223846793005 + 1442695040888963407) & mask63
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z & mask63)
}
