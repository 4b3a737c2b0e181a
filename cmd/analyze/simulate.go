package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/game2048/game/config"
	"github.com/wricardo/game2048/game/engine"
	"golang.org/x/sync/errgroup"
)

// Strategy picks the next direction for a live game. Implementations look ahead
// on clones and never mutate eng.
type Strategy interface {
	Name() string
	Next(eng *engine.GameEngine) engine.Direction
}

func newStrategy(name string, seed uint64) (Strategy, error) {
	switch name {
	case "random":
		return &randomStrategy{r: rand.New(rand.NewPCG(seed, seed))}, nil
	case "greedy":
		return greedyStrategy{}, nil
	case "corner":
		return cornerStrategy{}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want random, greedy or corner)", name)
}

// movingDirections returns the directions whose shift changes the grid
func movingDirections(eng *engine.GameEngine) []engine.Direction {
	var dirs []engine.Direction
	for _, dir := range engine.Directions {
		if moved, _ := eng.Clone().Shift(dir); moved {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

type randomStrategy struct {
	r *rand.Rand
}

func (s *randomStrategy) Name() string { return "random" }

func (s *randomStrategy) Next(eng *engine.GameEngine) engine.Direction {
	dirs := movingDirections(eng)
	if len(dirs) == 0 {
		return engine.Left
	}
	return dirs[s.r.IntN(len(dirs))]
}

// greedyStrategy takes the shift that merges the most pairs, breaking ties on empty cells
type greedyStrategy struct{}

func (greedyStrategy) Name() string { return "greedy" }

func (greedyStrategy) Next(eng *engine.GameEngine) engine.Direction {
	best, bestMerges, bestEmpty := engine.Left, -1, -1
	for _, dir := range engine.Directions {
		clone := eng.Clone()
		if moved, _ := clone.Shift(dir); !moved {
			continue
		}
		merges, empty := clone.LastMerges(), engine.CountEmpty(clone.Snapshot())
		if merges > bestMerges || (merges == bestMerges && empty > bestEmpty) {
			best, bestMerges, bestEmpty = dir, merges, empty
		}
	}
	return best
}

// cornerStrategy keeps large tiles in the bottom-left corner by preferring
// down, then left, then right, and pushing up only when nothing else moves
type cornerStrategy struct{}

var cornerOrder = []engine.Direction{engine.Down, engine.Left, engine.Right, engine.Up}

func (cornerStrategy) Name() string { return "corner" }

func (cornerStrategy) Next(eng *engine.GameEngine) engine.Direction {
	for _, dir := range cornerOrder {
		if moved, _ := eng.Clone().Shift(dir); moved {
			return dir
		}
	}
	return engine.Down
}

// GameResult is the outcome of one headless game
type GameResult struct {
	Seed      uint64
	Won       bool
	WonAtMove int
	MaxTile   int
	Moves     int
	Abandoned bool
}

// playGame runs one game until it is over or maxMoves is reached
func playGame(cfg *engine.GameConfig, strategyName string, seed uint64, maxMoves int) (GameResult, error) {
	eng, err := engine.NewEngine(cfg, engine.WithRandomSource(engine.NewRandomSource(seed)))
	if err != nil {
		return GameResult{}, err
	}
	strategy, err := newStrategy(strategyName, seed)
	if err != nil {
		return GameResult{}, err
	}

	result := GameResult{Seed: seed}
	for !eng.IsGameOver() {
		if result.Moves >= maxMoves {
			result.Abandoned = true
			break
		}
		if _, _, err := eng.Move(strategy.Next(eng)); err != nil && !errors.Is(err, engine.ErrGridFull) {
			return result, err
		}
		result.Moves++
		if !result.Won && eng.HasWon() {
			result.Won = true
			result.WonAtMove = result.Moves
		}
	}

	result.MaxTile = engine.MaxTile(eng.Snapshot())
	return result, nil
}

// Summary aggregates the games played against one configuration
type Summary struct {
	Config     string
	Strategy   string
	Games      int
	Wins       int
	Abandoned  int
	BestTile   int
	TotalMoves int
	TileCounts map[int]int
}

// WinRate returns wins as a fraction of games
func (s *Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// AverageMoves returns the mean game length
func (s *Summary) AverageMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Games)
}

func summarize(configName, strategy string, results []GameResult) *Summary {
	s := &Summary{
		Config:     configName,
		Strategy:   strategy,
		Games:      len(results),
		TileCounts: make(map[int]int),
	}
	for _, r := range results {
		if r.Won {
			s.Wins++
		}
		if r.Abandoned {
			s.Abandoned++
		}
		if r.MaxTile > s.BestTile {
			s.BestTile = r.MaxTile
		}
		s.TotalMoves += r.Moves
		s.TileCounts[r.MaxTile]++
	}
	return s
}

// simulate plays games in parallel; results are indexed by game so output is stable
func simulate(ctx context.Context, cfg *engine.GameConfig, strategy string, games int, seed uint64, maxMoves, workers int) (*Summary, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]GameResult, games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < games; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := playGame(cfg, strategy, seed+uint64(i), maxMoves)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summarize(cfg.Name, strategy, results), nil
}

func printSummary(w io.Writer, target int, s *Summary) {
	fmt.Fprintf(w, "\n=== %s (%s, %d games) ===\n", s.Config, s.Strategy, s.Games)
	fmt.Fprintf(w, "Win rate (%d): %.1f%% (%d/%d)\n", target, 100*s.WinRate(), s.Wins, s.Games)
	fmt.Fprintf(w, "Best tile: %d\n", s.BestTile)
	fmt.Fprintf(w, "Average moves: %.1f\n", s.AverageMoves())
	if s.Abandoned > 0 {
		fmt.Fprintf(w, "⚠️  %d games hit the move limit\n", s.Abandoned)
	}

	tiles := make([]int, 0, len(s.TileCounts))
	for tile := range s.TileCounts {
		tiles = append(tiles, tile)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))

	fmt.Fprintln(w, "Max tile distribution:")
	for _, tile := range tiles {
		count := s.TileCounts[tile]
		bar := strings.Repeat("█", (count*40+s.Games-1)/s.Games)
		fmt.Fprintf(w, "  %6d %5d %s\n", tile, count, bar)
	}
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer
	strategy := cmd.String("strategy")
	if _, err := newStrategy(strategy, 0); err != nil {
		return err
	}
	games := cmd.Int("games")
	if games <= 0 {
		return fmt.Errorf("games must be positive, got %d", games)
	}

	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	names := cmd.Args().Slice()
	if len(names) == 0 {
		infos, err := manager.ListConfigs()
		if err != nil {
			return err
		}
		for _, info := range infos {
			names = append(names, info.ConfigID)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no configurations found in %s", cmd.String("config-dir"))
	}

	for _, name := range names {
		cfg, err := manager.LoadConfig(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		summary, err := simulate(ctx, cfg, strategy, games, uint64(cmd.Int("seed")), cmd.Int("max-moves"), cmd.Int("workers"))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		summary.Config = name
		printSummary(out, cfg.Target(), summary)
	}
	return nil
}
