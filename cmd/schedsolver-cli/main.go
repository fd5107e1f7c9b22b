// Command schedsolver-cli runs the frontier social-golfer solver
// headlessly and prints the resulting schedule, or a non-zero exit if
// no schedule exists for the requested shape. Flag handling follows
// the chess engine's cmd/chessplay-uci entry point in spirit: plain
// flags, log.Fatal on setup failure, and an explicit os.Exit code.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hailam/schedsolver/internal/cache"
	"github.com/hailam/schedsolver/internal/driver"
	"github.com/hailam/schedsolver/internal/sched"
	"github.com/hailam/schedsolver/internal/word"
)

func main() {
	app := &cli.App{
		Name:  "schedsolver-cli",
		Usage: "solve a social-golfer / round-robin table schedule",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tables",
				Value: "4,4,4,4,4,4",
				Usage: "comma-separated table capacities",
			},
			&cli.IntFlag{
				Name:  "rounds",
				Value: 6,
				Usage: "number of rounds to schedule",
			},
			&cli.IntFlag{
				Name:  "word",
				Value: 64,
				Usage: "bitset word width: 8, 16, 32, 64, or 128",
			},
			&cli.BoolFlag{
				Name:  "cache",
				Value: true,
				Usage: "read/write the on-disk best-result cache",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Value: 4096,
				Usage: "search-tree depth bound (arena size guard)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	tables, err := parseTables(c.String("tables"))
	if err != nil {
		return err
	}
	rounds := c.Int("rounds")
	wordBits := c.Int("word")
	useCache := c.Bool("cache")
	maxDepth := c.Int("max-depth")

	var store *cache.Store
	var cacheKey string
	if useCache {
		dir, err := cache.DefaultDir()
		if err != nil {
			return fmt.Errorf("resolve cache dir: %w", err)
		}
		store, err = cache.Open(dir)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer store.Close()
		cacheKey = cache.Key(tables, rounds, wordBits)
	}

	result, err := solveWithWordWidth(tables, rounds, wordBits, maxDepth)
	if err != nil {
		return err
	}

	if store != nil {
		stats := cache.Stats{
			Tables:    tables,
			Rounds:    rounds,
			WordBits:  wordBits,
			Solved:    result.Solved,
			Steps:     result.Steps,
			BestDepth: maxDepth,
			Schedule:  result.Schedule,
		}
		if err := store.Save(cacheKey, stats); err != nil {
			log.Printf("warning: failed to save cache entry: %v", err)
		}
	}

	if !result.Solved {
		fmt.Fprintln(os.Stderr, "no valid schedule found")
		os.Exit(1)
	}

	numTables := len(tables)
	for round := 0; round < rounds; round++ {
		fmt.Printf("round %2d:", round)
		for table := 0; table < numTables; table++ {
			fmt.Printf(" %v", result.Schedule[round*numTables+table])
		}
		fmt.Println()
	}
	return nil
}

func parseTables(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid table size %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// solveWithWordWidth dispatches to the generic driver.Run across the
// concrete word types, since the CLI's -word flag is only known at
// runtime while sched.Schedule is parameterised at compile time.
func solveWithWordWidth(tables []int, rounds, wordBits, maxDepth int) (driver.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report := func(p driver.Progress) {
		log.Printf("progress: steps=%d depth=%d bestDepth=%d", p.Steps, p.Depth, p.BestDepth)
	}
	limits := driver.Limits{ReportInterval: 300 * time.Millisecond, OnProgress: report}

	switch wordBits {
	case 8:
		sc, err := sched.New[word.Word8](tables, rounds)
		if err != nil {
			return driver.Result{}, err
		}
		return driver.Run(ctx, sc, maxDepth, limits)
	case 16:
		sc, err := sched.New[word.Word16](tables, rounds)
		if err != nil {
			return driver.Result{}, err
		}
		return driver.Run(ctx, sc, maxDepth, limits)
	case 32:
		sc, err := sched.New[word.Word32](tables, rounds)
		if err != nil {
			return driver.Result{}, err
		}
		return driver.Run(ctx, sc, maxDepth, limits)
	case 64:
		sc, err := sched.New[word.Word64](tables, rounds)
		if err != nil {
			return driver.Result{}, err
		}
		return driver.Run(ctx, sc, maxDepth, limits)
	case 128:
		sc, err := sched.New[word.Word128](tables, rounds)
		if err != nil {
			return driver.Result{}, err
		}
		return driver.Run(ctx, sc, maxDepth, limits)
	default:
		return driver.Result{}, fmt.Errorf("unsupported word width %d (want 8, 16, 32, 64, or 128)", wordBits)
	}
}
