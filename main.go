// schedsolver - a social-golfer / round-robin schedule solver with a
// live Ebitengine grid viewer.
package main

import (
	"context"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/schedsolver/internal/driver"
	"github.com/hailam/schedsolver/internal/sched"
	"github.com/hailam/schedsolver/internal/view"
	"github.com/hailam/schedsolver/internal/word"
)

const (
	screenWidth  = 900
	screenHeight = 480
)

func main() {
	tables := []int{3, 3, 3, 3}
	rounds := 6

	sc, err := sched.New[word.Word64](tables, rounds)
	if err != nil {
		log.Fatal(err)
	}

	game := view.NewGame()
	go runSolverInBackground(sc, tables, rounds, game)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("schedsolver")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenFilterEnabled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func runSolverInBackground(sc *sched.Schedule[word.Word64], tables []int, rounds int, game *view.Game) {
	ctx := context.Background()
	limits := driver.Limits{
		ReportInterval: 200 * time.Millisecond,
		OnProgress: func(p driver.Progress) {
			game.Push(view.Snapshot{
				Tables: tables,
				Rounds: rounds,
				Steps:  p.Steps,
				Depth:  p.Depth,
			})
		},
	}

	result, err := driver.Run(ctx, sc, 4096, limits)
	if err != nil {
		log.Printf("solver stopped: %v", err)
		return
	}
	game.Push(view.Snapshot{
		Tables:   tables,
		Rounds:   rounds,
		Schedule: result.Schedule,
		Steps:    result.Steps,
		Solved:   result.Solved,
	})
}
