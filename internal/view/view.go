// Package view renders a live round-by-table grid of an in-progress
// search using Ebitengine, the way the chess engine's internal/ui
// package rendered a live board during play: an ebiten.Game whose
// Draw reads the shared snapshot and paints the current frame.
package view

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	cellWidth  = 120
	cellHeight = 28
	margin     = 16
)

// Snapshot is one frame of search state to render: the current partial
// schedule (round-major, table-major seat lists) plus headline
// progress counters.
type Snapshot struct {
	Tables   []int
	Rounds   int
	Schedule [][]int // round*numTables+table -> seated players
	Steps    uint64
	Depth    int
	Solved   bool
}

// Game is an ebiten.Game that redraws whatever Snapshot was last
// pushed via Push. The search itself runs on another goroutine and
// calls Push; Game never touches solver state directly.
type Game struct {
	mu       sync.Mutex
	snapshot Snapshot
}

// NewGame returns a Game with an empty initial snapshot.
func NewGame() *Game {
	return &Game{}
}

// Push installs the latest snapshot, replacing whatever the previous
// frame was drawn from. Safe to call from any goroutine.
func (g *Game) Push(s Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.snapshot = s
}

func (g *Game) current() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot
}

// Update satisfies ebiten.Game; the grid has no interactive state of
// its own, so there is nothing to advance here.
func (g *Game) Update() error {
	return nil
}

// Draw satisfies ebiten.Game, painting one row per round and one
// column per table, with seated players listed in each cell.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 24, B: 28, A: 255})
	snap := g.current()

	numTables := len(snap.Tables)
	for round := 0; round < snap.Rounds; round++ {
		for table := 0; table < numTables; table++ {
			x := margin + table*cellWidth
			y := margin + round*cellHeight
			var seats []int
			idx := round*numTables + table
			if idx < len(snap.Schedule) {
				seats = snap.Schedule[idx]
			}
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%v", seats), x, y)
		}
	}

	status := fmt.Sprintf("steps=%d depth=%d solved=%t", snap.Steps, snap.Depth, snap.Solved)
	ebitenutil.DebugPrintAt(screen, status, margin, margin+snap.Rounds*cellHeight+cellHeight)
}

// Layout satisfies ebiten.Game, sizing the window to the grid.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	snap := g.current()
	width := margin*2 + len(snap.Tables)*cellWidth
	height := margin*3 + (snap.Rounds+1)*cellHeight
	if width < 320 {
		width = 320
	}
	if height < 240 {
		height = 240
	}
	return width, height
}
