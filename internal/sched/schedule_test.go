package sched

import (
	"strings"
	"testing"

	"github.com/hailam/schedsolver/internal/word"
)

func solveAll[W word.Word[W]](t *testing.T, tables []int, rounds int) ([][]int, bool) {
	t.Helper()
	sc, err := New[W](tables, rounds)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	blockSize := sc.BlockSize()

	type frame struct {
		buf []W
	}
	root := make([]W, blockSize)
	if !sc.InitialiseBuffer(root) {
		t.Fatalf("InitialiseBuffer failed on a correctly sized buffer")
	}

	stack := []frame{{buf: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		next := make([]W, blockSize)
		switch sc.Step(top.buf, next) {
		case Solved:
			return sc.GetSchedule(top.buf), true
		case Child:
			stack = append(stack, frame{buf: next})
		case Dead:
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 2000 {
			t.Fatalf("search did not terminate within 2000 frames")
		}
	}
	return nil, false
}

func TestNewRejectsZeroLengthGroups(t *testing.T) {
	_, err := New[word.Word8]([]int{2, 0}, 1)
	if err != ErrZeroLengthGroups {
		t.Fatalf("got %v, want ErrZeroLengthGroups", err)
	}
}

func TestNewRejectsZeroRounds(t *testing.T) {
	_, err := New[word.Word8]([]int{2, 2}, 0)
	if err != ErrRoundsTooLarge {
		t.Fatalf("got %v, want ErrRoundsTooLarge", err)
	}
}

func TestInitialiseBufferRejectsShortBuffer(t *testing.T) {
	sc, err := New[word.Word8]([]int{2, 2}, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	short := make([]word.Word8, sc.BlockSize()-1)
	if sc.InitialiseBuffer(short) {
		t.Fatalf("InitialiseBuffer succeeded on an undersized buffer")
	}
	if err := sc.Init(short); err != ErrTooSmallBuffer {
		t.Fatalf("Init got %v, want ErrTooSmallBuffer", err)
	}
}

func TestSingleRoundIsImmediatelySolved(t *testing.T) {
	sc, err := New[word.Word8]([]int{2, 2}, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	buf := make([]word.Word8, sc.BlockSize())
	if !sc.InitialiseBuffer(buf) {
		t.Fatalf("InitialiseBuffer failed")
	}
	if got := sc.EmptyTableCount(buf); got != 0 {
		t.Fatalf("EmptyTableCount = %d, want 0 for a single-round schedule", got)
	}
	next := make([]word.Word8, sc.BlockSize())
	if outcome := sc.Step(buf, next); outcome != Solved {
		t.Fatalf("Step = %v, want Solved", outcome)
	}
}

func TestTwoTablesThreeRoundsRoundRobin(t *testing.T) {
	schedule, ok := solveAll[word.Word8](t, []int{2, 2}, 3)
	if !ok {
		t.Fatalf("expected a schedule for tables=[2,2] rounds=3")
	}
	seenPairs := map[[2]int]bool{}
	for _, seats := range schedule {
		if len(seats) != 2 {
			continue
		}
		a, b := seats[0], seats[1]
		if a > b {
			a, b = b, a
		}
		if seenPairs[[2]int{a, b}] {
			t.Fatalf("pair (%d,%d) seated together twice", a, b)
		}
		seenPairs[[2]int{a, b}] = true
	}
}

func TestKirkmanTripleThreeTablesFourRounds(t *testing.T) {
	schedule, ok := solveAll[word.Word16](t, []int{3, 3, 3}, 4)
	if !ok {
		t.Fatalf("expected a schedule for tables=[3,3,3] rounds=4")
	}
	partnerRounds := map[[2]int]int{}
	for round := 0; round < 4; round++ {
		for table := 0; table < 3; table++ {
			seats := schedule[round*3+table]
			for i := 0; i < len(seats); i++ {
				for j := i + 1; j < len(seats); j++ {
					a, b := seats[i], seats[j]
					if a > b {
						a, b = b, a
					}
					partnerRounds[[2]int{a, b}]++
				}
			}
		}
	}
	for pair, count := range partnerRounds {
		if count > 1 {
			t.Fatalf("pair %v seated together %d times, want at most 1", pair, count)
		}
	}
}

func TestInfeasibleTwoRoundsOneTableOfTwo(t *testing.T) {
	_, ok := solveAll[word.Word8](t, []int{2}, 2)
	if ok {
		t.Fatalf("a single table of 2 cannot fill a second distinct round; expected no solution")
	}
}

func TestFormatScheduleListsAllPlayers(t *testing.T) {
	sc, err := New[word.Word8]([]int{2, 2}, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	buf := make([]word.Word8, sc.BlockSize())
	sc.InitialiseBuffer(buf)

	var b strings.Builder
	if err := sc.FormatSchedule(buf, &b); err != nil {
		t.Fatalf("FormatSchedule: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "round  0:") {
		t.Fatalf("output missing round header: %q", out)
	}
	for _, want := range []string{"0", "1", "2", "3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing player %s", out, want)
		}
	}
}
