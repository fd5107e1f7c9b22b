package dfsolver

import (
	"testing"

	"github.com/hailam/schedsolver/internal/word"
)

func TestNewRejectsZeroLengthGroups(t *testing.T) {
	_, err := New[word.Word8]([]int{2, 0})
	if err != ErrZeroLengthGroups {
		t.Fatalf("got %v, want ErrZeroLengthGroups", err)
	}
}

func TestStepGrowsScheduleWithoutRepeatingPartners(t *testing.T) {
	s, err := New[word.Word16]([]int{3, 3, 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const maxSteps = 500
	rounds := 0
	for i := 0; i < maxSteps && rounds < 3; i++ {
		if !s.Step() {
			t.Fatalf("search exhausted before reaching 3 rounds (schedule len=%d)", len(s.GetSchedule()))
		}
		rounds = s.Rounds()
	}

	schedule := s.GetSchedule()
	if len(schedule) < 27 {
		t.Fatalf("schedule has %d entries, want at least 27 (3 rounds * 9 players)", len(schedule))
	}

	seen := map[[2]int]bool{}
	for r := 0; r < 3; r++ {
		roundStart := r * 9
		for tbl := 0; tbl < 3; tbl++ {
			tableStart := roundStart + tbl*3
			seats := schedule[tableStart : tableStart+3]
			for i := 0; i < len(seats); i++ {
				for j := i + 1; j < len(seats); j++ {
					a, b := seats[i], seats[j]
					if a > b {
						a, b = b, a
					}
					if seen[[2]int{a, b}] {
						t.Fatalf("pair (%d,%d) seated together more than once", a, b)
					}
					seen[[2]int{a, b}] = true
				}
			}
		}
	}
}

func TestUniqueOpponentCountMonotonic(t *testing.T) {
	s, err := New[word.Word8]([]int{2, 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	prev := s.UniqueOpponentCount()
	for i := 0; i < 20; i++ {
		if !s.Step() {
			break
		}
		cur := s.UniqueOpponentCount()
		if cur < prev {
			t.Fatalf("UniqueOpponentCount decreased from %d to %d after a forward Step", prev, cur)
		}
		prev = cur
	}
}

func TestFillCompletesCurrentTableWithoutMutatingState(t *testing.T) {
	s, err := New[word.Word8]([]int{2, 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Step() {
		t.Fatalf("expected the first placement to succeed")
	}
	before := len(s.GetSchedule())

	filled := s.Fill()
	if len(filled) != before+1 {
		t.Fatalf("Fill() returned %d entries, want the %d already committed plus the 1 open seat of the current table", len(filled), before)
	}
	if len(s.GetSchedule()) != before {
		t.Fatalf("Fill() must not mutate solver state, schedule length changed from %d to %d",
			before, len(s.GetSchedule()))
	}
}

func TestBestLengthTracksPeakAcrossBacktracking(t *testing.T) {
	s, err := New[word.Word8]([]int{2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 50; i++ {
		s.Step()
	}
	if s.BestLength() < len(s.GetSchedule()) {
		t.Fatalf("BestLength %d should never be less than the current schedule length %d",
			s.BestLength(), len(s.GetSchedule()))
	}
}
