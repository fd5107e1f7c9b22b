package sched

import (
	"fmt"
	"io"
	"strings"

	"github.com/hailam/schedsolver/internal/word"
)

// PlayedOnTableWords returns a borrowed view of buf's raw
// played_on_table word slab for (round,table) — wordsPerRow words,
// one bit per player, no allocation or parsing. Callers that only need
// to test membership or hand the bits to another Word-based routine
// should use this instead of GetSchedule.
func (s *Schedule[W]) PlayedOnTableWords(buf []W, round Round, table Table) []W {
	base := s.offsets.playedOnTable + s.rowOffset(round, table)
	return buf[base : base+s.wordsPerRow]
}

// GetSchedule extracts the seat assignments from buf as a flat
// round-major slice: result[round*numTables+table] is the sorted list
// of players seated at that (round,table). This parses
// PlayedOnTableWords into plain ints for display/serialization; callers
// wanting the zero-copy raw slab should call PlayedOnTableWords
// directly instead.
func (s *Schedule[W]) GetSchedule(buf []W) [][]int {
	numTables := len(s.tables)
	out := make([][]int, s.rounds*numTables)
	width := s.wordsPerRowWidth()

	for round := 0; round < s.rounds; round++ {
		for table := 0; table < numTables; table++ {
			base := s.offsets.playedOnTable + s.rowOffset(Round(round), Table(table))
			var seats []int
			for wi := 0; wi < s.wordsPerRow; wi++ {
				w := buf[base+wi]
				for !w.IsZero() {
					tz := w.TrailingZeros()
					seats = append(seats, wi*width+tz)
					w = w.Xor(word.BitMask[W](tz))
				}
			}
			out[round*numTables+table] = seats
		}
	}
	return out
}

// FormatSchedule writes a human-readable round-by-table grid of buf's
// current seat assignments to out, one line per round.
func (s *Schedule[W]) FormatSchedule(buf []W, out io.Writer) error {
	schedule := s.GetSchedule(buf)
	numTables := len(s.tables)
	for round := 0; round < s.rounds; round++ {
		var b strings.Builder
		fmt.Fprintf(&b, "round %2d:", round)
		for table := 0; table < numTables; table++ {
			seats := schedule[round*numTables+table]
			fmt.Fprintf(&b, " [%s]", joinInts(seats))
		}
		b.WriteByte('\n')
		if _, err := out.Write([]byte(b.String())); err != nil {
			return err
		}
	}
	return nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, " ")
}
