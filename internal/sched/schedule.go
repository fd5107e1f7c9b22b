package sched

import (
	"github.com/hailam/schedsolver/internal/word"
)

// Schedule is an immutable problem descriptor: table capacities, round
// count, and the derived buffer layout for one search-tree block. It
// carries no search state itself — all mutable state lives in the
// caller-owned []W buffers passed to InitialiseBuffer/ApplyPlayer/Step.
type Schedule[W word.Word[W]] struct {
	tables      []int
	rounds      int
	playerCount int
	wordsPerRow int
	offsets     offsets
}

// New constructs a Schedule from per-table capacities and a round
// count. It is pure: it only computes sizes and offsets.
func New[W word.Word[W]](tables []int, rounds int) (*Schedule[W], error) {
	if rounds < 1 {
		return nil, ErrRoundsTooLarge
	}
	playerCount := 0
	for _, size := range tables {
		if size <= 0 {
			return nil, ErrZeroLengthGroups
		}
		playerCount += size
	}

	var w W
	wordSize := w.Size()
	wordsPerRow := playerCount / wordSize
	if playerCount%wordSize != 0 {
		wordsPerRow++
	}
	if wordsPerRow <= 0 {
		return nil, ErrPlayerCountOverflow
	}

	numTables := len(tables)
	playedWithSize := wordsPerRow * playerCount
	playedOnTableTotalSize := wordsPerRow * numTables
	playedInRoundSize := wordsPerRow * rounds
	playedOnTableSize := wordsPerRow * numTables * rounds
	toExploreSize := rounds * numTables * 2

	tablesCopy := make([]int, numTables)
	copy(tablesCopy, tables)

	return &Schedule[W]{
		tables:      tablesCopy,
		rounds:      rounds,
		playerCount: playerCount,
		wordsPerRow: wordsPerRow,
		offsets: newOffsets(toExploreSize, playedWithSize, playedOnTableTotalSize,
			playedInRoundSize, playedOnTableSize),
	}, nil
}

// BlockSize returns the number of words one search-tree block occupies.
func (s *Schedule[W]) BlockSize() int {
	return s.offsets.blockSize
}

// PlayerCount returns the total number of players (sum of table
// capacities).
func (s *Schedule[W]) PlayerCount() int {
	return s.playerCount
}

// Tables returns the per-table capacities this Schedule was built with.
func (s *Schedule[W]) Tables() []int {
	out := make([]int, len(s.tables))
	copy(out, s.tables)
	return out
}

// Rounds returns the round count.
func (s *Schedule[W]) Rounds() int {
	return s.rounds
}

func (s *Schedule[W]) wordIndex(player int) (byteIdx int, bit W) {
	var w W
	size := w.Size()
	byteIdx = player / size
	bit = word.BitMask[W](player - byteIdx*size)
	return
}

func (s *Schedule[W]) rowOffset(round Round, table Table) int {
	return s.wordsPerRow * (int(round)*len(s.tables) + int(table))
}

// InitialiseBuffer zeroes buf and seeds it with the canonical first
// round (table 0 gets players [0, tables[0]), table 1 the next
// tables[1], and so on), full "potential" sets for every other round,
// and the to_explore worklist of every (round >= 1, table) pair. It
// returns false iff buf is shorter than BlockSize().
func (s *Schedule[W]) InitialiseBuffer(buf []W) bool {
	if len(buf) < s.offsets.blockSize {
		return false
	}
	var w W
	zero := w.Zero()
	for i := range buf[:s.offsets.blockSize] {
		buf[i] = zero
	}

	numTables := len(s.tables)

	// Potential initialisation: every (round, table) gets "all player
	// bits" set, masked to player_count in the last word of the row.
	// Round 0 is skipped here — ApplyPlayer below fixes it exactly, and
	// a table's potential set for the round it was canonically seated
	// in must not include players seated at other round-0 tables.
	full := w.Max()
	lowMask := word.LowMask[W](s.playerCount % s.wordsPerRowWidth())
	for round := 1; round < s.rounds; round++ {
		for table := 0; table < numTables; table++ {
			base := s.offsets.potentialOnTable + s.rowOffset(Round(round), Table(table))
			for byteIdx := 0; byteIdx < s.wordsPerRow; byteIdx++ {
				if byteIdx == s.wordsPerRow-1 && s.playerCount%s.wordsPerRowWidth() != 0 {
					buf[base+byteIdx] = lowMask
				} else {
					buf[base+byteIdx] = full
				}
			}
		}
	}

	// Worklist seeding: every (round, table) for round in [1, R).
	buf[s.offsets.emptyTableCount] = w.FromInt((s.rounds - 1) * numTables)
	i := 0
	for round := 1; round < s.rounds; round++ {
		for table := 0; table < numTables; table++ {
			pos := s.offsets.toExplore + i*2
			buf[pos] = w.FromInt(round)
			buf[pos+1] = w.FromInt(table)
			i++
		}
	}

	// Canonical first round: players 0..tables[0)-1 at table 0, etc.
	player := 0
	for table := 0; table < numTables; table++ {
		size := s.tables[table]
		for k := 0; k < size; k++ {
			s.ApplyPlayer(buf, 0, Table(table), player)
			player++
		}
	}
	return true
}

func (s *Schedule[W]) wordsPerRowWidth() int {
	var w W
	return w.Size()
}

// ApplyPlayer is the constraint-propagation primitive: seat player at
// (round, table), retracting it from every other candidate seat and
// recording the new "played with" pairs it forms. Returns false iff
// any index is out of range.
func (s *Schedule[W]) ApplyPlayer(buf []W, round Round, table Table, player int) bool {
	numTables := len(s.tables)
	if int(round) < 0 || int(round) >= s.rounds ||
		int(table) < 0 || int(table) >= numTables ||
		player < 0 || player >= s.playerCount {
		return false
	}

	byteIdx, playerBit := s.wordIndex(player)
	removeMask := playerBit.Not()

	buf[s.offsets.playersPlaced] = buf[s.offsets.playersPlaced].FromInt(buf[s.offsets.playersPlaced].ToInt() + 1)

	// Remove player from this table in every other round.
	for r2 := 0; r2 < s.rounds; r2++ {
		idx := s.offsets.potentialOnTable + s.rowOffset(Round(r2), table) + byteIdx
		buf[idx] = buf[idx].And(removeMask)
	}
	// Remove player from every other table in this round.
	for t2 := 0; t2 < numTables; t2++ {
		idx := s.offsets.potentialOnTable + s.rowOffset(round, Table(t2)) + byteIdx
		buf[idx] = buf[idx].And(removeMask)
	}

	// Record round/table-total membership.
	riIdx := s.offsets.playedInRound + s.wordsPerRow*int(round) + byteIdx
	buf[riIdx] = buf[riIdx].Or(playerBit)
	totIdx := s.offsets.playedOnTableTotal + s.wordsPerRow*int(table) + byteIdx
	buf[totIdx] = buf[totIdx].Or(playerBit)

	// Union with everyone already seated at (round,table): they become
	// mutual played_with entries. Players that player has already played
	// with are pruned from this seat's potential set here; conflicts at
	// other seats are left to the "already played with" check in Step.
	rowBase := s.offsets.playedOnTable + s.rowOffset(round, table)
	playedWithPlayerBase := s.offsets.playedWith + s.wordsPerRow*player
	for otherByte := 0; otherByte < s.wordsPerRow; otherByte++ {
		co := buf[rowBase+otherByte]

		potIdx := s.offsets.potentialOnTable + s.rowOffset(round, table) + otherByte
		buf[potIdx] = buf[potIdx].And(buf[playedWithPlayerBase+otherByte].Not())

		buf[playedWithPlayerBase+otherByte] = buf[playedWithPlayerBase+otherByte].Or(co)

		tmp := co
		for !tmp.IsZero() {
			tz := tmp.TrailingZeros()
			otherPlayer := otherByte*s.wordsPerRowWidth() + tz
			bit := word.BitMask[W](tz)
			tmp = tmp.Xor(bit)

			otherBase := s.offsets.playedWith + s.wordsPerRow*otherPlayer + byteIdx
			buf[otherBase] = buf[otherBase].Or(playerBit)
		}
	}

	// Seat the player: set both the fixed and potential bit at
	// (round,table).
	potSelf := s.offsets.potentialOnTable + s.rowOffset(round, table) + byteIdx
	buf[potSelf] = buf[potSelf].Or(playerBit)
	fixSelf := s.offsets.playedOnTable + s.rowOffset(round, table) + byteIdx
	buf[fixSelf] = buf[fixSelf].Or(playerBit)

	return true
}

// PlayersPlaced returns the running count of ApplyPlayer calls against
// buf (double-counts if ApplyPlayer is ever called twice for the same
// seat, by design — see spec.md §4.2).
func (s *Schedule[W]) PlayersPlaced(buf []W) int {
	return buf[s.offsets.playersPlaced].ToInt()
}

// EmptyTableCount returns the number of (round,table) pairs still
// needing at least one placement, restricted to the live prefix of the
// to_explore worklist.
func (s *Schedule[W]) EmptyTableCount(buf []W) int {
	return buf[s.offsets.emptyTableCount].ToInt()
}

// Init is a convenience wrapper around InitialiseBuffer returning
// ErrTooSmallBuffer instead of a bare bool, for callers (the driver)
// that want a uniform error-returning construction path.
func (s *Schedule[W]) Init(buf []W) error {
	if !s.InitialiseBuffer(buf) {
		return ErrTooSmallBuffer
	}
	return nil
}
