package sched

import "github.com/hailam/schedsolver/internal/word"

// StepOutcome is the result of one Step call, mirroring the three-way
// Option<Option<usize>> the original solver returns: a dead end (no
// legal placement survives), a descent into a child block, or a
// fully-seated schedule.
type StepOutcome int

const (
	// Dead means buf has an unresolved (round,table) seat with zero
	// remaining candidate players; the caller should discard buf and
	// backtrack to a sibling block.
	Dead StepOutcome = iota
	// Child means next now holds one additional placement beyond buf
	// and the caller should continue exploring from next.
	Child
	// Solved means every (round,table) pair is fully seated; buf holds
	// a complete schedule.
	Solved
)

// Step forces any hidden singles first, then walks the live to_explore
// worklist looking for the (round,table) pair with the fewest already-
// fixed players (among pairs still short of capacity), compacting
// fully-seated pairs out of the worklist as it goes. It branches on the
// lowest-numbered remaining candidate for that seat that does not
// conflict with anyone already fixed there, writing the resulting
// state into next. buf itself has that candidate permanently pruned
// from its row before returning, so a later Step call against the same
// buf (after the caller discards a dead-ending next) naturally offers
// the next candidate instead of repeating this one. next must be at
// least BlockSize words; buf and next must not alias.
func (s *Schedule[W]) Step(buf, next []W) StepOutcome {
	s.findHiddenSingles(buf)

	lowestFixed := -1
	var lowestRound Round
	var lowestTable Table
	haveLowest := false

	i := 0
	for i < s.EmptyTableCount(buf) {
		pos := s.offsets.toExplore + i*2
		round := Round(buf[pos].ToInt())
		table := Table(buf[pos+1].ToInt())
		tableSize := s.tables[table]
		fixed := s.popCountRow(buf, s.offsets.playedOnTable+s.rowOffset(round, table))

		switch {
		case fixed < tableSize:
			if !haveLowest || fixed < lowestFixed {
				lowestFixed = fixed
				lowestRound, lowestTable = round, table
				haveLowest = true
			}
			i++
		case fixed == tableSize:
			last := s.EmptyTableCount(buf) - 1
			lastPos := s.offsets.toExplore + last*2
			buf[pos], buf[lastPos] = buf[lastPos], buf[pos]
			buf[pos+1], buf[lastPos+1] = buf[lastPos+1], buf[pos+1]
			s.decrementEmptyTableCount(buf)

			// Collapse potential down to exactly the fixed set: this
			// pair is done and will not be visited again.
			fixedBase := s.offsets.playedOnTable + s.rowOffset(round, table)
			potBase := s.offsets.potentialOnTable + s.rowOffset(round, table)
			for b := 0; b < s.wordsPerRow; b++ {
				buf[potBase+b] = buf[fixedBase+b]
			}
			// i stays put: the swapped-in entry at pos needs checking too.
		default: // fixed > tableSize: should be unreachable, treat as a dead contradiction.
			return Dead
		}
	}

	if !haveLowest {
		return Solved
	}

	round, table := lowestRound, lowestTable
	potBase := s.offsets.potentialOnTable + s.rowOffset(round, table)
	fixedBase := s.offsets.playedOnTable + s.rowOffset(round, table)
	playedWithBase := s.offsets.playedWith
	width := s.wordsPerRowWidth()

	for byteIdx := 0; byteIdx < s.wordsPerRow; byteIdx++ {
		potential := buf[potBase+byteIdx].And(buf[fixedBase+byteIdx].Not())
		tmp := potential
	candidates:
		for !tmp.IsZero() {
			tz := tmp.TrailingZeros()
			player := byteIdx*width + tz
			bit := word.BitMask[W](tz)
			tmp = tmp.Xor(bit)

			playerPlayedWithBase := playedWithBase + s.wordsPerRow*player
			for otherByte := 0; otherByte < s.wordsPerRow; otherByte++ {
				if !buf[playerPlayedWithBase+otherByte].And(buf[fixedBase+otherByte]).IsZero() {
					// player has already shared a table with someone
					// fixed here: permanently prune and move on.
					buf[potBase+byteIdx] = buf[potBase+byteIdx].And(bit.Not())
					continue candidates
				}
			}

			copy(next[:s.offsets.blockSize], buf[:s.offsets.blockSize])
			buf[potBase+byteIdx] = buf[potBase+byteIdx].And(bit.Not())
			s.ApplyPlayer(next, round, table, player)
			return Child
		}
	}
	// fixed < table_size but every remaining candidate conflicted.
	return Dead
}

func (s *Schedule[W]) popCountRow(buf []W, base int) int {
	n := 0
	for i := 0; i < s.wordsPerRow; i++ {
		n += buf[base+i].PopCount()
	}
	return n
}

func (s *Schedule[W]) decrementEmptyTableCount(buf []W) {
	buf[s.offsets.emptyTableCount] = buf[s.offsets.emptyTableCount].FromInt(
		buf[s.offsets.emptyTableCount].ToInt() - 1)
}

// findHiddenSingles forces every true hidden single it can find: a
// player with exactly one remaining legal table in some round (a
// round-pass), then, when there are at least as many rounds as tables
// so that every player has to sit at every table, a player with exactly
// one remaining legal round at some table (a table-pass). Each
// candidate position is read live from potential_on_table at the
// moment it is considered, so a placement made earlier in the same pass
// is immediately visible to every later check. A forced placement is
// skipped when the player has already shared a table with someone fixed
// at that seat, so forcing never seats a pair together twice; Step's
// own conflict check prunes such a player from that seat later.
// Grounded on original_source/schedule_solver/src/schedule.rs's
// find_hidden_singles.
func (s *Schedule[W]) findHiddenSingles(buf []W) {
	width := s.wordsPerRowWidth()
	numTables := len(s.tables)

	sharesHistory := func(player int, round Round, table Table) bool {
		fixedBase := s.offsets.playedOnTable + s.rowOffset(round, table)
		playedWithBase := s.offsets.playedWith + s.wordsPerRow*player
		for b := 0; b < s.wordsPerRow; b++ {
			if !buf[playedWithBase+b].And(buf[fixedBase+b]).IsZero() {
				return true
			}
		}
		return false
	}

	for round := 0; round < s.rounds; round++ {
		for byteIdx := 0; byteIdx < s.wordsPerRow; byteIdx++ {
			base := s.offsets.playedInRound + s.wordsPerRow*round + byteIdx
			potentialInRow := buf[base].Not()
		roundBits:
			for !potentialInRow.IsZero() {
				tz := potentialInRow.TrailingZeros()
				player := byteIdx*width + tz
				bit := word.BitMask[W](tz)
				potentialInRow = potentialInRow.Xor(bit)
				if player >= s.playerCount {
					break
				}

				onlyTable := -1
				for table := 0; table < numTables; table++ {
					idx := s.offsets.potentialOnTable + s.rowOffset(Round(round), Table(table)) + byteIdx
					if !buf[idx].And(bit).IsZero() {
						if onlyTable < 0 {
							onlyTable = table
						} else {
							continue roundBits
						}
					}
				}
				if onlyTable >= 0 && !sharesHistory(player, Round(round), Table(onlyTable)) {
					s.ApplyPlayer(buf, Round(round), Table(onlyTable), player)
				}
			}
		}
	}

	// With fewer rounds than tables a player need not visit every table,
	// so a single remaining round at a table forces nothing.
	if s.rounds < numTables {
		return
	}
	for table := 0; table < numTables; table++ {
		for byteIdx := 0; byteIdx < s.wordsPerRow; byteIdx++ {
			base := s.offsets.playedOnTableTotal + s.wordsPerRow*table + byteIdx
			potentialInColumn := buf[base].Not()
		tableBits:
			for !potentialInColumn.IsZero() {
				tz := potentialInColumn.TrailingZeros()
				player := byteIdx*width + tz
				bit := word.BitMask[W](tz)
				potentialInColumn = potentialInColumn.Xor(bit)
				if player >= s.playerCount {
					break
				}

				onlyRound := -1
				for round := 0; round < s.rounds; round++ {
					idx := s.offsets.potentialOnTable + s.rowOffset(Round(round), Table(table)) + byteIdx
					if !buf[idx].And(bit).IsZero() {
						if onlyRound < 0 {
							onlyRound = round
						} else {
							continue tableBits
						}
					}
				}
				if onlyRound >= 0 && !sharesHistory(player, Round(onlyRound), Table(table)) {
					s.ApplyPlayer(buf, Round(onlyRound), Table(table), player)
				}
			}
		}
	}
}
