// Package dfsolver implements the incremental depth-first social-golfer
// solver: an append-only placement stack with explicit backtracking,
// generic over word width, as opposed to sched's block-arena frontier
// solver. It is grounded on the original df_schedule.rs DFScheduler.
package dfsolver

import (
	"errors"

	"github.com/hailam/schedsolver/internal/word"
)

// ErrZeroLengthGroups is returned by New when a table has capacity 0.
var ErrZeroLengthGroups = errors.New("dfsolver: a table has zero capacity")

// ErrPlayerCountOverflow is returned by New when the table list is
// empty, so the player count needs no bitmap words. Larger player
// counts are not bounded: a row spans as many words as the count needs.
var ErrPlayerCountOverflow = errors.New("dfsolver: player count overflows bitmap capacity")

// Solver is one incremental depth-first search over schedules for a
// fixed set of table capacities, advanced one seat placement per Step
// call. Unlike sched.Schedule, it has no fixed round count: it runs
// round after round until the caller stops calling Step.
type Solver[W word.Word[W]] struct {
	tables      []int
	playerCount int
	wordsPerRow int

	playersPlayedWith  []W // playerCount * wordsPerRow
	playedOnTableTotal []W // numTables * wordsPerRow, accumulated across all rounds
	playedInRound      []W // wordsPerRow, reset every round

	schedule []int // round-major, table-major, seat-major placements so far

	onCurrentTable       []int // players currently seated at the in-progress table, by seat
	onCurrentTableOffset int   // number of seats filled at the current table

	currentTable    int
	currentRound    int
	position        int // index of the next seat within currentTable to try filling
	minPlayer       int // symmetry-breaking monotone lower bound for the next candidate
	bestLength      int // longest schedule prefix seen across Step/backtrack history
	tempBuffer      []W
}

// New builds a Solver for the given table capacities. rounds is not
// bounded: Step can be called indefinitely, each full round appending
// len(tables) more table assignments to the schedule.
func New[W word.Word[W]](tables []int) (*Solver[W], error) {
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

	tablesCopy := make([]int, len(tables))
	copy(tablesCopy, tables)

	s := &Solver[W]{
		tables:             tablesCopy,
		playerCount:        playerCount,
		wordsPerRow:        wordsPerRow,
		playersPlayedWith:  make([]W, playerCount*wordsPerRow),
		playedOnTableTotal: make([]W, len(tables)*wordsPerRow),
		playedInRound:      make([]W, wordsPerRow),
		tempBuffer:         make([]W, wordsPerRow),
	}
	s.onCurrentTable = make([]int, tables[0])
	return s, nil
}

// PlayerCount returns the total number of players.
func (s *Solver[W]) PlayerCount() int { return s.playerCount }

// Rounds returns how many complete rounds are currently recorded.
func (s *Solver[W]) Rounds() int {
	return len(s.schedule) / s.playerCount
}

func (s *Solver[W]) bit(player int) (idx int, mask W) {
	var w W
	size := w.Size()
	idx = player / size
	mask = word.BitMask[W](player - idx*size)
	return
}

// generatePotentialPlayers computes the bitset of players still
// eligible for the seat at (currentTable, position): not yet seated
// this round, and not already at the current table with anyone they
// have already played alongside.
func (s *Solver[W]) generatePotentialPlayers() []W {
	for i := range s.tempBuffer {
		s.tempBuffer[i] = s.tempBuffer[i].Max().And(s.playedInRound[i].Not())
	}
	for seat := 0; seat < s.onCurrentTableOffset; seat++ {
		other := s.onCurrentTable[seat]
		base := other * s.wordsPerRow
		for i := 0; i < s.wordsPerRow; i++ {
			s.tempBuffer[i] = s.tempBuffer[i].And(s.playersPlayedWith[base+i].Not())
		}
	}
	// Symmetry breaking: never offer a candidate below minPlayer.
	low := s.minPlayer
	wordWidth := s.tempBuffer[0].Size()
	wordIdx := low / wordWidth
	for i := 0; i < wordIdx && i < len(s.tempBuffer); i++ {
		s.tempBuffer[i] = s.tempBuffer[i].Zero()
	}
	if wordIdx < len(s.tempBuffer) {
		s.tempBuffer[wordIdx] = s.tempBuffer[wordIdx].And(word.LowMask[W](low % wordWidth).Not())
	}
	// Mask off padding bits above playerCount in the final word.
	if rem := s.playerCount % wordWidth; rem != 0 {
		last := len(s.tempBuffer) - 1
		s.tempBuffer[last] = s.tempBuffer[last].And(word.LowMask[W](rem))
	}
	return s.tempBuffer
}

func (s *Solver[W]) lowestSetPlayer(buf []W) int {
	width := buf[0].Size()
	for i, w := range buf {
		if !w.IsZero() {
			return i*width + w.TrailingZeros()
		}
	}
	return -1
}

// applyPlayer seats player at the current table/position and updates
// all played-with/played-in-round bookkeeping.
func (s *Solver[W]) applyPlayer(player int) {
	idx, mask := s.bit(player)

	for seat := 0; seat < s.onCurrentTableOffset; seat++ {
		other := s.onCurrentTable[seat]
		otherIdx, otherMask := s.bit(other)
		s.playersPlayedWith[player*s.wordsPerRow+otherIdx] =
			s.playersPlayedWith[player*s.wordsPerRow+otherIdx].Or(otherMask)
		s.playersPlayedWith[other*s.wordsPerRow+idx] =
			s.playersPlayedWith[other*s.wordsPerRow+idx].Or(mask)
	}
	s.playedInRound[idx] = s.playedInRound[idx].Or(mask)
	base := s.currentTable * s.wordsPerRow
	s.playedOnTableTotal[base+idx] = s.playedOnTableTotal[base+idx].Or(mask)

	s.onCurrentTable[s.onCurrentTableOffset] = player
	s.onCurrentTableOffset++
	s.schedule = append(s.schedule, player)
}

// Step advances the search by one unit: it seats one player, moves on
// from a full table to the next one, or undoes one placement. It
// returns false only when backtracking finds nothing left to undo, and
// true otherwise. There is no round bound: each round it completes is
// appended to the growing schedule and the next round begins
// immediately, so callers stop after as many rounds as they need.
func (s *Solver[W]) Step() bool {
	table := s.tables[s.currentTable]
	if s.onCurrentTableOffset == table {
		return s.advanceTable()
	}

	candidates := s.generatePotentialPlayers()
	player := s.lowestSetPlayer(candidates)
	if player < 0 {
		return s.backtrack()
	}
	s.applyPlayer(player)
	s.minPlayer = player + 1
	if len(s.schedule) > s.bestLength {
		s.bestLength = len(s.schedule)
	}
	return true
}

func (s *Solver[W]) advanceTable() bool {
	s.currentTable++
	s.onCurrentTableOffset = 0
	if s.currentTable >= len(s.tables) {
		s.currentTable = 0
		s.currentRound++
		for i := range s.playedInRound {
			s.playedInRound[i] = s.playedInRound[i].Zero()
		}
	}
	capacity := s.tables[s.currentTable]
	if cap(s.onCurrentTable) < capacity {
		s.onCurrentTable = make([]int, capacity)
	} else {
		s.onCurrentTable = s.onCurrentTable[:capacity]
	}
	s.minPlayer = 0
	return true
}

// backtrack undoes the most recent placement at the current table and
// resumes the search for a different candidate above it. It reports
// false when there is nothing left to undo (the schedule is maximal
// for this table configuration).
func (s *Solver[W]) backtrack() bool {
	if s.onCurrentTableOffset == 0 {
		if s.currentTable == 0 && s.currentRound == 0 {
			return false
		}
		s.currentTable--
		if s.currentTable < 0 {
			s.currentTable = len(s.tables) - 1
			s.currentRound--
			// Re-entering the previous round: rebuild its played-in-round
			// set from the placements recorded for it.
			for _, p := range s.schedule[s.currentRound*s.playerCount:] {
				pIdx, pMask := s.bit(p)
				s.playedInRound[pIdx] = s.playedInRound[pIdx].Or(pMask)
			}
		}
		capacity := s.tables[s.currentTable]
		s.onCurrentTable = s.onCurrentTable[:capacity]
		copy(s.onCurrentTable, s.schedule[len(s.schedule)-capacity:])
		s.onCurrentTableOffset = capacity
	}
	s.onCurrentTableOffset--
	player := s.onCurrentTable[s.onCurrentTableOffset]
	s.schedule = s.schedule[:len(s.schedule)-1]

	idx, mask := s.bit(player)
	s.playedInRound[idx] = s.playedInRound[idx].And(mask.Not())
	base := s.currentTable * s.wordsPerRow
	s.playedOnTableTotal[base+idx] = s.playedOnTableTotal[base+idx].And(mask.Not())
	for seat := 0; seat < s.onCurrentTableOffset; seat++ {
		other := s.onCurrentTable[seat]
		otherIdx, otherMask := s.bit(other)
		s.playersPlayedWith[player*s.wordsPerRow+otherIdx] =
			s.playersPlayedWith[player*s.wordsPerRow+otherIdx].And(otherMask.Not())
		s.playersPlayedWith[other*s.wordsPerRow+idx] =
			s.playersPlayedWith[other*s.wordsPerRow+idx].And(mask.Not())
	}
	s.minPlayer = player + 1
	return true
}

// GetSchedule returns the placements recorded so far, round-major then
// table-major then seat-major, flattened.
func (s *Solver[W]) GetSchedule() []int {
	out := make([]int, len(s.schedule))
	copy(out, s.schedule)
	return out
}

// BestLength returns the longest schedule prefix the search has
// reached since construction, even if subsequent backtracking shrank
// the live schedule below it. Grounded on main.rs's best_length /
// get_unique_opponents progress tracking.
func (s *Solver[W]) BestLength() int {
	return s.bestLength
}

// UniqueOpponentCount returns, across the recorded schedule, the number
// of distinct ordered (player, opponent) pairs that have played
// together at least once.
func (s *Solver[W]) UniqueOpponentCount() int {
	count := 0
	for p := 0; p < s.playerCount; p++ {
		base := p * s.wordsPerRow
		for i := 0; i < s.wordsPerRow; i++ {
			count += s.playersPlayedWith[base+i].PopCount()
		}
	}
	return count
}

// Fill returns the committed schedule plus a best-effort completion of
// the table currently mid-placement: its remaining seats are handed to
// whichever players have not yet played this round, in ascending order,
// ignoring the no-repeat constraint entirely. Later tables of the round
// are not filled. It does not touch solver state, so a later Step can
// resume the real search unaffected. Grounded on df_schedule.rs's Fill.
func (s *Solver[W]) Fill() []int {
	filled := s.GetSchedule()

	playedThisRound := make([]bool, s.playerCount)
	width := s.playedInRound[0].Size()
	for i, w := range s.playedInRound {
		tmp := w
		for !tmp.IsZero() {
			tz := tmp.TrailingZeros()
			playedThisRound[i*width+tz] = true
			tmp = tmp.Xor(word.BitMask[W](tz))
		}
	}
	for seat := 0; seat < s.onCurrentTableOffset; seat++ {
		playedThisRound[s.onCurrentTable[seat]] = true
	}

	needed := s.tables[s.currentTable] - s.onCurrentTableOffset
	for p := 0; p < s.playerCount && needed > 0; p++ {
		if playedThisRound[p] {
			continue
		}
		filled = append(filled, p)
		playedThisRound[p] = true
		needed--
	}
	return filled
}
