package sched

// offsets lays out a search-tree block as one flat slice of words, in
// the order: counters, to_explore queue, played_with, played_on_table
// (total per table), played_in_round, played_on_table (fixed seats),
// potential_on_table (candidate seats). All sizes are in words.
type offsets struct {
	playersPlaced      int
	emptyTableCount    int
	toExplore          int
	playedWith         int
	playedOnTableTotal int
	playedInRound      int
	playedOnTable      int
	potentialOnTable   int

	playedOnTableSize int // words in the whole (round,table) slab, i.e. wordsPerRow*R*T
	blockSize         int
}

func newOffsets(toExploreSize, playedWithSize, playedOnTableTotalSize, playedInRoundSize, playedOnTableSize int) offsets {
	playersPlaced := 0
	emptyTableCount := playersPlaced + 1
	toExplore := emptyTableCount + 1
	playedWith := toExplore + toExploreSize
	playedOnTableTotal := playedWith + playedWithSize
	playedInRound := playedOnTableTotal + playedOnTableTotalSize
	playedOnTable := playedInRound + playedInRoundSize
	potentialOnTable := playedOnTable + playedOnTableSize
	blockSize := potentialOnTable + playedOnTableSize

	return offsets{
		playersPlaced:      playersPlaced,
		emptyTableCount:    emptyTableCount,
		toExplore:          toExplore,
		playedWith:         playedWith,
		playedOnTableTotal: playedOnTableTotal,
		playedInRound:      playedInRound,
		playedOnTable:      playedOnTable,
		potentialOnTable:   potentialOnTable,
		playedOnTableSize:  playedOnTableSize,
		blockSize:          blockSize,
	}
}
