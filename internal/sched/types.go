// Package sched implements the frontier/worklist social-golfer solver:
// a caller-owned linear arena of fixed-size blocks, each one snapshot of
// search state, advanced by repeated calls to Step.
package sched

import "errors"

// Round identifies one of the R rounds of the schedule, in [0, R).
type Round int

// Table identifies one of the T tables, in [0, T).
type Table int

// Construction errors, returned by New (and ErrTooSmallBuffer, returned
// by Init). Per-step search outcomes (dead ends, exhaustion) are not
// errors — see Step's StepOutcome.
var (
	// ErrZeroLengthGroups is returned when a table has capacity 0.
	ErrZeroLengthGroups = errors.New("sched: a table has zero capacity")

	// ErrPlayerCountOverflow is returned when the table list is empty,
	// so the player count needs no bitmap words. Larger player counts
	// are not bounded: a row spans as many words as the count needs.
	ErrPlayerCountOverflow = errors.New("sched: player count overflows bitmap capacity")

	// ErrRoundsTooLarge is returned when rounds < 1.
	ErrRoundsTooLarge = errors.New("sched: rounds must be at least 1")

	// ErrTooSmallBuffer is returned by Init when the supplied buffer is
	// shorter than BlockSize; InitialiseBuffer reports that case as false.
	ErrTooSmallBuffer = errors.New("sched: buffer shorter than block size")
)
