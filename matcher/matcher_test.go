package matcher

import (
	"testing"

	"github.com/jsphweid/midialign/cursor"
	"github.com/jsphweid/midialign/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	A = 60 + iota
	B
	C
	X
	Y
	Z
)

// events builds a note-on sequence with the given pitches at the given
// absolute times.
func events(pitchTimes ...uint64) []model.Event {
	var res []model.Event
	var last uint64
	for i := 0; i+1 < len(pitchTimes); i += 2 {
		pitch, time := pitchTimes[i], pitchTimes[i+1]
		res = append(res, model.Event{
			Kind:  model.KindNoteOn,
			Value: uint8(pitch),
			Delta: time - last,
			Time:  time,
			Pos:   len(res),
		})
		last = time
	}
	return res
}

func opts(gap, unmatched int) Options {
	return Options{MaxGapSize: gap, MaxUnmatched: unmatched}
}

func values(slots []*model.Tagged) []int {
	var res []int
	for _, s := range slots {
		if s == nil {
			res = append(res, -1)
			continue
		}
		res = append(res, int(s.Event.Value))
	}
	return res
}

func TestFindMatchingSkipsExtraNoteIntoCarryover(t *testing.T) {
	gold := events(A, 0, B, 1)
	other := events(A, 0, X, 5, B, 20)
	c := cursor.New(other)

	assert := assert.New(t)
	res, err := FindMatching(c, gold[:1], opts(5, Unlimited))
	require.NoError(t, err)
	assert.Equal([]int{A}, values(res))
	assert.Equal(model.TagMatched, res[0].Tag)
	assert.Empty(c.Carryover())

	res, err = FindMatching(c, gold[1:], opts(5, Unlimited))
	require.NoError(t, err)
	assert.Equal([]int{B}, values(res))
	assert.Equal(uint64(20), res[0].Event.Time)

	// X was skipped on the way to B, so it is kept for later groups
	assert.Equal(other[1:2], c.Carryover())
	assert.Empty(c.Remaining())
}

func TestFindMatchingNoCandidateLeavesStreamUnchanged(t *testing.T) {
	other := events(X, 0, Y, 1, Z, 2)
	c := cursor.New(other)

	res, err := FindMatching(c, events(C, 0), opts(1, Unlimited))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]*model.Tagged{nil}, res)
	assert.Equal(other, c.Remaining())
	assert.Empty(c.Carryover())
}

func TestFindMatchingUnlimitedGapExhaustsStream(t *testing.T) {
	other := events(X, 0, Y, 1)
	c := cursor.New(other)

	res, err := FindMatching(c, events(C, 0), DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, res[0])
	assert.Equal(t, other, c.Remaining())
}

func TestFindMatchingGapLimit(t *testing.T) {
	assert := assert.New(t)

	// one skip allowed: X is skipped, A matches
	c := cursor.New(events(X, 0, A, 1))
	res, err := FindMatching(c, events(A, 0), opts(1, Unlimited))
	require.NoError(t, err)
	assert.Equal([]int{A}, values(res))

	// two skips needed, only one allowed
	other := events(X, 0, Y, 1, A, 2)
	c = cursor.New(other)
	res, err = FindMatching(c, events(A, 0), opts(1, Unlimited))
	require.NoError(t, err)
	assert.Equal([]int{-1}, values(res))
	assert.Equal(other, c.Remaining())
}

func TestFindMatchingZeroGapUsesCarryoverOnly(t *testing.T) {
	other := events(A, 0)
	c := cursor.New(other)

	assert := assert.New(t)
	res, err := FindMatching(c, events(A, 0), opts(0, Unlimited))
	require.NoError(t, err)
	assert.Nil(res[0])
	assert.Equal(other, c.Remaining())
	assert.Equal(0, c.Pos())

	c.Carry(events(B, 3)...)
	res, err = FindMatching(c, events(B, 0), opts(0, Unlimited))
	require.NoError(t, err)
	assert.Equal([]int{B}, values(res))
	assert.Equal(model.TagCarried, res[0].Tag)
	assert.Empty(c.Carryover())
}

func TestFindMatchingNoDoubleMatch(t *testing.T) {
	other := events(A, 0, B, 1)
	c := cursor.New(other)

	assert := assert.New(t)
	res, err := FindMatching(c, events(A, 0), DefaultOptions())
	require.NoError(t, err)
	assert.Equal([]int{A}, values(res))

	res, err = FindMatching(c, events(A, 0), opts(3, Unlimited))
	require.NoError(t, err)
	assert.Equal([]int{-1}, values(res))
	assert.Equal(other[1:], c.Remaining())
}

func TestFindMatchingCarriedEventClaimedOnce(t *testing.T) {
	c := cursor.New(events(X, 0, A, 1))

	assert := assert.New(t)
	_, err := FindMatching(c, events(A, 0), DefaultOptions())
	require.NoError(t, err)
	assert.Len(c.Carryover(), 1)

	res, err := FindMatching(c, events(X, 0), DefaultOptions())
	require.NoError(t, err)
	assert.Equal([]int{X}, values(res))
	assert.Equal(model.TagCarried, res[0].Tag)

	res, err = FindMatching(c, events(X, 0), DefaultOptions())
	require.NoError(t, err)
	assert.Equal([]int{-1}, values(res))
}

func TestFindMatchingFirstFitTieBreak(t *testing.T) {
	targets := events(A, 0, A, 0, B, 0)
	c := cursor.New(events(A, 0, B, 0))

	res, err := FindMatching(c, targets, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{A, -1, B}, values(res))
}

func TestFindMatchingGroupInAnyOrder(t *testing.T) {
	targets := events(A, 0, B, 0, C, 0)
	c := cursor.New(events(C, 0, A, 0, B, 0))

	res, err := FindMatching(c, targets, opts(2, Unlimited))
	require.NoError(t, err)
	assert.Equal(t, []int{A, B, C}, values(res))
}

func TestFindMatchingMaxUnmatchedEvictsOldest(t *testing.T) {
	c := cursor.New(events(X, 0, Y, 1, A, 2))

	assert := assert.New(t)
	_, err := FindMatching(c, events(A, 0), DefaultOptions())
	require.NoError(t, err)
	assert.Equal([]int{X, Y}, pitches(c.Carryover()))

	res, err := FindMatching(c, events(X, 0), opts(Unlimited, 1))
	require.NoError(t, err)
	assert.Equal([]int{-1}, values(res))
	assert.Equal([]int{Y}, pitches(c.Carryover()))
}

func TestFindMatchingResultsAreCopies(t *testing.T) {
	other := events(A, 0)
	c := cursor.New(other)

	res, err := FindMatching(c, events(A, 0), DefaultOptions())
	require.NoError(t, err)
	res[0].Event.Value = 0
	res[0].Tag = model.TagDeleted
	assert.Equal(t, uint8(A), other[0].Value)
}

func TestFindMatchingRejectsBadOptions(t *testing.T) {
	other := events(A, 0)
	c := cursor.New(other)

	assert := assert.New(t)
	_, err := FindMatching(c, events(A, 0), opts(-2, Unlimited))
	assert.ErrorIs(err, ErrBadOptions)
	_, err = FindMatchingSorted(c, events(A, 0), opts(Unlimited, -5))
	assert.ErrorIs(err, ErrBadOptions)
	assert.Equal(other, c.Remaining())
}

func TestFindMatchingSortedInterleavesSkipped(t *testing.T) {
	c := cursor.New(events(A, 0, X, 5, B, 20))

	assert := assert.New(t)
	pairs, err := FindMatchingSorted(c, events(A, 0), opts(5, Unlimited))
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(uint8(A), pairs[0].Gold.Value)
	assert.Equal(model.TagMatched, pairs[0].Other.Tag)

	pairs, err = FindMatchingSorted(c, events(B, 1), opts(5, Unlimited))
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Nil(pairs[0].Gold)
	assert.Equal(uint8(X), pairs[0].Other.Event.Value)
	assert.Equal(model.TagUnmatched, pairs[0].Other.Tag)
	assert.Equal(uint8(B), pairs[1].Gold.Value)
	assert.Equal(uint8(B), pairs[1].Other.Event.Value)
	assert.Equal([]int{X}, pitches(c.Carryover()))
}

func TestFindMatchingSortedAppendsMissingTargets(t *testing.T) {
	c := cursor.New(events(A, 0))

	pairs, err := FindMatchingSorted(c, events(C, 0, A, 0), DefaultOptions())
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, pairs, 2)
	assert.Equal(uint8(A), pairs[0].Gold.Value)
	assert.Equal(uint8(A), pairs[0].Other.Event.Value)
	assert.Equal(uint8(C), pairs[1].Gold.Value)
	assert.Nil(pairs[1].Other)
}

func TestFindMatchingSortedCarryoverFirst(t *testing.T) {
	c := cursor.New(events(A, 4))
	c.Carry(events(B, 1)...)

	pairs, err := FindMatchingSorted(c, events(A, 0, B, 0), DefaultOptions())
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, pairs, 2)
	assert.Equal(uint8(B), pairs[0].Gold.Value)
	assert.Equal(model.TagCarried, pairs[0].Other.Tag)
	assert.Equal(uint8(A), pairs[1].Gold.Value)
	assert.Equal(model.TagMatched, pairs[1].Other.Tag)
}

func TestFindMatchingSortedHeldEventsNotEmitted(t *testing.T) {
	other := events(X, 0, Y, 1)
	c := cursor.New(other)

	pairs, err := FindMatchingSorted(c, events(C, 0), opts(1, Unlimited))
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, pairs, 1)
	assert.Nil(pairs[0].Other)
	assert.Equal(other, c.Remaining())
}

func TestFindMatchingSortedTargetsNotMutated(t *testing.T) {
	targets := events(A, 0)
	c := cursor.New(events(A, 0))

	pairs, err := FindMatchingSorted(c, targets, DefaultOptions())
	require.NoError(t, err)
	pairs[0].Gold.Value = 0
	assert.Equal(t, uint8(A), targets[0].Value)
}

func pitches(seq []model.Event) []int {
	var res []int
	for _, e := range seq {
		res = append(res, int(e.Value))
	}
	return res
}
