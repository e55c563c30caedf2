package model

import "strconv"

type Tag string

const (
	TagNone Tag = ""

	// matched while scanning forward in the candidate stream
	TagMatched Tag = "matched"

	// matched out of the carryover buffer
	TagCarried Tag = "carried"

	// skipped candidate, emitted as (none, candidate) by the sorted matcher
	TagUnmatched Tag = "unmatched"

	// a previously unmatched candidate that a later gold group claimed
	TagMatchedLater Tag = "matched-later"

	// gold-only step of the edit distance alignment
	TagInserted Tag = "inserted"

	// candidate-only step of the edit distance alignment
	TagDeleted Tag = "deleted"
)

var tagSymbols = map[Tag]string{
	TagMatched:   "",
	TagCarried:   "!",
	TagUnmatched: "U",
	TagInserted:  "+",
	TagDeleted:   "-",
}

// Tagged is an event copy carrying an annotation. Ref is only set for
// TagMatchedLater and holds the gold position that claimed the event.
type Tagged struct {
	Event Event
	Tag   Tag
	Ref   int
}

// Symbol is the short marker printed next to an event.
func (t Tagged) Symbol() string {
	if t.Tag == TagMatchedLater {
		return "M-" + strconv.Itoa(t.Ref)
	}
	if s, ok := tagSymbols[t.Tag]; ok {
		return s
	}
	return string(t.Tag)
}

// Pair is one row of an order preserving match. Either side may be nil:
// a nil Gold is a candidate nobody asked for, a nil Other is a gold
// event that found no candidate.
type Pair struct {
	Gold  *Event
	Other *Tagged
}
