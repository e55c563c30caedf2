package model

import "strings"

// Kind identifies what an event does. Only the kinds listed here are
// recognized; anything else coming out of a decoder is malformed.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNoteOn
	KindNoteOff
	KindControlChange
	KindTempo
	KindEndOfTrack
	KindOther
)

var kindNames = map[Kind]string{
	KindNoteOn:        "On",
	KindNoteOff:       "Off",
	KindControlChange: "CCE",
	KindTempo:         "STe",
	KindEndOfTrack:    "EOT",
}

// Short is the three letter abbreviation used in text columns.
func (k Kind) Short() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNK"
}

func (k Kind) Valid() bool {
	return k > KindUnknown && k <= KindOther
}

func (k Kind) IsNote() bool {
	return k == KindNoteOn || k == KindNoteOff
}

// RawEvent is a decoded event before normalization. Delta is the
// number of ticks since the previous raw event in the same track.
type RawEvent struct {
	Kind  Kind
	Value uint8
	Delta uint32
}

// Event is a normalized event with absolute time. Values are copied
// around freely; nothing in an Event is ever mutated after Normalize.
type Event struct {
	Kind  Kind
	Value uint8

	// ticks since the previous kept event, zero within a simultaneous group
	Delta uint64
	Time  uint64

	// index in the normalized sequence
	Pos int
}

// Similar reports whether two events have the same identity. Time is
// not part of identity.
func (e Event) Similar(other Event) bool {
	return e.Kind == other.Kind && e.Value == other.Value
}

var kindsByName = map[string]Kind{
	"on":             KindNoteOn,
	"note_on":        KindNoteOn,
	"off":            KindNoteOff,
	"note_off":       KindNoteOff,
	"cce":            KindControlChange,
	"control_change": KindControlChange,
	"ste":            KindTempo,
	"tempo":          KindTempo,
	"eot":            KindEndOfTrack,
	"end_of_track":   KindEndOfTrack,
	"other":          KindOther,
}

// ParseKind maps a kind name (either the short column name or the long
// snake_case one, case insensitive) to a Kind. Unknown names give
// KindUnknown.
func ParseKind(name string) Kind {
	return kindsByName[strings.ToLower(name)]
}
