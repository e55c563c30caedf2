package track

import (
	"fmt"

	"github.com/jsphweid/midialign/model"
)

// Filter decides whether a raw event takes part in alignment.
type Filter func(model.RawEvent) bool

// DefaultFilter keeps note on and note off events only.
func DefaultFilter(e model.RawEvent) bool {
	return e.Kind.IsNote()
}

// MalformedEventError reports a raw event that can't be normalized.
type MalformedEventError struct {
	Index  int
	Event  model.RawEvent
	Reason string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event at index %d (kind %d, value %d): %s",
		e.Index, e.Event.Kind, e.Event.Value, e.Reason)
}

// Normalize drops events rejected by keep (DefaultFilter when nil) and
// converts the survivors to absolute time. Time accumulates over every
// raw delta, dropped events included, so Time is the real position of
// the event in the track and Delta is the distance to the previous kept
// event.
func Normalize(raw []model.RawEvent, keep Filter) ([]model.Event, error) {
	if keep == nil {
		keep = DefaultFilter
	}

	res := make([]model.Event, 0, len(raw))
	var absTicks, lastKept uint64
	for i, r := range raw {
		if !r.Kind.Valid() {
			return nil, &MalformedEventError{Index: i, Event: r, Reason: "unrecognized kind"}
		}
		if r.Kind.IsNote() && r.Value > 127 {
			return nil, &MalformedEventError{Index: i, Event: r, Reason: "pitch out of range"}
		}

		absTicks += uint64(r.Delta)
		if !keep(r) {
			continue
		}

		res = append(res, model.Event{
			Kind:  r.Kind,
			Value: r.Value,
			Delta: absTicks - lastKept,
			Time:  absTicks,
			Pos:   len(res),
		})
		lastKept = absTicks
	}
	return res, nil
}

// Group splits a normalized sequence into simultaneous groups: maximal
// runs whose members after the first have a zero delta.
func Group(seq []model.Event) [][]model.Event {
	var res [][]model.Event
	var current []model.Event
	for _, evt := range seq {
		if evt.Delta == 0 && len(current) > 0 {
			current = append(current, evt)
			continue
		}
		if len(current) > 0 {
			res = append(res, current)
		}
		current = []model.Event{evt}
	}
	if len(current) > 0 {
		res = append(res, current)
	}
	return res
}
