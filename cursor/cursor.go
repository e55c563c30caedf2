// Package cursor reads a normalized event sequence one event or one
// simultaneous group at a time, and keeps the carryover buffer of
// candidate events that were skipped but may still match later.
package cursor

import (
	"errors"

	"github.com/jsphweid/midialign/model"
)

var ErrEndOfStream = errors.New("cursor: end of stream")

// Cursor is not safe for concurrent use. Each candidate sequence gets
// its own Cursor.
type Cursor struct {
	source []model.Event
	next   int

	// events served before source[next:]; holds the peeked event and
	// anything handed back through Unread
	front []model.Event

	carryover []model.Event

	pos  int
	time uint64
}

// New wraps seq. The slice is never modified.
func New(seq []model.Event) *Cursor {
	return &Cursor{source: seq}
}

// Advance consumes and returns the next event.
func (c *Cursor) Advance() (model.Event, error) {
	var evt model.Event
	switch {
	case len(c.front) > 0:
		evt = c.front[0]
		c.front = c.front[1:]
	case c.next < len(c.source):
		evt = c.source[c.next]
		c.next++
	default:
		return model.Event{}, ErrEndOfStream
	}
	c.time = evt.Time
	c.pos++
	return evt, nil
}

// Peek returns the next event without consuming it. At most one event
// is drawn ahead of the source.
func (c *Cursor) Peek() (model.Event, error) {
	if len(c.front) > 0 {
		return c.front[0], nil
	}
	if c.next >= len(c.source) {
		return model.Event{}, ErrEndOfStream
	}
	c.front = append(c.front, c.source[c.next])
	c.next++
	return c.front[0], nil
}

// AdvanceGroup consumes the next event plus every following event with a
// zero delta. Running out of events part way through returns the
// partial group; only an empty stream returns ErrEndOfStream.
func (c *Cursor) AdvanceGroup() ([]model.Event, error) {
	first, err := c.Advance()
	if err != nil {
		return nil, err
	}
	res := []model.Event{first}
	for {
		evt, err := c.Peek()
		if err != nil || evt.Delta != 0 {
			break
		}
		evt, _ = c.Advance()
		res = append(res, evt)
	}
	return res, nil
}

// Unread puts events back in front of the stream, in the given order,
// so the next reads return them before anything else.
func (c *Cursor) Unread(events []model.Event) {
	if len(events) == 0 {
		return
	}
	front := make([]model.Event, 0, len(events)+len(c.front))
	front = append(front, events...)
	c.front = append(front, c.front...)
}

// Remaining returns a copy of everything not yet consumed.
func (c *Cursor) Remaining() []model.Event {
	res := make([]model.Event, 0, len(c.front)+len(c.source)-c.next)
	res = append(res, c.front...)
	return append(res, c.source[c.next:]...)
}

// Carryover returns a copy of the carryover buffer, oldest first.
func (c *Cursor) Carryover() []model.Event {
	return append([]model.Event(nil), c.carryover...)
}

func (c *Cursor) SetCarryover(events []model.Event) {
	c.carryover = append([]model.Event(nil), events...)
}

// Carry appends events to the carryover buffer.
func (c *Cursor) Carry(events ...model.Event) {
	c.carryover = append(c.carryover, events...)
}

// TrimCarryover keeps only the n most recently carried events. A
// negative n leaves the buffer unbounded.
func (c *Cursor) TrimCarryover(n int) {
	if n < 0 || len(c.carryover) <= n {
		return
	}
	c.carryover = append([]model.Event(nil), c.carryover[len(c.carryover)-n:]...)
}

// Pos is the number of physical reads made so far. Events handed back
// through Unread are counted again when they are read again.
func (c *Cursor) Pos() int {
	return c.pos
}

// Time is the time of the last consumed event.
func (c *Cursor) Time() uint64 {
	return c.time
}
