package matchfile

import (
	"math"
	"math/big"
	"sort"
	"strconv"

	"github.com/jsphweid/midialign/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	ErrNoResolution = errors.New("match file has no midiClockUnits info")
	ErrBadScaling   = errors.New("scaling must be positive")
	ErrTickOverflow = errors.New("tick delta out of range")
)

type noteEvent struct {
	time     *big.Rat
	off      bool
	pitch    int
	velocity int
}

func (n *Note) event(off bool) noteEvent {
	velocity := DefaultVelocity
	if n.HasVel {
		velocity = n.Velocity
	}
	// there are negative velocities in the data, all on notes that
	// have no counterpart in the midi files
	if velocity < 0 {
		velocity = 0
	}
	if velocity > 127 {
		velocity = 127
	}
	time := n.Onset
	if off {
		time = n.OffTime
	}
	return noteEvent{time: time, off: off, pitch: n.MidiNoteNumber(), velocity: velocity}
}

// sortedEvents lists on and off events of the chosen side ordered by
// time, then note on before note off, then pitch and velocity.
func (m *MatchFile) sortedEvents(score bool) []noteEvent {
	notes := m.PlayedNotes()
	if score {
		notes = m.ScoreNotes()
	}
	events := make([]noteEvent, 0, 2*len(notes))
	for _, n := range notes {
		events = append(events, n.event(false), n.event(true))
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if c := a.time.Cmp(b.time); c != 0 {
			return c < 0
		}
		if a.off != b.off {
			return !a.off
		}
		if a.pitch != b.pitch {
			return a.pitch < b.pitch
		}
		return a.velocity < b.velocity
	})
	return events
}

// ticks converts a time difference to whole ticks, truncating.
func ticks(diff, scaling *big.Rat) (uint32, error) {
	scaled := new(big.Rat).Mul(diff, scaling)
	whole := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	if whole.Sign() < 0 || !whole.IsUint64() || whole.Uint64() > math.MaxUint32 {
		return 0, errors.Wrapf(ErrTickOverflow, "%v ticks", whole)
	}
	return uint32(whole.Uint64()), nil
}

// RawEvents returns the chosen side as delta timed note events, ready
// for track.Normalize.
func (m *MatchFile) RawEvents(score bool, scaling *big.Rat) ([]model.RawEvent, error) {
	if scaling == nil || scaling.Sign() <= 0 {
		return nil, ErrBadScaling
	}

	var res []model.RawEvent
	var current *big.Rat
	for _, evt := range m.sortedEvents(score) {
		if current == nil {
			current = evt.time
		}
		delta, err := ticks(new(big.Rat).Sub(evt.time, current), scaling)
		if err != nil {
			return nil, err
		}
		r := model.RawEvent{Kind: model.KindNoteOn, Value: uint8(evt.pitch), Delta: delta}
		if evt.off {
			r.Kind = model.KindNoteOff
		}
		res = append(res, r)
		current = evt.time
	}
	return res, nil
}

// SMF builds a single track MIDI file from the chosen side. Times are
// multiplied by scaling to get ticks; the resolution comes from the
// midiClockUnits info line.
func (m *MatchFile) SMF(score bool, scaling *big.Rat) (*smf.SMF, error) {
	units, ok := m.Info["midiClockUnits"]
	if !ok {
		return nil, ErrNoResolution
	}
	resolution, err := strconv.Atoi(units)
	if err != nil {
		return nil, errors.Wrapf(err, "bad midiClockUnits %q", units)
	}

	events := m.sortedEvents(score)
	raw, err := m.RawEvents(score, scaling)
	if err != nil {
		return nil, err
	}

	var tr smf.Track
	for i, r := range raw {
		var msg smf.Message
		if r.Kind == model.KindNoteOff {
			msg = smf.Message(gomidi.NoteOffVelocity(0, r.Value, DefaultVelocity))
		} else {
			msg = smf.Message(gomidi.NoteOn(0, r.Value, uint8(events[i].velocity)))
		}
		tr = append(tr, smf.Event{Delta: r.Delta, Message: msg})
	}
	tr = append(tr, smf.Event{Delta: 1, Message: smf.EOT})

	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(resolution)
	if err := s.Add(tr); err != nil {
		return nil, errors.Wrap(err, "Couldn't add track")
	}
	return s, nil
}
