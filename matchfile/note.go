package matchfile

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const DefaultVelocity = 64

var pitchClasses = map[byte]int{'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11}

// Note is either a score note (snote) or a played note (note).
type Note struct {
	Score  bool
	Anchor string

	// lower case letter, e.g. "c"
	Step       string
	Accidental int
	Octave     int

	Bar, Beat        int
	Offset, Duration string
	Attributes       []string

	Onset    *big.Rat
	OffTime  *big.Rat
	Velocity int
	HasVel   bool

	// files without a matchFileVersion count octaves from zero
	old bool
}

func (n *Note) MidiNoteNumber() int {
	fromOne := 1
	if n.old {
		fromOne = 0
	}
	return 12*(n.Octave+fromOne) + pitchClasses[n.Step[0]] + n.Accidental
}

func noteFromItem(it item, old bool) (*Note, error) {
	switch it.name {
	case "insertion", "deletion", "no_played_note":
		return nil, nil
	case "snote":
		return scoreNote(it.params, old)
	case "note":
		return playedNote(it.params, old)
	}
	return nil, errors.Wrapf(ErrInvalidNote, "unsupported item %q", it.name)
}

func scoreNote(params []Param, old bool) (*Note, error) {
	if len(params) != 9 {
		return nil, errors.Wrapf(ErrInvalidNote, "snote takes 9 fields, got %d", len(params))
	}
	n := &Note{Score: true, Anchor: params[0].Value, old: old}
	if err := n.setPitch(params[1], params[2]); err != nil {
		return nil, err
	}

	barBeat := strings.SplitN(params[3].Value, ":", 2)
	if len(barBeat) != 2 {
		return nil, errors.Wrapf(ErrInvalidNote, "bad bar:beat %q", params[3].Value)
	}
	var err error
	if n.Bar, err = strconv.Atoi(barBeat[0]); err != nil {
		return nil, errors.Wrapf(ErrInvalidNote, "bad bar %q", barBeat[0])
	}
	if n.Beat, err = strconv.Atoi(barBeat[1]); err != nil {
		return nil, errors.Wrapf(ErrInvalidNote, "bad beat %q", barBeat[1])
	}

	n.Offset = params[4].Value
	n.Duration = params[5].Value
	// the format calls the last number DurationInBeats, but it is the
	// beat the note ends on
	if n.Onset, err = parseDecimal(params[6].Value); err != nil {
		return nil, err
	}
	if n.OffTime, err = parseDecimal(params[7].Value); err != nil {
		return nil, err
	}
	n.Attributes = params[8].List
	return n, nil
}

func playedNote(params []Param, old bool) (*Note, error) {
	var anchor, noteInfo, octave, onset, offset, adjOffset, velocity Param
	switch len(params) {
	case 7:
		anchor, noteInfo, octave, onset, offset, adjOffset, velocity =
			params[0], params[1], params[2], params[3], params[4], params[5], params[6]
	case 6:
		anchor, noteInfo, octave, onset, offset, velocity =
			params[0], params[1], params[2], params[3], params[4], params[5]
		adjOffset = offset
	default:
		return nil, errors.Wrapf(ErrInvalidNote, "note takes 6 or 7 fields, got %d", len(params))
	}

	n := &Note{Anchor: anchor.Value, old: old, HasVel: true}
	if err := n.setPitch(noteInfo, octave); err != nil {
		return nil, err
	}
	var err error
	if n.Onset, err = parseDecimal(onset.Value); err != nil {
		return nil, err
	}
	if n.OffTime, err = parseDecimal(offset.Value); err != nil {
		return nil, err
	}
	if adjOffset.Value != offset.Value {
		return nil, errors.Wrapf(ErrInvalidNote, "adjusted offset %v differs from offset %v", adjOffset.Value, offset.Value)
	}
	if n.Velocity, err = strconv.Atoi(strings.TrimSpace(velocity.Value)); err != nil {
		return nil, errors.Wrapf(ErrInvalidNote, "bad velocity %q", velocity.Value)
	}
	return n, nil
}

// setPitch reads a [step,modifier] pair such as [C,#] or the string
// form "C#", plus the octave.
func (n *Note) setPitch(info, octave Param) error {
	var step, modifier string
	if info.IsList {
		if len(info.List) != 2 {
			return errors.Wrapf(ErrInvalidNote, "bad note name %v", info.List)
		}
		step, modifier = info.List[0], info.List[1]
	} else {
		if len(info.Value) != 2 {
			return errors.Wrapf(ErrInvalidNote, "bad note name %q", info.Value)
		}
		step, modifier = info.Value[:1], info.Value[1:]
	}

	step = strings.ToLower(strings.TrimSpace(step))
	if len(step) != 1 {
		return errors.Wrapf(ErrInvalidNote, "bad note step %q", step)
	}
	if _, ok := pitchClasses[step[0]]; !ok {
		return errors.Wrapf(ErrInvalidNote, "bad note step %q", step)
	}
	n.Step = step

	switch strings.TrimSpace(modifier) {
	case "#":
		n.Accidental = 1
	case "n":
		n.Accidental = 0
	case "b":
		n.Accidental = -1
	default:
		return errors.Wrapf(ErrUnknownModifier, "%q", modifier)
	}

	var err error
	if n.Octave, err = strconv.Atoi(strings.TrimSpace(octave.Value)); err != nil {
		return errors.Wrapf(ErrInvalidNote, "bad octave %q", octave.Value)
	}
	if num := n.MidiNoteNumber(); num < 0 || num > 127 {
		return errors.Wrapf(ErrInvalidNote, "note number %d out of range", num)
	}
	return nil
}

func parseDecimal(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, errors.Wrapf(ErrInvalidNote, "bad number %q", s)
	}
	return r, nil
}
