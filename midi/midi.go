package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/midialign/model"
	"github.com/jsphweid/midialign/track"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	res, err := ReadMidi(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing midi file %v", filepath)
	}
	return res, nil
}

// ReadMidi parses an SMF, turning parser panics into errors.
func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("midi parser panicked: %v", r)
		}
	}()

	return smf.ReadFrom(r)
}

func WriteMidiFile(s *smf.SMF, filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return errors.Wrapf(err, "Couldn't create file %v", filepath)
	}
	defer f.Close()

	if _, err := s.WriteTo(f); err != nil {
		return errors.Wrapf(err, "Write failed for file %v", filepath)
	}
	return nil
}

// Sequence normalizes one track of s. keep may be nil for note events
// only.
func Sequence(s *smf.SMF, trackNum int, keep track.Filter) ([]model.Event, error) {
	if trackNum < 0 || trackNum >= len(s.Tracks) {
		return nil, errors.Errorf("track %d out of range, file has %d tracks", trackNum, len(s.Tracks))
	}
	return track.Normalize(track.FromSMF(s.Tracks[trackNum]), keep)
}

// LoadSequence reads a MIDI file and normalizes one of its tracks.
func LoadSequence(filepath string, trackNum int, keep track.Filter) ([]model.Event, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	seq, err := Sequence(s, trackNum, keep)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't load %v", filepath)
	}
	return seq, nil
}
