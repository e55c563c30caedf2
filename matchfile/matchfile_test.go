package matchfile

import (
	"math/big"
	"strings"
	"testing"

	"github.com/jsphweid/midialign/model"
	"github.com/jsphweid/midialign/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `info(matchFileVersion,5.0).
info(midiClockUnits,480).
meta(keySignature,C Maj,1,0).
snote(n1,[C,n],4,1:1,0,1/4,0.0,1.0,[staff1])-note(0,[C,n],4,1000,1500,1500,70).
snote(n2,[E,n],4,1:2,0,1/4,1.0,2.0,[])-note(1,[E,n],4,1480,2000,2000,-5).
snote(n3,[G,b],4,1:3,0,1/4,2.0,3.0,[])-deletion.
insertion-note(2,[F,#],3,2500,2600,2600,40).
`

func TestParse(t *testing.T) {
	mf, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("5.0", mf.Info["matchFileVersion"])
	assert.Equal("480", mf.Info["midiClockUnits"])
	assert.Contains(mf.Meta, "keySignature")
	assert.Len(mf.Matches, 4)
	assert.Len(mf.ScoreNotes(), 3)
	assert.Len(mf.PlayedNotes(), 3)

	first := mf.Matches[0]
	assert.True(first.Score.Score)
	assert.Equal(1, first.Score.Bar)
	assert.Equal(1, first.Score.Beat)
	assert.Equal([]string{"staff1"}, first.Score.Attributes)
	assert.Equal(60, first.Score.MidiNoteNumber())
	assert.Equal(70, first.Played.Velocity)

	assert.Nil(mf.Matches[2].Played)
	assert.Equal(66, mf.Matches[2].Score.MidiNoteNumber())
	assert.Nil(mf.Matches[3].Score)
	assert.Equal(54, mf.Matches[3].Played.MidiNoteNumber())
}

func TestOldFilesCountOctavesFromZero(t *testing.T) {
	mf, err := Parse(strings.NewReader("snote(n1,[C,n],4,1:1,0,1/4,0.0,1.0,[])-note(0,[C,n],4,0,10,70).\n"))
	require.NoError(t, err)
	assert.Equal(t, 48, mf.Matches[0].Score.MidiNoteNumber())
	assert.Equal(t, 48, mf.Matches[0].Played.MidiNoteNumber())
}

func TestParseErrors(t *testing.T) {
	cases := map[string]error{
		"not a match line":                                       ErrInvalidLine,
		"snote(n1,[C,x],4,1:1,0,1/4,0.0,1.0,[])-deletion.":       ErrUnknownModifier,
		"snote(n1,[C,n],4)-deletion.":                            ErrInvalidNote,
		"trill(n1)-deletion.":                                    ErrInvalidNote,
		"insertion-note(0,[C,n],4,10,20,30,64).":                 ErrInvalidNote,
		"snote(n1,[H,n],4,1:1,0,1/4,0.0,1.0,[])-no_played_note.": ErrInvalidNote,
		"snote(n1,[C,n],21,1:1,0,1/4,0.0,1.0,[])-deletion.":      ErrInvalidNote,
		"snote(n1,[C,b],0,1:1,0,1/4,0.0,1.0,[])-deletion.":       ErrInvalidNote,
		"insertion-note(0,[C,n],21,0,10,10,70).":                 ErrInvalidNote,
	}
	for line, want := range cases {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(strings.NewReader(line + "\n"))
			assert.ErrorIs(t, err, want)
		})
	}
}

func TestRawEventsPlayed(t *testing.T) {
	mf, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	raw, err := mf.RawEvents(false, big.NewRat(1, 1))
	require.NoError(t, err)
	require.Len(t, raw, 6)

	assert := assert.New(t)
	// C on 1000, E on 1480, C off 1500, E off 2000, F# on 2500, F# off 2600
	assert.Equal([]uint8{60, 64, 60, 64, 54, 54}, values(raw))
	assert.Equal([]uint32{0, 480, 20, 500, 500, 100}, deltas(raw))
	assert.Equal(model.KindNoteOff, raw[2].Kind)

	seq, err := track.Normalize(raw, nil)
	require.NoError(t, err)
	assert.Equal(uint64(1600), seq[5].Time)
}

func TestRawEventsScoreOnBeforeOff(t *testing.T) {
	mf, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	raw, err := mf.RawEvents(true, big.NewRat(480, 1))
	require.NoError(t, err)
	require.Len(t, raw, 6)

	assert := assert.New(t)
	// at beat 1.0 the E starts and the C ends: note on first
	assert.Equal(model.KindNoteOn, raw[1].Kind)
	assert.Equal(uint8(64), raw[1].Value)
	assert.Equal(model.KindNoteOff, raw[2].Kind)
	assert.Equal(uint8(60), raw[2].Value)
	assert.Equal([]uint32{0, 480, 0, 480, 0, 480}, deltas(raw))
}

func TestRawEventsScaling(t *testing.T) {
	mf, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	_, err = mf.RawEvents(true, big.NewRat(-1, 1))
	assert.ErrorIs(t, err, ErrBadScaling)
	_, err = mf.RawEvents(true, new(big.Rat))
	assert.ErrorIs(t, err, ErrBadScaling)

	// one beat times 2^32 no longer fits a delta
	_, err = mf.RawEvents(true, new(big.Rat).SetInt64(1<<32))
	assert.ErrorIs(t, err, ErrTickOverflow)

	_, err = mf.SMF(true, big.NewRat(-1, 1))
	assert.ErrorIs(t, err, ErrBadScaling)
}

func TestLoudVelocityIsClamped(t *testing.T) {
	mf, err := Parse(strings.NewReader("info(matchFileVersion,5.0).\ninsertion-note(0,[A,n],4,0,10,10,300).\n"))
	require.NoError(t, err)
	assert.Equal(t, 127, mf.Matches[0].Played.event(false).velocity)
}

func TestSMF(t *testing.T) {
	mf, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	s, err := mf.SMF(true, big.NewRat(480, 1))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)

	seq, err := track.Normalize(track.FromSMF(s.Tracks[0]), nil)
	require.NoError(t, err)
	assert.Len(t, seq, 6)

	delete(mf.Info, "midiClockUnits")
	_, err = mf.SMF(true, big.NewRat(1, 1))
	assert.ErrorIs(t, err, ErrNoResolution)
}

func values(raw []model.RawEvent) []uint8 {
	var res []uint8
	for _, r := range raw {
		res = append(res, r.Value)
	}
	return res
}

func deltas(raw []model.RawEvent) []uint32 {
	var res []uint32
	for _, r := range raw {
		res = append(res, r.Delta)
	}
	return res
}
