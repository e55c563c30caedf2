package sample

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Create cuts an excerpt out of mf starting at ticksOffset. Non note
// events from before the offset are moved to the start of the excerpt
// so tempo and program changes still apply. Each track stops after
// maxNotes note on/off events; maxNotes <= 0 keeps the rest of the
// track.
func Create(mf *smf.SMF, ticksOffset uint64, maxNotes int) *smf.SMF {
	res := smf.NewSMF1()
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks uint64
		pos := ticksOffset
		var numNoteOnOff int
	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			isNote := evt.Message.Is(midi.NoteOnMsg) || evt.Message.Is(midi.NoteOffMsg)
			switch {
			case evt.Message.Type() == smf.MetaEndOfTrackMsg:
				continue
			case absTicks < ticksOffset:
				if !isNote {
					newTrack = append(newTrack, smf.Event{Delta: 0, Message: evt.Message})
				}
				continue
			}

			newTrack = append(newTrack, smf.Event{Delta: uint32(absTicks - pos), Message: evt.Message})
			pos = absTicks
			if isNote {
				numNoteOnOff++
				if maxNotes > 0 && numNoteOnOff >= maxNotes {
					break TrackEventLoop
				}
			}
		}
		newTrack = append(newTrack, smf.Event{Delta: 0, Message: smf.EOT})
		res.Add(newTrack)
	}

	return res
}
