package track

import (
	"github.com/jsphweid/midialign/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// FromSMF decodes a standard MIDI file track into raw events. Every
// message yields one raw event so deltas add up to the track's real
// timing; messages that play no part in alignment become KindOther.
func FromSMF(tr smf.Track) []model.RawEvent {
	res := make([]model.RawEvent, 0, len(tr))
	for _, evt := range tr {
		var channel, key, velocity uint8
		r := model.RawEvent{Kind: model.KindOther, Delta: evt.Delta}
		msg := evt.Message
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			r.Kind = model.KindNoteOn
			r.Value = key
		case msg.GetNoteEnd(&channel, &key):
			r.Kind = model.KindNoteOff
			r.Value = key
		case msg.GetControlChange(&channel, &key, &velocity):
			r.Kind = model.KindControlChange
			r.Value = key
		case msg.Type() == smf.MetaTempoMsg:
			r.Kind = model.KindTempo
		case msg.Type() == smf.MetaEndOfTrackMsg:
			r.Kind = model.KindEndOfTrack
		}
		res = append(res, r)
	}
	return res
}
