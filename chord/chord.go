package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/midialign/model"
)

// CreateChordKey joins the sorted pitches with dashes, e.g. "60-64-67".
// notes is left untouched.
func CreateChordKey(notes []uint8) string {
	sorted := append([]uint8(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	parts := make([]string, len(sorted))
	for i, note := range sorted {
		parts[i] = fmt.Sprintf("%v", note)
	}
	return strings.Join(parts, "-")
}

// GroupKey describes a simultaneous group by the notes it starts and the
// notes it ends, e.g. "60-64-67" or "60-64/off:55". Other kinds are
// ignored.
func GroupKey(group []model.Event) string {
	var ons, offs []uint8
	for _, evt := range group {
		switch evt.Kind {
		case model.KindNoteOn:
			ons = append(ons, evt.Value)
		case model.KindNoteOff:
			offs = append(offs, evt.Value)
		}
	}
	key := CreateChordKey(ons)
	if len(offs) > 0 {
		key += "/off:" + CreateChordKey(offs)
	}
	return key
}
