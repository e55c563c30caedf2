package report

import (
	"github.com/google/uuid"
	"github.com/jsphweid/midialign/model"
	"github.com/jsphweid/midialign/session"
	"github.com/jsphweid/midialign/util"
)

type EventJSON struct {
	Pos   int    `json:"pos"`
	Time  uint64 `json:"time"`
	Kind  string `json:"kind"`
	Value uint8  `json:"value"`
	Tag   string `json:"tag,omitempty"`
	Ref   *int   `json:"ref,omitempty"`
}

type PairJSON struct {
	Gold  *EventJSON `json:"gold"`
	Other *EventJSON `json:"other"`
}

type BlockJSON struct {
	Gold    []EventJSON    `json:"gold"`
	Matches [][]*EventJSON `json:"matches"`
}

type Summary struct {
	Matched   uint64 `json:"matched"`
	Missing   uint64 `json:"missing"`
	Extra     uint64 `json:"extra"`
	Leftover  int    `json:"leftover"`
	EditCost  int    `json:"edit_cost"`
	GoldTotal int    `json:"gold_total"`
}

type SortedJSON struct {
	RunID     string            `json:"run_id"`
	Tracks    map[uint32]string `json:"tracks,omitempty"`
	Groups    [][]PairJSON      `json:"groups"`
	Leftover  []EventJSON       `json:"leftover"`
	Alignment []EventJSON       `json:"alignment,omitempty"`
	Summary   Summary           `json:"summary"`
}

type BlocksJSON struct {
	RunID  string            `json:"run_id"`
	Tracks map[uint32]string `json:"tracks,omitempty"`
	Blocks []BlockJSON       `json:"blocks"`
}

func eventJSON(t model.Tagged) EventJSON {
	res := EventJSON{
		Pos:   t.Event.Pos,
		Time:  t.Event.Time,
		Kind:  t.Event.Kind.Short(),
		Value: t.Event.Value,
		Tag:   string(t.Tag),
	}
	if t.Tag == model.TagMatchedLater {
		ref := t.Ref
		res.Ref = &ref
	}
	return res
}

func optionalJSON(t *model.Tagged) *EventJSON {
	if t == nil {
		return nil
	}
	res := eventJSON(*t)
	return &res
}

func eventsJSON(events []model.Event) []EventJSON {
	res := make([]EventJSON, len(events))
	for i, evt := range events {
		res[i] = eventJSON(model.Tagged{Event: evt})
	}
	return res
}

// NewBlocksJSON converts a multi candidate run.
func NewBlocksJSON(blocks []session.Block, tracks map[uint32]string) BlocksJSON {
	res := BlocksJSON{RunID: uuid.New().String(), Tracks: tracks, Blocks: []BlockJSON{}}
	for _, block := range blocks {
		b := BlockJSON{Gold: eventsJSON(block.Gold)}
		for _, matches := range block.Matches {
			column := make([]*EventJSON, len(matches))
			for i, m := range matches {
				column[i] = optionalJSON(m)
			}
			b.Matches = append(b.Matches, column)
		}
		res.Blocks = append(res.Blocks, b)
	}
	return res
}

// NewSortedJSON converts a sorted run. refined may be nil.
func NewSortedJSON(res *session.SortedResult, refined *session.Refinement, tracks map[uint32]string) SortedJSON {
	out := SortedJSON{
		RunID:    uuid.New().String(),
		Tracks:   tracks,
		Groups:   [][]PairJSON{},
		Leftover: eventsJSON(res.Leftover),
		Summary:  Summarize(res),
	}
	for _, pairs := range res.Groups {
		group := make([]PairJSON, len(pairs))
		for i, p := range pairs {
			group[i] = PairJSON{Gold: optionalJSON(gold(p.Gold)), Other: optionalJSON(p.Other)}
		}
		out.Groups = append(out.Groups, group)
	}
	if refined != nil {
		for _, step := range refined.Steps() {
			out.Alignment = append(out.Alignment, eventJSON(step))
		}
		out.Summary.EditCost = refined.Cost
	}
	return out
}

// Summarize counts matched gold events, gold events without a match and
// candidate events nobody matched.
func Summarize(res *session.SortedResult) Summary {
	matched := make([]int, len(res.Groups))
	missing := make([]int, len(res.Groups))
	extra := make([]int, len(res.Groups))
	goldTotal := 0
	for g, pairs := range res.Groups {
		for _, p := range pairs {
			switch {
			case p.Gold != nil && p.Other != nil:
				matched[g]++
			case p.Gold != nil:
				missing[g]++
			case p.Other != nil && p.Other.Tag == model.TagUnmatched:
				extra[g]++
			}
			if p.Gold != nil {
				goldTotal++
			}
		}
	}
	return Summary{
		Matched:   util.Sum(matched),
		Missing:   util.Sum(missing),
		Extra:     util.Sum(extra),
		Leftover:  len(res.Leftover),
		GoldTotal: goldTotal,
	}
}
