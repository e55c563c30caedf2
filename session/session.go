// Package session runs whole alignments: the gold sequence is read one
// simultaneous group at a time and every candidate cursor is asked for
// matches, optionally followed by an edit distance pass over the result.
package session

import (
	"errors"

	"github.com/jsphweid/midialign/constants"
	"github.com/jsphweid/midialign/cursor"
	"github.com/jsphweid/midialign/levenshtein"
	"github.com/jsphweid/midialign/matcher"
	"github.com/jsphweid/midialign/model"
	"github.com/jsphweid/midialign/util"
)

type Config struct {
	Options matcher.Options

	// gold groups per edit distance chunk in Refine
	ChunkGroups int

	// Logf receives one progress line per gold group when set.
	Logf func(format string, args ...any)
}

func DefaultConfig() Config {
	return Config{
		Options:     matcher.DefaultOptions(),
		ChunkGroups: constants.DefaultChunkGroups,
	}
}

func (c Config) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// Block is the outcome of one gold group against every candidate.
// Matches[k][i] is candidate k's match for Gold[i]. Carryover[k] is
// candidate k's carryover buffer after the group.
type Block struct {
	Gold      []model.Event
	Matches   [][]*model.Tagged
	Carryover [][]model.Event
}

// Match aligns every candidate against gold with the position binding
// matcher.
func Match(gold []model.Event, others [][]model.Event, cfg Config) ([]Block, error) {
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}

	goldCursor := cursor.New(gold)
	cursors := make([]*cursor.Cursor, len(others))
	for k, other := range others {
		cursors[k] = cursor.New(other)
	}

	var res []Block
	for {
		group, err := goldCursor.AdvanceGroup()
		if errors.Is(err, cursor.ErrEndOfStream) {
			break
		}

		block := Block{Gold: group}
		for _, c := range cursors {
			matched, err := matcher.FindMatching(c, group, cfg.Options)
			if err != nil {
				return nil, err
			}
			block.Matches = append(block.Matches, matched)
			block.Carryover = append(block.Carryover, c.Carryover())
		}
		cfg.logf("group %d at %d: %d gold events", len(res), goldCursor.Time(), len(group))
		res = append(res, block)
	}
	return res, nil
}

// SortedResult is the outcome of MatchSorted. Leftover holds candidate
// events the run never read; Carryover the skipped ones nobody claimed.
type SortedResult struct {
	Groups    [][]model.Pair
	Leftover  []model.Event
	Carryover []model.Event
}

// MatchSorted aligns one candidate against gold with the order
// preserving matcher. A candidate first reported as unmatched and later
// claimed from the carryover buffer has its earlier pair retagged
// TagMatchedLater with Ref set to the claiming gold position.
func MatchSorted(gold, other []model.Event, cfg Config) (*SortedResult, error) {
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}

	goldCursor := cursor.New(gold)
	otherCursor := cursor.New(other)
	unmatched := make(map[int]*model.Tagged)

	res := &SortedResult{}
	for {
		group, err := goldCursor.AdvanceGroup()
		if errors.Is(err, cursor.ErrEndOfStream) {
			break
		}

		pairs, err := matcher.FindMatchingSorted(otherCursor, group, cfg.Options)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			if p.Other == nil {
				continue
			}
			switch p.Other.Tag {
			case model.TagUnmatched:
				unmatched[p.Other.Event.Pos] = p.Other
			case model.TagCarried:
				if earlier, ok := unmatched[p.Other.Event.Pos]; ok {
					earlier.Tag = model.TagMatchedLater
					earlier.Ref = p.Gold.Pos
					delete(unmatched, p.Other.Event.Pos)
				}
			}
		}
		cfg.logf("group %d at %d: %d gold events, %d pairs", len(res.Groups), goldCursor.Time(), len(group), len(pairs))
		res.Groups = append(res.Groups, pairs)
	}

	res.Leftover = otherCursor.Remaining()
	res.Carryover = otherCursor.Carryover()
	return res, nil
}

// Refinement is a sorted run corrected chunk by chunk with the edit
// distance aligner.
type Refinement struct {
	Sorted *SortedResult
	Chunks []levenshtein.Alignment
	Cost   int
}

// Steps flattens the chunk alignments.
func (r *Refinement) Steps() []model.Tagged {
	var res []model.Tagged
	for _, chunk := range r.Chunks {
		res = append(res, chunk.Steps...)
	}
	return res
}

// Refine runs MatchSorted and then aligns each run of cfg.ChunkGroups
// gold groups against the candidates those groups produced. Candidates
// the run never read are added to the last chunk. Chunking keeps the
// edit distance table small.
func Refine(gold, other []model.Event, cfg Config) (*Refinement, error) {
	sorted, err := MatchSorted(gold, other, cfg)
	if err != nil {
		return nil, err
	}

	size := cfg.ChunkGroups
	if size <= 0 {
		size = len(sorted.Groups)
	}

	res := &Refinement{Sorted: sorted}
	groups := sorted.Groups
	for start := 0; ; start += size {
		end := util.Min(start+size, len(groups))
		last := end == len(groups)
		golds, others := chunkSides(groups[start:end])
		if last {
			others = append(others, sorted.Leftover...)
		}

		if len(golds) > 0 || len(others) > 0 {
			chunk := levenshtein.Align(golds, others)
			res.Chunks = append(res.Chunks, chunk)
			res.Cost += chunk.Cost
		}
		if last {
			break
		}
	}
	return res, nil
}

// chunkSides lists the gold and candidate events of groups in pair
// order. Candidates retagged TagMatchedLater show up again where they
// were claimed and are skipped here.
func chunkSides(groups [][]model.Pair) (golds, others []model.Event) {
	for _, pairs := range groups {
		for _, p := range pairs {
			if p.Gold != nil {
				golds = append(golds, *p.Gold)
			}
			if p.Other != nil && p.Other.Tag != model.TagMatchedLater {
				others = append(others, p.Other.Event)
			}
		}
	}
	return golds, others
}
