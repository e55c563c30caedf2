// Package matcher finds candidate events for a group of gold events in a
// candidate stream, looking at most a bounded number of events ahead.
//
// Both policies work the same way. The cursor's carryover buffer is
// searched first. Then candidates are pulled from the cursor one at a
// time; a candidate that matches nothing is held back. A match commits
// the held candidates to the carryover buffer, where later groups can
// still claim them. Once too many candidates are held the scan stops and
// the held candidates are handed back to the cursor unread.
//
// Matching is first fit in target order: when two targets are similar to
// a candidate the earlier target gets it.
package matcher

import (
	"errors"

	"github.com/jsphweid/midialign/cursor"
	"github.com/jsphweid/midialign/model"
)

// FindMatching binds candidates to targets by position. The result has
// one slot per target, nil where nothing was found.
func FindMatching(c *cursor.Cursor, targets []model.Event, opts Options) ([]*model.Tagged, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := make([]*model.Tagged, len(targets))
	open := len(targets)
	isOpen := func(j int) bool { return res[j] == nil }

	c.TrimCarryover(opts.MaxUnmatched)
	var kept []model.Event
	for _, evt := range c.Carryover() {
		j := firstFit(evt, targets, isOpen)
		if j < 0 {
			kept = append(kept, evt)
			continue
		}
		res[j] = &model.Tagged{Event: evt, Tag: model.TagCarried}
		open--
	}
	c.SetCarryover(kept)

	var held []model.Event
	for open > 0 && opts.scanMore(len(held)) {
		evt, err := c.Advance()
		if errors.Is(err, cursor.ErrEndOfStream) {
			break
		}
		j := firstFit(evt, targets, isOpen)
		if j < 0 {
			held = append(held, evt)
			continue
		}
		c.Carry(held...)
		held = nil
		res[j] = &model.Tagged{Event: evt, Tag: model.TagMatched}
		open--
	}
	c.Unread(held)

	return res, nil
}

// FindMatchingSorted returns the candidates in the order they were found,
// paired with the targets they matched. Candidates skipped on the way to
// a match come out as (nil, candidate) pairs tagged unmatched; targets
// that found nothing are appended last as (target, nil).
func FindMatchingSorted(c *cursor.Cursor, targets []model.Event, opts Options) ([]model.Pair, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	pending := make([]*model.Event, len(targets))
	for j := range targets {
		target := targets[j]
		pending[j] = &target
	}
	open := len(targets)
	isOpen := func(j int) bool { return pending[j] != nil }

	var res []model.Pair
	claim := func(j int, evt model.Event, tag model.Tag) {
		res = append(res, model.Pair{Gold: pending[j], Other: &model.Tagged{Event: evt, Tag: tag}})
		pending[j] = nil
		open--
	}

	c.TrimCarryover(opts.MaxUnmatched)
	var kept []model.Event
	for _, evt := range c.Carryover() {
		j := firstFit(evt, targets, isOpen)
		if j < 0 {
			kept = append(kept, evt)
			continue
		}
		claim(j, evt, model.TagCarried)
	}
	c.SetCarryover(kept)

	var held []model.Event
	for open > 0 && opts.scanMore(len(held)) {
		evt, err := c.Advance()
		if errors.Is(err, cursor.ErrEndOfStream) {
			break
		}
		j := firstFit(evt, targets, isOpen)
		if j < 0 {
			held = append(held, evt)
			continue
		}
		for _, skipped := range held {
			res = append(res, model.Pair{Other: &model.Tagged{Event: skipped, Tag: model.TagUnmatched}})
		}
		c.Carry(held...)
		held = nil
		claim(j, evt, model.TagMatched)
	}
	c.Unread(held)

	for _, target := range pending {
		if target != nil {
			res = append(res, model.Pair{Gold: target})
		}
	}
	return res, nil
}

func firstFit(evt model.Event, targets []model.Event, isOpen func(int) bool) int {
	for j, target := range targets {
		if isOpen(j) && evt.Similar(target) {
			return j
		}
	}
	return -1
}
