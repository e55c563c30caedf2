package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jsphweid/midialign/model"
	"github.com/jsphweid/midialign/session"
	"github.com/jsphweid/midialign/util"
)

const cellTemplate = "%4v %8v %-3v %3v %-5v |"

// FormatEvent renders one fixed width cell. nil renders as a blank cell
// of the same width.
func FormatEvent(t *model.Tagged) string {
	if t == nil {
		return fmt.Sprintf(cellTemplate, "", "", "", "", "")
	}
	var data any = ""
	if t.Event.Kind.IsNote() {
		data = t.Event.Value
	}
	return fmt.Sprintf(cellTemplate, t.Event.Pos, t.Event.Time, t.Event.Kind.Short(), data, t.Symbol())
}

func gold(evt *model.Event) *model.Tagged {
	if evt == nil {
		return nil
	}
	return &model.Tagged{Event: *evt}
}

func separator(columns int) string {
	cell := strings.NewReplacer(" ", "-", "|", "+").Replace(FormatEvent(nil)) + "-"
	return strings.Repeat(cell, columns)
}

func writeRow(w io.Writer, cells []*model.Tagged) error {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = FormatEvent(c)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

// Rows lays a block out as one row per gold event: the gold event
// followed by each candidate's match. With sortBy >= 0 rows are ordered
// by that column's time, rows with an empty cell there last.
func Rows(block session.Block, sortBy int) [][]*model.Tagged {
	rows := make([][]*model.Tagged, len(block.Gold))
	for i := range block.Gold {
		row := []*model.Tagged{gold(&block.Gold[i])}
		for _, matches := range block.Matches {
			row = append(row, matches[i])
		}
		rows[i] = row
	}
	if sortBy < 0 {
		return rows
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := cellAt(rows[i], sortBy), cellAt(rows[j], sortBy)
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.Event.Time < b.Event.Time
	})
	return rows
}

func cellAt(row []*model.Tagged, column int) *model.Tagged {
	if column >= len(row) {
		return nil
	}
	return row[column]
}

// WriteBlocks prints a multi candidate run, one block per gold group.
func WriteBlocks(w io.Writer, blocks []session.Block, sortBy int, printUnmatched bool) error {
	for _, block := range blocks {
		for _, row := range Rows(block, sortBy) {
			if err := writeRow(w, row); err != nil {
				return err
			}
		}
		if printUnmatched {
			for k, carried := range block.Carryover {
				if len(carried) == 0 {
					continue
				}
				positions := make([]string, len(carried))
				for i, evt := range carried {
					positions[i] = fmt.Sprint(evt.Pos)
				}
				if _, err := fmt.Fprintf(w, "Currently unmatched in %d: %s\n", k+1, strings.Join(positions, " ")); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w, separator(len(block.Matches)+1)); err != nil {
			return err
		}
	}
	return nil
}

// WriteSorted prints an order preserving run followed by the candidate
// events it never read.
func WriteSorted(w io.Writer, res *session.SortedResult) error {
	for _, pairs := range res.Groups {
		for _, p := range pairs {
			if err := writeRow(w, []*model.Tagged{gold(p.Gold), p.Other}); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, separator(2)); err != nil {
			return err
		}
	}

	parts := make([]string, len(res.Leftover))
	for i := range res.Leftover {
		parts[i] = FormatEvent(&model.Tagged{Event: res.Leftover[i]})
	}
	_, err := fmt.Fprintf(w, "Unmatched: %s\n", strings.Join(parts, " "))
	return err
}

// WriteAlignment prints one edit distance step per line.
func WriteAlignment(w io.Writer, steps []model.Tagged) error {
	for i := range steps {
		if _, err := fmt.Fprintln(w, FormatEvent(&steps[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteGroups prints each simultaneous group on one line with its key.
func WriteGroups(w io.Writer, groups [][]model.Event, key func([]model.Event) string) error {
	for _, group := range groups {
		cells := make([]*model.Tagged, len(group))
		for i := range group {
			cells[i] = &model.Tagged{Event: group[i]}
		}
		if _, err := fmt.Fprintf(w, "%-16s ", key(group)); err != nil {
			return err
		}
		if err := writeRow(w, cells); err != nil {
			return err
		}
	}
	return nil
}

// WriteTracks prints the column legend, one numbered input per line.
func WriteTracks(w io.Writer, tracks model.FileNumToMidiPath) error {
	for _, num := range util.GetKeys(tracks) {
		if _, err := fmt.Fprintf(w, "%d: %v\n", num, tracks[num]); err != nil {
			return err
		}
	}
	return nil
}
