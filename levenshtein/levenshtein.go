// Package levenshtein aligns two whole event sequences by minimum edit
// distance. Only insertions and deletions cost anything; similar events
// match for free, and there is no substitution step.
//
// The table is O(len(gold)·len(other)) so callers should hand it
// sequences that are already roughly aligned, not whole recordings.
package levenshtein

import (
	"github.com/jsphweid/midialign/model"
	"github.com/jsphweid/midialign/util"
)

type Op uint8

const (
	OpNone Op = iota
	OpMatch
	// gold event with no counterpart
	OpAdd
	// candidate event with no counterpart
	OpRemove
)

type cell struct {
	cost int
	op   Op
}

// Alignment lists one step per table move, in sequence order. Matched
// steps carry the candidate event, inserted steps the gold event and
// deleted steps the candidate event.
type Alignment struct {
	Steps []model.Tagged
	Cost  int
}

// Align computes the alignment of other against gold. Equal costs
// prefer deleting the candidate event over inserting the gold one.
func Align(gold, other []model.Event) Alignment {
	n, m := len(gold), len(other)
	table := buildTable(gold, other)

	steps := make([]model.Tagged, 0, util.Max(n, m))
	i, j := n, m
	for i > 0 || j > 0 {
		switch table[i][j].op {
		case OpMatch:
			steps = append(steps, model.Tagged{Event: other[j-1], Tag: model.TagMatched})
			i--
			j--
		case OpRemove:
			steps = append(steps, model.Tagged{Event: other[j-1], Tag: model.TagDeleted})
			j--
		case OpAdd:
			steps = append(steps, model.Tagged{Event: gold[i-1], Tag: model.TagInserted})
			i--
		}
	}

	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	return Alignment{Steps: steps, Cost: table[n][m].cost}
}

// Distance is the cost of Align without building the step list.
func Distance(gold, other []model.Event) int {
	return buildTable(gold, other)[len(gold)][len(other)].cost
}

// buildTable fills an (n+1)x(m+1) table. Row and column zero hold the
// cost of consuming a whole prefix of one side, which lets the backtrace
// run all the way to the origin.
func buildTable(gold, other []model.Event) [][]cell {
	n, m := len(gold), len(other)
	table := make([][]cell, n+1)
	for i := range table {
		table[i] = make([]cell, m+1)
		if i > 0 {
			table[i][0] = cell{cost: i, op: OpAdd}
		}
	}
	for j := 1; j <= m; j++ {
		table[0][j] = cell{cost: j, op: OpRemove}
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if gold[i-1].Similar(other[j-1]) {
				table[i][j] = cell{cost: table[i-1][j-1].cost, op: OpMatch}
				continue
			}
			up, left := table[i-1][j].cost, table[i][j-1].cost
			if up < left {
				table[i][j] = cell{cost: up + 1, op: OpAdd}
			} else {
				table[i][j] = cell{cost: left + 1, op: OpRemove}
			}
		}
	}
	return table
}
