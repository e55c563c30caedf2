package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/midialign/levenshtein"
	"github.com/jsphweid/midialign/model"
	"github.com/jsphweid/midialign/report"
	"github.com/jsphweid/midialign/session"
	"github.com/spf13/cobra"
)

var whole bool

func init() {
	alignCmd.Flags().BoolVar(&whole, "whole", false, "align the full sequences in one table instead of chunk by chunk")
	alignCmd.Flags().IntVar(&chunkGroups, "chunk-groups", 0, "gold groups per edit distance chunk, 0 for the default")
	rootCmd.AddCommand(alignCmd)
}

var chunkGroups int

var alignCmd = &cobra.Command{
	Use:   "align <gold> <candidate>",
	Short: "Prints the edit distance alignment of a candidate against gold",
	Long: `Prints the edit distance alignment of a candidate against gold.
By default the sorted matcher runs first and the aligner corrects its
result chunk by chunk. --whole skips the matcher; memory grows with the
product of the two lengths.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return align(args)
	},
}

func align(paths []string) error {
	gold, others, err := loadAll(paths)
	if err != nil {
		return err
	}

	var steps []model.Tagged
	var cost int
	if whole {
		res := levenshtein.Align(gold, others[0])
		steps, cost = res.Steps, res.Cost
	} else {
		cfg := sessionConfig()
		if chunkGroups > 0 {
			cfg.ChunkGroups = chunkGroups
		}
		refined, err := session.Refine(gold, others[0], cfg)
		if err != nil {
			return err
		}
		steps, cost = refined.Steps(), refined.Cost
	}

	if err := report.WriteAlignment(os.Stdout, steps); err != nil {
		return err
	}
	fmt.Printf("Cost: %d\n", cost)
	return nil
}
