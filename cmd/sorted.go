package cmd

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/midialign/file"
	"github.com/jsphweid/midialign/report"
	"github.com/jsphweid/midialign/session"
	"github.com/spf13/cobra"
)

var refine bool

func init() {
	sortedCmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON report instead of columns")
	sortedCmd.Flags().BoolVar(&refine, "refine", false, "correct the result with the edit distance aligner")
	rootCmd.AddCommand(sortedCmd)
}

var sortedCmd = &cobra.Command{
	Use:   "sorted <gold> <candidate>",
	Short: "Prints an order preserving diff of a candidate against gold",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sorted(args)
	},
}

func sorted(paths []string) error {
	gold, others, err := loadAll(paths)
	if err != nil {
		return err
	}

	cfg := sessionConfig()
	var refined *session.Refinement
	var res *session.SortedResult
	if refine {
		refined, err = session.Refine(gold, others[0], cfg)
		if refined != nil {
			res = refined.Sorted
		}
	} else {
		res, err = session.MatchSorted(gold, others[0], cfg)
	}
	if err != nil {
		return err
	}

	tracks := file.CreateFileNumMap(paths)
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.NewSortedJSON(res, refined, tracks))
	}
	if verbose {
		if err := report.WriteTracks(os.Stdout, tracks); err != nil {
			return err
		}
	}
	if err := report.WriteSorted(os.Stdout, res); err != nil {
		return err
	}
	if refined != nil {
		return report.WriteAlignment(os.Stdout, refined.Steps())
	}
	return nil
}
