package cmd

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/midialign/file"
	"github.com/jsphweid/midialign/report"
	"github.com/jsphweid/midialign/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	sortBy         int
	printUnmatched bool
	asJSON         bool
)

func init() {
	matchCmd.Flags().IntVar(&sortBy, "sort-by", 0, "column to order rows by, 0 is gold")
	matchCmd.Flags().BoolVar(&printUnmatched, "print-unmatched", false, "print every candidate's carryover after each block")
	matchCmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON report instead of columns")
	rootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match <gold> <candidate|dir>...",
	Short: "Matches candidates against gold group by group",
	Long: `Matches one or more candidate MIDI files against a gold file.
Directories are searched for .mid/.midi files. Each gold group gets one
column per candidate.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := expandPaths(args)
		if err != nil {
			return err
		}
		return match(paths)
	},
}

func match(paths []string) error {
	gold, others, err := loadAll(paths)
	if err != nil {
		return err
	}
	if sortBy < 0 || sortBy > len(others) {
		return errors.Errorf("--sort-by must be between 0 and %d", len(others))
	}

	blocks, err := session.Match(gold, others, sessionConfig())
	if err != nil {
		return err
	}

	tracks := file.CreateFileNumMap(paths)
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.NewBlocksJSON(blocks, tracks))
	}
	if verbose {
		if err := report.WriteTracks(os.Stdout, tracks); err != nil {
			return err
		}
	}
	return report.WriteBlocks(os.Stdout, blocks, sortBy, printUnmatched)
}
