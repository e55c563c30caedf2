package cmd

import (
	"log"

	"github.com/jsphweid/midialign/constants"
	"github.com/jsphweid/midialign/matcher"
	"github.com/jsphweid/midialign/session"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	goldTrack    int
	otherTrack   int
	maxGapSize   int
	maxUnmatched int
	scaling      string
)

var rootCmd = &cobra.Command{
	Use:   "midialign",
	Short: "Aligns performances to a score",
	Long: `Aligns recorded MIDI performances against a gold (score) MIDI file.
Candidates are matched group by group with a bounded lookahead and can be
refined with an edit distance pass.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print progress for every gold group")
	flags.IntVar(&goldTrack, "gold-track", 0, "track number to read from the gold file")
	flags.IntVar(&otherTrack, "track", 0, "track number to read from candidate files")
	flags.IntVar(&maxGapSize, "max-gap", constants.GetMaxGapSize(), "candidates that may be skipped looking for a match, -1 for no limit")
	flags.IntVar(&maxUnmatched, "max-unmatched", constants.GetMaxUnmatched(), "size of the carryover buffer, -1 for no limit")
	flags.StringVar(&scaling, "scaling", "1", "time scaling when reading .match files")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func sessionConfig() session.Config {
	cfg := session.DefaultConfig()
	cfg.Options = matcher.Options{MaxGapSize: maxGapSize, MaxUnmatched: maxUnmatched}
	if verbose {
		cfg.Logf = log.Printf
	}
	return cfg
}
