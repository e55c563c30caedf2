package cmd

import (
	"os"

	"github.com/jsphweid/midialign/chord"
	"github.com/jsphweid/midialign/report"
	"github.com/jsphweid/midialign/track"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Prints the simultaneous groups of a track",
	Long: `Prints the simultaneous groups of a track (--gold-track) with their
chord keys, one group per line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	seq, err := loadSequence(path, goldTrack, true)
	if err != nil {
		return err
	}
	return report.WriteGroups(os.Stdout, track.Group(seq), chord.GroupKey)
}
