package cmd

import (
	"fmt"

	"github.com/jsphweid/midialign/matchfile"
	"github.com/jsphweid/midialign/midi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var notesSide string

func init() {
	convertCmd.Flags().StringVar(&notesSide, "notes", "played", "which notes to write: score or played")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <in.match> <out.mid>",
	Short: "Converts a .match annotation file to MIDI",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convert(args[0], args[1])
	},
}

func convert(in, out string) error {
	var score bool
	switch notesSide {
	case "score":
		score = true
	case "played":
	default:
		return errors.Errorf("--notes must be score or played, got %q", notesSide)
	}

	ratio, err := parseScaling()
	if err != nil {
		return err
	}
	mf, err := matchfile.ParseFile(in)
	if err != nil {
		return err
	}
	s, err := mf.SMF(score, ratio)
	if err != nil {
		return errors.Wrapf(err, "Couldn't convert %v", in)
	}
	if err := midi.WriteMidiFile(s, out); err != nil {
		return err
	}
	if verbose {
		fmt.Printf("Wrote %d %s notes to %v\n", len(mf.Matches), notesSide, out)
	}
	return nil
}
