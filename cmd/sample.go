package cmd

import (
	"github.com/jsphweid/midialign/midi"
	"github.com/jsphweid/midialign/sample"
	"github.com/spf13/cobra"
)

var (
	sampleOffset uint64
	sampleNotes  int
)

func init() {
	sampleCmd.Flags().Uint64Var(&sampleOffset, "offset", 0, "tick to start the excerpt at")
	sampleCmd.Flags().IntVar(&sampleNotes, "notes", 20, "note events to keep per track, 0 for all")
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample <in.mid> <out.mid>",
	Short: "Writes a short excerpt of a MIDI file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		return midi.WriteMidiFile(sample.Create(s, sampleOffset, sampleNotes), args[1])
	},
}
