package cmd

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/midialign/matchfile"
	"github.com/jsphweid/midialign/midi"
	"github.com/jsphweid/midialign/model"
	"github.com/jsphweid/midialign/track"
	"github.com/jsphweid/midialign/util"
	"github.com/pkg/errors"
)

func parseScaling() (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(scaling)
	if !ok {
		return nil, errors.Errorf("bad --scaling %q", scaling)
	}
	if r.Sign() <= 0 {
		return nil, errors.Errorf("--scaling must be positive, got %v", scaling)
	}
	return r, nil
}

// loadSequence reads a MIDI file, or one side of a .match file: the
// score notes for gold, the played notes otherwise.
func loadSequence(path string, trackNum int, isGold bool) ([]model.Event, error) {
	if strings.ToLower(filepath.Ext(path)) != ".match" {
		return midi.LoadSequence(path, trackNum, nil)
	}

	mf, err := matchfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	ratio, err := parseScaling()
	if err != nil {
		return nil, err
	}
	raw, err := mf.RawEvents(isGold, ratio)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't convert %v", path)
	}
	seq, err := track.Normalize(raw, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't load %v", path)
	}
	return seq, nil
}

// expandPaths replaces directories with the MIDI files inside them.
func expandPaths(args []string) ([]string, error) {
	var res []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "Couldn't stat %v", arg)
		}
		if !info.IsDir() {
			res = append(res, arg)
			continue
		}
		paths, err := util.GatherAllMidiPaths(arg, 0)
		if err != nil {
			return nil, err
		}
		res = append(res, paths...)
	}
	return res, nil
}

// loadAll loads the gold file and every candidate. paths[0] is gold.
func loadAll(paths []string) ([]model.Event, [][]model.Event, error) {
	gold, err := loadSequence(paths[0], goldTrack, true)
	if err != nil {
		return nil, nil, err
	}
	var others [][]model.Event
	for i, path := range paths[1:] {
		if verbose {
			fmt.Printf("Loading %v of %v candidate files\n", i+1, len(paths)-1)
		}
		other, err := loadSequence(path, otherTrack, false)
		if err != nil {
			return nil, nil, err
		}
		others = append(others, other)
	}
	return gold, others, nil
}
