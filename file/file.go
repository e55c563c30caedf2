package file

import (
	"github.com/jsphweid/midialign/model"
)

// CreateFileNumMap numbers input files in argument order; 0 is the gold
// file and k is candidate column k.
func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}
