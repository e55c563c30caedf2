package matcher

import (
	"errors"
	"fmt"
)

// Unlimited disables a bound in Options.
const Unlimited = -1

var ErrBadOptions = errors.New("matcher: invalid options")

// Options bounds a single matching call. The zero value scans nothing
// forward and drops the whole carryover buffer; start from
// DefaultOptions.
type Options struct {
	// MaxGapSize is how many non-matching candidates may be skipped while
	// looking for a match. 0 turns forward scanning off so only the
	// carryover buffer can match.
	MaxGapSize int

	// MaxUnmatched caps the carryover buffer, oldest entries dropped first.
	MaxUnmatched int
}

func DefaultOptions() Options {
	return Options{MaxGapSize: Unlimited, MaxUnmatched: Unlimited}
}

func (o Options) Validate() error {
	if o.MaxGapSize < Unlimited {
		return fmt.Errorf("%w: max gap size %d", ErrBadOptions, o.MaxGapSize)
	}
	if o.MaxUnmatched < Unlimited {
		return fmt.Errorf("%w: max unmatched %d", ErrBadOptions, o.MaxUnmatched)
	}
	return nil
}

// scanMore reports whether another candidate may be pulled with held
// candidates already skipped.
func (o Options) scanMore(held int) bool {
	switch o.MaxGapSize {
	case Unlimited:
		return true
	case 0:
		return false
	}
	return held <= o.MaxGapSize
}
