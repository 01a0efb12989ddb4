package solver

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownMode = errors.New("unknown mode")

// Mode selects how seeds are read.
type Mode string

const (
	// ModePoints treats every seed as a single value.
	ModePoints Mode = "points"
	// ModeRanges reads seeds as (start, length) pairs.
	ModeRanges Mode = "ranges"
	// ModeBoth runs both readings on the same seeds.
	ModeBoth Mode = "both"
)

// ParseMode converts points, ranges or both to a Mode.
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModePoints, ModeRanges, ModeBoth:
		return mode, nil
	case "":
		return ModeBoth, nil
	default:
		return "", errors.Wrapf(ErrUnknownMode, "%q", s)
	}
}

func (m Mode) points() bool {
	return m == ModePoints || m == ModeBoth
}

func (m Mode) ranges() bool {
	return m == ModeRanges || m == ModeBoth
}
