package almanac

import "github.com/pkg/errors"

var (
	ErrEmptyBatch       = errors.New("batch must not be empty")
	ErrInvalidLength    = errors.New("length must be greater than 0")
	ErrOverlappingRules = errors.New("rules must not overlap")
	ErrOddPairs         = errors.New("values must come in start/length pairs")
)
