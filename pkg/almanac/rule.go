package almanac

import (
	"math"

	"github.com/pkg/errors"
)

// Rule maps the source range [Start, Start+Length) onto the destination range starting at
// Start+Offset.
type Rule struct {
	Start  int64
	Length int64
	Offset int64
}

// NewRule creates a rule from a destination start, a source start and a length.
func NewRule(dst, src, length int64) Rule {
	return Rule{
		Start:  src,
		Length: length,
		Offset: dst - src,
	}
}

// End returns the exclusive end of the source range.
func (r Rule) End() int64 {
	return r.Start + r.Length
}

// Contains reports whether p is inside the source range.
func (r Rule) Contains(p int64) bool {
	return r.Start <= p && p < r.End()
}

// Translate shifts p by the rule offset. The result is only meaningful when Contains(p) holds.
func (r Rule) Translate(p int64) int64 {
	return p + r.Offset
}

// Span returns the source range as a span.
func (r Rule) Span() Span {
	return Span{Start: r.Start, End: r.End()}
}

// Validate checks that the rule covers at least one value.
func (r Rule) Validate() error {
	if r.Length <= 0 {
		return errors.Wrapf(ErrInvalidLength, "rule starting at %d has length %d", r.Start, r.Length)
	}
	if endOverflows(r.Start, r.Length) {
		return errors.Wrapf(ErrInvalidLength, "rule starting at %d with length %d ends past %d", r.Start, r.Length, int64(math.MaxInt64))
	}

	return nil
}

// endOverflows reports whether start+length does not fit in an int64. length must be positive.
func endOverflows(start, length int64) bool {
	return start > 0 && length > math.MaxInt64-start
}
