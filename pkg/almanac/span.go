package almanac

import "fmt"

// Span is the half-open range [Start, End).
type Span struct {
	Start int64
	End   int64
}

// NewSpan creates the span [start, start+length).
func NewSpan(start, length int64) Span {
	return Span{Start: start, End: start + length}
}

// Len returns the number of values in the span.
func (s Span) Len() int64 {
	if s.End <= s.Start {
		return 0
	}

	return s.End - s.Start
}

// Empty reports whether the span holds no value.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Contains reports whether p is inside the span.
func (s Span) Contains(p int64) bool {
	return s.Start <= p && p < s.End
}

// Intersect returns the overlap of s and o. The result is empty when they do not overlap.
func (s Span) Intersect(o Span) Span {
	if s.Start < o.Start {
		s.Start = o.Start
	}
	if s.End > o.End {
		s.End = o.End
	}
	if s.End < s.Start {
		s.End = s.Start
	}

	return s
}

// Shift moves both bounds by offset.
func (s Span) Shift(offset int64) Span {
	return Span{Start: s.Start + offset, End: s.End + offset}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}
