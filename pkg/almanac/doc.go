// Package almanac translates values through an ordered chain of offset stages.
//
// A stage is a sorted set of disjoint half-open ranges, each carrying a fixed signed offset. Values
// that fall inside a range are shifted by its offset, everything else passes through unchanged.
// A pipeline applies its stages in order, and a query engine reduces a batch of inputs to the
// smallest final value.
//
// Ranges of inputs are never enumerated: a stage splits an input span at its rule boundaries, so
// the cost of a range query depends on the number of boundaries crossed, not on the width of the
// span.
package almanac
