// SPDX-License-Identifier: MIT
// Package interval defines half-open integer intervals with additive offsets
// and the piecewise-linear OffsetMap built from them.
//
// An OffsetMap is an ordered list of Intervals. Looking up a key returns
// Base + (key - Start) for the most recently inserted interval containing the
// key, or the key itself when no interval contains it. Overlaps are legal and
// resolved at lookup time (last insertion wins).
//
// Index is the sorted counterpart of an OffsetMap: the same function,
// precomputed into disjoint segments so a lookup costs O(log n) instead of
// O(n), with identical tie-breaking.
//
// Errors:
//
//	ErrEmptyInterval - Start >= End.
//	ErrOverflow      - the domain width or the image of End-1 does not fit in int64.
package interval

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyInterval indicates an interval whose Start is not below its End.
	ErrEmptyInterval = errors.New("interval: start must be below end")

	// ErrOverflow indicates an interval whose width or image exceeds int64.
	ErrOverflow = errors.New("interval: int64 overflow")
)

// Interval maps every key in [Start, End) to Base + (key - Start).
// The mapping is a slope-1 affine shift and therefore bijective on its domain.
type Interval struct {
	// Start is the inclusive lower bound of the domain.
	Start int64

	// End is the exclusive upper bound of the domain.
	End int64

	// Base is the image of Start.
	Base int64
}

// New validates and returns the interval [start, end) → base.
func New(start, end, base int64) (Interval, error) {
	iv := Interval{Start: start, End: end, Base: base}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}

	return iv, nil
}

// FromRange builds an interval from the "destination source length" triple
// used by almanac map lines: [src, src+length) → dst.
// Both src+length and dst+length-1 must fit in int64.
func FromRange(dst, src, length int64) (Interval, error) {
	if length <= 0 {
		return Interval{}, fmt.Errorf("%w: length %d", ErrEmptyInterval, length)
	}
	if src > math.MaxInt64-length || dst > math.MaxInt64-(length-1) {
		return Interval{}, fmt.Errorf("%w: dst %d src %d length %d", ErrOverflow, dst, src, length)
	}

	return New(src, src+length, dst)
}

// Validate reports ErrEmptyInterval unless Start < End, and ErrOverflow when
// End-Start or Base+(End-1-Start) leaves the int64 range.
func (iv Interval) Validate() error {
	if iv.Start >= iv.End {
		return fmt.Errorf("%w: [%d,%d)", ErrEmptyInterval, iv.Start, iv.End)
	}
	// Start < End, so a non-positive difference means it wrapped.
	width := iv.End - iv.Start
	if width <= 0 || iv.Base > math.MaxInt64-(width-1) {
		return fmt.Errorf("%w: %s", ErrOverflow, iv)
	}

	return nil
}

// Contains reports whether key lies in [Start, End).
func (iv Interval) Contains(key int64) bool {
	return iv.Start <= key && key < iv.End
}

// Len returns End - Start.
func (iv Interval) Len() int64 { return iv.End - iv.Start }

// Offset returns Base - Start, the constant added to every key in the domain.
func (iv Interval) Offset() int64 { return iv.Base - iv.Start }

// Apply maps key through the interval without checking containment.
func (iv Interval) Apply(key int64) int64 {
	return iv.Base + (key - iv.Start)
}

// String renders the interval as "[start,end)→base".
func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d)→%d", iv.Start, iv.End, iv.Base)
}
