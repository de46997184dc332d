// SPDX-License-Identifier: MIT
// Package search provides boundary searches over ordered integer ranges.
//
// FirstFalse locates the point where a monotonic predicate flips from true to
// false inside a half-open range [start, end). It is the primitive used by the
// range minimizer to skip whole runs of inputs instead of visiting each one.
//
// Complexity:
//
//   - Time:   O(log N · P), N = end-start, P = cost of one predicate call
//   - Memory: O(1)
package search

// Integer is the set of built-in integer types a boundary search can walk.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// FirstFalse returns the smallest x in [start, end] such that pred(x) is false.
//
// pred MUST be monotonic over [start, end): true for every x below some
// boundary and false for every x from the boundary onward. The result is
// unspecified when that precondition does not hold; it is not checked here.
//
// Edge cases:
//   - pred true everywhere ⇒ end.
//   - pred false at start  ⇒ start.
//   - start >= end          ⇒ start (empty range, pred is never called).
//
// The midpoint is computed as lo + (hi-lo)/2, so bounds close to the limits
// of T do not overflow as long as the width end-start itself fits in T.
func FirstFalse[T Integer](start, end T, pred func(T) bool) T {
	// 1) Empty or inverted range: nothing to search.
	if start >= end {
		return start
	}

	// 2) Invariant: pred is true below lo, false at and above hi.
	lo, hi := start, end
	var mid T
	for lo < hi {
		mid = lo + (hi-lo)/2
		if pred(mid) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo
}

// FirstTrue returns the smallest x in [start, end] such that pred(x) is true,
// or end if there is none. pred must be false then permanently true.
func FirstTrue[T Integer](start, end T, pred func(T) bool) T {
	return FirstFalse(start, end, func(x T) bool { return !pred(x) })
}
