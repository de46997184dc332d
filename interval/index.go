// SPDX-License-Identifier: MIT
// File: index.go
// Role: sorted, segment-based view of an OffsetMap.
// Determinism:
//   - Segment ordinals depend only on the interval list, never on map order.
//   - Tie-break is preserved: a segment covered by several intervals belongs to
//     the one inserted last, exactly like OffsetMap.GetWithInterval.
// Concurrency:
//   - Index is immutable after Compile; safe for concurrent readers.

package interval

import "sort"

// Index partitions the whole int64 line into disjoint segments separated by
// the sorted boundary points b0 < b1 < … < bm of an OffsetMap:
//
//	(-inf,b0) [b0,b1) … [bm-1,bm) [bm,+inf)
//
// Each segment records the 1-based interval that wins on it (Identity for gaps).
// Adjacent segments with the same winner are merged, so two neighbouring
// segments always map through different intervals.
type Index struct {
	intervals []Interval
	bounds    []int64 // sorted segment boundaries
	winners   []int   // winners[s] = winning interval of segment s; len(bounds)+1 entries
}

// Compile builds the Index of m.
//
// Implementation:
//   - Stage 1: Collect every Start and End, sort and deduplicate.
//   - Stage 2: For each inner segment, find the last inserted interval that
//     covers its left boundary (boundaries include all endpoints, so coverage
//     of one point implies coverage of the whole segment).
//   - Stage 3: Merge adjacent segments with equal winners.
//
// Complexity: O(n²) time, O(n) memory. Maps are compiled once per chain edge.
func (m *OffsetMap) Compile() *Index {
	// 1) Boundary points.
	raw := make([]int64, 0, 2*len(m.intervals))
	for _, iv := range m.intervals {
		raw = append(raw, iv.Start, iv.End)
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i] < raw[j] })
	pts := raw[:0]
	for i, p := range raw {
		if i == 0 || p != raw[i-1] {
			pts = append(pts, p)
		}
	}

	// 2) Winner of each segment. Segment 0 and segment len(pts) are unbounded
	//    and lie outside every interval.
	win := make([]int, len(pts)+1)
	for s := 1; s < len(pts); s++ {
		_, win[s] = m.GetWithInterval(pts[s-1])
	}

	// 3) Merge: drop a boundary when both sides share a winner.
	idx := &Index{
		intervals: m.Intervals(),
		bounds:    make([]int64, 0, len(pts)),
		winners:   make([]int, 1, len(pts)+1),
	}
	idx.winners[0] = win[0]
	for s := 1; s <= len(pts); s++ {
		if win[s] == idx.winners[len(idx.winners)-1] {
			continue
		}
		idx.bounds = append(idx.bounds, pts[s-1])
		idx.winners = append(idx.winners, win[s])
	}

	return idx
}

// Lookup returns the image of key, the 1-based winning interval (Identity if
// none) and the ordinal of the segment containing key.
//
// Complexity: O(log n).
func (x *Index) Lookup(key int64) (value int64, index int, segment int) {
	// Segment ordinal = number of boundaries <= key.
	segment = sort.Search(len(x.bounds), func(i int) bool { return x.bounds[i] > key })
	index = x.winners[segment]
	if index == Identity {
		return key, Identity, segment
	}

	return x.intervals[index-1].Apply(key), index, segment
}

// Get is OffsetMap.Get backed by the index.
func (x *Index) Get(key int64) int64 {
	v, _, _ := x.Lookup(key)

	return v
}

// GetWithInterval is OffsetMap.GetWithInterval backed by the index.
func (x *Index) GetWithInterval(key int64) (int64, int) {
	v, i, _ := x.Lookup(key)

	return v, i
}

// Segments returns the number of segments, always at least one.
func (x *Index) Segments() int { return len(x.winners) }

// Bounds returns a copy of the segment boundaries in ascending order.
func (x *Index) Bounds() []int64 {
	return append([]int64(nil), x.bounds...)
}
