// SPDX-License-Identifier: MIT
// File: offset_map.go
// Role: OffsetMap construction and linear lookups.
// Determinism:
//   - Lookups scan intervals from the most recent insertion backwards;
//     the first containing interval wins.
// Concurrency:
//   - Insert is not synchronized. Build the map on one goroutine, then share it
//     read-only; Get/GetWithInterval never mutate.

package interval

// Identity is the interval index reported when no interval contains a key.
const Identity = 0

// OffsetMap is a piecewise-linear integer function built from inserted
// intervals, identity outside all of them. The zero value is an empty,
// ready-to-use identity map.
type OffsetMap struct {
	intervals []Interval
}

// NewOffsetMap returns a map holding ivs in the given order.
// Every interval is validated; the first invalid one aborts construction.
func NewOffsetMap(ivs ...Interval) (*OffsetMap, error) {
	m := &OffsetMap{intervals: make([]Interval, 0, len(ivs))}
	for _, iv := range ivs {
		if err := iv.Validate(); err != nil {
			return nil, err
		}
		m.intervals = append(m.intervals, iv)
	}

	return m, nil
}

// Insert appends iv. No merging and no overlap validation take place.
func (m *OffsetMap) Insert(iv Interval) {
	m.intervals = append(m.intervals, iv)
}

// Get returns the image of key. Total: never fails.
func (m *OffsetMap) Get(key int64) int64 {
	v, _ := m.GetWithInterval(key)

	return v
}

// GetWithInterval returns the image of key together with the 1-based insertion
// position of the interval that produced it, or Identity (0) if none did.
//
// Complexity: O(n) reverse scan.
func (m *OffsetMap) GetWithInterval(key int64) (int64, int) {
	for i := len(m.intervals) - 1; i >= 0; i-- {
		if m.intervals[i].Contains(key) {
			return m.intervals[i].Apply(key), i + 1
		}
	}

	return key, Identity
}

// Len returns the number of inserted intervals.
func (m *OffsetMap) Len() int { return len(m.intervals) }

// Intervals returns a copy of the intervals in insertion order.
func (m *OffsetMap) Intervals() []Interval {
	return append([]Interval(nil), m.intervals...)
}

// At returns the interval at 1-based position idx.
func (m *OffsetMap) At(idx int) (Interval, bool) {
	if idx < 1 || idx > len(m.intervals) {
		return Interval{}, false
	}

	return m.intervals[idx-1], true
}

// Clone returns an independent copy of m.
func (m *OffsetMap) Clone() *OffsetMap {
	return &OffsetMap{intervals: m.Intervals()}
}
