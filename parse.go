// SPDX-License-Identifier: MIT

package almanac

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/almanac/chain"
	"github.com/katalvlaran/almanac/interval"
	"github.com/katalvlaran/almanac/minimize"
)

// SeedsKey is the key of the seed block.
const SeedsKey = "seeds"

var (
	keyLineRe = regexp.MustCompile(`^([^:]+):\s*(.*)$`)
	headerRe  = regexp.MustCompile(`^(\S+?)-to-(\S+)\s+map$`)
)

// Entry is one "key: values" block.
type Entry struct {
	Key string

	// Values holds the trimmed value lines; a value written on the key line
	// comes first.
	Values []string

	// Line is the 1-based line of the key; ValueLines[i] is the line of Values[i].
	Line       int
	ValueLines []int
}

// ParseKeyValues splits text into key/values blocks.
//
// A line "key: rest" opens a block; a non-empty rest is its first value.
// Every following non-blank line adds one trimmed value, and a blank line
// closes the block. Lines outside any block are ignored.
//
// A key followed directly by a blank line or the end of input still yields
// an Entry, with nil Values. Parse turns such a map block into an identity edge.
func ParseKeyValues(text string) []Entry {
	entries, _ := scanEntries(strings.NewReader(text), false)

	return entries
}

// scanEntries implements ParseKeyValues. In strict mode a line outside any
// block is a ParseError.
func scanEntries(r io.Reader, strict bool) ([]Entry, error) {
	var (
		entries []Entry
		open    bool
		lineNo  int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		// 1) Blank line closes the current block.
		if line == "" {
			open = false
			continue
		}

		// 2) Continuation of an open block.
		if open && !strings.Contains(line, ":") {
			e := &entries[len(entries)-1]
			e.Values = append(e.Values, line)
			e.ValueLines = append(e.ValueLines, lineNo)
			continue
		}

		// 3) New block.
		m := keyLineRe.FindStringSubmatch(line)
		if m == nil {
			if strict {
				return entries, parseErr(lineNo, ErrMalformedHeader, "line %q is outside any block", line)
			}
			continue
		}
		e := Entry{Key: strings.TrimSpace(m[1]), Line: lineNo}
		if v := strings.TrimSpace(m[2]); v != "" {
			e.Values = []string{v}
			e.ValueLines = []int{lineNo}
		}
		entries = append(entries, e)
		open = true
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("almanac: read: %w", err)
	}

	return entries, nil
}

// Almanac is a parsed almanac file.
type Almanac struct {
	// Seeds is the seed line in input order.
	Seeds []int64

	// SeedsLine is the line of the seeds key.
	SeedsLine int

	// Blocks are the map blocks in input order, duplicates included.
	Blocks []chain.Block
}

// Parse reads an almanac from r.
//
// Steps:
//  1. Split the input into key/values blocks.
//  2. Read the single "seeds" block.
//  3. Turn every "<from>-to-<to> map" block into a chain.Block.
//
// Every failure is a *ParseError locating the offending line, except read
// errors, which are returned wrapped.
func Parse(r io.Reader) (*Almanac, error) {
	entries, err := scanEntries(r, true)
	if err != nil {
		return nil, err
	}

	a := &Almanac{}
	seen := false
	for _, e := range entries {
		// 2) Seeds.
		if e.Key == SeedsKey {
			if seen {
				return nil, parseErr(e.Line, ErrMalformedHeader, "second %q block", SeedsKey)
			}
			seen = true
			a.SeedsLine = e.Line
			if a.Seeds, err = parseSeeds(e); err != nil {
				return nil, err
			}
			continue
		}

		// 3) Map blocks.
		b, err := parseBlock(e)
		if err != nil {
			return nil, err
		}
		a.Blocks = append(a.Blocks, b)
	}
	if !seen {
		return nil, parseErr(0, ErrMissingSeeds, "no %q block", SeedsKey)
	}

	return a, nil
}

// ParseFile opens path and parses it.
func ParseFile(path string) (*Almanac, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("almanac: open: %w", err)
	}
	defer f.Close()

	a, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

func parseSeeds(e Entry) ([]int64, error) {
	seeds := []int64{}
	for i, v := range e.Values {
		for _, field := range strings.Fields(v) {
			n, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, parseErr(e.ValueLines[i], ErrMalformedNumber, "seed %q", field)
			}
			seeds = append(seeds, n)
		}
	}

	return seeds, nil
}

func parseBlock(e Entry) (chain.Block, error) {
	m := headerRe.FindStringSubmatch(e.Key)
	if m == nil {
		return chain.Block{}, parseErr(e.Line, ErrMalformedHeader, "%q is not \"<from>-to-<to> map\"", e.Key)
	}

	b := chain.Block{From: m[1], To: m[2]}
	for i, v := range e.Values {
		line := e.ValueLines[i]
		fields := strings.Fields(v)
		if len(fields) != 3 {
			return b, parseErr(line, ErrMalformedNumber, "want \"dst src length\", got %q", v)
		}

		var nums [3]int64
		for j, f := range fields {
			n, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return b, parseErr(line, ErrMalformedNumber, "field %d %q", j+1, f)
			}
			nums[j] = n
		}

		iv, err := interval.FromRange(nums[0], nums[1], nums[2])
		switch {
		case errors.Is(err, interval.ErrOverflow):
			return b, parseErr(line, ErrMalformedNumber, "%s rule %d: %v", b.Name(), i+1, err)
		case err != nil:
			return b, parseErr(line, err, "%s rule %d", b.Name(), i+1)
		}
		b.Intervals = append(b.Intervals, iv)
	}

	return b, nil
}

// SeedRanges pairs the seed line into (start, count) ranges.
func (a *Almanac) SeedRanges() ([]minimize.SeedRange, error) {
	if len(a.Seeds)%2 != 0 {
		return nil, parseErr(a.SeedsLine, ErrOddSeeds, "%d values", len(a.Seeds))
	}

	ranges := make([]minimize.SeedRange, 0, len(a.Seeds)/2)
	for i := 0; i < len(a.Seeds); i += 2 {
		start, count := a.Seeds[i], a.Seeds[i+1]
		if count < 0 || (start > 0 && count > math.MaxInt64-start) {
			return nil, parseErr(a.SeedsLine, ErrMalformedNumber, "range %d (%d, %d)", i/2+1, start, count)
		}
		ranges = append(ranges, minimize.SeedRange{Start: start, Count: count})
	}

	return ranges, nil
}

// SeedValues treats every seed as a range of one.
func (a *Almanac) SeedValues() []minimize.SeedRange {
	return minimize.Singles(a.Seeds)
}

// Registry builds the chain registry of a's blocks.
func (a *Almanac) Registry(opts ...chain.Option) (*chain.Registry, error) {
	return chain.Build(a.Blocks, opts...)
}
