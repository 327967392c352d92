// Package equity loads and serves the precomputed heads-up pre-flop
// equity table shared by the push/fold and pre-flop games. Generating
// the table is out of scope for this repository (spec.md §1): the
// table is an opaque sequence of 32-bit unsigned integers on disk, one
// per ordered pair of 2-card hands, and this package only knows how to
// read it and answer lookups against it.
package equity

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
)

// NumHands is the number of unordered 2-card hands out of a 52-card
// deck: C(52,2) = 1326.
const NumHands = 1326

// Showdowns is the number of board run-outs each 2-card-vs-2-card pair
// is evaluated over: 2*C(48,5), the remaining five community cards
// dealt in either order so that ties can be counted as one win apiece.
const Showdowns = 2 * 1712304

// Table is a loaded, immutable equity table. Entry k is the number of
// run-outs (out of Showdowns) in which the first hand of pair k beats
// the second; ties contribute one to both hands' counts.
type Table struct {
	raw []uint32
}

// At returns the normalized equity (win probability, ties counted as a
// half win) for the pair addressed by the flat index k.
func (t *Table) At(k int) float64 {
	return float64(t.raw[k]) / float64(Showdowns)
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.raw)
}

// Load reads an equity table from path. The on-disk format is a
// little-endian uint64 entry count followed by that many little-endian
// uint32 entries — the simplest length-prefixed encoding that satisfies
// spec.md's description of the file as "a sequence of 32-bit unsigned
// integers on disk" without assuming a particular serialization
// framework for a generator that is itself out of scope.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open equity table %q: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a table from an arbitrary reader, for tests and for
// callers that already hold the file open.
func Decode(r io.Reader) (*Table, error) {
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read equity table header: %w", err)
	}
	raw := make([]uint32, count)
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		return nil, fmt.Errorf("read equity table entries: %w", err)
	}
	return &Table{raw: raw}, nil
}

// Encode writes a table in the format Decode understands. Used by tests
// to build small fixture tables; production tables come from the
// (out-of-scope) equity table generator.
func Encode(w io.Writer, raw []uint32) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(raw))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, raw)
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*Table{}
)

// LoadCached loads a table from path, or returns the previously loaded
// table for that path. The process-wide cache reflects spec.md §5's
// requirement that the equity table be "lazily initialized on first
// access from a file, and never mutated" and shared immutably across
// goroutines.
func LoadCached(path string) (*Table, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if t, ok := cache[path]; ok {
		return t, nil
	}
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	cache[path] = t
	return t, nil
}
