package solver

import (
	"sync"

	"github.com/lox/cfrsolver/internal/vecf64"
)

// Entry holds the A×H accumulator matrices for one public info set:
// cumCFR is the clipped sum of positive counterfactual regrets, one
// row per action; cumSGM is the linearly-weighted sum of strategy
// mass. Both start at zero when an info set is first visited and are
// only ever touched by updates at that one info set, so a single
// mutex per entry is sufficient — no traversal path acquires two
// entry locks at once.
type Entry struct {
	mu      sync.Mutex
	actions int
	hands   int
	cumCFR  [][]float64
	cumSGM  [][]float64
}

func newEntry(actions, hands int) *Entry {
	e := &Entry{actions: actions, hands: hands}
	e.cumCFR = make([][]float64, actions)
	e.cumSGM = make([][]float64, actions)
	for a := 0; a < actions; a++ {
		e.cumCFR[a] = vecf64.Zeros(hands)
		e.cumSGM[a] = vecf64.Zeros(hands)
	}
	return e
}

// Strategy computes the current regret-matching-plus distribution
// sigma[a][i], per spec: clip regrets to non-negative, normalise each
// hand's column by its action-sum, falling back to uniform wherever
// the column sums to zero.
func (e *Entry) Strategy() [][]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.strategyLocked()
}

func (e *Entry) strategyLocked() [][]float64 {
	clipped := make([][]float64, e.actions)
	denom := vecf64.Zeros(e.hands)
	for a := 0; a < e.actions; a++ {
		clipped[a] = vecf64.Clip(e.cumCFR[a])
		denom = vecf64.Add(denom, clipped[a])
	}
	uniform := 1.0 / float64(e.actions)
	sigma := make([][]float64, e.actions)
	for a := 0; a < e.actions; a++ {
		sigma[a] = vecf64.Div(clipped[a], denom, uniform)
	}
	return sigma
}

// Update accumulates regrets and strategy mass for one CFR+ pass at
// this info set: childCFV holds the per-action counterfactual value
// vectors, cfv is their sigma-weighted sum, pi is the updating
// player's own-reach vector, sigma is the strategy used this visit,
// and iter is the 1-indexed training iteration (for linear averaging).
func (e *Entry) Update(childCFV [][]float64, cfv []float64, pi []float64, sigma [][]float64, iter int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for a := 0; a < e.actions; a++ {
		regret := vecf64.Sub(childCFV[a], cfv)
		sum := vecf64.Add(e.cumCFR[a], regret)
		vecf64.ClipInPlace(sum)
		e.cumCFR[a] = sum

		mass := vecf64.MulScalar(vecf64.Mul(pi, sigma[a]), float64(iter))
		vecf64.AddInPlace(e.cumSGM[a], mass)
	}
}

// AverageStrategy returns the normalised average strategy: each row of
// cumSGM divided by its column's total mass, or 0 for hands that were
// never reached.
func (e *Entry) AverageStrategy() [][]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	denom := vecf64.Zeros(e.hands)
	for a := 0; a < e.actions; a++ {
		denom = vecf64.Add(denom, e.cumSGM[a])
	}
	avg := make([][]float64, e.actions)
	for a := 0; a < e.actions; a++ {
		avg[a] = vecf64.Div(e.cumSGM[a], denom, 0)
	}
	return avg
}

func (e *Entry) snapshot() entrySnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return entrySnapshot{
		Actions: e.actions,
		Hands:   e.hands,
		CumCFR:  cloneMatrix(e.cumCFR),
		CumSGM:  cloneMatrix(e.cumSGM),
	}
}

func entryFromSnapshot(snap entrySnapshot) *Entry {
	return &Entry{
		actions: snap.Actions,
		hands:   snap.Hands,
		cumCFR:  cloneMatrix(snap.CumCFR),
		cumSGM:  cloneMatrix(snap.CumSGM),
	}
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

const tableShardCount = 64
const tableShardMask = tableShardCount - 1

type tableShard struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// Table maps public info sets to their accumulator entries. The map
// itself is sharded by key hash purely to reduce contention on
// concurrent Get calls during parallel traversal; once an Entry
// exists, all further synchronisation happens on its own mutex.
type Table struct {
	shards [tableShardCount]tableShard
}

// NewTable returns an empty accumulator table.
func NewTable() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i].entries = make(map[string]*Entry)
	}
	return t
}

// Get returns the entry for key, creating a zero A×H entry on first
// visit.
func (t *Table) Get(key string, actions, hands int) *Entry {
	shard := t.shardFor(key)

	shard.mu.RLock()
	entry, ok := shard.entries[key]
	shard.mu.RUnlock()
	if ok {
		return entry
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if entry, ok = shard.entries[key]; ok {
		return entry
	}
	entry = newEntry(actions, hands)
	shard.entries[key] = entry
	return entry
}

// restore installs a fully-formed entry at key, overwriting whatever
// was there. Used when rebuilding a table from a checkpoint.
func (t *Table) restore(key string, entry *Entry) {
	shard := t.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.entries[key] = entry
}

// Lookup returns the entry for key without creating one.
func (t *Table) Lookup(key string) (*Entry, bool) {
	shard := t.shardFor(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	entry, ok := shard.entries[key]
	return entry, ok
}

// Entries returns a snapshot of every info set currently tracked.
func (t *Table) Entries() map[string]*Entry {
	out := make(map[string]*Entry)
	for i := range t.shards {
		shard := &t.shards[i]
		shard.mu.RLock()
		for k, v := range shard.entries {
			out[k] = v
		}
		shard.mu.RUnlock()
	}
	return out
}

// Size returns the number of info sets tracked.
func (t *Table) Size() int {
	total := 0
	for i := range t.shards {
		shard := &t.shards[i]
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}

func (t *Table) shardFor(key string) *tableShard {
	return &t.shards[hashKey(key)&tableShardMask]
}

func hashKey(key string) uint32 {
	const offset32 = 2166136261
	const prime32 = 16777619
	var hash uint32 = offset32
	for i := 0; i < len(key); i++ {
		hash ^= uint32(key[i])
		hash *= prime32
	}
	return hash
}
