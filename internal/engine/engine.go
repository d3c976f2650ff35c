// Package engine implements the word-counting hash table: open addressing
// with bidirectional linear probing, word storage in a bump-allocated
// string pool, an alphabetically ordered index maintained online, and
// incrementally tracked longest-word / most-frequent-word slots.
//
// The table never grows itself. Callers watch occupancy with SizeBelow and
// call Expand once it reaches the growth threshold; on ErrPoolFull they
// call GrowPool and retry the same AddWord, which failed without side
// effects.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/tally-cli/tally/internal/pool"
)

// ErrPoolFull is returned by AddWord when the string pool has no room for
// the new word. The insert had no effect; grow the pool and retry.
var ErrPoolFull = errors.New("engine: string pool full")

// ErrTableExhausted means probing ran off both ends of the table without
// finding the word or an empty slot. With expansion triggered at 70%
// occupancy this state is unreachable; seeing it is an invariant violation,
// not an operational error.
var ErrTableExhausted = errors.New("engine: probe space exhausted")

// poolBytesPerSlot sizes the string pool created with a new table. Average
// word length is assumed slightly above 8 and only ~70% of the slots are
// expected to fill before a resize, so 6 bytes per slot covers it.
const poolBytesPerSlot = 6

// fnv-1a, 64 bit
const (
	fnvOffset = 0xcbf29ce484222325
	fnvPrime  = 0x100000001b3
)

func fnvHash(word string) uint64 {
	hash := uint64(fnvOffset)
	for i := 0; i < len(word); i++ {
		hash ^= uint64(word[i])
		hash *= fnvPrime
	}
	return hash
}

// entry is one slot of the table. A zero count marks an empty slot; live
// entries always have count >= 1.
type entry struct {
	ref          pool.Ref
	count        uint64
	displacement int
}

// WordCount is one row of the final report.
type WordCount struct {
	Word  string
	Count uint64
}

// Table counts word occurrences. It exclusively owns its string pool and
// its alphabetical index; it is not safe for concurrent use.
type Table struct {
	entries  []entry
	alphaIdx []int // slot indices sorted by word, one per live entry
	size     int
	pool     *pool.Pool
	stats    HashStats

	maxLenSlot   int
	maxCountSlot int
}

// New creates a table with the given initial capacity, which must be a
// power of two, and a string pool sized proportionally to it.
func New(capacity int) (*Table, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("engine: capacity %d is not a power of two", capacity)
	}

	return &Table{
		entries:  make([]entry, capacity),
		alphaIdx: make([]int, 0, capacity),
		pool:     pool.New(poolBytesPerSlot * capacity),
	}, nil
}

// InitialCapacity derives a starting capacity from the token count: the
// nearest power of two, biased downward when the count sits in the lower
// part of the gap between two powers.
func InitialCapacity(tokens int) int {
	ceil := nextPowerOfTwo(tokens)
	floor := ceil / 2
	if floor > 0 && tokens-floor < floor/2 {
		return floor
	}
	return ceil
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// AddWord inserts word or increments its count. On ErrPoolFull the table
// is unchanged and the same call can be retried after GrowPool. An
// ErrTableExhausted return indicates a broken growth invariant.
func (t *Table) AddWord(word string) error {
	ideal := int(fnvHash(word) % uint64(len(t.entries)))

	// from the ideal slot, walk outward in both directions: first
	// ideal+d, then ideal-d, until a match or an empty slot turns up
	d := 0
	for {
		slot := ideal + d
		if slot < len(t.entries) {
			done, err := t.probeSlot(slot, d, word)
			if done || err != nil {
				return err
			}
		}

		if d > 0 && ideal >= d {
			done, err := t.probeSlot(ideal-d, -d, word)
			if done || err != nil {
				return err
			}
		}

		d++
		if ideal+d >= len(t.entries) && ideal < d {
			return fmt.Errorf("%w: word %q, capacity %d, size %d",
				ErrTableExhausted, word, len(t.entries), t.size)
		}
	}
}

// probeSlot examines one slot for word. It reports done=true when the word
// was inserted or counted there; done=false means the slot holds a
// different word and probing must continue.
func (t *Table) probeSlot(slot, displacement int, word string) (bool, error) {
	e := &t.entries[slot]
	if e.count == 0 {
		if err := t.insert(slot, displacement, word); err != nil {
			return false, err
		}
		return true, nil
	}

	// cheap pre-checks first; the byte comparison is authoritative
	if e.ref.Len() == len(word) && e.displacement == displacement &&
		t.pool.String(e.ref) == word {
		e.count++
		if e.count > t.entries[t.maxCountSlot].count {
			t.maxCountSlot = slot
		}
		return true, nil
	}

	return false, nil
}

// insert places word into an empty slot, recording its signed displacement
// and keeping the alphabetical index and the extreme trackers current.
func (t *Table) insert(slot, displacement int, word string) error {
	ref, err := t.pool.AllocString(word)
	if err != nil {
		if errors.Is(err, pool.ErrFull) {
			return ErrPoolFull
		}
		return fmt.Errorf("engine: storing word %q: %w", word, err)
	}

	t.entries[slot] = entry{ref: ref, count: 1, displacement: displacement}
	t.orderInsert(word, slot)
	t.stats.record(displacement)

	if t.size == 0 {
		// first word is trivially both the longest and the most frequent
		t.maxLenSlot = slot
		t.maxCountSlot = slot
	} else if len(word) > t.entries[t.maxLenSlot].ref.Len() {
		// a new word with count 1 can never displace the frequency leader
		t.maxLenSlot = slot
	}

	t.size++
	return nil
}

// orderInsert places slot into the alphabetical index, shifting greater
// words right, insertion-sort style, starting from the end.
func (t *Table) orderInsert(word string, slot int) {
	t.alphaIdx = append(t.alphaIdx, 0)
	i := t.size - 1
	for ; i >= 0 && word <= t.wordAt(t.alphaIdx[i]); i-- {
		t.alphaIdx[i+1] = t.alphaIdx[i]
	}
	t.alphaIdx[i+1] = slot
}

func (t *Table) wordAt(slot int) string {
	return t.pool.String(t.entries[slot].ref)
}

// SizeBelow reports whether occupancy is under the given percentage of
// capacity. The counting loop uses it to trigger Expand before collisions
// degrade, which is also what keeps AddWord's probe from ever running out
// of slots.
func (t *Table) SizeBelow(limitPct int) bool {
	return t.size < len(t.entries)*limitPct/100
}

// GrowPool doubles the string pool. Stored words keep their identity
// because entries hold pool references, not raw addresses.
func (t *Table) GrowPool() error {
	if err := t.pool.Expand(); err != nil {
		return fmt.Errorf("engine: expanding string pool: %w", err)
	}
	return nil
}

// Expand doubles the table and re-probes every live entry into the new
// slot array. The pool is doubled first when close to full. Relative
// alphabetical order is unchanged; only slot numbers move, so the index is
// rewritten in place. Insertion and collision counters accumulate across
// the rehash.
func (t *Table) Expand() error {
	grown := make([]entry, len(t.entries)*2)

	if !t.pool.SizeBelow(80) {
		if err := t.GrowPool(); err != nil {
			return err
		}
	}

	oldCapacity := len(t.entries)
	t.entries, grown = grown, t.entries
	if err := t.migrate(grown); err != nil {
		return err
	}

	slog.Debug("Hash table expanded",
		"capacity", len(t.entries), "previousCapacity", oldCapacity, "size", t.size)
	return nil
}

// migrate re-probes each live entry of the old slot array into t.entries.
// Only slots named by the alphabetical index are live, and each word was
// unique in the old table, so the probe looks for empty slots only. A
// doubled table always has room for every live entry; running off both
// ends is the same invariant violation AddWord guards against.
func (t *Table) migrate(old []entry) error {
	for i, oldSlot := range t.alphaIdx {
		e := old[oldSlot]
		word := t.pool.String(e.ref)
		ideal := int(fnvHash(word) % uint64(len(t.entries)))

		d := 0
		for {
			if slot := ideal + d; slot < len(t.entries) && t.entries[slot].count == 0 {
				t.place(i, oldSlot, slot, d, e)
				break
			}
			if d > 0 && ideal >= d {
				if slot := ideal - d; t.entries[slot].count == 0 {
					t.place(i, oldSlot, slot, -d, e)
					break
				}
			}

			d++
			if ideal+d >= len(t.entries) && ideal < d {
				return fmt.Errorf("%w: migrating word %q into capacity %d",
					ErrTableExhausted, word, len(t.entries))
			}
		}
	}
	return nil
}

// place stores a migrated entry at its new slot and fixes up every index
// that referred to the old slot number.
func (t *Table) place(orderIdx, oldSlot, slot, displacement int, e entry) {
	e.displacement = displacement
	t.entries[slot] = e
	t.alphaIdx[orderIdx] = slot

	if oldSlot == t.maxCountSlot {
		t.maxCountSlot = slot
	}
	if oldSlot == t.maxLenSlot {
		t.maxLenSlot = slot
	}

	t.stats.record(displacement)
}

// Report returns every distinct word with its count, alphabetically
// ordered. This is an O(size) traversal of the maintained index; no sort
// happens here.
func (t *Table) Report() []WordCount {
	out := make([]WordCount, len(t.alphaIdx))
	for i, slot := range t.alphaIdx {
		out[i] = WordCount{
			Word:  t.wordAt(slot),
			Count: t.entries[slot].count,
		}
	}
	return out
}

// Len returns the number of distinct words in the table.
func (t *Table) Len() int {
	return t.size
}

// Capacity returns the current number of slots.
func (t *Table) Capacity() int {
	return len(t.entries)
}

// LongestWordLen returns the length of the longest stored word, tracked
// incrementally so report column sizing is O(1).
func (t *Table) LongestWordLen() int {
	if t.size == 0 {
		return 0
	}
	return t.entries[t.maxLenSlot].ref.Len()
}

// MostFrequent returns the word with the highest count and that count.
func (t *Table) MostFrequent() (string, uint64) {
	if t.size == 0 {
		return "", 0
	}
	return t.wordAt(t.maxCountSlot), t.entries[t.maxCountSlot].count
}
