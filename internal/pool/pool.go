// Package pool provides a bump allocator over a single growable byte
// buffer. Blocks are handed out sequentially and never freed individually;
// the only way to reclaim space is to drop the whole pool.
//
// Callers hold Refs — (offset, length) pairs — rather than slices into the
// buffer, so a Ref stays valid across Expand even though the backing array
// moves. Resolve a Ref with Bytes or String only when the text is needed.
package pool

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// ErrFull is returned by Alloc when the pool has no room for the requested
// block. The caller may Expand and retry; Alloc leaves the pool unchanged
// on failure.
var ErrFull = errors.New("pool: out of space")

// Ref identifies a block previously returned by Alloc.
type Ref struct {
	off uint32
	n   uint32
}

// Len returns the length of the referenced block.
func (r Ref) Len() int {
	return int(r.n)
}

// Pool is a bump allocator of characters. It is not safe for concurrent use.
type Pool struct {
	buf  []byte
	next int
}

// New creates a pool with the given initial capacity in bytes.
func New(capacity int) *Pool {
	return &Pool{buf: make([]byte, capacity)}
}

// Alloc copies b into the pool and returns a Ref to the stored copy.
// It fails with ErrFull, without mutating the pool, when the block does
// not fit in the remaining space.
func (p *Pool) Alloc(b []byte) (Ref, error) {
	if p.next+len(b) >= len(p.buf) {
		return Ref{}, ErrFull
	}
	off := p.next
	copy(p.buf[off:], b)
	p.next += len(b)

	return Ref{off: uint32(off), n: uint32(len(b))}, nil
}

// AllocString stores s in the pool. See Alloc.
func (p *Pool) AllocString(s string) (Ref, error) {
	if p.next+len(s) >= len(p.buf) {
		return Ref{}, ErrFull
	}
	off := p.next
	copy(p.buf[off:], s)
	p.next += len(s)

	return Ref{off: uint32(off), n: uint32(len(s))}, nil
}

// Bytes resolves ref against the current backing buffer. The returned slice
// aliases the pool and must not be retained across Expand.
func (p *Pool) Bytes(ref Ref) []byte {
	return p.buf[ref.off : ref.off+ref.n]
}

// String resolves ref to a copy of the stored text.
func (p *Pool) String(ref Ref) string {
	return string(p.Bytes(ref))
}

// SizeBelow reports whether pool usage is under the given percentage of
// capacity. Used as a pre-emptive growth trigger before usage can reach
// the point where allocations start failing.
func (p *Pool) SizeBelow(limitPct int) bool {
	return p.next < len(p.buf)*limitPct/100
}

// Expand doubles the capacity of the pool, moving the stored bytes to a
// fresh buffer. Every outstanding Ref remains valid; slices previously
// obtained from Bytes become stale.
func (p *Pool) Expand() error {
	if len(p.buf) > math.MaxInt/2 {
		return fmt.Errorf("pool: cannot expand beyond %d bytes", len(p.buf))
	}
	grown := make([]byte, len(p.buf)*2)
	copy(grown, p.buf[:p.next])
	p.buf = grown

	slog.Debug("Memory pool expanded", "capacity", len(p.buf), "used", p.next)
	return nil
}

// Used returns the number of allocated bytes.
func (p *Pool) Used() int {
	return p.next
}

// Capacity returns the total size of the backing buffer.
func (p *Pool) Capacity() int {
	return len(p.buf)
}
