package pool

import (
	"bytes"
	"errors"
	"testing"
)

func TestAllocReturnsDistinctBlocks(t *testing.T) {
	p := New(64)

	first, err := p.Alloc([]byte("hello"))
	if err != nil {
		t.Fatalf("Alloc(hello) failed: %v", err)
	}
	second, err := p.Alloc([]byte("world"))
	if err != nil {
		t.Fatalf("Alloc(world) failed: %v", err)
	}

	if got := p.String(first); got != "hello" {
		t.Errorf("first block = %q, want %q", got, "hello")
	}
	if got := p.String(second); got != "world" {
		t.Errorf("second block = %q, want %q", got, "world")
	}
	if p.Used() != 10 {
		t.Errorf("Used() = %d, want 10", p.Used())
	}
}

func TestAllocFullLeavesPoolUnchanged(t *testing.T) {
	p := New(8)

	if _, err := p.Alloc([]byte("abcd")); err != nil {
		t.Fatalf("Alloc(abcd) failed: %v", err)
	}
	used := p.Used()

	_, err := p.Alloc([]byte("efgh")) // 4+4 == capacity, still rejected
	if !errors.Is(err, ErrFull) {
		t.Fatalf("Alloc on full pool = %v, want ErrFull", err)
	}
	if p.Used() != used {
		t.Errorf("failed Alloc mutated pool: Used() = %d, want %d", p.Used(), used)
	}
}

func TestExpandKeepsRefsValid(t *testing.T) {
	p := New(16)

	words := []string{"alpha", "beta", "gam"}
	refs := make([]Ref, 0, len(words))
	for _, w := range words {
		ref, err := p.AllocString(w)
		if err != nil {
			t.Fatalf("AllocString(%q) failed: %v", w, err)
		}
		refs = append(refs, ref)
	}

	if err := p.Expand(); err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if p.Capacity() != 32 {
		t.Errorf("Capacity() after Expand = %d, want 32", p.Capacity())
	}

	// every previously stored word must read back byte-identical
	for i, w := range words {
		if got := p.Bytes(refs[i]); !bytes.Equal(got, []byte(w)) {
			t.Errorf("Bytes(refs[%d]) = %q, want %q", i, got, w)
		}
	}

	// the freed headroom must be allocatable
	if _, err := p.AllocString("delta"); err != nil {
		t.Errorf("AllocString after Expand failed: %v", err)
	}
}

func TestSizeBelow(t *testing.T) {
	tests := []struct {
		name  string
		alloc int
		limit int
		want  bool
	}{
		{"empty pool", 0, 80, true},
		{"under limit", 50, 80, true},
		{"at limit", 80, 80, false},
		{"over limit", 90, 80, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New(100)
			if tt.alloc > 0 {
				if _, err := q.Alloc(make([]byte, tt.alloc)); err != nil {
					t.Fatalf("setup Alloc failed: %v", err)
				}
			}
			if got := q.SizeBelow(tt.limit); got != tt.want {
				t.Errorf("SizeBelow(%d) with %d used = %v, want %v", tt.limit, tt.alloc, got, tt.want)
			}
		})
	}
}

func TestRefLen(t *testing.T) {
	p := New(32)
	ref, err := p.AllocString("counting")
	if err != nil {
		t.Fatalf("AllocString failed: %v", err)
	}
	if ref.Len() != len("counting") {
		t.Errorf("Ref.Len() = %d, want %d", ref.Len(), len("counting"))
	}
}
