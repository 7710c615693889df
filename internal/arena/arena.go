// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package arena owns the pixel allocations behind a raster surface.
//
// Every allocation belongs to a generation. Allocating generation N retires
// the allocation of generation N-1 but does not reclaim it: a presenter may
// still be copying the last frame out of it. Retired blocks are reclaimed
// once they are at least Grace+1 generations old and no reference to them is
// outstanding. Reclaimed backing memory goes onto a small free list and is
// handed out again by later allocations, so a block must never be read or
// written after it reports Released.
package arena

import (
	"sync"
	"sync/atomic"
)

// DefaultGrace is the number of generations a retired block survives.
const DefaultGrace = 1

// maxFree bounds the number of reclaimed backings kept for reuse.
const maxFree = 2

// Block is one generation's pixel allocation.
type Block struct {
	arena    *Arena
	gen      uint64
	pix      []uint32
	refs     atomic.Int32
	retired  atomic.Bool
	released atomic.Bool
}

// Generation returns the generation this block was allocated in.
func (b *Block) Generation() uint64 { return b.gen }

// Pix returns the block's pixels. The slice is nil once the block is released.
func (b *Block) Pix() []uint32 {
	if b.released.Load() {
		return nil
	}
	return b.pix
}

// Len returns the number of pixels in the block.
func (b *Block) Len() int { return len(b.pix) }

// Released reports whether the block's memory has been reclaimed.
func (b *Block) Released() bool { return b.released.Load() }

// Retain takes a reference that delays reclamation until Release.
// It returns false if the block has already been reclaimed.
func (b *Block) Retain() bool {
	b.arena.mu.Lock()
	defer b.arena.mu.Unlock()
	if b.released.Load() {
		return false
	}
	b.refs.Add(1)
	return true
}

// Release drops a reference taken with Retain. Dropping the last reference
// on a retired block whose grace period has elapsed reclaims it immediately.
func (b *Block) Release() {
	a := b.arena
	a.mu.Lock()
	defer a.mu.Unlock()
	if b.refs.Load() <= 0 {
		return
	}
	if b.refs.Add(-1) == 0 && b.retired.Load() && a.expiredLocked(b) {
		a.reclaimLocked(b)
		a.dropRetiredLocked(b)
	}
}

// Refs returns the number of outstanding references.
func (b *Block) Refs() int { return int(b.refs.Load()) }

// Arena hands out generation-tagged pixel blocks.
//
// Alloc, Reset and the query methods are safe for concurrent use with
// Block.Retain and Block.Release.
type Arena struct {
	mu      sync.Mutex
	gen     uint64
	grace   uint64
	current *Block
	retired []*Block
	free    [][]uint32
}

// New creates an arena with the given grace period in generations.
// A grace below DefaultGrace is raised to DefaultGrace.
func New(grace int) *Arena {
	if grace < DefaultGrace {
		grace = DefaultGrace
	}
	return &Arena{grace: uint64(grace)} //nolint:gosec // grace is positive
}

// Stats describes the outcome of an allocation.
type Stats struct {
	Generation uint64
	Reclaimed  int
	Pending    int
	Reused     bool
}

// Alloc starts a new generation with a block of n pixels. The previous
// current block is retired and any retired block that has outlived its
// grace period without outstanding references is reclaimed.
//
// The returned pixels are not zeroed when recycled memory is reused.
// Alloc panics if n is negative.
func (a *Arena) Alloc(n int) (*Block, Stats) {
	if n < 0 {
		panic("arena: negative allocation size")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.gen++
	if a.current != nil {
		a.current.retired.Store(true)
		a.retired = append(a.retired, a.current)
		a.current = nil
	}

	st := Stats{Generation: a.gen}
	kept := a.retired[:0]
	for _, b := range a.retired {
		if a.expiredLocked(b) && b.refs.Load() == 0 {
			a.reclaimLocked(b)
			st.Reclaimed++
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(a.retired); i++ {
		a.retired[i] = nil
	}
	a.retired = kept
	st.Pending = len(a.retired)

	var pix []uint32
	pix, st.Reused = a.takeFreeLocked(n)
	if pix == nil {
		pix = make([]uint32, n)
	}

	a.current = &Block{arena: a, gen: a.gen, pix: pix}
	return a.current, st
}

// Current returns the block of the latest generation, or nil.
func (a *Arena) Current() *Block {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Generation returns the latest generation number. Zero means nothing has
// ever been allocated.
func (a *Arena) Generation() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen
}

// Pending returns the number of retired blocks awaiting reclamation.
func (a *Arena) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.retired)
}

// Reset reclaims every block, referenced or not, and drops the free list.
// Generation numbers keep increasing across resets. Reset is idempotent and
// returns the number of blocks it released.
func (a *Arena) Reset() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for _, b := range a.retired {
		b.released.Store(true)
		n++
	}
	a.retired = nil
	if a.current != nil {
		a.current.released.Store(true)
		a.current = nil
		n++
	}
	a.free = nil
	return n
}

func (a *Arena) expiredLocked(b *Block) bool {
	return a.gen-b.gen > a.grace
}

func (a *Arena) reclaimLocked(b *Block) {
	if b.released.Swap(true) {
		return
	}
	if cap(b.pix) > 0 && len(a.free) < maxFree {
		a.free = append(a.free, b.pix[:0])
	}
}

func (a *Arena) dropRetiredLocked(b *Block) {
	for i, r := range a.retired {
		if r == b {
			copy(a.retired[i:], a.retired[i+1:])
			a.retired[len(a.retired)-1] = nil
			a.retired = a.retired[:len(a.retired)-1]
			return
		}
	}
}

func (a *Arena) takeFreeLocked(n int) ([]uint32, bool) {
	if n == 0 {
		return []uint32{}, false
	}
	for i, f := range a.free {
		if cap(f) >= n {
			a.free = append(a.free[:i], a.free[i+1:]...)
			return f[:n], true
		}
	}
	return nil, false
}
