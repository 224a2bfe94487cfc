// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

// handle addresses an entry of a table. The generation changes every time
// a slot is reused, so a handle to a released entry never matches again.
// The zero handle is never valid.
type handle struct {
	index uint32
	gen   uint32
}

type slot[E any] struct {
	gen   uint32
	used  bool
	entry E
}

// table is an arena of shadow entries with generation-checked handles.
type table[E any] struct {
	slots []slot[E]
	free  []uint32
	live  int
}

// insert stores e and returns its handle.
func (t *table[E]) insert(e E) handle {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot[E]{})
	}
	s := &t.slots[idx]
	s.gen++
	s.used = true
	s.entry = e
	t.live++
	return handle{index: idx, gen: s.gen}
}

// get returns the entry of h, or false if h was released or never issued.
func (t *table[E]) get(h handle) (*E, bool) {
	if int(h.index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[h.index]
	if !s.used || s.gen != h.gen {
		return nil, false
	}
	return &s.entry, true
}

// has reports whether h addresses a live entry.
func (t *table[E]) has(h handle) bool {
	_, ok := t.get(h)
	return ok
}

// remove drops the entry of h. It reports false if h is not live.
func (t *table[E]) remove(h handle) bool {
	if _, ok := t.get(h); !ok {
		return false
	}
	s := &t.slots[h.index]
	var zero E
	s.entry = zero
	s.used = false
	t.free = append(t.free, h.index)
	t.live--
	return true
}

// find returns the first live entry for which match returns true.
func (t *table[E]) find(match func(*E) bool) (*E, bool) {
	for i := range t.slots {
		if s := &t.slots[i]; s.used && match(&s.entry) {
			return &s.entry, true
		}
	}
	return nil, false
}

// len returns the number of live entries.
func (t *table[E]) len() int { return t.live }
