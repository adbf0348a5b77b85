package gdsii

import (
	"fmt"
	"maps"
)

// Index maps structure names to the stream offset of their first element,
// the byte just after STRNAME. Names keep their stream order.
type Index struct {
	names   []string
	entries map[string]indexEntry
}

type indexEntry struct {
	offset int64 // first byte after STRNAME
	start  int64 // first byte of BGNSTR
}

func newIndex() *Index {
	return &Index{entries: make(map[string]indexEntry)}
}

// insert adds name unless it is already present.
func (ix *Index) insert(name string, e indexEntry) error {
	if _, ok := ix.entries[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	ix.entries[name] = e
	ix.names = append(ix.names, name)
	return nil
}

// Offset returns the offset of the named structure's first element.
func (ix *Index) Offset(name string) (int64, bool) {
	e, ok := ix.entries[name]
	return e.offset, ok
}

func (ix *Index) start(name string) (int64, bool) {
	e, ok := ix.entries[name]
	return e.start, ok
}

// Names returns the structure names in stream order.
func (ix *Index) Names() []string {
	return append([]string(nil), ix.names...)
}

// Len returns the number of structures.
func (ix *Index) Len() int {
	return len(ix.names)
}

// Map returns a copy of the index as a plain map.
func (ix *Index) Map() map[string]int64 {
	m := make(map[string]int64, len(ix.entries))
	for name, e := range ix.entries {
		m[name] = e.offset
	}
	return m
}

// Hierarchy maps each structure to the structures it references directly
// and how many instances of each it places. Array references count as
// columns × rows instances. Structures keep their stream order.
type Hierarchy struct {
	names []string
	refs  map[string]map[string]int
}

func newHierarchy() *Hierarchy {
	return &Hierarchy{refs: make(map[string]map[string]int)}
}

func (h *Hierarchy) insert(name string, counts map[string]int) error {
	if _, ok := h.refs[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if counts == nil {
		counts = make(map[string]int)
	}
	h.refs[name] = counts
	h.names = append(h.names, name)
	return nil
}

func (h *Hierarchy) has(name string) bool {
	_, ok := h.refs[name]
	return ok
}

// Names returns the structure names in stream order.
func (h *Hierarchy) Names() []string {
	return append([]string(nil), h.names...)
}

// Refs returns the direct instance counts of the named structure. The
// result is nil if the structure is unknown.
func (h *Hierarchy) Refs(name string) map[string]int {
	counts, ok := h.refs[name]
	if !ok {
		return nil
	}
	return maps.Clone(counts)
}

// Len returns the number of structures.
func (h *Hierarchy) Len() int {
	return len(h.names)
}

// Map returns a deep copy of the table.
func (h *Hierarchy) Map() map[string]map[string]int {
	m := make(map[string]map[string]int, len(h.refs))
	for name, counts := range h.refs {
		m[name] = maps.Clone(counts)
	}
	return m
}
