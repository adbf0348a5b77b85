package gdsii

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrStopWalk can be returned from a WalkFunc or a Structures callback to
// end the traversal early without an error.
var ErrStopWalk = errors.New("stop walk")

// IsStopWalk reports whether err is ErrStopWalk.
func IsStopWalk(err error) bool {
	return errors.Is(err, ErrStopWalk)
}

// Top returns the structures that no other structure references, in
// stream order.
func (h *Hierarchy) Top() []string {
	referenced := make(map[string]bool)
	for _, counts := range h.refs {
		for name := range counts {
			referenced[name] = true
		}
	}
	var top []string
	for _, name := range h.names {
		if !referenced[name] {
			top = append(top, name)
		}
	}
	return top
}

// Visit describes one node of a hierarchy walk.
type Visit struct {
	// Path is the chain of structure names from the top cell to Name.
	Path []string

	// Name is the structure being visited.
	Name string

	// Instances is the number of placements of Name under the top cell,
	// multiplied along the path. It is 1 for the top cell.
	Instances int

	// Undefined is set when Name is referenced but not defined in the
	// library. Undefined structures have no children.
	Undefined bool
}

// Depth returns the nesting depth, 0 for a top cell.
func (v Visit) Depth() int {
	return len(v.Path) - 1
}

// WalkFunc is called for each visited structure. Return nil to continue,
// ErrStopWalk to stop without error, or any other error to abort.
type WalkFunc func(v Visit) error

// Walk traverses the hierarchy depth first from each top cell. Children
// are visited in name order.
//
// Example:
//
//	gdsii.Walk(h, func(v gdsii.Visit) error {
//	    fmt.Printf("%*s%s x%d\n", 2*v.Depth(), "", v.Name, v.Instances)
//	    return nil
//	})
func Walk(h *Hierarchy, fn WalkFunc) error {
	for _, top := range h.Top() {
		err := walkStruct(h, []string{top}, 1, fn)
		if IsStopWalk(err) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WalkFrom traverses the hierarchy below a single structure.
func WalkFrom(h *Hierarchy, top string, fn WalkFunc) error {
	if !h.has(top) {
		return fmt.Errorf("%w: %q", ErrNotFound, top)
	}
	err := walkStruct(h, []string{top}, 1, fn)
	if IsStopWalk(err) {
		return nil
	}
	return err
}

func walkStruct(h *Hierarchy, path []string, instances int, fn WalkFunc) error {
	if len(path) > MaxHierarchyDepth {
		return fmt.Errorf("%w: %d levels below %q", ErrHierarchyDepth, MaxHierarchyDepth, path[0])
	}
	name := path[len(path)-1]
	counts, defined := h.refs[name]

	if err := fn(Visit{
		Path:      slices.Clone(path),
		Name:      name,
		Instances: instances,
		Undefined: !defined,
	}); err != nil {
		return err
	}

	children := make([]string, 0, len(counts))
	for child := range counts {
		children = append(children, child)
	}
	slices.Sort(children)

	for _, child := range children {
		if slices.Contains(path, child) {
			return fmt.Errorf("%w: %q references itself through %v", ErrCycle, child, path)
		}
		if err := walkStruct(h, append(path, child), instances*counts[child], fn); err != nil {
			return err
		}
	}
	return nil
}

// Flatten returns the total number of instances of every structure placed,
// directly or indirectly, under top. The top structure itself is not
// included.
func Flatten(h *Hierarchy, top string) (map[string]int, error) {
	if !h.has(top) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, top)
	}
	f := flattener{h: h, memo: make(map[string]map[string]int), active: make(map[string]bool)}
	totals, err := f.flatten(top, 0)
	if err != nil {
		return nil, err
	}
	return maps.Clone(totals), nil
}

type flattener struct {
	h      *Hierarchy
	memo   map[string]map[string]int
	active map[string]bool
}

func (f *flattener) flatten(name string, depth int) (map[string]int, error) {
	if totals, ok := f.memo[name]; ok {
		return totals, nil
	}
	if depth > MaxHierarchyDepth {
		return nil, fmt.Errorf("%w: at %q", ErrHierarchyDepth, name)
	}
	if f.active[name] {
		return nil, fmt.Errorf("%w: through %q", ErrCycle, name)
	}
	f.active[name] = true
	defer delete(f.active, name)

	totals := make(map[string]int)
	for child, n := range f.h.refs[name] {
		totals[child] += n
		sub, err := f.flatten(child, depth+1)
		if err != nil {
			return nil, err
		}
		for desc, m := range sub {
			totals[desc] += n * m
		}
	}
	f.memo[name] = totals
	return totals, nil
}
