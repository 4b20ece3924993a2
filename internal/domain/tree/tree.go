// Package tree assembles flat parent-pointer slices into nested forests.
// Books and notes share the same shape: an id, an optional parent id and a
// sibling sort order, so the builder is generic over both.
package tree

// Node is any entity that can be placed in a parent/child forest.
type Node interface {
	TreeID() int64
	TreeParentID() *int64
}

// Build assembles items into a forest and returns the root-level items in
// input order. The input must already be sorted by sibling order; ties keep
// their input order.
//
// The builder indexes every item by id in one pass, then assigns each item to
// its parent's children (via attach) in a second pass. It never follows parent
// pointers recursively, so malformed parent chains in storage cannot make it
// loop. An item whose parent id does not resolve within the input set is
// promoted to a root rather than dropped: a dangling reference (parent in
// another book, or removed by a partially-completed cascade) must not hide
// the subtree beneath it.
func Build[T Node](items []T, attach func(parent, child T)) []T {
	index := make(map[int64]T, len(items))
	for _, item := range items {
		index[item.TreeID()] = item
	}

	roots := make([]T, 0, len(items))
	for _, item := range items {
		pid := item.TreeParentID()
		if pid != nil {
			if parent, ok := index[*pid]; ok {
				attach(parent, item)
				continue
			}
		}
		roots = append(roots, item)
	}
	return roots
}
