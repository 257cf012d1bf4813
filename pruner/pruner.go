// Package pruner strips null values, and optionally empty arrays and
// objects, from a document tree.
//
// Pruning is bottom-up: a container is judged empty only after its children
// have been pruned, so a single pass reaches a fixed point and running it
// again changes nothing.
//
// Null array elements are kept by PruneNulls, so arrays keep their length.
// PruneNullsAndEmpty drops every removable array element as well as
// removable object entries.
package pruner

import "github.com/erraggy/normjson/value"

// Result reports what a pruning pass did.
type Result struct {
	// Removed is the number of object entries and array elements dropped.
	Removed int
	// RootRemovable reports whether the root itself is null, or empty after
	// pruning when empty containers are being removed. The root is never
	// removed by the pass; its owner decides.
	RootRemovable bool
}

// Prune prunes the tree rooted at v in place and reports whether v should be
// removed from its parent. Null is always removable; with removeEmpty an
// array or object left with no elements is removable too.
func Prune(v *value.Value, removeEmpty bool) bool {
	return Run(v, removeEmpty).RootRemovable
}

// Run is Prune with a count of removed nodes.
func Run(v *value.Value, removeEmpty bool) Result {
	p := &pruner{removeEmpty: removeEmpty}
	removable := p.prune(v)
	return Result{Removed: p.removed, RootRemovable: removable}
}

// PruneNulls removes object entries whose value is null, at any depth.
// Empty arrays and objects are kept, as are null array elements.
func PruneNulls(v *value.Value) Result {
	return Run(v, false)
}

// PruneNullsAndEmpty removes null values and empty arrays and objects at any
// depth, dropping array elements as well as object entries. Containers that
// become empty because their children were removed are removed in turn.
func PruneNullsAndEmpty(v *value.Value) Result {
	return Run(v, true)
}

type pruner struct {
	removeEmpty bool
	removed     int
}

func (p *pruner) prune(v *value.Value) bool {
	switch v.Kind() {
	case value.KindNull:
		return true
	case value.KindArray:
		items := v.Items()
		kept := items[:0]
		for _, item := range items {
			if p.prune(item) && p.removeEmpty {
				p.removed++
				continue
			}
			kept = append(kept, item)
		}
		clear(items[len(kept):])
		v.SetItems(kept)
		return p.removeEmpty && len(kept) == 0
	case value.KindObject:
		obj := v.Object()
		obj.Retain(func(_ string, child *value.Value) bool {
			if p.prune(child) {
				p.removed++
				return false
			}
			return true
		})
		return p.removeEmpty && obj.Len() == 0
	default:
		return false
	}
}
