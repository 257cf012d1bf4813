// Package deduper removes duplicate array elements from a document tree.
//
// Arrays are deduplicated bottom-up: each element's own substructure is
// deduplicated first, then the element list keeps the first occurrence of
// every equivalence class in its original order. Objects are never compared
// against their siblings; only array elements are.
//
// Dedupe uses equivalence.CaseFolded, so "C2" and "c2" collapse to whichever
// appeared first. DedupeWith accepts any equivalence.Relation.
package deduper

import (
	"github.com/erraggy/normjson/equivalence"
	"github.com/erraggy/normjson/value"
)

// Dedupe removes case-insensitive duplicate array elements at any depth and
// returns the number of elements removed.
func Dedupe(v *value.Value) int {
	return DedupeWith(v, equivalence.CaseFolded)
}

// DedupeWith removes array elements equivalent under rel to an earlier
// element of the same array, at any depth, and returns the number removed.
func DedupeWith(v *value.Value, rel equivalence.Relation) int {
	return dedupe(v, rel)
}

func dedupe(v *value.Value, rel equivalence.Relation) int {
	removed := 0
	switch v.Kind() {
	case value.KindObject:
		for _, child := range v.Object().All() {
			removed += dedupe(child, rel)
		}
	case value.KindArray:
		items := v.Items()
		for _, item := range items {
			removed += dedupe(item, rel)
		}
		if len(items) < 2 {
			return removed
		}
		seen := equivalence.NewBag(rel)
		kept := items[:0]
		for _, item := range items {
			if seen.Insert(item) {
				kept = append(kept, item)
			}
		}
		removed += len(items) - len(kept)
		clear(items[len(kept):])
		v.SetItems(kept)
	}
	return removed
}
