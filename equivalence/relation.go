// Package equivalence defines the three equivalence relations used by the
// normalization passes, and a keyed bag that groups values by one of them.
//
// Each relation pairs an equality test with a compatible hash: values that
// are Equal always have the same Hash. The relations are deliberately not
// interchangeable:
//
//   - Exact is structural equality. Object entries compare by key regardless
//     of order, and the object hash is order-independent.
//   - CaseFolded compares strings after lower-casing. Objects compare entry
//     by entry in iteration order, and the object hash is order-sensitive.
//   - Shape compares objects by their key sequence only, ignoring values.
//     Non-object values fall back to Exact.
//
// Because CaseFolded and Shape are order-sensitive for objects, two objects
// holding the same entries in different insertion orders are not equivalent
// under them. Documents meant to be deduplicated or merged should come from
// sources that emit keys in a consistent order.
package equivalence

import (
	"slices"

	"github.com/erraggy/normjson/value"
)

// Relation is an equality test paired with a compatible hash.
type Relation interface {
	// Name returns a short identifier for logs ("exact", "casefolded", "shape").
	Name() string
	// Equal reports whether a and b are equivalent under the relation.
	Equal(a, b *value.Value) bool
	// Hash returns a hash that is equal for all equivalent values.
	Hash(v *value.Value) uint64
}

// ExactRelation is structural equality. Strings compare byte for byte,
// numbers by numeric value, arrays element-wise and objects by their full
// key/value content regardless of key order.
type ExactRelation struct{}

// CaseFoldedRelation is like ExactRelation except that strings compare after
// Unicode lower-casing and object entries compare positionally.
type CaseFoldedRelation struct{}

// ShapeRelation treats two objects as equivalent when they expose the same
// keys in the same order. All other values are equivalent only when Exact.
type ShapeRelation struct{}

// The relations are stateless; these values are safe for concurrent use.
var (
	Exact      Relation = ExactRelation{}
	CaseFolded Relation = CaseFoldedRelation{}
	Shape      Relation = ShapeRelation{}
)

// Ensure the relations implement Relation at compile time.
var (
	_ Relation = ExactRelation{}
	_ Relation = CaseFoldedRelation{}
	_ Relation = ShapeRelation{}
)

// Name implements Relation.
func (ExactRelation) Name() string { return "exact" }

// Equal implements Relation.
func (ExactRelation) Equal(a, b *value.Value) bool { return exactEqual(a, b) }

// Hash implements Relation.
func (ExactRelation) Hash(v *value.Value) uint64 { return exactHash(v) }

// Name implements Relation.
func (CaseFoldedRelation) Name() string { return "casefolded" }

// Equal implements Relation.
func (CaseFoldedRelation) Equal(a, b *value.Value) bool { return caseFoldedEqual(a, b) }

// Hash implements Relation.
func (CaseFoldedRelation) Hash(v *value.Value) uint64 { return caseFoldedHash(v) }

// Name implements Relation.
func (ShapeRelation) Name() string { return "shape" }

// Equal implements Relation.
func (ShapeRelation) Equal(a, b *value.Value) bool { return shapeEqual(a, b) }

// Hash implements Relation.
func (ShapeRelation) Hash(v *value.Value) uint64 { return shapeHash(v) }

// SameShape reports whether a and b are both objects with the same key
// sequence.
func SameShape(a, b *value.Value) bool {
	if !a.IsObject() || !b.IsObject() {
		return false
	}
	return slices.Equal(a.Object().Keys(), b.Object().Keys())
}

// Contains reports whether any element of items is equivalent to v under rel.
func Contains(rel Relation, items []*value.Value, v *value.Value) bool {
	return slices.ContainsFunc(items, func(item *value.Value) bool {
		return rel.Equal(item, v)
	})
}

func exactEqual(a, b *value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case value.KindNull:
		return true
	case value.KindBool:
		return a.Bool() == b.Bool()
	case value.KindNumber:
		return a.Number().Equal(b.Number())
	case value.KindString:
		return a.Text() == b.Text()
	case value.KindArray:
		return slices.EqualFunc(a.Items(), b.Items(), exactEqual)
	case value.KindObject:
		ao, bo := a.Object(), b.Object()
		if ao.Len() != bo.Len() {
			return false
		}
		for key, av := range ao.All() {
			bv, ok := bo.Get(key)
			if !ok || !exactEqual(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

func caseFoldedEqual(a, b *value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case value.KindString:
		if a.Text() == b.Text() {
			return true
		}
		return foldString(a.Text()) == foldString(b.Text())
	case value.KindArray:
		return slices.EqualFunc(a.Items(), b.Items(), caseFoldedEqual)
	case value.KindObject:
		return slices.EqualFunc(a.Object().Members(), b.Object().Members(), func(am, bm value.Member) bool {
			return am.Key == bm.Key && caseFoldedEqual(am.Value, bm.Value)
		})
	default:
		return exactEqual(a, b)
	}
}

func shapeEqual(a, b *value.Value) bool {
	if a.IsObject() || b.IsObject() {
		return SameShape(a, b)
	}
	return exactEqual(a, b)
}
