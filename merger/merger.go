// Package merger folds array elements that describe the same entity into a
// single record.
//
// MergeSimilar clusters the elements of every array by shape (the key
// sequence of an object) and merges each cluster field by field with
// MergeObjects. Elements that are not objects take part only as set members:
// an element Exact-equal to one already kept is dropped.
//
// The order of elements in a merged array is not defined. Tests and callers
// should compare merged arrays as multisets.
package merger

import (
	"github.com/erraggy/normjson/equivalence"
	"github.com/erraggy/normjson/normerrors"
	"github.com/erraggy/normjson/value"
)

// MergeSimilar merges same-shaped objects inside every array of the tree
// rooted at v, in place, and returns the number of array elements folded
// away. Nested arrays are merged before the arrays that contain them.
func MergeSimilar(v *value.Value) int {
	folded := 0
	switch v.Kind() {
	case value.KindObject:
		for _, child := range v.Object().All() {
			folded += MergeSimilar(child)
		}
	case value.KindArray:
		items := v.Items()
		for _, item := range items {
			folded += MergeSimilar(item)
		}

		reps := equivalence.NewBag(equivalence.Shape)
		for _, item := range items {
			s, ok := reps.Take(item)
			if !ok {
				reps.Insert(item)
				continue
			}
			merged, err := mergeObjects(s, item)
			if err != nil {
				// Not a pair of objects: s stays and an equivalent item is
				// dropped by the insert.
				reps.Insert(s)
				reps.Insert(item)
				continue
			}
			reps.Insert(merged)
		}
		folded += len(items) - reps.Len()
		v.SetItems(reps.Values())
	}
	return folded
}

// MergeObjects merges two objects with the same key sequence field by field.
//
// The result keeps the left operand's schema: it has exactly p's keys, in
// p's order. For each key with values pv and vv:
//
//   - two arrays: pv if they are Exact-equal, else the pair [pv, vv]
//   - an array and a non-array: pv with vv appended, unless pv already
//     contains an Exact-equal element
//   - Exact-equal values: pv
//   - anything else: the pair [pv, vv]
//
// Pairs are not flattened, so repeatedly merging arrays nests them.
//
// MergeObjects returns a *normerrors.MergeError (matching
// normerrors.ErrShapeMismatch) when p and v are not both objects with the
// same key sequence. The result shares no nodes with p or v.
func MergeObjects(p, v *value.Value) (*value.Value, error) {
	merged, err := mergeObjects(p, v)
	if err != nil {
		return nil, err
	}
	return merged.Clone(), nil
}

// mergeObjects builds the merged object reusing nodes of p and v. Callers
// inside the pass own both inputs and discard them afterwards.
func mergeObjects(p, v *value.Value) (*value.Value, error) {
	if !equivalence.SameShape(p, v) {
		return nil, shapeMismatch(p, v)
	}

	vo := v.Object()
	out := value.NewObject()
	for key, pv := range p.Object().All() {
		vv, _ := vo.Get(key)
		out.Set(key, mergeField(pv, vv))
	}
	return value.ObjectValue(out), nil
}

func mergeField(pv, vv *value.Value) *value.Value {
	switch {
	case pv.IsArray() && vv.IsArray():
		if equivalence.Exact.Equal(pv, vv) {
			return pv
		}
		return value.Array(pv, vv)
	case pv.IsArray():
		if equivalence.Contains(equivalence.Exact, pv.Items(), vv) {
			return pv
		}
		items := make([]*value.Value, 0, pv.Len()+1)
		items = append(items, pv.Items()...)
		return value.Array(append(items, vv)...)
	case equivalence.Exact.Equal(pv, vv):
		return pv
	default:
		return value.Array(pv, vv)
	}
}

func shapeMismatch(p, v *value.Value) *normerrors.MergeError {
	err := &normerrors.MergeError{
		LeftKind:  p.Kind().String(),
		RightKind: v.Kind().String(),
	}
	if p.IsObject() && v.IsObject() {
		err.LeftKeys = p.Object().Keys()
		err.RightKeys = v.Object().Keys()
	}
	return err
}
