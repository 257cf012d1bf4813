package equivalence

import (
	"slices"

	"github.com/erraggy/normjson/value"
)

// Bag is a set of values keyed by a Relation: at most one member of each
// equivalence class is held at a time.
//
// Members are grouped by hash and collisions are resolved with the
// relation's Equal, so a hash collision never makes two different values
// look equivalent.
//
// The order in which Values returns members is not part of the contract.
type Bag struct {
	rel     Relation
	buckets map[uint64][]bagEntry
	size    int
	nextSeq int
}

type bagEntry struct {
	val *value.Value
	seq int
}

// NewBag creates an empty Bag keyed by rel.
func NewBag(rel Relation) *Bag {
	return &Bag{
		rel:     rel,
		buckets: make(map[uint64][]bagEntry),
	}
}

// Relation returns the relation the bag is keyed by.
func (b *Bag) Relation() Relation {
	return b.rel
}

// Len returns the number of members.
func (b *Bag) Len() int {
	return b.size
}

// find returns the hash of v and the index of its equivalent member within
// that hash bucket, or -1.
func (b *Bag) find(v *value.Value) (uint64, int) {
	h := b.rel.Hash(v)
	for i, e := range b.buckets[h] {
		if b.rel.Equal(e.val, v) {
			return h, i
		}
	}
	return h, -1
}

// Contains reports whether a member equivalent to v is present.
func (b *Bag) Contains(v *value.Value) bool {
	_, i := b.find(v)
	return i >= 0
}

// Get returns the member equivalent to v, if any.
func (b *Bag) Get(v *value.Value) (*value.Value, bool) {
	h, i := b.find(v)
	if i < 0 {
		return nil, false
	}
	return b.buckets[h][i].val, true
}

// Insert adds v unless an equivalent member is already present.
// It reports whether v was added.
func (b *Bag) Insert(v *value.Value) bool {
	h, i := b.find(v)
	if i >= 0 {
		return false
	}
	b.buckets[h] = append(b.buckets[h], bagEntry{val: v, seq: b.nextSeq})
	b.nextSeq++
	b.size++
	return true
}

// Take removes and returns the member equivalent to v, if any.
func (b *Bag) Take(v *value.Value) (*value.Value, bool) {
	h, i := b.find(v)
	if i < 0 {
		return nil, false
	}
	bucket := b.buckets[h]
	taken := bucket[i].val
	if len(bucket) == 1 {
		delete(b.buckets, h)
	} else {
		b.buckets[h] = slices.Delete(bucket, i, i+1)
	}
	b.size--
	return taken, true
}

// Values returns the current members.
func (b *Bag) Values() []*value.Value {
	entries := make([]bagEntry, 0, b.size)
	for _, bucket := range b.buckets {
		entries = append(entries, bucket...)
	}
	// Map iteration is random; sorting by insertion keeps output stable
	// between runs even though callers must not rely on the order.
	slices.SortFunc(entries, func(x, y bagEntry) int { return x.seq - y.seq })

	out := make([]*value.Value, len(entries))
	for i, e := range entries {
		out[i] = e.val
	}
	return out
}
