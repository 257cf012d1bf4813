package value

import (
	"iter"
	"slices"
)

// Member is a single key/value entry of an Object.
type Member struct {
	Key   string
	Value *Value
}

// Object is an ordered mapping of unique string keys to values.
// Iteration follows insertion order. The zero value is an empty object.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// ObjectOf returns an object holding members in order. A repeated key
// overwrites the earlier value but keeps the earlier position.
func ObjectOf(members ...Member) *Object {
	o := &Object{
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores val under key. An existing key keeps its position.
func (o *Object) Set(key string, val *Value) {
	if val == nil {
		val = Null()
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = val
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: val})
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.members = slices.Delete(o.members, i, i+1)
	delete(o.index, key)
	o.reindex(i)
	return true
}

// Retain keeps only the entries for which keep returns true, preserving
// order. keep may modify the value it is given.
func (o *Object) Retain(keep func(key string, val *Value) bool) {
	if o == nil {
		return
	}
	kept := o.members[:0]
	for _, m := range o.members {
		if keep(m.Key, m.Value) {
			kept = append(kept, m)
		} else {
			delete(o.index, m.Key)
		}
	}
	clear(o.members[len(kept):])
	o.members = kept
	o.reindex(0)
}

// reindex rebuilds index positions from member position start onward.
func (o *Object) reindex(start int) {
	for i := start; i < len(o.members); i++ {
		o.index[o.members[i].Key] = i
	}
}

// Keys returns the keys in iteration order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the entries in iteration order.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return slices.Clone(o.members)
}

// All iterates over the entries in insertion order.
func (o *Object) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if o == nil {
			return
		}
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	if o == nil {
		return NewObject()
	}
	c := &Object{
		members: make([]Member, len(o.members)),
		index:   make(map[string]int, len(o.members)),
	}
	for i, m := range o.members {
		c.members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		c.index[m.Key] = i
	}
	return c
}
