package equivalence

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"sync"

	"github.com/erraggy/normjson/value"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Variant tags written before each node's content so that, for example, the
// string "1" and the number 1 never feed identical bytes.
const (
	tagNull   byte = 'n'
	tagFalse  byte = 'f'
	tagTrue   byte = 't'
	tagNumber byte = 'd'
	tagString byte = 's'
	tagArray  byte = 'a'
	tagObject byte = 'o'
)

// nodeHasher wraps an FNV-1a state with the primitive writers shared by the
// three relations.
type nodeHasher struct {
	h   hash.Hash64
	buf [8]byte
}

func newNodeHasher() *nodeHasher {
	return &nodeHasher{h: fnv.New64a()}
}

func (n *nodeHasher) sum() uint64 {
	return n.h.Sum64()
}

func (n *nodeHasher) writeTag(tag byte) {
	n.buf[0] = tag
	_, _ = n.h.Write(n.buf[:1])
}

func (n *nodeHasher) writeUint64(u uint64) {
	binary.LittleEndian.PutUint64(n.buf[:], u)
	_, _ = n.h.Write(n.buf[:])
}

// writeString writes a length prefix followed by the bytes of s, so that
// adjacent strings cannot run together.
func (n *nodeHasher) writeString(s string) {
	n.writeUint64(uint64(len(s)))
	_, _ = n.h.Write([]byte(s))
}

// writeScalar hashes null, bool and number nodes, which every relation
// treats the same way. It reports whether v was one of them.
func (n *nodeHasher) writeScalar(v *value.Value) bool {
	switch v.Kind() {
	case value.KindNull:
		n.writeTag(tagNull)
	case value.KindBool:
		if v.Bool() {
			n.writeTag(tagTrue)
		} else {
			n.writeTag(tagFalse)
		}
	case value.KindNumber:
		n.writeTag(tagNumber)
		c := v.Number().Canonical()
		if c.Integral {
			if c.Negative {
				n.writeTag('-')
			} else {
				n.writeTag('+')
			}
			n.writeUint64(c.Magnitude)
		} else {
			n.writeTag('.')
			n.writeUint64(c.Bits)
		}
	default:
		return false
	}
	return true
}

func exactHash(v *value.Value) uint64 {
	n := newNodeHasher()
	n.writeExact(v)
	return n.sum()
}

func (n *nodeHasher) writeExact(v *value.Value) {
	if n.writeScalar(v) {
		return
	}
	switch v.Kind() {
	case value.KindString:
		n.writeTag(tagString)
		n.writeString(v.Text())
	case value.KindArray:
		n.writeTag(tagArray)
		n.writeUint64(uint64(len(v.Items())))
		for _, item := range v.Items() {
			n.writeExact(item)
		}
	case value.KindObject:
		// Each entry gets its own state and the results are XORed, so the
		// object hash does not depend on key order.
		var combined uint64
		for key, val := range v.Object().All() {
			entry := newNodeHasher()
			entry.writeString(key)
			entry.writeUint64(exactHash(val))
			combined ^= entry.sum()
		}
		n.writeTag(tagObject)
		n.writeUint64(uint64(v.Len()))
		n.writeUint64(combined)
	}
}

func caseFoldedHash(v *value.Value) uint64 {
	n := newNodeHasher()
	n.writeCaseFolded(v)
	return n.sum()
}

func (n *nodeHasher) writeCaseFolded(v *value.Value) {
	if n.writeScalar(v) {
		return
	}
	switch v.Kind() {
	case value.KindString:
		n.writeTag(tagString)
		n.writeString(foldString(v.Text()))
	case value.KindArray:
		n.writeTag(tagArray)
		n.writeUint64(uint64(len(v.Items())))
		for _, item := range v.Items() {
			n.writeCaseFolded(item)
		}
	case value.KindObject:
		// Entries are fed in iteration order: unlike Exact, this hash is
		// order-sensitive.
		n.writeTag(tagObject)
		n.writeUint64(uint64(v.Len()))
		for key, val := range v.Object().All() {
			n.writeString(key)
			n.writeCaseFolded(val)
		}
	}
}

func shapeHash(v *value.Value) uint64 {
	if !v.IsObject() {
		return exactHash(v)
	}
	n := newNodeHasher()
	n.writeTag(tagObject)
	n.writeUint64(uint64(v.Len()))
	for key := range v.Object().All() {
		n.writeString(key)
	}
	return n.sum()
}

// Casers carry state and must not be shared between goroutines.
var lowerCaserPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// foldString lower-cases s using Unicode case mapping.
func foldString(s string) string {
	if isLowerASCII(s) {
		return s
	}
	c := lowerCaserPool.Get().(*cases.Caser)
	defer lowerCaserPool.Put(c)
	return c.String(s)
}

// isLowerASCII reports whether s is already ASCII with no upper-case letters.
func isLowerASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x80 || ('A' <= b && b <= 'Z') {
			return false
		}
	}
	return true
}
