// Package value provides the ordered tree representation of JSON-like
// documents that the normjson passes operate on.
//
// A document is a tree of *Value nodes. Arrays keep their element order and
// objects keep their key insertion order, so a document read from JSON or YAML
// can be written back with its original layout. The normalization passes
// mutate trees in place; callers that need the original should Clone first.
package value

import (
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the JSON null value.
	KindNull Kind = iota
	// KindBool is a JSON boolean.
	KindBool
	// KindNumber is a finite JSON number.
	KindNumber
	// KindString is a JSON string.
	KindString
	// KindArray is an ordered sequence of values.
	KindArray
	// KindObject is an ordered mapping of unique string keys to values.
	KindObject
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single node of a document tree.
//
// The zero value is null. Values are always used through pointers so that
// passes can rewrite a node without touching its parent.
type Value struct {
	kind    Kind
	boolean bool
	number  Number
	text    string
	items   []*Value
	object  *Object
}

// Null returns a new null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a new boolean value.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, boolean: b}
}

// String returns a new string value.
func String(s string) *Value {
	return &Value{kind: KindString, text: s}
}

// NumberValue returns a new number value.
func NumberValue(n Number) *Value {
	return &Value{kind: KindNumber, number: n}
}

// IntValue returns a new number value holding i.
func IntValue(i int64) *Value {
	return NumberValue(Int(i))
}

// FloatValue returns a new number value holding f.
// It panics if f is not finite.
func FloatValue(f float64) *Value {
	return NumberValue(Float(f))
}

// Array returns a new array value holding items.
// The slice is used as-is, not copied.
func Array(items ...*Value) *Value {
	if items == nil {
		items = []*Value{}
	}
	return &Value{kind: KindArray, items: items}
}

// ObjectValue returns a new object value wrapping obj.
// A nil obj yields an empty object.
func ObjectValue(obj *Object) *Value {
	if obj == nil {
		obj = NewObject()
	}
	return &Value{kind: KindObject, object: obj}
}

// Kind returns the variant of v. A nil *Value reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is null.
func (v *Value) IsNull() bool {
	return v.Kind() == KindNull
}

// IsArray reports whether v is an array.
func (v *Value) IsArray() bool {
	return v.Kind() == KindArray
}

// IsObject reports whether v is an object.
func (v *Value) IsObject() bool {
	return v.Kind() == KindObject
}

// Bool returns the boolean held by v, or false for other kinds.
func (v *Value) Bool() bool {
	return v.Kind() == KindBool && v.boolean
}

// Number returns the number held by v, or the zero Number for other kinds.
func (v *Value) Number() Number {
	if v.Kind() != KindNumber {
		return Number{}
	}
	return v.number
}

// Text returns the string held by v, or "" for other kinds.
func (v *Value) Text() string {
	if v.Kind() != KindString {
		return ""
	}
	return v.text
}

// Items returns the elements of an array, or nil for other kinds.
// The returned slice is the array's backing storage.
func (v *Value) Items() []*Value {
	if v.Kind() != KindArray {
		return nil
	}
	return v.items
}

// SetItems replaces the elements of an array. It panics if v is not an array.
func (v *Value) SetItems(items []*Value) {
	if v.Kind() != KindArray {
		panic("value: SetItems on " + v.Kind().String())
	}
	if items == nil {
		items = []*Value{}
	}
	v.items = items
}

// Append adds items to the end of an array. It panics if v is not an array.
func (v *Value) Append(items ...*Value) {
	if v.Kind() != KindArray {
		panic("value: Append on " + v.Kind().String())
	}
	v.items = append(v.items, items...)
}

// Object returns the object held by v, or nil for other kinds.
func (v *Value) Object() *Object {
	if v.Kind() != KindObject {
		return nil
	}
	return v.object
}

// Len returns the number of elements of an array or entries of an object.
// Scalars report 0.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.items)
	case KindObject:
		return v.object.Len()
	default:
		return 0
	}
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindArray:
		items := make([]*Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return &Value{kind: KindArray, items: items}
	case KindObject:
		return &Value{kind: KindObject, object: v.object.Clone()}
	default:
		c := *v
		return &c
	}
}

// String renders v as compact JSON. It is meant for diagnostics and test
// failure messages; use the codec package for real serialization.
func (v *Value) String() string {
	var sb strings.Builder
	writeCompact(&sb, v)
	return sb.String()
}

func writeCompact(sb *strings.Builder, v *Value) {
	switch v.Kind() {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		sb.WriteString(v.number.String())
	case KindString:
		sb.WriteString(strconv.Quote(v.text))
	case KindArray:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCompact(sb, item)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		i := 0
		for key, val := range v.object.All() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(key))
			sb.WriteByte(':')
			writeCompact(sb, val)
			i++
		}
		sb.WriteByte('}')
	}
}
