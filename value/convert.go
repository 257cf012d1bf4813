package value

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// FromAny converts a Go value in the shape produced by encoding/json into a
// tree. Supported inputs are nil, bool, string, json.Number, the built-in
// integer and float types, []any, map[string]any and *Value.
//
// Go maps have no order, so object keys from a map[string]any are added in
// sorted order.
func FromAny(v any) (*Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		n, err := ParseNumber(t.String())
		if err != nil {
			return nil, err
		}
		return NumberValue(n), nil
	case float64:
		return floatFromAny(t)
	case float32:
		return floatFromAny(float64(t))
	case int:
		return IntValue(int64(t)), nil
	case int8:
		return IntValue(int64(t)), nil
	case int16:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint:
		return NumberValue(Uint(uint64(t))), nil
	case uint8:
		return NumberValue(Uint(uint64(t))), nil
	case uint16:
		return NumberValue(Uint(uint64(t))), nil
	case uint32:
		return NumberValue(Uint(uint64(t))), nil
	case uint64:
		return NumberValue(Uint(t)), nil
	case []any:
		items := make([]*Value, len(t))
		for i, item := range t {
			converted, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("value: index %d: %w", i, err)
			}
			items[i] = converted
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			converted, err := FromAny(t[k])
			if err != nil {
				return nil, fmt.Errorf("value: key %q: %w", k, err)
			}
			obj.Set(k, converted)
		}
		return ObjectValue(obj), nil
	default:
		return nil, fmt.Errorf("value: unsupported type %T", v)
	}
}

func floatFromAny(f float64) (*Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("value: non-finite number %v", f)
	}
	return FloatValue(f), nil
}

// ToAny converts a tree into the generic Go representation used by
// encoding/json. Numbers become json.Number so no precision is lost, and
// object key order is discarded.
func ToAny(v *Value) any {
	switch v.Kind() {
	case KindBool:
		return v.boolean
	case KindNumber:
		return json.Number(v.number.String())
	case KindString:
		return v.text
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = ToAny(item)
		}
		return out
	case KindObject:
		out := make(map[string]any, v.object.Len())
		for _, m := range v.object.members {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	default:
		return nil
	}
}
