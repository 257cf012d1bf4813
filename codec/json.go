package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/erraggy/normjson/normerrors"
	"github.com/erraggy/normjson/value"
)

// jsonDecoder walks the encoding/json token stream so that object keys keep
// their source order, which map-based unmarshaling would lose.
type jsonDecoder struct {
	dec      *json.Decoder
	maxDepth int
}

func decodeJSON(data []byte, maxDepth int) (*value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	d := &jsonDecoder{dec: dec, maxDepth: maxDepth}

	v, err := d.decodeValue(1)
	if err != nil {
		return nil, d.wrap(err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, d.wrap(err)
		}
		return nil, &normerrors.ParseError{
			Format:  string(SourceFormatJSON),
			Offset:  dec.InputOffset(),
			Message: fmt.Sprintf("unexpected data after top-level value: %v", tok),
		}
	}
	return v, nil
}

// wrap converts decoder errors into *normerrors.ParseError, leaving
// resource limit errors untouched.
func (d *jsonDecoder) wrap(err error) error {
	var limitErr *normerrors.ResourceLimitError
	if errors.As(err, &limitErr) {
		return err
	}
	var parseErr *normerrors.ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	pe := &normerrors.ParseError{Format: string(SourceFormatJSON), Cause: err}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Offset = syntaxErr.Offset
	} else {
		pe.Offset = d.dec.InputOffset()
	}
	if errors.Is(err, io.EOF) {
		pe.Cause = io.ErrUnexpectedEOF
	}
	return pe
}

func (d *jsonDecoder) decodeValue(depth int) (*value.Value, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(t), nil
	case string:
		return value.String(t), nil
	case json.Number:
		n, err := value.ParseNumber(t.String())
		if err != nil {
			return nil, &normerrors.ParseError{
				Format: string(SourceFormatJSON),
				Offset: d.dec.InputOffset(),
				Cause:  err,
			}
		}
		return value.NumberValue(n), nil
	case json.Delim:
		if d.maxDepth > 0 && depth > d.maxDepth {
			return nil, &normerrors.ResourceLimitError{
				ResourceType: "nesting_depth",
				Limit:        int64(d.maxDepth),
				Actual:       int64(depth),
				Message:      "document nesting exceeds maximum depth",
			}
		}
		switch t {
		case '[':
			return d.decodeArray(depth)
		case '{':
			return d.decodeObject(depth)
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func (d *jsonDecoder) decodeArray(depth int) (*value.Value, error) {
	items := []*value.Value{}
	for d.dec.More() {
		item, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	// closing ']'
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	return value.Array(items...), nil
}

func (d *jsonDecoder) decodeObject(depth int) (*value.Value, error) {
	obj := value.NewObject()
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		// A repeated key keeps its first position and its last value.
		obj.Set(key, val)
	}
	// closing '}'
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	return value.ObjectValue(obj), nil
}

// MarshalJSON encodes v as compact JSON, keeping object key order.
func MarshalJSON(v *value.Value) ([]byte, error) {
	buf := getMarshalBuffer()
	defer putMarshalBuffer(buf)

	if err := writeJSON(buf, v); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// MarshalJSONIndent is like MarshalJSON but applies json.Indent formatting.
func MarshalJSONIndent(v *value.Value, prefix, indent string) ([]byte, error) {
	buf := getMarshalBuffer()
	defer putMarshalBuffer(buf)

	if err := writeJSON(buf, v); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), prefix, indent); err != nil {
		return nil, fmt.Errorf("codec: indenting JSON: %w", err)
	}
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		buf.WriteString("null")
	case value.KindBool:
		if v.Bool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case value.KindNumber:
		buf.WriteString(v.Number().String())
	case value.KindString:
		return writeJSONString(buf, v.Text())
	case value.KindArray:
		buf.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case value.KindObject:
		buf.WriteByte('{')
		i := 0
		for key, val := range v.Object().All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, val); err != nil {
				return err
			}
			i++
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("codec: unknown value kind %v", v.Kind())
	}
	return nil
}

// writeJSONString writes s as a JSON string literal without HTML escaping.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("codec: encoding string: %w", err)
	}
	// Encode terminates each value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
