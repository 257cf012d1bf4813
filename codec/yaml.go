package codec

import (
	"fmt"

	"github.com/erraggy/normjson/normerrors"
	"github.com/erraggy/normjson/value"
	"go.yaml.in/yaml/v4"
)

// maxAliasNodes bounds the number of nodes produced by expanding YAML
// aliases, which could otherwise grow exponentially.
const maxAliasNodes = 1 << 20

// yamlDecoder converts a yaml.Node tree into a value tree. Decoding through
// yaml.Node rather than map[string]any keeps mapping key order.
type yamlDecoder struct {
	maxDepth   int
	aliasNodes int
}

func decodeYAML(data []byte, maxDepth int) (*value.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &normerrors.ParseError{Format: string(SourceFormatYAML), Cause: err}
	}
	d := &yamlDecoder{maxDepth: maxDepth}
	return d.decodeNode(&root, 1, false)
}

func (d *yamlDecoder) parseError(n *yaml.Node, format string, args ...any) error {
	return &normerrors.ParseError{
		Format:  string(SourceFormatYAML),
		Line:    n.Line,
		Column:  n.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d *yamlDecoder) decodeNode(n *yaml.Node, depth int, inAlias bool) (*value.Value, error) {
	if inAlias {
		d.aliasNodes++
		if d.aliasNodes > maxAliasNodes {
			return nil, &normerrors.ResourceLimitError{
				ResourceType: "alias_expansion",
				Limit:        maxAliasNodes,
				Message:      "YAML aliases expand to too many nodes",
			}
		}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}
		return d.decodeNode(n.Content[0], depth, inAlias)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, d.parseError(n, "unresolved alias %q", n.Value)
		}
		return d.decodeNode(n.Alias, depth, true)
	case yaml.ScalarNode:
		return d.decodeScalar(n)
	case yaml.SequenceNode, yaml.MappingNode:
		if d.maxDepth > 0 && depth > d.maxDepth {
			return nil, &normerrors.ResourceLimitError{
				ResourceType: "nesting_depth",
				Limit:        int64(d.maxDepth),
				Actual:       int64(depth),
				Message:      "document nesting exceeds maximum depth",
			}
		}
		if n.Kind == yaml.SequenceNode {
			return d.decodeSequence(n, depth, inAlias)
		}
		return d.decodeMapping(n, depth, inAlias)
	default:
		return nil, d.parseError(n, "unsupported YAML node kind %v", n.Kind)
	}
}

func (d *yamlDecoder) decodeSequence(n *yaml.Node, depth int, inAlias bool) (*value.Value, error) {
	items := make([]*value.Value, 0, len(n.Content))
	for _, child := range n.Content {
		item, err := d.decodeNode(child, depth+1, inAlias)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return value.Array(items...), nil
}

func (d *yamlDecoder) decodeMapping(n *yaml.Node, depth int, inAlias bool) (*value.Value, error) {
	if len(n.Content)%2 != 0 {
		return nil, d.parseError(n, "mapping has an odd number of nodes")
	}
	obj := value.NewObject()
	for i := 0; i < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, d.parseError(keyNode, "mapping keys must be scalars")
		}
		val, err := d.decodeNode(valNode, depth+1, inAlias)
		if err != nil {
			return nil, err
		}
		obj.Set(keyNode.Value, val)
	}
	return value.ObjectValue(obj), nil
}

func (d *yamlDecoder) decodeScalar(n *yaml.Node) (*value.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, d.parseError(n, "invalid boolean %q", n.Value)
		}
		return value.Bool(b), nil
	case "!!int", "!!float":
		var raw any
		if err := n.Decode(&raw); err != nil {
			return nil, d.parseError(n, "invalid number %q", n.Value)
		}
		v, err := value.FromAny(raw)
		if err != nil {
			return nil, d.parseError(n, "invalid number %q: %v", n.Value, err)
		}
		return v, nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		return value.String(n.Value), nil
	}
}

// MarshalYAML encodes v as YAML, keeping object key order.
func MarshalYAML(v *value.Value) ([]byte, error) {
	out, err := yaml.Marshal(toYAMLNode(v))
	if err != nil {
		return nil, fmt.Errorf("codec: encoding YAML: %w", err)
	}
	return out, nil
}

func toYAMLNode(v *value.Value) *yaml.Node {
	switch v.Kind() {
	case value.KindBool:
		s := "false"
		if v.Bool() {
			s = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
	case value.KindNumber:
		tag := "!!float"
		if v.Number().IsInteger() {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Number().String()}
	case value.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text()}
	case value.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(v.Items()) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, item := range v.Items() {
			n.Content = append(n.Content, toYAMLNode(item))
		}
		return n
	case value.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if v.Len() == 0 {
			n.Style = yaml.FlowStyle
		}
		for key, val := range v.Object().All() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				toYAMLNode(val),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
