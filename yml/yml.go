// Package yml provides helpers for building YAML nodes and the output configuration shared by the renderers.
package yml

import (
	"reflect"

	"gopkg.in/yaml.v3"
)

func CreateStringNode(value string) *yaml.Node {
	return &yaml.Node{
		Value: value,
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
	}
}

func CreateMapNode(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{
		Content: content,
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
	}
}

// NodeKindToString names a node kind for decode error messages. Mappings are reported as objects.
func NodeKindToString(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// ResolveAlias follows alias nodes until it reaches the node they point to.
func ResolveAlias(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.AliasNode:
		return ResolveAlias(node.Alias)
	default:
		return node
	}
}

// DocumentContent returns the root content node of a document node, or the node itself.
func DocumentContent(node *yaml.Node) *yaml.Node {
	if node == nil || node.Kind == 0 {
		return nil
	}

	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return ResolveAlias(node.Content[0])
	}

	return ResolveAlias(node)
}

// EncodeNode encodes value into a node tree. Nodes returned by yaml.Marshaler implementations are
// used as is, including inside []any values, so their comments survive. Other values go through
// yaml.Node.Encode, which drops comments.
func EncodeNode(value any) (*yaml.Node, error) {
	switch v := value.(type) {
	case nil:
		return createNullNode(), nil
	case *yaml.Node:
		if v == nil {
			return createNullNode(), nil
		}
		return v, nil
	case yaml.Marshaler:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return createNullNode(), nil
		}

		out, err := v.MarshalYAML()
		if err != nil {
			return nil, err
		}
		return EncodeNode(out)
	case []any:
		seqNode := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			itemNode, err := EncodeNode(item)
			if err != nil {
				return nil, err
			}
			seqNode.Content = append(seqNode.Content, itemNode)
		}
		return seqNode, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(value); err != nil {
			return nil, err
		}
		return node, nil
	}
}

func createNullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
