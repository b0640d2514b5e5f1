package sequencedmap

import (
	"errors"
	"fmt"

	"github.com/speakeasy-api/openapi-typemapper/yml"
	"gopkg.in/yaml.v3"
)

// MarshalYAML returns a mapping node with the keys in insertion order.
func (m *Map[K, V]) MarshalYAML() (any, error) {
	mapNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil {
		return mapNode, nil
	}

	for _, element := range m.l {
		valueNode, err := yml.EncodeNode(element.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode value of key %v: %w", element.Key, err)
		}

		mapNode.Content = append(mapNode.Content, yml.CreateStringNode(fmt.Sprintf("%v", element.Key)), valueNode)
	}

	return mapNode, nil
}

// UnmarshalYAML populates the map from a mapping node, keeping the document order of its keys.
func (m *Map[K, V]) UnmarshalYAML(node *yaml.Node) error {
	resolved := yml.ResolveAlias(node)
	if resolved == nil {
		return errors.New("sequencedmap.Map expected a mapping node, got nil")
	}
	if resolved.Kind != yaml.MappingNode {
		return fmt.Errorf("sequencedmap.Map expected a mapping node, got %s", yml.NodeKindToString(resolved.Kind))
	}

	m.m = make(map[K]*Element[K, V], len(resolved.Content)/2)
	m.l = make([]*Element[K, V], 0, len(resolved.Content)/2)

	for i := 0; i+1 < len(resolved.Content); i += 2 {
		var key K
		if err := resolved.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("failed to decode key at line %d: %w", resolved.Content[i].Line, err)
		}

		var value V
		if err := resolved.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("failed to decode value of key %v: %w", key, err)
		}

		m.Set(key, value)
	}

	return nil
}
