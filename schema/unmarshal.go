package schema

import (
	"context"
	"fmt"
	"io"

	"github.com/speakeasy-api/openapi-typemapper/errors"
	"github.com/speakeasy-api/openapi-typemapper/yml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInput is returned when a document cannot be decoded into a schema node.
const ErrInvalidInput = errors.Error("invalid schema document")

// Unmarshal decodes a single schema node from a YAML or JSON document.
// An empty document decodes to a nil node.
func Unmarshal(ctx context.Context, r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema document: %w", err)
	}

	return UnmarshalBytes(ctx, data)
}

// UnmarshalBytes decodes a single schema node from YAML or JSON data.
func UnmarshalBytes(ctx context.Context, data []byte) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ErrInvalidInput.Wrap(err)
	}

	return UnmarshalNode(ctx, &doc)
}

// UnmarshalNode decodes a schema node from an already parsed YAML node, such as one selected out of a larger document.
// Document nodes are unwrapped and null nodes decode to a nil node.
func UnmarshalNode(ctx context.Context, yn *yaml.Node) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := yml.DocumentContent(yn)
	if root == nil || root.Tag == "!!null" {
		return nil, nil
	}

	if root.Kind != yaml.MappingNode {
		return nil, ErrInvalidInput.Wrap(fmt.Errorf("expected an object at line %d, got %s", root.Line, yml.NodeKindToString(root.Kind)))
	}

	var node Node
	if err := root.Decode(&node); err != nil {
		return nil, ErrInvalidInput.Wrap(err)
	}

	return &node, nil
}
