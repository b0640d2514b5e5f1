// Package render writes mapped descriptors out as JSON or YAML documents.
//
// The output format and indentation are taken from the yml.Config carried by the context.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/speakeasy-api/openapi-typemapper/json"
	"github.com/speakeasy-api/openapi-typemapper/yml"
	"gopkg.in/yaml.v3"
)

// Write renders value to w in the output format configured on ctx.
// A nil value renders as a null document.
func Write(ctx context.Context, value any, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := yml.GetConfigFromContext(ctx)

	switch cfg.OutputFormat {
	case yml.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(cfg.Indentation)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	case yml.OutputFormatJSON:
		node, err := Node(value)
		if err != nil {
			return err
		}
		return json.YAMLToJSON(node, jsonIndent(cfg), w)
	default:
		return yml.ErrUnsupportedFormat.Wrap(fmt.Errorf("%q", cfg.OutputFormat))
	}
}

// Bytes renders value in the output format configured on ctx and returns the document.
func Bytes(ctx context.Context, value any) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(ctx, value, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Node encodes value into a YAML node tree, keeping the field order of descriptors.
func Node(value any) (*yaml.Node, error) {
	node, err := yml.EncodeNode(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return node, nil
}

func jsonIndent(cfg *yml.Config) string {
	if cfg.Indentation <= 0 {
		return ""
	}
	return strings.Repeat(cfg.IndentationStyle.ToIndent(), cfg.Indentation)
}
