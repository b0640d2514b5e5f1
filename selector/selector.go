// Package selector picks the schema nodes to map out of a larger document using JSONPath expressions.
//
// RFC 9535 expressions are evaluated with github.com/speakeasy-api/jsonpath. The legacy syntax accepted by
// github.com/vmware-labs/yaml-jsonpath is available for expressions written against older tooling.
package selector

import (
	"context"
	"fmt"

	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath/config"
	"github.com/speakeasy-api/openapi-typemapper/errors"
	"github.com/speakeasy-api/openapi-typemapper/schema"
	"github.com/speakeasy-api/openapi-typemapper/yml"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPath is returned when an expression cannot be parsed.
const ErrInvalidPath = errors.Error("invalid jsonpath expression")

// Syntax names the JSONPath dialect an expression is written in.
type Syntax string

const (
	SyntaxRFC9535 Syntax = "rfc9535"
	SyntaxLegacy  Syntax = "legacy"
)

// Queryable is an interface for querying YAML nodes using JSONPath expressions.
type Queryable interface {
	Query(root *yaml.Node) []*yaml.Node
}

type rfcJSONPathQueryable struct {
	path *jsonpath.JSONPath
}

func (r rfcJSONPathQueryable) Query(root *yaml.Node) []*yaml.Node {
	return r.path.Query(root)
}

type yamlPathQueryable struct {
	path *yamlpath.Path
}

func (y yamlPathQueryable) Query(root *yaml.Node) []*yaml.Node {
	// yamlpath only fails while parsing.
	result, _ := y.path.Find(root)
	return result
}

// NewPath parses expr in the given syntax. An empty syntax means RFC 9535.
func NewPath(expr string, syntax Syntax) (Queryable, error) {
	switch syntax {
	case SyntaxRFC9535, "":
		path, err := jsonpath.NewPath(expr, config.WithPropertyNameExtension())
		if err != nil {
			return nil, ErrInvalidPath.Wrap(err)
		}
		return rfcJSONPathQueryable{path: path}, nil
	case SyntaxLegacy:
		path, err := yamlpath.NewPath(expr)
		if err != nil {
			return nil, ErrInvalidPath.Wrap(err)
		}
		return yamlPathQueryable{path: path}, nil
	default:
		return nil, ErrInvalidPath.Wrap(fmt.Errorf("unknown jsonpath syntax %q", syntax))
	}
}

// Select decodes every node matched by q in document into a schema node, in document order.
// Matches that are not objects fail with schema.ErrInvalidInput.
func Select(ctx context.Context, document *yaml.Node, q Queryable) ([]*schema.Node, error) {
	root := yml.DocumentContent(document)
	if root == nil {
		return nil, nil
	}

	matches := q.Query(root)

	nodes := make([]*schema.Node, 0, len(matches))
	for _, match := range matches {
		node, err := schema.UnmarshalNode(ctx, match)
		if err != nil {
			return nil, fmt.Errorf("failed to decode selected node: %w", err)
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}
