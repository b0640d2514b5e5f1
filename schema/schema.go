// Package schema models the annotated schema tree that is mapped into Swagger type descriptors.
package schema

import (
	"fmt"

	"github.com/speakeasy-api/openapi-typemapper/extensions"
	"github.com/speakeasy-api/openapi-typemapper/pointer"
	"github.com/speakeasy-api/openapi-typemapper/sequencedmap"
	"github.com/speakeasy-api/openapi-typemapper/yml"
	"gopkg.in/yaml.v3"
)

// Node is a single type or shape of the modeled schema tree.
type Node struct {
	// Type is the declared type. Only the first entry is honored.
	Type Types `yaml:"type,omitempty"`
	// AllOf holds the members of a composition. A present but empty list is still a composition.
	AllOf []*Node `yaml:"allOf,omitempty"`
	// Ref points at a schema defined elsewhere.
	Ref string `yaml:"$ref,omitempty"`
	// IsActivated is nil when the node does not say, which counts as activated.
	IsActivated *bool `yaml:"isActivated,omitempty"`

	Properties *sequencedmap.Map[string, *Node] `yaml:"properties,omitempty"`
	Items      *Items                           `yaml:"items,omitempty"`

	Required             Required `yaml:"required,omitempty"`
	MinItems             *int     `yaml:"minItems,omitempty"`
	MaxItems             *int     `yaml:"maxItems,omitempty"`
	UniqueItems          *bool    `yaml:"uniqueItems,omitempty"`
	MinProperties        *int     `yaml:"minProperties,omitempty"`
	MaxProperties        *int     `yaml:"maxProperties,omitempty"`
	AdditionalProperties any      `yaml:"additionalProperties,omitempty"`
	Minimum              *float64 `yaml:"minimum,omitempty"`
	Maximum              *float64 `yaml:"maximum,omitempty"`
	ExclusiveMinimum     *bool    `yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum     *bool    `yaml:"exclusiveMaximum,omitempty"`
	MinLength            *int     `yaml:"minLength,omitempty"`
	MaxLength            *int     `yaml:"maxLength,omitempty"`
	Pattern              string   `yaml:"pattern,omitempty"`
	MultipleOf           *float64 `yaml:"multipleOf,omitempty"`
	Enum                 []any    `yaml:"enum,omitempty"`
	Default              any      `yaml:"default,omitempty"`
	Format               string   `yaml:"format,omitempty"`
	// Mode is used as the format when Format is empty.
	Mode             string `yaml:"mode,omitempty"`
	Description      string `yaml:"description,omitempty"`
	Discriminator    string `yaml:"discriminator,omitempty"`
	ReadOnly         *bool  `yaml:"readOnly,omitempty"`
	CollectionFormat string `yaml:"collectionFormat,omitempty"`

	XML *XML `yaml:"xml,omitempty"`
	// Sample is the example value, strings may hold serialized JSON.
	Sample any `yaml:"sample,omitempty"`

	ScopesExtensions extensions.Scopes `yaml:"scopesExtensions,omitempty"`
}

// XML is the XML metadata of a node.
type XML struct {
	Name      string `yaml:"xmlName,omitempty"`
	Namespace string `yaml:"xmlNamespace,omitempty"`
	Prefix    string `yaml:"xmlPrefix,omitempty"`
	Attribute *bool  `yaml:"xmlAttribute,omitempty"`
	Wrapped   *bool  `yaml:"xmlWrapped,omitempty"`

	ScopesExtensions extensions.Scopes `yaml:"scopesExtensions,omitempty"`
}

// Activated reports whether the node itself is activated. Nodes default to activated.
func (n *Node) Activated() bool {
	if n == nil {
		return true
	}
	return pointer.ValueOr(n.IsActivated, true)
}

// Types is the declared type of a node, written either as a single string or a list of strings.
type Types []string

// NewTypes creates a Types list.
func NewTypes(types ...string) Types {
	return Types(types)
}

// First returns the only type honored during mapping. Later alternatives are discarded.
func (t Types) First() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// IsMulti reports whether more than one alternative was declared.
func (t Types) IsMulti() bool {
	return len(t) > 1
}

func (t *Types) UnmarshalYAML(node *yaml.Node) error {
	resolved := yml.ResolveAlias(node)

	switch resolved.Kind {
	case yaml.ScalarNode:
		if resolved.Tag == "!!null" {
			*t = nil
			return nil
		}
		*t = Types{resolved.Value}
		return nil
	case yaml.SequenceNode:
		var types []string
		if err := resolved.Decode(&types); err != nil {
			return fmt.Errorf("type must be a string or a list of strings: %w", err)
		}
		*t = types
		return nil
	default:
		return fmt.Errorf("type must be a string or a list of strings, got %s", yml.NodeKindToString(resolved.Kind))
	}
}

func (t Types) MarshalYAML() (any, error) {
	if len(t) == 1 {
		return t[0], nil
	}
	return []string(t), nil
}

// Items are the item types of an array node, written either as a single node or as a tuple of nodes.
type Items struct {
	Single *Node
	Tuple  []*Node
}

// NewItems creates items holding a single node.
func NewItems(node *Node) *Items {
	return &Items{Single: node}
}

// NewTupleItems creates items holding an ordered list of nodes.
func NewTupleItems(nodes ...*Node) *Items {
	if nodes == nil {
		nodes = []*Node{}
	}
	return &Items{Tuple: nodes}
}

// IsTuple reports whether the items were declared as a list.
func (i *Items) IsTuple() bool {
	return i != nil && i.Tuple != nil
}

// First returns the node used to type the items of the array: the single node or the first tuple entry.
func (i *Items) First() *Node {
	switch {
	case i == nil:
		return nil
	case i.IsTuple():
		if len(i.Tuple) == 0 {
			return nil
		}
		return i.Tuple[0]
	default:
		return i.Single
	}
}

func (i *Items) UnmarshalYAML(node *yaml.Node) error {
	resolved := yml.ResolveAlias(node)

	switch resolved.Kind {
	case yaml.MappingNode:
		var single Node
		if err := resolved.Decode(&single); err != nil {
			return err
		}
		i.Single, i.Tuple = &single, nil
		return nil
	case yaml.SequenceNode:
		tuple := []*Node{}
		if err := resolved.Decode(&tuple); err != nil {
			return err
		}
		i.Single, i.Tuple = nil, tuple
		return nil
	default:
		return fmt.Errorf("items must be a node or a list of nodes, got %s", yml.NodeKindToString(resolved.Kind))
	}
}

func (i *Items) MarshalYAML() (any, error) {
	if i.IsTuple() {
		return i.Tuple, nil
	}
	return i.Single, nil
}

// Required lists the required property names of an object node.
// Boolean markers that some models put on the property itself are ignored.
type Required []string

func (r *Required) UnmarshalYAML(node *yaml.Node) error {
	resolved := yml.ResolveAlias(node)

	switch resolved.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := resolved.Decode(&names); err != nil {
			return fmt.Errorf("required must be a list of property names: %w", err)
		}
		*r = names
	case yaml.ScalarNode:
		*r = nil
	default:
		return fmt.Errorf("required must be a list of property names, got %s", yml.NodeKindToString(resolved.Kind))
	}

	return nil
}
