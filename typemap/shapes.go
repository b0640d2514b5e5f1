package typemap

import (
	"github.com/speakeasy-api/openapi-typemapper/schema"
	"github.com/speakeasy-api/openapi-typemapper/sequencedmap"
)

// typeProps builds the descriptor of a node by its shape. The result is either nil or a *Descriptor.
func (m *Mapper) typeProps(node *schema.Node, parentActivated bool) any {
	live := node.Activated() && parentActivated

	switch node.Kind() {
	case schema.KindArray:
		return m.array(node, live)
	case schema.KindObject:
		if d := m.object(node, live); d != nil {
			return d
		}
		return nil
	case schema.KindParameter:
		return m.parameter(node, live)
	default:
		return m.primitive(node)
	}
}

func (m *Mapper) array(node *schema.Node, live bool) *Descriptor {
	example := ParseSample(node.Sample)
	if example == nil {
		if tuple := ArrayItemsExample(node.Items); tuple != nil {
			example = tuple
		}
	}

	return NewDescriptor().
		set("type", node.Type.First()).
		set("items", m.arrayItems(node.Items, live)).
		set("collectionFormat", node.CollectionFormat).
		set("minItems", node.MinItems).
		set("maxItems", node.MaxItems).
		set("uniqueItems", node.UniqueItems).
		set("discriminator", node.Discriminator).
		set("readOnly", node.ReadOnly).
		set("xml", m.xml(node.XML)).
		setPresent("example", example).
		merge(m.extensions.ExtractExtensions(node.ScopesExtensions))
}

// arrayItems maps the first item node only. Missing items, or items without content, map to an empty descriptor.
func (m *Mapper) arrayItems(items *schema.Items, parentActivated bool) any {
	if mapped := m.MapType(items.First(), parentActivated); mapped != nil {
		return mapped
	}
	return NewDescriptor()
}

// object returns nil for objects declaring neither properties nor additionalProperties.
func (m *Mapper) object(node *schema.Node, live bool) *Descriptor {
	if node.Properties == nil && node.AdditionalProperties == nil {
		return nil
	}

	return NewDescriptor().
		set("type", node.Type.First()).
		set("required", node.Required).
		set("properties", m.objectProperties(node.Properties, live)).
		set("minProperties", node.MinProperties).
		set("maxProperties", node.MaxProperties).
		set("additionalProperties", node.AdditionalProperties).
		set("discriminator", node.Discriminator).
		set("readOnly", node.ReadOnly).
		set("xml", m.xml(node.XML)).
		setPresent("example", ParseExample(node.Sample)).
		merge(m.extensions.ExtractExtensions(node.ScopesExtensions))
}

// objectProperties maps each property in declaration order. Properties without content are left out.
func (m *Mapper) objectProperties(properties *sequencedmap.Map[string, *schema.Node], parentActivated bool) *sequencedmap.Map[string, any] {
	mapped := sequencedmap.New[string, any]()

	for name, property := range properties.All() {
		value := m.wrap(m.MapType(property, parentActivated), property.Activated(), parentActivated)
		if value == nil {
			continue
		}
		mapped.Set(name, value)
	}

	return mapped
}

// parameter promotes the first property of the wrapper in place of the wrapper itself.
func (m *Mapper) parameter(node *schema.Node, live bool) any {
	first := node.Properties.First()
	if first == nil {
		return nil
	}
	return m.MapType(first.Value, live)
}

func (m *Mapper) primitive(node *schema.Node) *Descriptor {
	format := node.Format
	if format == "" {
		format = node.Mode
	}

	return NewDescriptor().
		set("type", node.Type.First()).
		set("format", format).
		set("description", node.Description).
		set("exclusiveMinimum", node.ExclusiveMinimum).
		set("exclusiveMaximum", node.ExclusiveMaximum).
		set("minimum", node.Minimum).
		set("maximum", node.Maximum).
		set("enum", node.Enum).
		set("pattern", node.Pattern).
		set("default", node.Default).
		set("minLength", node.MinLength).
		set("maxLength", node.MaxLength).
		set("multipleOf", node.MultipleOf).
		set("xml", m.xml(node.XML)).
		setPresent("example", node.Sample).
		merge(m.extensions.ExtractExtensions(node.ScopesExtensions))
}

// xml returns nil when the node has no XML metadata.
func (m *Mapper) xml(x *schema.XML) *Descriptor {
	if x == nil {
		return nil
	}

	return NewDescriptor().
		set("name", x.Name).
		set("namespace", x.Namespace).
		set("prefix", x.Prefix).
		set("attribute", x.Attribute).
		set("wrapped", x.Wrapped).
		merge(m.extensions.ExtractExtensions(x.ScopesExtensions))
}
