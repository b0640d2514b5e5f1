// Package typemap maps annotated schema nodes into Swagger type descriptors.
//
// The mapping is a pure depth first recursion over the schema tree. It never fails: missing or
// malformed parts of a node are left out of its descriptor. Deactivated nodes are mapped like any
// other node and then handed to a Wrapper, which by default comments them out.
package typemap

import (
	"github.com/speakeasy-api/openapi-typemapper/comments"
	"github.com/speakeasy-api/openapi-typemapper/extensions"
	"github.com/speakeasy-api/openapi-typemapper/references"
	"github.com/speakeasy-api/openapi-typemapper/schema"
)

// ReferenceNormalizer rewrites an internal reference pointer into a Swagger $ref.
type ReferenceNormalizer interface {
	NormalizeReference(ref string) string
}

// ReferenceNormalizerFunc is an adapter to allow the use of ordinary functions as a ReferenceNormalizer.
type ReferenceNormalizerFunc func(ref string) string

func (f ReferenceNormalizerFunc) NormalizeReference(ref string) string {
	return f(ref)
}

// Wrapper turns the value mapped for a node into its deactivated form when the node or one of its ancestors is deactivated.
type Wrapper interface {
	Wrap(value any, activated, parentActivated bool) any
}

// WrapperFunc is an adapter to allow the use of ordinary functions as a Wrapper.
type WrapperFunc func(value any, activated, parentActivated bool) any

func (f WrapperFunc) Wrap(value any, activated, parentActivated bool) any {
	return f(value, activated, parentActivated)
}

// ExtensionsExtractor resolves an extension scope into the fields merged into a descriptor.
type ExtensionsExtractor interface {
	ExtractExtensions(scopes extensions.Scopes) *extensions.Extensions
}

// ExtensionsExtractorFunc is an adapter to allow the use of ordinary functions as an ExtensionsExtractor.
type ExtensionsExtractorFunc func(scopes extensions.Scopes) *extensions.Extensions

func (f ExtensionsExtractorFunc) ExtractExtensions(scopes extensions.Scopes) *extensions.Extensions {
	return f(scopes)
}

// Mapper maps schema nodes into descriptors. It holds no state between calls and is safe for concurrent use.
type Mapper struct {
	references ReferenceNormalizer
	wrapper    Wrapper
	extensions ExtensionsExtractor
}

// Option configures a Mapper.
type Option func(m *Mapper)

// WithReferenceNormalizer replaces the default references.Normalize.
func WithReferenceNormalizer(n ReferenceNormalizer) Option {
	return func(m *Mapper) {
		m.references = n
	}
}

// WithWrapper replaces the default comments.Wrap.
func WithWrapper(w Wrapper) Option {
	return func(m *Mapper) {
		m.wrapper = w
	}
}

// WithExtensionsExtractor replaces the default extensions.Extract.
func WithExtensionsExtractor(e ExtensionsExtractor) Option {
	return func(m *Mapper) {
		m.extensions = e
	}
}

// New creates a Mapper using the default collaborators unless replaced by opts.
func New(opts ...Option) *Mapper {
	m := &Mapper{
		references: ReferenceNormalizerFunc(references.Normalize),
		wrapper:    WrapperFunc(comments.Wrap),
		extensions: ExtensionsExtractorFunc(extensions.Extract),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

var defaultMapper = New()

// MapType maps node with the default Mapper. See Mapper.MapType.
func MapType(node *schema.Node, parentActivated bool) any {
	return defaultMapper.MapType(node, parentActivated)
}

// MapType maps node into its Swagger type descriptor.
//
// parentActivated is the activation of the node's ancestors; pass true for a live root.
// The result is nil, a *Descriptor, or whatever the Wrapper made of one (a *comments.Commented
// envelope by default). Compositions are returned unwrapped, their members carry their own activation.
// Object properties that map to nil, such as nested objects without content, are left out of "properties".
func (m *Mapper) MapType(node *schema.Node, parentActivated bool) any {
	switch node.Kind() {
	case schema.KindNone:
		return nil
	case schema.KindComposition:
		return m.composition(node, parentActivated)
	case schema.KindReference:
		return m.wrap(m.reference(node), node.Activated(), parentActivated)
	default:
		return m.wrap(m.typeProps(node, parentActivated), node.Activated(), parentActivated)
	}
}

func (m *Mapper) composition(node *schema.Node, parentActivated bool) *Descriptor {
	allOf := make([]any, 0, len(node.AllOf))
	for _, member := range node.AllOf {
		allOf = append(allOf, m.MapType(member, parentActivated))
	}

	return NewDescriptor().set("allOf", allOf)
}

func (m *Mapper) reference(node *schema.Node) *Descriptor {
	d := NewDescriptor()
	d.Set("$ref", m.references.NormalizeReference(node.Ref))
	return d
}

// wrap keeps nil results nil so callers can tell "no content" apart from a deactivated descriptor.
func (m *Mapper) wrap(value any, activated, parentActivated bool) any {
	if value == nil {
		return nil
	}
	return m.wrapper.Wrap(value, activated, parentActivated)
}
