package schema

// Kind identifies which shape of descriptor a node maps to.
type Kind int

const (
	// KindNone is the kind of a nil node.
	KindNone Kind = iota
	// KindComposition is a node with allOf members.
	KindComposition
	// KindReference is a node carrying a $ref.
	KindReference
	// KindArray is a node of type array.
	KindArray
	// KindObject is a node of type object.
	KindObject
	// KindParameter is a one property wrapper whose sole property is promoted in place of the node.
	KindParameter
	// KindPrimitive is any other type, including unknown or missing ones.
	KindPrimitive
)

const (
	TypeArray     = "array"
	TypeObject    = "object"
	TypeParameter = "parameter"
	TypeString    = "string"
	TypeNumber    = "number"
	TypeInteger   = "integer"
	TypeBoolean   = "boolean"
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindComposition:
		return "composition"
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindParameter:
		return "parameter"
	case KindPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// Kind resolves the kind of the node. Composition wins over reference, reference over the declared type.
// Only the first declared type is considered and types without a dedicated shape are primitives.
func (n *Node) Kind() Kind {
	switch {
	case n == nil:
		return KindNone
	case n.AllOf != nil:
		return KindComposition
	case n.Ref != "":
		return KindReference
	}

	switch n.Type.First() {
	case TypeArray:
		return KindArray
	case TypeObject:
		return KindObject
	case TypeParameter:
		return KindParameter
	default:
		return KindPrimitive
	}
}
