// Package comments turns the descriptors of deactivated schema nodes into inert, commented out values.
//
// A deactivated value is kept in full so it can be inspected or restored, but it is nested under the
// DeactivatedKey vendor extension, which Swagger consumers ignore.
package comments

import (
	"reflect"

	"github.com/speakeasy-api/openapi-typemapper/sequencedmap"
	"github.com/speakeasy-api/openapi-typemapper/yml"
)

// DeactivatedKey holds the original value of a deactivated item.
const DeactivatedKey = "x-deactivated"

// Commented is the inert envelope of a deactivated value.
type Commented struct {
	Value any
}

// Wrap returns value unchanged when both the item and its ancestors are activated,
// and a Commented envelope otherwise. nil values and values already commented out are returned as is.
func Wrap(value any, activated, parentActivated bool) any {
	if isNil(value) {
		return nil
	}

	if activated && parentActivated {
		return value
	}

	if IsCommented(value) {
		return value
	}

	return &Commented{Value: value}
}

// IsCommented reports whether value is a Commented envelope.
func IsCommented(value any) bool {
	_, ok := value.(*Commented)
	return ok
}

// Unwrap returns the value held by a Commented envelope and true,
// or value itself and false when it is not commented out.
func Unwrap(value any) (any, bool) {
	c, ok := value.(*Commented)
	if !ok || c == nil {
		return value, false
	}
	return c.Value, true
}

// MarshalJSON renders the envelope as {"x-deactivated": value}.
func (c *Commented) MarshalJSON() ([]byte, error) {
	return c.asMap().MarshalJSON()
}

// MarshalYAML renders the envelope as a mapping with a "deactivated" head comment.
func (c *Commented) MarshalYAML() (any, error) {
	valueNode, err := yml.EncodeNode(c.Value)
	if err != nil {
		return nil, err
	}

	keyNode := yml.CreateStringNode(DeactivatedKey)
	keyNode.HeadComment = "# deactivated"

	return yml.CreateMapNode(keyNode, valueNode), nil
}

func (c *Commented) asMap() *sequencedmap.Map[string, any] {
	return sequencedmap.New(sequencedmap.NewElem[string, any](DeactivatedKey, c.Value))
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
