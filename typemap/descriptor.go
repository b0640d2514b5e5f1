package typemap

import (
	"github.com/speakeasy-api/openapi-typemapper/extensions"
	"github.com/speakeasy-api/openapi-typemapper/schema"
	"github.com/speakeasy-api/openapi-typemapper/sequencedmap"
)

// Descriptor is a Swagger type description: field names to values, in emission order.
// It marshals to JSON and YAML with its fields in that order.
type Descriptor struct {
	*sequencedmap.Map[string, any]
}

// NewDescriptor creates an empty descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{Map: sequencedmap.New[string, any]()}
}

// set stores value under key unless value is absent. Absent fields are never emitted
// and optional scalars are stored by value.
func (d *Descriptor) set(key string, value any) *Descriptor {
	if v, ok := fieldValue(value); ok {
		d.Set(key, v)
	}
	return d
}

// setPresent stores value under key unless value is nil. Empty strings are kept.
func (d *Descriptor) setPresent(key string, value any) *Descriptor {
	switch v := value.(type) {
	case nil:
		return d
	case string:
		return d.set(key, presentString(v))
	default:
		return d.set(key, value)
	}
}

// merge adds the extension fields that do not collide with fields already set.
func (d *Descriptor) merge(ext *extensions.Extensions) *Descriptor {
	for k, v := range ext.All() {
		if d.Has(k) {
			continue
		}
		d.Set(k, v)
	}
	return d
}

// presentString is a string field that is emitted even when empty.
type presentString string

func fieldValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		return v, v != ""
	case presentString:
		return string(v), true
	case *int:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *float64:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *bool:
		if v == nil {
			return nil, false
		}
		return *v, true
	case schema.Required:
		return []string(v), v != nil
	case []any:
		return v, v != nil
	case *Descriptor:
		return v, v != nil
	default:
		return value, true
	}
}
