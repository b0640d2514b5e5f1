// Package extensions resolves the vendor extensions attached to a schema node's extension scope.
package extensions

import (
	"strings"

	"github.com/speakeasy-api/openapi-typemapper/sequencedmap"
)

// Prefix is the prefix every Swagger vendor extension key carries.
const Prefix = "x-"

// Extension is a single vendor extension declared on a scope.
type Extension struct {
	// Pattern is the extension key, normally starting with Prefix.
	Pattern string `yaml:"extensionPattern" json:"extensionPattern"`
	// Value is merged verbatim into the owning descriptor.
	Value any `yaml:"extensionValue" json:"extensionValue"`
}

// Scopes is the extension scope of a schema node, in declaration order.
type Scopes []Extension

// Extensions is an ordered set of extension fields ready to be merged into a descriptor.
type Extensions = sequencedmap.Map[string, any]

// Extract resolves scopes into flat extension fields. An empty set is returned when no extensions apply.
func Extract(scopes Scopes) *Extensions {
	ext := sequencedmap.New[string, any]()

	for _, e := range scopes {
		key := strings.TrimSpace(e.Pattern)
		if key == "" {
			continue
		}

		if !IsExtension(key) {
			key = Prefix + key
		}

		ext.Set(key, e.Value)
	}

	return ext
}

// IsExtension reports whether key is a vendor extension key.
func IsExtension(key string) bool {
	return strings.HasPrefix(key, Prefix)
}
