// Package references normalizes internal schema reference pointers into Swagger $ref strings.
package references

import (
	"strings"
)

// DefinitionsPrefix is where Swagger documents keep their named schemas.
const DefinitionsPrefix = "#/definitions/"

// modelSegment prefixes fragments that point at model level definitions of the source tree.
const modelSegment = "model"

type Reference string

// GetURI returns the document part of the reference, before any '#'.
func (r Reference) GetURI() string {
	uri, _, _ := strings.Cut(string(r), "#")
	return strings.TrimSpace(uri)
}

func (r Reference) HasJSONPointer() bool {
	return strings.Contains(string(r), "#")
}

// GetFragment returns the raw part of the reference after the first '#'.
func (r Reference) GetFragment() string {
	_, fragment, _ := strings.Cut(string(r), "#")
	return strings.TrimSpace(fragment)
}

func (r Reference) String() string {
	return string(r)
}

// Normalize rewrites an internal reference pointer into the form Swagger expects for $ref.
//
//	"#model/definitions/Pet" -> "#/definitions/Pet"
//	"#definitions/Pet"       -> "#/definitions/Pet"
//	"#Pet"                   -> "#/definitions/Pet"
//	"Pet"                    -> "#/definitions/Pet"
//	"common.json#Pet"        -> "common.json#/definitions/Pet"
//	"common.json"            -> "common.json"
func Normalize(ref string) string {
	r := Reference(strings.TrimSpace(ref))
	if r == "" {
		return ""
	}

	if !r.HasJSONPointer() {
		uri := r.String()
		if strings.ContainsAny(uri, "/.:") {
			return uri
		}
		return DefinitionsPrefix + EscapeString(uri)
	}

	uri := r.GetURI()

	segments := make([]string, 0)
	for segment := range strings.SplitSeq(r.GetFragment(), "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	if len(segments) > 0 && segments[0] == modelSegment {
		segments = segments[1:]
	}

	switch len(segments) {
	case 0:
		if uri != "" {
			return uri
		}
		return "#/"
	case 1:
		segments = append([]string{"definitions"}, segments...)
	}

	return uri + "#/" + strings.Join(segments, "/")
}

// EscapeString escapes a string for use as a reference token in a JSON pointer according to RFC6901.
func EscapeString(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
