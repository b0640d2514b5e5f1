package typemap

import (
	"encoding/json"
	"slices"

	"github.com/speakeasy-api/openapi-typemapper/schema"
)

// tupleExampleTypes are the item types that contribute their sample to a tuple example.
var tupleExampleTypes = []string{
	schema.TypeObject,
	schema.TypeString,
	schema.TypeNumber,
	schema.TypeInteger,
	schema.TypeBoolean,
}

// ParseExample decodes raw as JSON when it is a string holding valid JSON.
// Anything else, including strings that are not JSON, is returned verbatim.
func ParseExample(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}

	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return raw
	}

	return v
}

// ParseSample returns the decoded value of a sample only when the sample is given and decodes to a non null value.
// Non string samples are already decoded and are returned as is.
func ParseSample(raw any) any {
	switch s := raw.(type) {
	case nil:
		return nil
	case string:
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil
		}
		return v
	default:
		return raw
	}
}

// ArrayItemsExample builds an example for tuple typed arrays out of the samples of their item nodes.
//
// Only items declared as a list of more than one node are considered. Deactivated items, items of a type
// outside object, string, number, integer and boolean, and items without a sample are skipped. Object samples
// are decoded, the others are used raw, and list samples are flattened into the result.
// nil is returned unless at least two values were collected.
func ArrayItemsExample(items *schema.Items) []any {
	if !items.IsTuple() || len(items.Tuple) <= 1 {
		return nil
	}

	var collected []any
	for _, item := range items.Tuple {
		if item == nil || !item.Activated() {
			continue
		}

		itemType := item.Type.First()
		if !slices.Contains(tupleExampleTypes, itemType) || !truthy(item.Sample) {
			continue
		}

		example := item.Sample
		if itemType == schema.TypeObject {
			example = ParseExample(item.Sample)
		}

		if list, ok := example.([]any); ok {
			collected = append(collected, list...)
		} else {
			collected = append(collected, example)
		}
	}

	if len(collected) > 1 {
		return collected
	}

	return nil
}

// truthy reports whether a sample counts as given: nil, empty strings, false and zero do not.
func truthy(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case string:
		return s != ""
	case bool:
		return s
	case int:
		return s != 0
	case int64:
		return s != 0
	case uint64:
		return s != 0
	case float64:
		return s != 0
	default:
		return true
	}
}
