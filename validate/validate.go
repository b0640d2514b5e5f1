// Package validate checks mapped descriptors against the Swagger 2.0 Schema Object.
package validate

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	_ "embed"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"github.com/speakeasy-api/openapi-typemapper/errors"
	"github.com/speakeasy-api/openapi-typemapper/json"
	"github.com/speakeasy-api/openapi-typemapper/references"
	"github.com/speakeasy-api/openapi-typemapper/render"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidDescriptor is matched by every finding returned by Descriptor.
const ErrInvalidDescriptor = errors.Error("invalid descriptor")

const (
	RuleRequiredField = "validation-required-field"
	RuleTypeMismatch  = "validation-type-mismatch"
	RuleAllowedValues = "validation-allowed-values"
	RuleInvalidSchema = "validation-invalid-schema"
)

//go:embed schema_object.json
var schemaObjectJSON string

var (
	descriptorValidator *jsValidator.Schema
	initOnce            sync.Once
	defaultPrinter      = message.NewPrinter(language.English)
)

// Error is a single finding against a descriptor.
type Error struct {
	// Rule classifies the finding.
	Rule string
	// Location is the JSON pointer of the offending value within the descriptor. Empty for the root.
	Location        string
	UnderlyingError error
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("#%s: %s", e.Location, e.UnderlyingError.Error())
}

func (e *Error) Unwrap() []error {
	return []error{ErrInvalidDescriptor, e.UnderlyingError}
}

// Descriptor validates a mapped value, as returned by typemap.MapType, and returns its findings sorted by location.
// A nil value has nothing to validate.
func Descriptor(ctx context.Context, value any) []error {
	if value == nil {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return []error{err}
	}

	initValidation()

	node, err := render.Node(value)
	if err != nil {
		return []error{ErrInvalidDescriptor.Wrap(err)}
	}

	buf := bytes.NewBuffer([]byte{})
	if err := json.YAMLToJSON(node, "", buf); err != nil {
		return []error{ErrInvalidDescriptor.Wrap(fmt.Errorf("descriptor is not valid json: %w", err))}
	}

	instance, err := jsValidator.UnmarshalJSON(buf)
	if err != nil {
		return []error{ErrInvalidDescriptor.Wrap(fmt.Errorf("descriptor is not valid json: %w", err))}
	}

	err = descriptorValidator.Validate(instance)
	if err == nil {
		return nil
	}

	var validationErr *jsValidator.ValidationError
	if !errors.As(err, &validationErr) {
		return []error{ErrInvalidDescriptor.Wrap(err)}
	}

	errs := getRootCauses(validationErr)
	SortErrors(errs)

	return errs
}

func getRootCauses(err *jsValidator.ValidationError) []error {
	if len(err.Causes) == 0 {
		return []error{newError(err)}
	}

	errs := []error{}
	for _, cause := range err.Causes {
		if len(cause.Causes) == 0 {
			errs = append(errs, newError(cause))
		} else {
			errs = append(errs, getRootCauses(cause)...)
		}
	}

	return errs
}

func newError(cause *jsValidator.ValidationError) *Error {
	rule := RuleInvalidSchema
	switch cause.ErrorKind.(type) {
	case *kind.Type:
		rule = RuleTypeMismatch
	case *kind.Required:
		rule = RuleRequiredField
	case *kind.Enum, *kind.Const:
		rule = RuleAllowedValues
	}

	return &Error{
		Rule:            rule,
		Location:        toJSONPointer(cause.InstanceLocation),
		UnderlyingError: errors.New(cause.ErrorKind.LocalizedString(defaultPrinter)),
	}
}

func toJSONPointer(parts []string) string {
	if len(parts) == 0 {
		return ""
	}

	escaped := make([]string, 0, len(parts))
	for _, part := range parts {
		escaped = append(escaped, references.EscapeString(part))
	}

	return "/" + strings.Join(escaped, "/")
}

// SortErrors orders findings by location, then rule, then message. Errors that are not findings keep their order after them.
func SortErrors(allErrors []error) {
	slices.SortStableFunc(allErrors, func(a, b error) int {
		var aErr, bErr *Error
		aOK, bOK := errors.As(a, &aErr), errors.As(b, &bErr)

		switch {
		case aOK && bOK:
			return cmp.Or(
				cmp.Compare(aErr.Location, bErr.Location),
				cmp.Compare(aErr.Rule, bErr.Rule),
				cmp.Compare(aErr.UnderlyingError.Error(), bErr.UnderlyingError.Error()),
			)
		case aOK:
			return -1
		case bOK:
			return 1
		default:
			return 0
		}
	})
}

func initValidation() {
	initOnce.Do(func() {
		schemaObject, err := jsValidator.UnmarshalJSON(strings.NewReader(schemaObjectJSON))
		if err != nil {
			panic(err)
		}

		c := jsValidator.NewCompiler()
		if err := c.AddResource("schema_object.json", schemaObject); err != nil {
			panic(err)
		}
		descriptorValidator = c.MustCompile("schema_object.json")
	})
}
