package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/mcp-demo-server/internal/errors"
)

// SimpleSchema creates a jsonschema.Schema from a simple type map.
// Every listed property is required.
//
// Input format: {"a": "float64", "b": "string"}
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	required := make([]string, 0, len(props))

	for name, goType := range props {
		properties[name] = goTypeToJSONSchema(goType)
		required = append(required, name)
	}

	slices.Sort(required)

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Describe sets property descriptions on an object schema and returns it.
// Unknown property names are ignored.
func Describe(schema *jsonschema.Schema, descriptions map[string]string) *jsonschema.Schema {
	if schema == nil {
		return nil
	}

	for name, description := range descriptions {
		if prop, ok := schema.Properties[name]; ok {
			prop.Description = description
		}
	}

	return schema
}

// goTypeToJSONSchema converts a Go type string to a JSON Schema type.
func goTypeToJSONSchema(goType string) *jsonschema.Schema {
	switch goType {
	case "string":
		return &jsonschema.Schema{Type: "string"}
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return &jsonschema.Schema{Type: "integer"}
	case "float32", "float64", "float", "number":
		return &jsonschema.Schema{Type: "number"}
	case "bool", "boolean":
		return &jsonschema.Schema{Type: "boolean"}
	case "any", "object", "map[string]any":
		return &jsonschema.Schema{Type: "object"}
	default:
		if itemType, ok := strings.CutPrefix(goType, "[]"); ok && itemType != "" {
			return &jsonschema.Schema{
				Type:  "array",
				Items: goTypeToJSONSchema(itemType),
			}
		}

		return &jsonschema.Schema{Type: "string"}
	}
}

// ValidateArguments checks a raw argument bundle against an object schema.
//
// Every required property must be present and every present, declared property
// must have the declared JSON type. Undeclared properties are ignored. The
// returned error is an *errors.InvalidArgumentsError naming operation, with
// violations sorted by field name.
func ValidateArguments(operation string, schema *jsonschema.Schema, raw json.RawMessage) error {
	args, err := decodeArguments(raw)
	if err != nil {
		return &errors.InvalidArgumentsError{Operation: operation, Err: err}
	}

	if schema == nil {
		return nil
	}

	var violations []errors.FieldError

	for _, name := range schema.Required {
		if _, ok := args[name]; !ok {
			violations = append(violations, errors.FieldError{Field: name, Reason: "is required"})
		}
	}

	for name, value := range args {
		prop, ok := schema.Properties[name]
		if !ok || prop == nil {
			continue
		}

		if got := jsonType(value); !typeAllowed(prop, got) {
			violations = append(violations, errors.FieldError{
				Field:  name,
				Reason: fmt.Sprintf("expected %s, got %s", strings.Join(schemaTypes(prop), " or "), got),
			})
		}
	}

	if len(violations) == 0 {
		return nil
	}

	slices.SortFunc(violations, func(a, b errors.FieldError) int {
		return strings.Compare(a.Field, b.Field)
	})

	return &errors.InvalidArgumentsError{Operation: operation, Fields: violations}
}

// decodeArguments unmarshals raw arguments into a map.
// Absent or null arguments decode to an empty map.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal(trimmed, &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}

	if args == nil {
		args = map[string]any{}
	}

	return args, nil
}

// jsonType names the JSON type of a decoded value.
func jsonType(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		if n == math.Trunc(n) {
			return "integer"
		}

		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// schemaTypes returns the types a schema accepts, or nil if it accepts any.
func schemaTypes(s *jsonschema.Schema) []string {
	if s.Type != "" {
		return []string{s.Type}
	}

	return s.Types
}

func typeAllowed(s *jsonschema.Schema, got string) bool {
	allowed := schemaTypes(s)
	if len(allowed) == 0 {
		return true
	}

	for _, want := range allowed {
		if want == got || (want == "number" && got == "integer") {
			return true
		}
	}

	return false
}
