package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mcp-demo-server/internal/errors"
)

func TestSimpleSchema(t *testing.T) {
	schema := SimpleSchema(map[string]string{
		"name":   "string",
		"active": "bool",
		"scores": "[]float64",
	})

	require.Equal(t, "object", schema.Type)
	require.Equal(t, []string{"active", "name", "scores"}, schema.Required)
	require.Equal(t, "string", schema.Properties["name"].Type)
	require.Equal(t, "boolean", schema.Properties["active"].Type)
	require.Equal(t, "array", schema.Properties["scores"].Type)
	require.Equal(t, "number", schema.Properties["scores"].Items.Type)
}

func TestDescribe(t *testing.T) {
	schema := Describe(SimpleSchema(map[string]string{"a": "float64"}), map[string]string{
		"a":       "First number",
		"missing": "ignored",
	})

	require.Equal(t, "First number", schema.Properties["a"].Description)
	require.NotContains(t, schema.Properties, "missing")
	require.Nil(t, Describe(nil, map[string]string{"a": "x"}))
}

func TestGoTypeToJSONSchema(t *testing.T) {
	tests := []struct {
		name      string
		goType    string
		wantType  string
		wantItems string
	}{
		{name: "string", goType: "string", wantType: "string"},
		{name: "integer", goType: "int64", wantType: "integer"},
		{name: "number", goType: "float32", wantType: "number"},
		{name: "boolean", goType: "boolean", wantType: "boolean"},
		{name: "object", goType: "map[string]any", wantType: "object"},
		{name: "array", goType: "[]int", wantType: "array", wantItems: "integer"},
		{name: "fallback", goType: "customType", wantType: "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := goTypeToJSONSchema(tt.goType)

			require.Equal(t, tt.wantType, got.Type)

			if tt.wantItems != "" {
				require.NotNil(t, got.Items)
				require.Equal(t, tt.wantItems, got.Items.Type)
			}
		})
	}
}

func TestValidateArguments(t *testing.T) {
	schema := SimpleSchema(map[string]string{"a": "float64", "b": "float64", "n": "int"})

	tests := []struct {
		name       string
		args       string
		wantFields []string
		wantReason map[string]string
	}{
		{
			name: "valid arguments",
			args: `{"a": 1.5, "b": -2, "n": 3}`,
		},
		{
			name:       "missing arguments are listed in order",
			args:       `{"n": 1}`,
			wantFields: []string{"a", "b"},
			wantReason: map[string]string{"a": "is required", "b": "is required"},
		},
		{
			name:       "wrong types",
			args:       `{"a": "1", "b": null, "n": 1.5}`,
			wantFields: []string{"a", "b", "n"},
			wantReason: map[string]string{
				"a": "expected number, got string",
				"b": "expected number, got null",
				"n": "expected integer, got number",
			},
		},
		{
			name:       "empty arguments",
			args:       ``,
			wantFields: []string{"a", "b", "n"},
		},
		{
			name: "undeclared arguments are ignored",
			args: `{"a": 1, "b": 2, "n": 3, "extra": "x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArguments("calc", schema, json.RawMessage(tt.args))

			if tt.wantFields == nil {
				require.NoError(t, err)

				return
			}

			invalid, ok := errorsAs[*errors.InvalidArgumentsError](err)
			require.True(t, ok, "expected InvalidArgumentsError, got %v", err)
			require.Equal(t, "calc", invalid.Operation)
			require.Equal(t, tt.wantFields, invalid.FieldNames())

			for _, f := range invalid.Fields {
				if want, ok := tt.wantReason[f.Field]; ok {
					require.Equal(t, want, f.Reason)
				}
			}
		})
	}
}

func TestValidateArguments_NotAnObject(t *testing.T) {
	err := ValidateArguments("calc", SimpleSchema(nil), json.RawMessage(`[1, 2]`))

	invalid, ok := errorsAs[*errors.InvalidArgumentsError](err)
	require.True(t, ok)
	require.Empty(t, invalid.Fields)
	require.Contains(t, err.Error(), "arguments must be a JSON object")
}

func TestValidateArguments_NilSchemaAcceptsAnyObject(t *testing.T) {
	require.NoError(t, ValidateArguments("calc", nil, json.RawMessage(`{"x": true}`)))
	require.NoError(t, ValidateArguments("calc", nil, json.RawMessage(`null`)))
}
