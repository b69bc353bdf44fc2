package demo

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcp-demo-server/internal/mcp"
)

// BinaryInput is the input shape shared by the arithmetic tools.
type BinaryInput struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// calcAnnotations is shared by all calculator tools: read-only and idempotent.
var calcAnnotations = &mcp.ToolAnnotations{
	ReadOnlyHint:   true,
	IdempotentHint: true,
}

// RegisterCalculator registers the add, subtract, and multiply tools.
func RegisterCalculator(tools *internalmcp.ToolRegistry) {
	register := func(name, description string, op func(a, b float64) float64) {
		tool := internalmcp.NewTool(name, description, binarySchema())
		tool.Annotations = calcAnnotations

		tools.AddTool(tool, internalmcp.TypedHandler(func(_ context.Context, in BinaryInput) (*mcp.CallToolResult, error) {
			return internalmcp.TextResult(FormatNumber(op(in.A, in.B))), nil
		}))
	}

	register("add", "Adds two numbers together", func(a, b float64) float64 { return a + b })
	register("subtract", "Subtracts the second number from the first number", func(a, b float64) float64 { return a - b })
	register("multiply", "Multiplies two numbers together", func(a, b float64) float64 { return a * b })
}

func binarySchema() *jsonschema.Schema {
	return internalmcp.Describe(
		internalmcp.SimpleSchema(map[string]string{"a": "number", "b": "number"}),
		map[string]string{"a": "First number", "b": "Second number"},
	)
}

// FormatNumber renders v the way an ECMAScript Number converts to a string:
// the shortest decimal that round-trips, in plain notation for magnitudes in
// [1e-6, 1e21) and exponent notation outside it. Non-finite values render as
// NaN, Infinity, and -Infinity.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// Go pads the exponent to two digits ("1e-07"); ECMAScript does not.
	mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")

	return mantissa + "e" + sign + digits
}
