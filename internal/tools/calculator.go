// internal/tools/calculator.go
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// CalculatorDefinition describes the arithmetic tool.
func CalculatorDefinition() Definition {
	return Definition{
		Name:        CalculatorName,
		Description: "Performs basic arithmetic on two numbers.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"operation": map[string]any{
					"type": "string",
					"enum": []string{"add", "subtract", "multiply", "divide"},
				},
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []string{"operation", "a", "b"},
		},
	}
}

// Calculator applies the requested operation to the two operands.
func Calculator(ctx context.Context, args map[string]any) (string, error) {
	operation := cast.ToString(args["operation"])
	a, err := cast.ToFloat64E(args["a"])
	if err != nil {
		return "", fmt.Errorf("tools: operand a: %w", err)
	}
	b, err := cast.ToFloat64E(args["b"])
	if err != nil {
		return "", fmt.Errorf("tools: operand b: %w", err)
	}

	var result float64
	switch operation {
	case "add":
		result = a + b
	case "subtract":
		result = a - b
	case "multiply":
		result = a * b
	case "divide":
		if b == 0 {
			return "", errors.New("tools: division by zero")
		}
		result = a / b
	default:
		return "", fmt.Errorf("tools: unsupported operation %q", operation)
	}
	return fmt.Sprintf("%s(%g, %g) = %g", operation, a, b, result), nil
}
