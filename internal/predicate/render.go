package predicate

import (
	"fmt"
	"strings"

	"github.com/siso-ai/siso-database/internal/value"
)

// Render turns a predicate tree back into clause text. Used for structured
// logging and error reporting; the output is canonical, not the original
// source text (keywords uppercased, strings single-quoted).
func Render(t Tree) string {
	switch node := t.(type) {
	case Compare:
		return fmt.Sprintf("%s %s %s", node.Column, node.Op, renderOperand(node.Operand))

	case In:
		parts := make([]string, len(node.Values))
		for i, v := range node.Values {
			parts[i] = renderOperand(v)
		}
		return fmt.Sprintf("%s IN (%s)", node.Column, strings.Join(parts, ", "))

	case Like:
		return fmt.Sprintf("%s LIKE '%s'", node.Column, node.Pattern)

	case Between:
		return fmt.Sprintf("%s BETWEEN %s AND %s", node.Column, renderOperand(node.Low), renderOperand(node.High))

	case NullTest:
		if node.Negated {
			return node.Column + " IS NOT NULL"
		}
		return node.Column + " IS NULL"

	case Branch:
		return fmt.Sprintf("%s %s %s", Render(node.Left), node.Op, Render(node.Right))

	default:
		return ""
	}
}

func renderOperand(v value.Value) string {
	if _, ok := v.(value.String); ok {
		return "'" + value.Render(v) + "'"
	}
	return value.Render(v)
}
