// Package eval evaluates a parsed WHERE expression tree against a single
// record. Evaluation is pure: the record is never mutated and NULL operands
// make a comparison false instead of raising.
package eval

import (
	"fmt"
	"strconv"

	"docsql/internal/sql/parser"
	"docsql/internal/storage"
)

// Evaluate runs the predicate against one record. A missing field resolves to
// NULL, and any comparison with a NULL operand is false.
func Evaluate(e parser.Expr, rec storage.Record) (bool, error) {
	switch x := e.(type) {
	case *parser.Logical:
		left, err := Evaluate(x.Left, rec)
		if err != nil {
			return false, err
		}
		right, err := Evaluate(x.Right, rec)
		if err != nil {
			return false, err
		}
		if x.Op == parser.OpAnd {
			return left && right, nil
		}
		return left || right, nil

	case *parser.Comparison:
		return evalComparison(x, rec)

	default:
		return false, fmt.Errorf("eval: unsupported expression %T", e)
	}
}

func evalComparison(c *parser.Comparison, rec storage.Record) (bool, error) {
	if c.Op == "LIKE" {
		return evalLike(c, rec)
	}

	left := resolve(c.Left, rec)
	right := resolve(c.Right, rec)
	if left == nil || right == nil {
		return false, nil
	}

	if lf, lok := asNumber(left); lok {
		if rf, rok := asNumber(right); rok {
			return compareFloats(lf, rf, c.Op)
		}
	}
	return compareStrings(asString(left), asString(right), c.Op)
}

func evalLike(c *parser.Comparison, rec storage.Record) (bool, error) {
	lit, ok := c.Right.(*parser.Literal)
	if !ok || lit.Kind != parser.LiteralString {
		return false, fmt.Errorf("eval: LIKE pattern must be a string literal")
	}

	val := resolve(c.Left, rec)
	s, ok := val.(string)
	if !ok {
		return false, nil
	}
	return MatchPattern(s, lit.Text), nil
}

// resolve turns an operand into a concrete value: identifiers read the record
// (missing field means NULL), literals resolve by their recorded kind.
func resolve(e parser.Expr, rec storage.Record) any {
	switch x := e.(type) {
	case *parser.Ident:
		return rec[x.Name]
	case *parser.Literal:
		switch x.Kind {
		case parser.LiteralNull:
			return nil
		case parser.LiteralNumber:
			f, err := strconv.ParseFloat(x.Text, 64)
			if err != nil {
				return nil
			}
			return f
		default:
			return x.Text
		}
	default:
		return nil
	}
}

func compareFloats(a, b float64, op parser.CompareOp) (bool, error) {
	switch op {
	case "=":
		return a == b, nil
	case "!=", "<>":
		return a != b, nil
	case "<":
		return a < b, nil
	case ">":
		return a > b, nil
	case "<=":
		return a <= b, nil
	case ">=":
		return a >= b, nil
	default:
		return false, fmt.Errorf("eval: unsupported operator %q", op)
	}
}

func compareStrings(a, b string, op parser.CompareOp) (bool, error) {
	switch op {
	case "=":
		return a == b, nil
	case "!=", "<>":
		return a != b, nil
	case "<":
		return a < b, nil
	case ">":
		return a > b, nil
	case "<=":
		return a <= b, nil
	case ">=":
		return a >= b, nil
	default:
		return false, fmt.Errorf("eval: unsupported operator %q", op)
	}
}

// Equal reports value equality under the comparison rules: numeric when both
// sides are numbers, case-sensitive string form otherwise. The executor uses
// it for uniqueness checks so "1" and 1.0 behave exactly like `col = value`.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := asNumber(a); aok {
		if bf, bok := asNumber(b); bok {
			return af == bf
		}
	}
	return asString(a) == asString(b)
}

func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
