package simplf

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a runtime value: float64, string, bool, nil or a Callable.
type Value = any

// Callable is a value that can appear as the callee of a call expression.
type Callable interface {
	fmt.Stringer

	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// Stringify renders v the way print shows it. Whole numbers have no
// fractional part, nil is "nil".
func Stringify(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case float64:
		switch {
		case math.IsInf(v, 1):
			return "Infinity"
		case math.IsInf(v, -1):
			return "-Infinity"
		case math.IsNaN(v):
			return "NaN"
		}

		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// isTruthy treats nil and false as false and everything else, including 0 and
// the empty string, as true.
func isTruthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// isEqual compares without coercion. Functions are equal only to themselves.
func isEqual(a, b Value) bool {
	if a == nil {
		return b == nil
	}

	return a == b
}
