// ==============================================================================================
// FILE: interp/arithmetic.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: Binary-operator semantics split out of evaluator.go for
//          readability: numeric arithmetic (with int32+int32 staying
//          integer, anything else widening to float64), string
//          concatenation, ordering comparisons, and equality.
// ==============================================================================================

package interp

import (
	"strings"

	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/token"
)

// evalPlus implements `+`: numeric addition, or string concatenation when
// both operands are strings (§4.5 -- no implicit stringification).
func evalPlus(left, right Value, operator token.Token) (Value, error) {
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return ls + rs, nil
		}
	}
	return arithmetic(left, right, operator, func(a, b float64) float64 { return a + b }, func(a, b int32) int32 { return a + b })
}

// arithmetic applies intOp when both operands are int32, else widens both
// to float64 and applies floatOp. Any non-numeric operand is a runtime
// error.
func arithmetic(left, right Value, operator token.Token, floatOp func(a, b float64) float64, intOp func(a, b int32) int32) (Value, error) {
	li, lIsInt := left.(int32)
	ri, rIsInt := right.(int32)
	if lIsInt && rIsInt {
		return intOp(li, ri), nil
	}

	lf, lok := AsFloat64(left)
	rf, rok := AsFloat64(right)
	if !lok || !rok {
		return nil, errors.NewRuntimeError(operator.Line, "at '"+operator.Lexeme+"'", "operands must be numbers")
	}
	return floatOp(lf, rf), nil
}

// evalDivide implements `/`, which always produces a number (§4.5) even
// when both operands are integers that divide evenly -- unlike `+`/`-`/`*`,
// division never stays in the integer representation.
func evalDivide(left, right Value, operator token.Token) (Value, error) {
	lf, lok := AsFloat64(left)
	rf, rok := AsFloat64(right)
	if !lok || !rok {
		return nil, errors.NewRuntimeError(operator.Line, "at '/'", "operands must be numbers")
	}
	if rf == 0 {
		return nil, errors.NewRuntimeError(operator.Line, "at '/'", "division by zero")
	}
	return lf / rf, nil
}

func evalModulo(left, right Value, operator token.Token) (Value, error) {
	li, lok := left.(int32)
	ri, rok := right.(int32)
	if !lok || !rok {
		return nil, errors.NewRuntimeError(operator.Line, "at '%'", "operands of '%%' must be integers")
	}
	if ri == 0 {
		return nil, errors.NewRuntimeError(operator.Line, "at '%'", "modulo by zero")
	}
	return li % ri, nil
}

// compare handles `<`, `<=`, `>`, `>=` over either two numbers or two
// strings, converting the ordering into a sign and delegating to pred.
func compare(left, right Value, operator token.Token, pred func(sign int) bool) (Value, error) {
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return pred(strings.Compare(ls, rs)), nil
		}
	}
	lf, lok := AsFloat64(left)
	rf, rok := AsFloat64(right)
	if !lok || !rok {
		return nil, errors.NewRuntimeError(operator.Line, "at '"+operator.Lexeme+"'", "operands must be two numbers or two strings")
	}
	switch {
	case lf < rf:
		return pred(-1), nil
	case lf > rf:
		return pred(1), nil
	default:
		return pred(0), nil
	}
}

// valuesEqual implements `==`/`!=`. Numbers compare across int/float
// representation (1 == 1.0); everything else compares by Go equality,
// which for *List/*Instance/*Class/Callable means reference identity --
// there is no user-definable equality operator (§3.1 Non-goals).
func valuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := AsFloat64(a); aok {
		if bf, bok := AsFloat64(b); bok {
			return af == bf
		}
		return false
	}
	return a == b
}
