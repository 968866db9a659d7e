package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Evaluate folds an alternating operand/operator sequence into a number.
// × and ÷ are applied left to right first, then + and -.
// Division by zero follows IEEE 754 and is not an error here; use
// CheckResult to classify the outcome.
func Evaluate(tokens []Token) (float64, error) {
	if err := checkShape(tokens); err != nil {
		return 0, err
	}

	terms := make([]Token, 0, len(tokens))
	terms = append(terms, tokens[0])

	for i := 1; i < len(tokens); i += 2 {
		op, right := tokens[i].Op, tokens[i+1]
		switch op {
		case OpMultiply, OpDivide:
			last := &terms[len(terms)-1]
			last.Value = op.apply(last.Value, right.Value)
		default:
			terms = append(terms, tokens[i], right)
		}
	}

	result := terms[0].Value
	for i := 1; i < len(terms); i += 2 {
		result = terms[i].Op.apply(result, terms[i+1].Value)
	}

	return result, nil
}

func checkShape(tokens []Token) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: empty expression", ErrMalformedExpression)
	}
	if len(tokens)%2 == 0 {
		return fmt.Errorf("%w: dangling operator %q", ErrMalformedExpression, tokens[len(tokens)-1])
	}

	for i, t := range tokens {
		wantOperator := i%2 == 1
		if wantOperator && !t.Op.Valid() {
			return fmt.Errorf("%w: expected operator at position %d, got %q", ErrMalformedExpression, i, t)
		}
		if !wantOperator && t.IsOperator() {
			return fmt.Errorf("%w: expected operand at position %d, got %q", ErrMalformedExpression, i, t)
		}
	}

	return nil
}

// ParseExpression tokenizes a space-separated expression such as
// "2 + 3 × 4". Operators may also be written as * / or x.
// Operands must be spelled as the keypad types them: an optional leading
// "-", digits and at most one ".".
func ParseExpression(expr string) ([]Token, error) {
	fields := strings.Fields(expr)
	tokens := make([]Token, 0, len(fields))

	for i, field := range fields {
		if i%2 == 1 {
			op, ok := ParseOperator(field)
			if !ok {
				return nil, fmt.Errorf("%w: unknown operator %q", ErrMalformedExpression, field)
			}
			tokens = append(tokens, OperatorToken(op))
			continue
		}

		if !typedOperand(field) {
			return nil, fmt.Errorf("%w: operand %q", ErrMalformedExpression, field)
		}
		operand, err := Operand(field)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, operand)
	}

	if err := checkShape(tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// CheckResult returns ErrNumericIndeterminate when v is infinite or NaN.
func CheckResult(v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("%w: %s", ErrNumericIndeterminate, FormatResult(v))
	}
	return nil
}

// FormatResult renders an evaluation result as operand text. Plain decimal
// notation is used between 1e-6 and 1e21; outside that range the shortest
// exponent form is used.
func FormatResult(v float64) string {
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

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimExponent turns "1e-07" into "1e-7".
func trimExponent(s string) string {
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// typedOperand reports whether text could have been typed on the keypad.
func typedOperand(text string) bool {
	text = strings.TrimPrefix(text, "-")
	digits, points := 0, 0
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}
