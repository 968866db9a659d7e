package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operator is one of the four binary operators on the keypad.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// String returns the keypad symbol for the operator.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// Valid reports whether o is one of the four binary operators.
func (o Operator) Valid() bool {
	return o >= OpAdd && o <= OpDivide
}

// ParseOperator maps a keypad symbol, or its ASCII alias, to an Operator.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-", "−":
		return OpSubtract, true
	case "×", "*", "x", "X":
		return OpMultiply, true
	case "÷", "/":
		return OpDivide, true
	default:
		return OpNone, false
	}
}

func (o Operator) apply(left, right float64) float64 {
	switch o {
	case OpAdd:
		return left + right
	case OpSubtract:
		return left - right
	case OpMultiply:
		return left * right
	case OpDivide:
		return left / right
	default:
		return math.NaN()
	}
}

// Token is one element of an expression. It is an operand when Op is
// OpNone and an operator otherwise. Operands keep the text they were typed
// as so history can be redrawn exactly.
type Token struct {
	Op    Operator
	Value float64
	Text  string
}

// Operand parses typed operand text into a Token.
func Operand(text string) (Token, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, fmt.Errorf("%w: operand %q", ErrMalformedExpression, text)
	}
	return Token{Value: v, Text: text}, nil
}

// OperatorToken wraps op as a Token.
func OperatorToken(op Operator) Token {
	return Token{Op: op}
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t.Op != OpNone
}

func (t Token) String() string {
	if t.IsOperator() {
		return t.Op.String()
	}
	return t.Text
}

// JoinTokens renders tokens separated by single spaces.
func JoinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// appendTokens returns a new slice holding base followed by more. The
// backing array of base is never written to.
func appendTokens(base []Token, more ...Token) []Token {
	out := make([]Token, 0, len(base)+len(more))
	out = append(out, base...)
	return append(out, more...)
}
