// Package display turns calculator state into the strings a keypad front
// end draws.
package display

import (
	"strings"

	"go-chi-calculator/internal/engine"
)

// FormatNumber inserts thousands separators into the integer part of a
// typed or computed number. The sign and a partially typed fraction
// ("1234.") are preserved; text that is not a plain decimal, such as
// "Infinity" or "1e+21", is returned as is.
func FormatNumber(value string) string {
	if value == "" || value == "-" {
		return value
	}

	negative := strings.HasPrefix(value, "-")
	raw := strings.TrimPrefix(value, "-")

	intPart, fracPart, hasPoint := strings.Cut(raw, ".")
	if !isDigits(intPart) || !isDigits(fracPart) {
		return value
	}

	out := groupThousands(intPart)
	if hasPoint {
		out += "." + fracPart
	}
	if negative {
		out = "-" + out
	}
	return out
}

// FormatExpression formats every operand of tokens and joins the result
// with single spaces.
func FormatExpression(tokens []engine.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		if t.IsOperator() {
			parts[i] = t.Op.String()
			continue
		}
		parts[i] = FormatNumber(t.Text)
	}
	return strings.Join(parts, " ")
}

// FormatExpressionString is FormatExpression for an already rendered,
// space-separated expression.
func FormatExpressionString(expr string) string {
	if expr == "" {
		return ""
	}

	fields := strings.Split(expr, " ")
	for i, f := range fields {
		if _, ok := engine.ParseOperator(f); ok {
			continue
		}
		fields[i] = FormatNumber(f)
	}
	return strings.Join(fields, " ")
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}

	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
