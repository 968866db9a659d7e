// Package engine is the keypad calculator state machine: input
// accumulation, operator chaining, precedence-aware evaluation and the
// clear/backspace/equals transitions.
package engine

import "fmt"

// Engine applies transitions to a State under a fixed set of Options.
// It holds no calculator state itself and is safe to share.
type Engine struct {
	opts Options
}

func New(opts Options) Engine {
	return Engine{opts: opts}
}

func (e Engine) Options() Options {
	return e.opts
}

// EnterDigit appends d to the operand, or starts a new operand when one is
// expected. After "=" the previous calculation is dropped. Typing releases
// the highlighted operator. Bytes other than '0'-'9' leave the state
// unchanged.
func (e Engine) EnterDigit(s State, d byte) State {
	if d < '0' || d > '9' {
		return s
	}

	s = startFresh(s)
	s.Selected = OpNone

	switch {
	case s.WaitingForOperand:
		s.Operand = string(d)
		s.WaitingForOperand = false
	case s.Operand == "0":
		s.Operand = string(d)
	default:
		s.Operand += string(d)
	}

	return s
}

// EnterDecimalPoint starts "0." when an operand is expected and otherwise
// adds a point unless one is already present.
func (e Engine) EnterDecimalPoint(s State) State {
	s = startFresh(s)
	s.Selected = OpNone

	switch {
	case s.WaitingForOperand:
		s.Operand = "0."
		s.WaitingForOperand = false
	case !containsPoint(s.Operand):
		s.Operand += "."
	}

	return s
}

func startFresh(s State) State {
	if s.JustEvaluated {
		s.Expression = nil
		s.JustEvaluated = false
	}
	return s
}

func containsPoint(operand string) bool {
	for i := 0; i < len(operand); i++ {
		if operand[i] == '.' {
			return true
		}
	}
	return false
}

// EnterOperator commits the operand and op to the expression. After "="
// the result seeds a new expression. A repeated press while still waiting
// for an operand follows Options.Repress.
//
// An operand that does not parse as a number (e.g. a lone "-") yields
// ErrMalformedExpression and the state is returned unchanged.
func (e Engine) EnterOperator(s State, op Operator) (State, error) {
	if !op.Valid() {
		return s, fmt.Errorf("%w: operator %d", ErrUnknownKey, int(op))
	}

	var expr []Token

	switch {
	case s.JustEvaluated || len(s.Expression) == 0:
		left, err := Operand(s.Operand)
		if err != nil {
			return s, err
		}
		expr = []Token{left, OperatorToken(op)}

	case s.WaitingForOperand && s.endsWithOperator() && e.opts.Repress == RepressReplace:
		expr = appendTokens(s.Expression[:len(s.Expression)-1], OperatorToken(op))

	default:
		right, err := Operand(s.Operand)
		if err != nil {
			return s, err
		}
		expr = appendTokens(s.Expression, right, OperatorToken(op))
	}

	s.Expression = expr
	s.JustEvaluated = false
	s.WaitingForOperand = true
	s.Selected = op
	return s, nil
}

// Evaluate computes expression + operand. It is a no-op on an empty
// expression. Directly after "=", with Options.RepeatEquals, it reapplies
// the last operator and right operand to the current result.
//
// On ErrMalformedExpression the input state is returned unchanged. On
// ErrNumericIndeterminate the returned state is valid and carries the
// non-finite result as its operand.
func (e Engine) Evaluate(s State) (State, error) {
	if s.JustEvaluated {
		if !e.opts.RepeatEquals || len(s.LastEvaluated) < 3 {
			return s, nil
		}
		left, err := Operand(s.Operand)
		if err != nil {
			return s, err
		}
		n := len(s.LastEvaluated)
		return e.finish(s, []Token{left, s.LastEvaluated[n-2], s.LastEvaluated[n-1]})
	}

	if len(s.Expression) == 0 {
		return s, nil
	}

	right, err := Operand(s.Operand)
	if err != nil {
		return s, err
	}
	return e.finish(s, appendTokens(s.Expression, right))
}

func (e Engine) finish(s State, full []Token) (State, error) {
	result, err := Evaluate(full)
	if err != nil {
		return s, err
	}

	s.Operand = FormatResult(result)
	if e.opts.RetainHistory {
		s.Expression = full
	} else {
		s.Expression = nil
	}
	s.LastEvaluated = full
	s.Evaluations++
	s.WaitingForOperand = true
	s.Selected = OpNone
	s.JustEvaluated = true

	return s, CheckResult(result)
}

// Clear returns the calculator to its initial state.
func (e Engine) Clear(State) State {
	return NewState()
}

// ClearEntry resets only the operand, keeping the expression.
func (e Engine) ClearEntry(s State) State {
	s.Operand = "0"
	return s
}

// Backspace drops the last character of the operand. It never touches the
// committed expression.
func (e Engine) Backspace(s State) State {
	if len(s.Operand) > 1 {
		s.Operand = s.Operand[:len(s.Operand)-1]
	} else {
		s.Operand = "0"
	}
	return s
}

// clearKey is what the clear button does: a soft clear while there is an
// operand to discard and SoftClear is on, a full clear otherwise.
func (e Engine) clearKey(s State) State {
	if e.opts.SoftClear && s.Operand != "0" {
		return e.ClearEntry(s)
	}
	return e.Clear(s)
}
