package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Intent is the kind of user action a key stands for.
type Intent string

const (
	IntentDigit      Intent = "digit"
	IntentDecimal    Intent = "decimal"
	IntentOperator   Intent = "operator"
	IntentEvaluate   Intent = "evaluate"
	IntentClear      Intent = "clear"
	IntentClearEntry Intent = "clear_entry"
	IntentBackspace  Intent = "backspace"
)

// ParseKey classifies a keypad key. Accepted keys are the digits, ".",
// the operators (and their ASCII aliases), "=", "AC"/"C"/"clear", "CE"
// and "⌫"/"backspace".
func ParseKey(key string) (Intent, error) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return IntentDigit, nil
	}
	if _, ok := ParseOperator(key); ok {
		return IntentOperator, nil
	}

	switch strings.ToLower(key) {
	case ".", ",":
		return IntentDecimal, nil
	case "=", "enter":
		return IntentEvaluate, nil
	case "ac", "c", "clear", "esc":
		return IntentClear, nil
	case "ce":
		return IntentClearEntry, nil
	case "⌫", "backspace", "del":
		return IntentBackspace, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Press applies the transition bound to key. Errors follow the transition
// they come from; an unknown key returns ErrUnknownKey and s unchanged.
func (e Engine) Press(s State, key string) (State, error) {
	intent, err := ParseKey(key)
	if err != nil {
		return s, err
	}

	switch intent {
	case IntentDigit:
		return e.EnterDigit(s, key[0]), nil
	case IntentDecimal:
		return e.EnterDecimalPoint(s), nil
	case IntentOperator:
		op, _ := ParseOperator(key)
		return e.EnterOperator(s, op)
	case IntentEvaluate:
		return e.Evaluate(s)
	case IntentClear:
		return e.clearKey(s), nil
	case IntentClearEntry:
		return e.ClearEntry(s), nil
	default:
		return e.Backspace(s), nil
	}
}

// PressAll folds Press over keys. Non-finite results do not stop the fold;
// any other error does, and the state reached before the failing key is
// returned with it.
func (e Engine) PressAll(s State, keys ...string) (State, error) {
	for i, key := range keys {
		next, err := e.Press(s, key)
		if err != nil && !errors.Is(err, ErrNumericIndeterminate) {
			return s, fmt.Errorf("key %d: %w", i, err)
		}
		s = next
	}
	return s, nil
}
