package engine

import "errors"

var (
	// ErrMalformedExpression reports an expression whose shape or operand
	// text cannot be evaluated. Transitions returning it leave the state as
	// it was.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrNumericIndeterminate reports a non-finite result (division by zero,
	// overflow, NaN). The result is still surfaced to the display.
	ErrNumericIndeterminate = errors.New("numeric result is not finite")

	// ErrUnknownKey reports a key that maps to no intent.
	ErrUnknownKey = errors.New("unknown key")
)
