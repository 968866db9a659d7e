package engine

import (
	"math"
	"strconv"
)

// State is the whole of one calculator. It is a value: transitions return
// a new State and never write through slices shared with their input.
type State struct {
	// Operand is the number on the main readout, as typed or as produced
	// by the last evaluation.
	Operand string

	// Expression is the committed left-hand side of the calculation, or
	// the full evaluated expression kept as history after "=".
	Expression []Token

	// Selected is the operator button shown as pressed.
	Selected Operator

	// WaitingForOperand is set after an operator or "=" so the next digit
	// starts a new operand.
	WaitingForOperand bool

	// JustEvaluated is set after "=" and changes how the next digit,
	// operator or "=" behaves.
	JustEvaluated bool

	// LastEvaluated is the full expression of the most recent evaluation.
	LastEvaluated []Token

	// Evaluations counts completed evaluations since the last clear.
	Evaluations int
}

// NewState returns the cleared calculator.
func NewState() State {
	return State{Operand: "0"}
}

// ClearLabel is the label kind of the clear button.
type ClearLabel int

const (
	AllClear ClearLabel = iota
	EntryClear
)

func (l ClearLabel) String() string {
	if l == EntryClear {
		return "C"
	}
	return "AC"
}

// ClearLabel reports AllClear for a pristine calculator and EntryClear
// otherwise.
func (s State) ClearLabel() ClearLabel {
	if s.Operand == "0" && len(s.Expression) == 0 {
		return AllClear
	}
	return EntryClear
}

// Indeterminate reports whether the operand holds a non-finite result.
func (s State) Indeterminate() bool {
	v, err := strconv.ParseFloat(s.Operand, 64)
	if err != nil {
		return false
	}
	return math.IsInf(v, 0) || math.IsNaN(v)
}

// ExpressionString renders the expression buffer with single spaces.
func (s State) ExpressionString() string {
	return JoinTokens(s.Expression)
}

func (s State) endsWithOperator() bool {
	return len(s.Expression) > 0 && s.Expression[len(s.Expression)-1].IsOperator()
}
