package engine

import (
	"fmt"
	"strings"
)

// RepressPolicy decides what an operator press does when the previous
// press was also an operator.
type RepressPolicy int

const (
	// RepressReplace swaps the trailing operator for the new one.
	RepressReplace RepressPolicy = iota
	// RepressAppend commits the unchanged operand again, as keypads that
	// simply concatenate input do.
	RepressAppend
)

func (p RepressPolicy) String() string {
	if p == RepressAppend {
		return "append"
	}
	return "replace"
}

// ParseRepressPolicy accepts "replace" or "append".
func ParseRepressPolicy(s string) (RepressPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "replace":
		return RepressReplace, nil
	case "append":
		return RepressAppend, nil
	default:
		return RepressReplace, fmt.Errorf("unknown operator repress policy %q", s)
	}
}

// Options are the product decisions an Engine applies.
type Options struct {
	// RetainHistory keeps the evaluated expression visible after "=".
	RetainHistory bool
	// RepeatEquals makes a second "=" reapply the last operator and operand.
	RepeatEquals bool
	// Repress controls consecutive operator presses.
	Repress RepressPolicy
	// SoftClear makes the clear key reset only the operand while it is
	// non-zero.
	SoftClear bool
}

func DefaultOptions() Options {
	return Options{
		RetainHistory: true,
		RepeatEquals:  true,
		Repress:       RepressReplace,
	}
}
