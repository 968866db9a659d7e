package calculator

import (
	"go-chi-calculator/internal/display"
	"go-chi-calculator/internal/history"
)

// SessionResponse is returned when a session is created or read.
type SessionResponse struct {
	ID   string       `json:"id"`
	View display.View `json:"view"`
}

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Keys []string `json:"keys"` // e.g. ["2", "+", "3", "="]
}

// KeysResponse is the view after all keys were applied.
type KeysResponse struct {
	ID      string       `json:"id"`
	View    display.View `json:"view"`
	Ignored []IgnoredKey `json:"ignored,omitempty"`
}

// IgnoredKey is a key that was a no-op because the expression it would
// have produced could not be evaluated.
type IgnoredKey struct {
	Index  int    `json:"index"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"` // e.g. "2 + 3 × 4"
}

// EvaluateResponse carries the result of a stateless evaluation. Result is
// omitted when the value is not finite, since JSON has no Inf or NaN.
type EvaluateResponse struct {
	Expression    string   `json:"expression"`
	Display       string   `json:"display"`
	Result        *float64 `json:"result,omitempty"`
	Indeterminate bool     `json:"indeterminate"`
}

// HistoryResponse lists the recorded evaluations of a session, newest first.
type HistoryResponse struct {
	ID      string          `json:"id"`
	Entries []history.Entry `json:"entries"`
}
