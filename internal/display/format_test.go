package display

import (
	"testing"

	"go-chi-calculator/internal/engine"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "999", want: "999"},
		{in: "1000", want: "1,000"},
		{in: "1234567", want: "1,234,567"},
		{in: "-1234567.891", want: "-1,234,567.891"},
		{in: "1234.", want: "1,234."},
		{in: "0.0001", want: "0.0001"},
		{in: "", want: ""},
		{in: "-", want: "-"},
		{in: "Infinity", want: "Infinity"},
		{in: "NaN", want: "NaN"},
		{in: "1e+21", want: "1e+21"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := FormatNumber(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatExpression(t *testing.T) {
	tokens, err := engine.ParseExpression("12345 × 2 - 1000.5")
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}

	want := "12,345 × 2 - 1,000.5"
	if got := FormatExpression(tokens); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := FormatExpressionString("12345 × 2 - 1000.5"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := FormatExpressionString(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestRender(t *testing.T) {
	e := engine.New(engine.DefaultOptions())

	s, err := e.PressAll(engine.NewState(), "1", "2", "0", "0", "+", "3")
	if err != nil {
		t.Fatalf("pressing keys: %v", err)
	}
	v := Render(s)

	if v.Display != "3" || v.Expression != "1,200 +" {
		t.Fatalf("unexpected view %+v", v)
	}
	if v.Highlighted != "" {
		t.Fatalf("expected no highlighted operator once typing, got %q", v.Highlighted)
	}
	if got := Render(mustPress(t, e, "1", "+")).Highlighted; got != "+" {
		t.Fatalf("expected highlighted %q, got %q", "+", got)
	}
	if v.ClearLabel != "C" {
		t.Fatalf("expected clear label %q, got %q", "C", v.ClearLabel)
	}

	if got := Render(engine.NewState()); got.ClearLabel != "AC" || got.Display != "0" || got.Highlighted != "" {
		t.Fatalf("unexpected initial view %+v", got)
	}
}

func mustPress(t *testing.T, e engine.Engine, keys ...string) engine.State {
	t.Helper()
	s, err := e.PressAll(engine.NewState(), keys...)
	if err != nil {
		t.Fatalf("pressing %q: %v", keys, err)
	}
	return s
}

func TestRenderIndeterminate(t *testing.T) {
	e := engine.New(engine.DefaultOptions())

	s, _ := e.PressAll(engine.NewState(), "6", "÷", "0", "=")
	v := Render(s)

	if !v.Indeterminate || v.Display != "Infinity" {
		t.Fatalf("unexpected view %+v", v)
	}
	if v.Expression != "6 ÷ 0" {
		t.Fatalf("expected expression %q, got %q", "6 ÷ 0", v.Expression)
	}
}
