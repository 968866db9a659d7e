package display

import "go-chi-calculator/internal/engine"

// View is everything a front end needs to redraw the calculator.
type View struct {
	Display       string `json:"display"`
	Operand       string `json:"operand"`
	Expression    string `json:"expression"`
	Highlighted   string `json:"highlighted_operator,omitempty"`
	ClearLabel    string `json:"clear_label"`
	Indeterminate bool   `json:"indeterminate"`
}

func Render(s engine.State) View {
	return View{
		Display:       FormatNumber(s.Operand),
		Operand:       s.Operand,
		Expression:    FormatExpression(s.Expression),
		Highlighted:   s.Selected.String(),
		ClearLabel:    s.ClearLabel().String(),
		Indeterminate: s.Indeterminate(),
	}
}
