package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-chi-calculator/internal/display"
)

const screenWidth = 23

var (
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			Width(screenWidth).
			Align(lipgloss.Right)
	expressionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	displayStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	buttonStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).MarginRight(1)
	operatorStyle = buttonStyle.Foreground(lipgloss.Color("170"))
	selectedStyle = operatorStyle.Reverse(true)
)

var keypad = [][]string{
	{"", "CE", "⌫", "÷"},
	{"7", "8", "9", "×"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"0", ".", "="},
}

// render draws the calculator, centred in width when width is known.
func render(v display.View, status, helpView string, width int) string {
	var b strings.Builder

	value := displayStyle.Render(v.Display)
	if v.Indeterminate {
		value = errorStyle.Render(v.Display)
	}
	b.WriteString(screenStyle.Render(expressionStyle.Render(v.Expression) + "\n" + value))
	b.WriteString("\n")

	for _, row := range keypad {
		cells := make([]string, 0, len(row))
		for _, label := range row {
			if label == "" {
				label = v.ClearLabel
			}
			cells = append(cells, button(label, v.Highlighted))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	if status != "" {
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n")
	}
	b.WriteString(helpView)

	if width <= 0 {
		return b.String()
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func button(label, highlighted string) string {
	switch {
	case label == highlighted:
		return selectedStyle.Render(label)
	case strings.ContainsAny(label, "+-×÷="):
		return operatorStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}
