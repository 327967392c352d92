package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/cfrsolver/sdk/solver"
)

var testBlueprint = solver.Blueprint{
	Game:       solver.GameKuhn,
	Iterations: 100,
	Strategies: solver.AverageStrategy{},
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
