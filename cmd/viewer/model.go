package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/cfrsolver/internal/cfrgame"
	"github.com/lox/cfrsolver/internal/equity"
	"github.com/lox/cfrsolver/internal/games/kuhn"
	"github.com/lox/cfrsolver/internal/games/preflop"
	"github.com/lox/cfrsolver/internal/games/pushfold"
	"github.com/lox/cfrsolver/sdk/solver"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	breadcrumbSty = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedSty   = lipgloss.NewStyle().Bold(true).Underline(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// model is the bubbletea model driving the viewer: it tracks the path
// of actions chosen so far, plays forward from the current node when
// descending and re-derives the current node from the root when backing
// up, mirroring how the solver itself never materialises the full tree.
type model struct {
	bp   *solver.Blueprint
	root cfrgame.Node
	path []int
	node cfrgame.Node

	cursor int

	vp    viewport.Model
	ready bool
}

func newModel(bp *solver.Blueprint, root cfrgame.Node) *model {
	return &model{bp: bp, root: root, node: root, vp: viewport.New(0, 0)}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// headerHeight accounts for the title line, the breadcrumb,
		// the blank separator line, and the trailing help line rendered
		// outside the viewport's own content in View.
		const headerHeight = 4
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - headerHeight
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if !m.node.IsTerminal() && m.cursor < m.node.NumActions()-1 {
				m.cursor++
			}
			return m, nil

		case "right", "enter", "l":
			if !m.node.IsTerminal() {
				m.path = append(m.path, m.cursor)
				m.node = m.node.Play(m.cursor)
				m.cursor = 0
			}
			return m, nil

		case "left", "backspace", "h":
			if len(m.path) > 0 {
				m.path = m.path[:len(m.path)-1]
				m.node = replay(m.root, m.path)
				m.cursor = 0
			}
			return m, nil

		case "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// replay rebuilds the node at the end of path by walking it from
// root, the same re-derivation the solver's traversal relies on.
func replay(root cfrgame.Node, path []int) cfrgame.Node {
	node := root
	for _, action := range path {
		node = node.Play(action)
	}
	return node
}

func (m *model) View() string {
	var header strings.Builder
	fmt.Fprintf(&header, "%s\n", headerStyle.Render(fmt.Sprintf(
		"%s blueprint  |  %d iterations  |  EV(p0)=%.4f  |  exploitability=%.4f",
		m.bp.Game, m.bp.Iterations, m.bp.EVPlayerZero, m.bp.Exploitability)))
	header.WriteString(breadcrumbSty.Render(breadcrumb(m.root, m.path)))

	var body strings.Builder
	if m.node.IsTerminal() {
		body.WriteString("terminal node (no further decisions)\n")
	} else {
		info := m.bp.Strategy(m.node)
		actions := m.node.NumActions()

		body.WriteString("actions at this node:\n")
		for a := 0; a < actions; a++ {
			line := fmt.Sprintf("  [%d] %s", a, actionLabel(m.node, a))
			if a == m.cursor {
				line = selectedSty.Render(line)
			}
			body.WriteString(line + "\n")
		}
		body.WriteString("\n")

		if m.node.PrivateInfoSetLen() == equity.NumHands {
			body.WriteString(renderGrid(solver.Summarize(info), m.cursor))
		} else {
			body.WriteString(renderBars(info, m.node))
		}
	}

	help := helpStyle.Render("up/down: select action  enter: descend  backspace: up a level  pgup/pgdown: scroll  q: quit")

	if !m.ready {
		// No WindowSizeMsg yet (e.g. output piped to a file): fall back
		// to unpaginated plain output rather than blocking on a size
		// that will never arrive.
		return header.String() + "\n\n" + body.String() + "\n" + help
	}

	m.vp.SetContent(body.String())
	return header.String() + "\n\n" + m.vp.View() + "\n" + help
}

func breadcrumb(root cfrgame.Node, path []int) string {
	if len(path) == 0 {
		return "(root)"
	}
	node := root
	parts := make([]string, 0, len(path))
	for _, a := range path {
		parts = append(parts, actionLabel(node, a))
		node = node.Play(a)
	}
	return strings.Join(parts, " -> ")
}

// actionLabel names action a at node in terms the game itself uses,
// type-switching since cfrgame.Node carries no action-naming contract.
func actionLabel(node cfrgame.Node, a int) string {
	switch node.(type) {
	case kuhn.Node:
		// Kuhn's action meaning depends on context; PublicInfoSet after
		// playing is the least ambiguous label.
		return node.Play(a).PublicInfoSet()
	case pushfold.Node:
		if a == 0 {
			return "Fold"
		}
		return "Push/Call"
	case preflop.Node:
		names := []string{"Fold", "Call", "3x", "4x", "All-in"}
		actions := node.NumActions()
		if a == actions-1 && a >= 2 {
			return "All-in"
		}
		if a < len(names) {
			return names[a]
		}
		return fmt.Sprintf("action %d", a)
	default:
		return fmt.Sprintf("action %d", a)
	}
}

// renderBars renders a compact per-hand strategy table for games whose
// private-hand space is small enough to list directly (Kuhn's three
// cards), rather than the 13x13 grid used for the equity-backed games.
func renderBars(sigma [][]float64, node cfrgame.Node) string {
	var b strings.Builder
	hands := node.PrivateInfoSetLen()
	names := []string{"Jack", "Queen", "King"}
	for h := 0; h < hands; h++ {
		label := fmt.Sprintf("hand %d", h)
		if h < len(names) {
			label = names[h]
		}
		fmt.Fprintf(&b, "  %-6s", label)
		for a := range sigma {
			fmt.Fprintf(&b, " %s=%.2f", actionLabel(node, a), sigma[a][h])
		}
		b.WriteString("\n")
	}
	return b.String()
}
