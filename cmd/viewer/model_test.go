package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/cfrsolver/internal/games/kuhn"
)

func TestReplayRebuildsNodeFromPath(t *testing.T) {
	root := kuhn.New()
	node := replay(root, []int{0, 0})
	if !node.IsTerminal() {
		t.Fatalf("bet->call should be terminal (showdown)")
	}
	if node.PublicInfoSet() != "Bet->Call" {
		t.Fatalf("PublicInfoSet = %q, want Bet->Call", node.PublicInfoSet())
	}
}

func TestModelUpdateDescendsAndBacksUp(t *testing.T) {
	root := kuhn.New()
	m := newModel(&testBlueprint, root)

	m.cursor = 0
	mm, _ := m.Update(keyMsg("enter"))
	m2 := mm.(*model)
	if len(m2.path) != 1 {
		t.Fatalf("path = %v, want length 1 after descending", m2.path)
	}

	mm, _ = m2.Update(keyMsg("backspace"))
	m3 := mm.(*model)
	if len(m3.path) != 0 {
		t.Fatalf("path = %v, want length 0 after backing up", m3.path)
	}
	if m3.node.PublicInfoSet() != root.PublicInfoSet() {
		t.Fatalf("node not restored to root after backing up")
	}
}

func TestModelSizesViewportFromWindowMsg(t *testing.T) {
	root := kuhn.New()
	m := newModel(&testBlueprint, root)
	if m.ready {
		t.Fatalf("model should not be ready before a WindowSizeMsg arrives")
	}

	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m2 := mm.(*model)
	if !m2.ready {
		t.Fatalf("model should be ready after a WindowSizeMsg")
	}
	if m2.vp.Width != 80 {
		t.Fatalf("viewport width = %d, want 80", m2.vp.Width)
	}
	if m2.vp.Height != 20 {
		t.Fatalf("viewport height = %d, want 20 (24 - 4 header rows)", m2.vp.Height)
	}
}
