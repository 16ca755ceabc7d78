package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/layout"
)

func inspectTree() *tree.Tree {
	return &tree.Tree{
		Nodes: []tree.Node{
			{ID: "A", Depth: 0, Label: "X<=5\nsamples = 10"},
			{ID: "B", Depth: 1, Label: "class 0", IsLeaf: true},
			{ID: "C", Depth: 1, Label: "class 1", IsLeaf: true},
		},
		Edges: []tree.Edge{
			{From: "A", To: "B", Branch: tree.True},
			{From: "A", To: "C", Branch: tree.False},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m NodeListModel, keys ...string) NodeListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(NodeListModel)
	}
	return m
}

func TestNodeListNavigation(t *testing.T) {
	tr := inspectTree()
	m := NewNodeListModel(tr, layout.Compute(tr, 900), nil)

	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"start at root", nil, "A"},
		{"down", []string{"down"}, "B"},
		{"clamped at end", []string{"down", "down", "down", "down"}, "C"},
		{"clamped at start", []string{"up", "up"}, "A"},
		{"first child", []string{"enter"}, "B"},
		{"parent", []string{"G", "p"}, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := send(m, tt.keys...).current().ID
			if got != tt.want {
				t.Errorf("cursor on %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeListQuit(t *testing.T) {
	tr := inspectTree()
	m := NewNodeListModel(tr, layout.Compute(tr, 900), nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestNodeListView(t *testing.T) {
	tr := inspectTree()
	issues := []tree.Issue{{Kind: tree.IssueRootCount, Edge: -1, Message: "x"}}
	m := NewNodeListModel(tr, layout.Compute(tr, 900), issues)

	view := m.View()
	for _, want := range []string{"X<=5", "samples = 10", "(450, 80)", "True", "False", "1 issue(s)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	child := send(m, "down").View()
	if !strings.Contains(child, "parent A via True") {
		t.Error("child view should name its parent branch")
	}
}

func TestNodeListWindowResize(t *testing.T) {
	tr := inspectTree()
	m := NewNodeListModel(tr, layout.Compute(tr, 900), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if h := next.(NodeListModel).Height; h != 5 {
		t.Errorf("Height = %d, want minimum 5", h)
	}
}
