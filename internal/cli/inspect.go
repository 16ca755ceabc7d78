package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the interactive node browser.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [tree.json]",
		Short: "Browse the nodes of a decision tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, issues, err := c.loadTree(cmd, args[0])
			if err != nil {
				return fmt.Errorf("load tree %s: %w", args[0], err)
			}
			if t.IsEmpty() {
				newPrinter(cmd).info("No tree structure available")
				return nil
			}

			model := NewNodeListModel(t, layout.Compute(t, c.Config.Render.Width), issues)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}
}

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// nodeLink is an edge seen from one of its endpoints.
type nodeLink struct {
	ID     string
	Branch tree.Branch
}

// NodeListModel is the bubbletea model for browsing tree nodes.
type NodeListModel struct {
	Nodes  []tree.Node
	Layout layout.Result
	Issues []tree.Issue
	Cursor int
	Height int
	Offset int

	parents  map[string]nodeLink
	children map[string][]nodeLink
}

// NewNodeListModel creates a node browser over t.
func NewNodeListModel(t *tree.Tree, l layout.Result, issues []tree.Issue) NodeListModel {
	m := NodeListModel{
		Nodes:    t.Nodes,
		Layout:   l,
		Issues:   issues,
		Height:   12,
		parents:  make(map[string]nodeLink),
		children: make(map[string][]nodeLink),
	}
	for _, e := range t.Edges {
		m.parents[e.To] = nodeLink{ID: e.From, Branch: e.Branch}
		m.children[e.From] = append(m.children[e.From], nodeLink{ID: e.To, Branch: e.Branch})
	}
	return m
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.move(-1)
		case "down", "j":
			m = m.move(1)
		case "home", "g":
			m = m.move(-len(m.Nodes))
		case "end", "G":
			m = m.move(len(m.Nodes))
		case "p":
			if parent, ok := m.parents[m.current().ID]; ok {
				m = m.jump(parent.ID)
			}
		case "enter", "l":
			if kids := m.children[m.current().ID]; len(kids) > 0 {
				m = m.jump(kids[0].ID)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 14
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the list, keeping it visible.
func (m NodeListModel) move(delta int) NodeListModel {
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor > len(m.Nodes)-1 {
		m.Cursor = len(m.Nodes) - 1
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

// jump moves the cursor to the first node with the given id.
func (m NodeListModel) jump(id string) NodeListModel {
	for i, n := range m.Nodes {
		if n.ID == id {
			return m.move(i - m.Cursor)
		}
	}
	return m
}

func (m NodeListModel) current() tree.Node {
	if len(m.Nodes) == 0 {
		return tree.Node{}
	}
	return m.Nodes[m.Cursor]
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Decision Tree"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d nodes · canvas %s × %s",
		len(m.Nodes), formatCoord(m.Layout.Canvas.Width), formatCoord(m.Layout.Canvas.Height))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ first child  p parent  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Nodes) {
		end = len(m.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		kind := "decision"
		if n.IsLeaf {
			kind = "leaf"
		}
		indent := strings.Repeat("  ", max(n.Depth, 0))
		rows = append(rows, []string{cursor, indent + n.ID, strconv.Itoa(n.Depth), kind, n.Lines()[0]})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Depth", "Kind", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Nodes) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if m.Nodes[actualIdx].IsLeaf {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))
	if len(m.Issues) > 0 {
		b.WriteString("  ")
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%d issue(s)", len(m.Issues))))
	}

	return b.String()
}

// detail describes the selected node: full label, position and neighbours.
func (m NodeListModel) detail() string {
	n := m.current()
	var b strings.Builder

	for i, line := range n.Lines() {
		if i == 0 {
			b.WriteString("  " + StyleValue.Bold(true).Render(line) + "\n")
			continue
		}
		b.WriteString("  " + StyleValue.Render(line) + "\n")
	}
	if p, ok := m.Layout.Positions[n.ID]; ok {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  at (%s, %s)", formatCoord(p.X), formatCoord(p.Y))))
		b.WriteString("\n")
	}
	if parent, ok := m.parents[n.ID]; ok {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  parent %s via %s", parent.ID, parent.Branch.Label())))
		b.WriteString("\n")
	}
	for _, kid := range m.children[n.ID] {
		style := StyleSuccess
		if kid.Branch == tree.False {
			style = lipgloss.NewStyle().Foreground(colorRed)
		}
		b.WriteString("  " + style.Render(kid.Branch.Label()) + " " + iconArrow + " " + kid.ID + "\n")
	}
	return b.String()
}
