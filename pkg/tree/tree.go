package tree

import (
	"strings"
)

// Branch tells which side of a split condition an edge represents.
type Branch bool

// Branch values.
const (
	True  Branch = true
	False Branch = false
)

// String returns "true" or "false".
func (b Branch) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Label returns the display text for the branch: "True" or "False".
func (b Branch) Label() string {
	if b {
		return "True"
	}
	return "False"
}

// ParseBranch converts a wire value to a Branch.
// "true" and "left" (the producer's name for the true side) map to True,
// case-insensitively. Every other value maps to False.
func ParseBranch(s string) Branch {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "left":
		return True
	default:
		return False
	}
}

// Node is a single decision or leaf node.
type Node struct {
	ID     string `json:"id"`
	Depth  int    `json:"depth"`
	Label  string `json:"label"`
	IsLeaf bool   `json:"is_leaf"`
}

// Lines splits the label into display lines.
// An empty label yields a single empty line.
func (n Node) Lines() []string {
	lines := strings.Split(n.Label, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Edge connects a parent to one of its children.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Branch Branch `json:"branch"`
}

// Tree is a complete decision-tree description.
type Tree struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	// DeclaredDepth is the max_depth reported by the producer, if any.
	// Layout derives depth from the nodes; this value is only cross-checked
	// by Diagnose.
	DeclaredDepth *int `json:"max_depth,omitempty"`
}

// IsEmpty reports whether t is nil or has no nodes.
func (t *Tree) IsEmpty() bool {
	return t == nil || len(t.Nodes) == 0
}

// MaxDepth returns the largest node depth, or 0 for an empty tree.
func (t *Tree) MaxDepth() int {
	if t.IsEmpty() {
		return 0
	}
	d := t.Nodes[0].Depth
	for _, n := range t.Nodes[1:] {
		d = max(d, n.Depth)
	}
	return d
}

// Node returns the first node with the given ID.
func (t *Tree) Node(id string) (Node, bool) {
	if t == nil {
		return Node{}, false
	}
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Levels groups nodes by depth, preserving declaration order inside each level.
func (t *Tree) Levels() map[int][]Node {
	levels := make(map[int][]Node)
	if t == nil {
		return levels
	}
	for _, n := range t.Nodes {
		levels[n.Depth] = append(levels[n.Depth], n)
	}
	return levels
}

// LeafCount returns the number of nodes flagged as leaves.
func (t *Tree) LeafCount() int {
	if t == nil {
		return 0
	}
	count := 0
	for _, n := range t.Nodes {
		if n.IsLeaf {
			count++
		}
	}
	return count
}
