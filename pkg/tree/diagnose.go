package tree

import "fmt"

// IssueKind classifies a structural problem found by Diagnose.
type IssueKind string

// Issue kinds.
const (
	IssueDuplicateID       IssueKind = "duplicate_id"
	IssueNegativeDepth     IssueKind = "negative_depth"
	IssueDanglingEdge      IssueKind = "dangling_edge"
	IssueInconsistentDepth IssueKind = "inconsistent_depth"
	IssueMultipleParents   IssueKind = "multiple_parents"
	IssueRootCount         IssueKind = "root_count"
	IssueDeclaredDepth     IssueKind = "declared_depth"
)

// Issue describes one violation of the input contract.
type Issue struct {
	Kind    IssueKind
	NodeID  string // offending node, if any
	Edge    int    // offending edge index, or -1
	Message string
}

func (i Issue) String() string { return fmt.Sprintf("%s: %s", i.Kind, i.Message) }

// Diagnose lists contract violations in t without changing it.
//
// Layout and rendering tolerate every issue reported here; Diagnose exists so
// callers can log or surface them. An empty tree has no issues.
func Diagnose(t *Tree) []Issue {
	if t.IsEmpty() {
		return nil
	}

	var issues []Issue
	byID := make(map[string]Node, len(t.Nodes))
	for _, n := range t.Nodes {
		if _, dup := byID[n.ID]; dup {
			issues = append(issues, Issue{
				Kind: IssueDuplicateID, NodeID: n.ID, Edge: -1,
				Message: fmt.Sprintf("node id %q declared more than once", n.ID),
			})
			continue
		}
		byID[n.ID] = n
		if n.Depth < 0 {
			issues = append(issues, Issue{
				Kind: IssueNegativeDepth, NodeID: n.ID, Edge: -1,
				Message: fmt.Sprintf("node %q has depth %d", n.ID, n.Depth),
			})
		}
	}

	parents := make(map[string]int)
	for i, e := range t.Edges {
		from, okF := byID[e.From]
		to, okT := byID[e.To]
		if !okF || !okT {
			issues = append(issues, Issue{
				Kind: IssueDanglingEdge, Edge: i,
				Message: fmt.Sprintf("edge %s->%s references an unknown node", e.From, e.To),
			})
			continue
		}
		parents[e.To]++
		if to.Depth != from.Depth+1 {
			issues = append(issues, Issue{
				Kind: IssueInconsistentDepth, NodeID: to.ID, Edge: i,
				Message: fmt.Sprintf("edge %s->%s goes from depth %d to %d", e.From, e.To, from.Depth, to.Depth),
			})
		}
	}

	roots := 0
	seen := make(map[string]bool, len(byID))
	for _, n := range t.Nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		switch parents[n.ID] {
		case 0:
			roots++
		case 1:
		default:
			issues = append(issues, Issue{
				Kind: IssueMultipleParents, NodeID: n.ID, Edge: -1,
				Message: fmt.Sprintf("node %q has %d parents", n.ID, parents[n.ID]),
			})
		}
	}
	if roots != 1 {
		issues = append(issues, Issue{
			Kind: IssueRootCount, Edge: -1,
			Message: fmt.Sprintf("expected exactly one root, found %d", roots),
		})
	}

	if t.DeclaredDepth != nil && *t.DeclaredDepth != t.MaxDepth() {
		issues = append(issues, Issue{
			Kind: IssueDeclaredDepth, Edge: -1,
			Message: fmt.Sprintf("max_depth is %d but deepest node is at %d", *t.DeclaredDepth, t.MaxDepth()),
		})
	}

	return issues
}
