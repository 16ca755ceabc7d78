// Package tree defines the decision-tree description consumed by the layout
// and rendering packages.
//
// A [Tree] is a flat list of [Node] records plus parent→child [Edge] records.
// Every edge carries a [Branch] telling which side of the parent's split
// condition it represents. The producer (the model training service) assigns
// node depths; this package never recomputes them.
//
// # Input contract
//
// Trees are treated as finished, trusted values:
//
//   - Node IDs are expected to be unique.
//   - Exactly one node (the root, depth 0) should have no incoming edge.
//   - For every edge, to.Depth == from.Depth+1.
//
// None of these are enforced. Consumers tolerate violations: edges pointing at
// unknown nodes are skipped and declared depths are used as-is. Use [Diagnose]
// to list violations when they are worth reporting.
//
// # Empty trees
//
// A nil *Tree and a tree with no nodes are both "empty" ([Tree.IsEmpty]).
// A tree holding only a root is not empty and lays out as a single node.
//
// # JSON
//
// [Read] and [Write] use the wire shape emitted by the training service:
//
//	{
//	  "nodes": [{"id": "0", "depth": 0, "label": "petal width <= 0.8\ngini = 0.667", "is_leaf": false}],
//	  "edges": [{"from": "0", "to": "1", "branch": "true"}],
//	  "max_depth": 3
//	}
//
// The branch may also be given as a JSON boolean, or under the older "label"
// key with the values "left" (true side) and "right" (false side).
package tree
