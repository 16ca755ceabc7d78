// Package render turns a laid-out, routed decision tree into an ordered list
// of drawing commands.
//
// # Overview
//
// Rendering is the last pure stage of the tree pipeline. [Render] takes the
// tree, the node positions computed by [layout] and the curves computed by
// [route], and emits renderer-agnostic [Command] values:
//
//   - [Curve]: one cubic S-curve per routed edge
//   - [EdgeLabel]: the "True"/"False" label at the curve's midpoint
//   - [Box]: a 140x70 rounded box per node, styled [Leaf] or [Decision]
//   - [TextLine]: one line of the node label, the first line bold
//
// # Command Order
//
// All edge commands come first (Curve then EdgeLabel, in edge order), then
// all node commands (Box then its TextLines, in node declaration order).
// Painting the sequence in order leaves nodes drawn over edges. The order is
// part of the contract; identical input always yields an identical sequence.
//
// # Scenes
//
// A [Scene] bundles the commands with the canvas size. A nil or node-less
// tree produces an empty scene (Empty set, Message "No tree structure
// available") rather than an error, so callers can tell "nothing to draw"
// apart from a valid single-node tree.
//
// # Serialization
//
// [MarshalCommands] and [UnmarshalCommands] encode command lists as JSON
// objects tagged with a "type" field ("box", "text", "curve", "edge_label").
// Scenes marshal to {"empty", "message", "canvas", "commands"}.
//
// Backends that paint scenes (SVG, PNG, PDF, JSON, Graphviz) live in the
// [sink] subpackage; colours are chosen by [theme].
//
// [layout]: github.com/matzehuels/treeviz/pkg/tree/layout
// [route]: github.com/matzehuels/treeviz/pkg/tree/route
// [sink]: github.com/matzehuels/treeviz/pkg/render/sink
// [theme]: github.com/matzehuels/treeviz/pkg/render/theme
package render
