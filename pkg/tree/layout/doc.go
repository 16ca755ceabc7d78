// Package layout places decision-tree nodes on a fixed level grid.
//
// # Overview
//
// Layout is the first stage of the tree drawing pipeline. It assigns every
// node a centre point and sizes the canvas to the tree's shape:
//
//   - y depends only on depth: TopMargin + depth*LevelSpacing
//   - x divides the available width into levelCount+1 equal gaps and puts the
//     i-th node of a level (1-indexed) at width/(levelCount+1)*i
//   - canvas height is max(MinHeight, (maxDepth+1)*CanvasLevelHeight)
//   - canvas width is max(availableWidth, MinWidth)
//
// # Slot Order
//
// Within a level, nodes keep the order in which they appear in [tree.Tree.Nodes].
// Producers that want left children drawn left of right children must emit
// them in that order. The engine never reorders, so the same input always
// yields the same positions.
//
// # Depth
//
// Depth is trusted input. An edge whose child is not exactly one level below
// its parent still lays out; use [tree.Diagnose] to detect it.
//
// # Options
//
//   - [WithTopMargin]: y of the root level (default 80)
//   - [WithLevelSpacing]: vertical distance between levels (default 120)
//   - [WithCanvasLevelHeight]: per-level canvas allowance (default 150)
//   - [WithMinHeight]: canvas height floor (default 600)
//   - [WithMinWidth]: canvas width floor and unknown-width fallback (default 1200)
package layout
