// Package pkg provides the core libraries for treeviz decision-tree drawing.
//
// # Overview
//
// treeviz turns a decision tree (nodes with depths, labels and a leaf flag,
// plus parent→child edges marked true or false) into a drawing. The pkg
// directory is organized into three main areas:
//
//  1. [tree] - Domain model plus the pure layout and routing stages
//  2. [render] - Drawing commands and the output sinks
//  3. [pipeline] - Orchestration (build → render) with caching and hooks
//
// # Architecture
//
// The typical data flow through treeviz:
//
//	tree JSON document
//	         ↓
//	    [tree] package (decode, diagnose)
//	         ↓
//	    [tree/layout] package (one row per depth, evenly spaced slots)
//	         ↓
//	    [tree/route] package (one cubic curve per edge)
//	         ↓
//	    [render] package (ordered drawing commands)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Lay out a tree and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/treeviz/pkg/pipeline"
//	    "github.com/matzehuels/treeviz/pkg/render/sink"
//	    "github.com/matzehuels/treeviz/pkg/tree"
//	)
//
//	// 1. Decode the tree
//	t, _ := tree.ReadFile("tree.json")
//
//	// 2. Layout, route and emit commands
//	scene := pipeline.Build(t, 1200, nil)
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(scene, sink.WithLegend())
//
// # Main Packages
//
// ## Core Domain Logic
//
// [tree] - Node, Edge and Tree types, the JSON wire format and Diagnose,
// which reports input-contract violations without rejecting the tree.
//
// [tree/layout] - Assigns every node a centre: y from its depth, x from its
// slot among the nodes of equal depth, in declaration order.
//
// [tree/route] - Routes each edge as a cubic Bézier with vertical tangents
// and places the True/False label at the curve midpoint.
//
// [geom] - Points, rectangles and Bézier evaluation shared by all stages.
//
// ## Visualization
//
// [render] - Converts a laid-out tree into an ordered, backend-neutral
// command list (boxes, text lines, curves, edge labels) and its JSON form.
//
//   - [render/sink]: Output formats (SVG, PNG, PDF, JSON, Graphviz DOT)
//   - [render/theme]: Colour palettes, loadable from TOML
//
// [fonts] - Embedded font faces for PNG rasterisation.
//
// ## Infrastructure
//
// [pipeline] - Complete drawing pipeline (build → render) used by the CLI
// and the HTTP server. Ensures consistent behavior across all entry points.
//
// [cache] - Scene and artifact caching: FileCache (CLI), RedisCache
// (shared), NullCache (disabled).
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events,
// with a Prometheus implementation.
//
// [errors] - Coded errors and input validation.
//
// [buildinfo] - Version information injected at build time.
package pkg
