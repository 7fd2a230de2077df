// Package canvas projects a workflow graph and its selection state into a
// layered 2D diagram.
//
// # Overview
//
// [Render] is a pure function of its inputs: the same graph, selection and
// options always produce the same [Diagram]. Shells recompute the diagram
// after every state change and hand it to a sink (SVG, JSON, terminal) for
// drawing. Nothing in this package performs I/O.
//
// # Layers
//
// A diagram has four layers, drawn back to front:
//
//  1. Grid: a decorative tile pattern filling the frame.
//  2. Edges: one per connection whose endpoints both exist, running from
//     the right side of the source box to the left side of the target box,
//     with a round marker at the arrival point.
//  3. Nodes: a rounded box centered on the node position, filled and
//     stroked with the catalog color for its type, carrying a glyph and a
//     label. Selected and hovered nodes get stroke emphasis and CSS classes.
//  4. Inspector: an overlay describing the selected node, present only
//     while the selection resolves to a live node.
//
// Connections whose endpoints are missing are skipped silently. They stay
// in the graph and reappear if a node with the missing id is created.
//
// # Geometry
//
// Node boxes are [NodeWidth] × [NodeHeight] with [CornerRadius] corners.
// Edges stand off [NodeWidth]/2 from each center, so an edge between nodes
// at (100,200) and (300,200) runs from (160,200) to (240,200).
//
// The default frame is [DefaultWidth] × [DefaultHeight]. It grows to cover
// every node box plus one [GridSize] tile of margin. It never shrinks below
// the default.
//
// # Drawing
//
// [Draw] walks a diagram's grid, edge and node layers in order and issues
// primitive calls on a [Surface]. The inspector overlay is not drawn by
// [Draw]; sinks that show it render [Diagram.Inspector] themselves.
package canvas
