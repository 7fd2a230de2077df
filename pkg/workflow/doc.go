// Package workflow provides the in-memory graph model behind the visual
// workflow editor.
//
// # Overview
//
// A [Graph] owns a set of typed, positioned [Node] values and a list of
// directed [Connection] records between node identifiers. It is the single
// owner of this data: accessors hand out copies, and every change goes
// through a Graph method.
//
// # Identifiers
//
// Node identifiers are issued from a monotonic counter starting at 1 and are
// never reused, even after the node is removed. [Graph.Seed] accepts
// caller-chosen identifiers and advances the counter past the largest one, so
// a later [Graph.CreateNode] cannot collide with a seeded node.
//
// # Lenient connections
//
// [Graph.Connect] does not check that its endpoints exist, and
// [Graph.RemoveNode] does not cascade. A connection whose endpoint is missing
// is "invalid": it stays in [Graph.Connections] but the render layer skips it.
// Callers that want the records gone invoke [Graph.Prune] explicitly.
//
// # Defensive mutation
//
// [Graph.UpdateNode] and [Graph.RemoveNode] on an unknown identifier are
// no-ops. The UI may race a delete against an edit and neither side should
// observe an error.
//
// # Concurrency
//
// Graph is not safe for concurrent use. The editor drives it from a single
// event loop; shells that share a Graph across goroutines must serialize
// access themselves.
package workflow
