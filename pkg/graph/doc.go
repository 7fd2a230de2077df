// Package graph provides the wire format for workflow graphs.
//
// This package defines the JSON shape flowboard uses for seed files, the
// editor's export command, and the HTTP session API. It converts between
// that shape and the in-memory [workflow.Graph].
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Snapshot]: Serialization type (this package)
//   - pkg/workflow.Graph: Internal graph representation
//
// Use [FromWorkflow] and [Snapshot.Apply] to convert between them.
//
// # Format
//
//	{
//	  "nodes": [{"id": 1, "type": "trigger", "label": "Webhook", "x": 100, "y": 200, "icon": "🎯"}],
//	  "connections": [{"from": 1, "to": 2}]
//	}
//
// Node ids are caller-chosen positive integers. Seeding a graph advances its
// id counter past the largest seeded id, so newly created nodes never collide
// with seeded ones. Connections are written as stored, including those whose
// endpoints no longer exist.
//
// Common operations:
//
//	s, _ := graph.ReadFile("seed.json")      // File → Snapshot
//	g := s.Workflow(nil)                     // Snapshot → Graph
//	graph.WriteFile(graph.FromWorkflow(g), "out.json")
//
// # Default Seed
//
// [DefaultSeed] is the four-node demo workflow (Webhook → Transform →
// API Call → Send Email) shells start from when no seed file is given.
//
// [workflow.Graph]: github.com/matzehuels/flowboard/pkg/workflow.Graph
package graph
