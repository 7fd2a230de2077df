package workflow_test

import (
	"fmt"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

func ExampleGraph_basic() {
	g := workflow.New(catalog.Default())
	hook := g.CreateNode(catalog.TypeTrigger, workflow.Point{X: 100, Y: 200}, "Webhook")
	xf := g.CreateNode(catalog.TypeAction, workflow.Point{X: 300, Y: 200}, "")
	g.Connect(hook.ID, xf.ID)

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Connections:", g.ConnectionCount())
	fmt.Println("Default label:", xf.Label)
	// Output:
	// Nodes: 2
	// Connections: 1
	// Default label: Action
}

func ExampleGraph_Prune() {
	g := workflow.New(nil)
	a := g.CreateNode(catalog.TypeTrigger, workflow.Point{}, "")
	b := g.CreateNode(catalog.TypeOutput, workflow.Point{}, "")
	g.Connect(a.ID, b.ID)

	// Removing a node leaves the connection behind, invalid but retrievable.
	g.RemoveNode(b.ID)
	fmt.Println("Before prune:", g.ConnectionCount())
	fmt.Println("Pruned:", g.Prune())
	fmt.Println("After prune:", g.ConnectionCount())
	// Output:
	// Before prune: 1
	// Pruned: 1
	// After prune: 0
}
