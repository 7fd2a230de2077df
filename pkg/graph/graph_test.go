package graph

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

func TestFromWorkflow(t *testing.T) {
	tests := []struct {
		name      string
		build     func() *workflow.Graph
		wantNodes int
		wantConns int
		check     func(t *testing.T, s Snapshot)
	}{
		{
			name:  "Empty",
			build: func() *workflow.Graph { return workflow.New(nil) },
		},
		{
			name: "KeepsDanglingConnections",
			build: func() *workflow.Graph {
				g := workflow.New(nil)
				a := g.CreateNode(catalog.TypeTrigger, workflow.Point{X: 1, Y: 2}, "")
				b := g.CreateNode(catalog.TypeAction, workflow.Point{X: 3, Y: 4}, "")
				g.Connect(a.ID, b.ID)
				g.RemoveNode(b.ID)
				return g
			},
			wantNodes: 1,
			wantConns: 1,
			check: func(t *testing.T, s Snapshot) {
				if s.Nodes[0] != (Node{ID: 1, Type: catalog.TypeTrigger, Label: "Trigger", X: 1, Y: 2}) {
					t.Errorf("node = %+v", s.Nodes[0])
				}
				if s.Connections[0] != (Connection{From: 1, To: 2}) {
					t.Errorf("connection = %+v", s.Connections[0])
				}
			},
		},
		{
			name:      "DefaultSeed",
			build:     func() *workflow.Graph { return DefaultSeed().Workflow(nil) },
			wantNodes: 4,
			wantConns: 3,
			check: func(t *testing.T, s Snapshot) {
				if s.Nodes[3].Icon != "📧" || s.Nodes[3].Label != "Send Email" {
					t.Errorf("node 4 = %+v", s.Nodes[3])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromWorkflow(tt.build())
			if got := len(s.Nodes); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := len(s.Connections); got != tt.wantConns {
				t.Errorf("connections = %d, want %d", got, tt.wantConns)
			}
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantConns int
		wantErr   bool
	}{
		{
			name: "Valid",
			input: `{
				"nodes": [
					{"id": 7, "type": "trigger", "label": "Webhook", "x": 100, "y": 200},
					{"id": 3, "type": "action", "label": "Transform", "x": 300, "y": 200, "icon": "⚡"}
				],
				"connections": [{"from": 7, "to": 3}]
			}`,
			wantNodes: 2,
			wantConns: 1,
		},
		{
			name:  "Empty",
			input: `{"nodes": [], "connections": []}`,
		},
		{
			name:      "UnknownTypeAllowed",
			input:     `{"nodes": [{"id": 1, "type": "mystery", "label": "?"}]}`,
			wantNodes: 1,
		},
		{
			name:    "ZeroID",
			input:   `{"nodes": [{"id": 0, "type": "action"}]}`,
			wantErr: true,
		},
		{
			name:    "NegativeID",
			input:   `{"nodes": [{"id": -1, "type": "action"}]}`,
			wantErr: true,
		},
		{
			name:    "IDAboveMax",
			input:   `{"nodes": [{"id": 1, "type": "trigger"}, {"id": 18446744073709551615, "type": "output"}]}`,
			wantErr: true,
		},
		{
			name:      "IDAtMax",
			input:     `{"nodes": [{"id": 9007199254740991, "type": "output"}]}`,
			wantNodes: 1,
		},
		{
			name:    "Invalid",
			input:   `{invalid json}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Read(strings.NewReader(tt.input))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidSeed) {
					t.Fatalf("error = %v, want INVALID_SEED", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if got := len(s.Nodes); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := len(s.Connections); got != tt.wantConns {
				t.Errorf("connections = %d, want %d", got, tt.wantConns)
			}
		})
	}
}

func TestApplyAdvancesIDs(t *testing.T) {
	s, err := Unmarshal([]byte(`{"nodes": [{"id": 7, "type": "trigger", "label": "W"}, {"id": 3, "type": "action", "label": "T"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	g := s.Workflow(nil)

	n := g.CreateNode(catalog.TypeOutput, workflow.Point{}, "")
	if n.ID != 8 {
		t.Errorf("new id = %d, want 8", n.ID)
	}
	var ids []workflow.NodeID
	for n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	if !slices.Equal(ids, []workflow.NodeID{7, 3, 8}) {
		t.Errorf("ids = %v", ids)
	}
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := WriteFile(DefaultSeed(), path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	g := s.Workflow(nil)
	if g.NodeCount() != 4 || g.ConnectionCount() != 3 {
		t.Errorf("graph = %d nodes, %d connections", g.NodeCount(), g.ConnectionCount())
	}
	n, _ := g.Node(3)
	if n.Label != "API Call" || n.Icon != "🔗" || n.Position != (workflow.Point{X: 500, Y: 200}) {
		t.Errorf("node 3 = %+v", n)
	}
}

func TestReadFileErrors(t *testing.T) {
	if _, err := ReadFile("nonexistent.json"); err == nil {
		t.Error("expected error for nonexistent file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(path)
	if !errors.Is(err, errors.ErrCodeInvalidSeed) {
		t.Errorf("error = %v, want INVALID_SEED", err)
	}
	if !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestWriteEmptyArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(Snapshot{}, &buf); err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["nodes"]) != "[]" || string(raw["connections"]) != "[]" {
		t.Errorf("empty snapshot = %s", buf.String())
	}
}
