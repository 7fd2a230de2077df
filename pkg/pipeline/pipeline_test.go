package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/flowboard/pkg/cache"
	"github.com/matzehuels/flowboard/pkg/editor"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
)

func newSession() *editor.Session {
	return editor.New(nil, editor.WithSeed(graph.DefaultSeed()))
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options: %v", err)
	}
	if o.VizType != DefaultVizType || o.Theme != DefaultTheme || o.Scale != DefaultScale {
		t.Errorf("defaults not applied: %+v", o)
	}
	if len(o.Formats) != 1 || o.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"viz", Options{VizType: "tower"}, errors.ErrCodeInvalidVizType},
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"dot on canvas", Options{Formats: []string{"dot"}}, errors.ErrCodeInvalidFormat},
		{"json on nodelink", Options{VizType: "nodelink", Formats: []string{"json"}}, errors.ErrCodeInvalidFormat},
		{"theme", Options{Theme: "solarized"}, errors.ErrCodeInvalidTheme},
		{"size", Options{Width: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestCacheable(t *testing.T) {
	tests := []struct {
		viz, format string
		want        bool
	}{
		{"canvas", "svg", false},
		{"canvas", "json", false},
		{"canvas", "png", true},
		{"canvas", "pdf", true},
		{"nodelink", "dot", true},
		{"nodelink", "svg", true},
	}
	for _, tt := range tests {
		o := Options{VizType: tt.viz}
		if got := o.Cacheable(tt.format); got != tt.want {
			t.Errorf("Cacheable(%s/%s) = %v, want %v", tt.viz, tt.format, got, tt.want)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{VizType: "canvas", Theme: "light", Interactive: true, Scale: 3}
	k := o.ArtifactKeyOpts("svg")
	if k.Theme != "light" || !k.Interactive || k.Scale != 0 {
		t.Errorf("svg key opts = %+v", k)
	}
	if o.ArtifactKeyOpts("png").Scale != 3 {
		t.Error("png key should carry the scale")
	}

	n := Options{VizType: "nodelink", Theme: "light", Detailed: true}
	if k := n.ArtifactKeyOpts("dot"); k.Theme != "" || !k.Detailed {
		t.Errorf("nodelink key opts = %+v", k)
	}
}

func TestExecuteCanvas(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), newSession(), Options{Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.HasPrefix(res.Artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg artifact starts with %q", res.Artifacts["svg"][:min(20, len(res.Artifacts["svg"]))])
	}
	var d map[string]any
	if err := json.Unmarshal(res.Artifacts["json"], &d); err != nil {
		t.Errorf("json artifact: %v", err)
	}
	if res.Stats.NodeCount != 4 || res.Stats.EdgeCount != 3 {
		t.Errorf("stats = %+v, want 4 nodes 3 edges", res.Stats)
	}
	if res.SourceHash == "" {
		t.Error("SourceHash empty")
	}
	if res.CacheInfo.AllHit() {
		t.Error("NullCache produced hits")
	}
}

func TestSourceHashTracksSelection(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	s := newSession()
	opts := Options{}

	before, err := r.Project(s, &opts)
	if err != nil {
		t.Fatal(err)
	}
	s.Apply(editor.Click(2))
	after, err := r.Project(s, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if before.Hash == after.Hash {
		t.Error("selection change did not change the diagram hash")
	}
}

func TestExecuteNodelinkDOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), newSession(), Options{VizType: "nodelink", Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	dot := string(res.Artifacts["dot"])
	if !strings.HasPrefix(dot, "digraph") || !strings.Contains(dot, "1 -> 2;") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestRunnerCachesExpensiveFormats(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()
	s := newSession()
	opts := Options{VizType: "nodelink", Formats: []string{"dot"}}

	first, err := r.Execute(ctx, s, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hits["dot"] {
		t.Error("first run hit the cache")
	}

	second, err := r.Execute(ctx, s, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.AllHit() {
		t.Error("second run missed the cache")
	}
	if !bytes.Equal(first.Artifacts["dot"], second.Artifacts["dot"]) {
		t.Error("cached artifact differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, s, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hits["dot"] {
		t.Error("refresh run read from the cache")
	}
}

func TestRunnerSkipsCacheForCheapFormats(t *testing.T) {
	rec := &recordingCache{}
	r := NewRunner(rec, nil, nil)
	if _, err := r.Execute(context.Background(), newSession(), Options{Formats: []string{"svg", "json"}}); err != nil {
		t.Fatal(err)
	}
	if rec.gets != 0 || rec.sets != 0 {
		t.Errorf("cache touched: %d gets, %d sets", rec.gets, rec.sets)
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(ctx, newSession(), Options{}); err == nil {
		t.Error("cancelled context rendered")
	}
}

type recordingCache struct {
	cache.NullCache
	gets, sets int
}

func (c *recordingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	return nil, false, nil
}

func (c *recordingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return nil
}
