// Package catalog is the static registry of presentation metadata for
// workflow node categories.
//
// A [Catalog] maps a type tag ("trigger", "action", ...) to an [Entry]
// carrying the display color, glyph and label. Catalogs are immutable once
// built: [New] copies its input and no method mutates the table afterwards.
//
// Lookup never fails. An unrecognized tag resolves to [Fallback], so the
// render layer can always draw a node whatever its type:
//
//	cat := catalog.Default()
//	cat.Lookup("trigger").Color // "#ff6b6b"
//	cat.Lookup("mystery").Color // Fallback.Color
package catalog

import "slices"

// Built-in type tags.
const (
	TypeTrigger     = "trigger"
	TypeAction      = "action"
	TypeIntegration = "integration"
	TypeOutput      = "output"
)

// Entry is the presentation metadata for one node category.
type Entry struct {
	Type  string `json:"type" toml:"type"`
	Color string `json:"color" toml:"color"`
	Glyph string `json:"glyph" toml:"glyph"`
	Label string `json:"label" toml:"label"`
}

// Fallback is returned by [Catalog.Lookup] for unknown tags.
// Its Color is used for strokes; FallbackFill is used for the box fill.
var Fallback = Entry{
	Color: "#666666",
	Glyph: "◆",
	Label: "Unknown",
}

// FallbackFill is the neutral fill for nodes of unknown type.
const FallbackFill = "#333333"

var builtins = []Entry{
	{Type: TypeTrigger, Color: "#ff6b6b", Glyph: "🎯", Label: "Trigger"},
	{Type: TypeAction, Color: "#4ecdc4", Glyph: "⚡", Label: "Action"},
	{Type: TypeIntegration, Color: "#45b7d1", Glyph: "🔗", Label: "Integration"},
	{Type: TypeOutput, Color: "#96ceb4", Glyph: "✓", Label: "Output"},
}

// Catalog is an ordered, read-only table of entries keyed by type tag.
// The zero value is an empty catalog; every lookup on it yields [Fallback].
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// New builds a catalog from entries in order. Entries with an empty Type are
// skipped. A later entry with the same tag replaces the earlier one in place,
// keeping the earlier position.
func New(entries ...Entry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.Type == "" {
			continue
		}
		if i, ok := c.index[e.Type]; ok {
			c.entries[i] = e
			continue
		}
		c.index[e.Type] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Default returns a catalog with the four built-in categories.
func Default() *Catalog { return New(builtins...) }

// Extend returns a new catalog holding the built-ins followed by extra.
// Extra entries may override built-in tags.
func Extend(extra ...Entry) *Catalog {
	return New(append(slices.Clone(builtins), extra...)...)
}

// Lookup returns the entry for tag, or [Fallback] when the tag is unknown.
// The returned Fallback carries the requested tag in its Type field.
func (c *Catalog) Lookup(tag string) Entry {
	if c != nil {
		if i, ok := c.index[tag]; ok {
			return c.entries[i]
		}
	}
	fb := Fallback
	fb.Type = tag
	return fb
}

// Known reports whether tag has an entry.
func (c *Catalog) Known(tag string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[tag]
	return ok
}

// Types returns the known tags in catalog order.
func (c *Catalog) Types() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Type
	}
	return out
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return slices.Clone(c.entries)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Fill returns the box fill color for tag: the entry color for known tags
// and [FallbackFill] otherwise.
func (c *Catalog) Fill(tag string) string {
	if c.Known(tag) {
		return c.Lookup(tag).Color
	}
	return FallbackFill
}
