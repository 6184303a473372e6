package boundary

import (
	"slices"
	"strings"
)

// StyleLayer is one named layer of per-channel style values.
type StyleLayer struct {
	Name   string
	Values []float64
}

// StyleSpace is the ordered list of style layers produced by a generator.
type StyleSpace []StyleLayer

// Clone returns a deep copy of s.
func (s StyleSpace) Clone() StyleSpace {
	out := make(StyleSpace, len(s))
	for i, l := range s {
		out[i] = StyleLayer{Name: l.Name, Values: slices.Clone(l.Values)}
	}
	return out
}

// NumChannels returns the total channel count over all layers.
func (s StyleSpace) NumChannels() int {
	n := 0
	for _, l := range s {
		n += len(l.Values)
	}
	return n
}

// Names returns the layer names in order.
func (s StyleSpace) Names() []string {
	names := make([]string, len(s))
	for i, l := range s {
		names[i] = l.Name
	}
	return names
}

// Equal reports whether s and other have the same names and values.
func (s StyleSpace) Equal(other StyleSpace) bool {
	return slices.EqualFunc(s, other, func(a, b StyleLayer) bool {
		return a.Name == b.Name && slices.Equal(a.Values, b.Values)
	})
}

// SkipToRGB excludes the RGB output layers, which carry no channel bank rows.
func SkipToRGB(name string) bool {
	return strings.Contains(name, "torgb")
}

// LayoutEntry locates one style layer inside the flat channel index.
type LayoutEntry struct {
	Layer    int
	Name     string
	Channels int
	Offset   int
}

// Layout maps flat channel indices, as used by the channel bank rows, to
// style layers. Layers skipped when it was built have no flat indices.
type Layout struct {
	entries []LayoutEntry
	total   int
}

// LayoutOf builds the layout of s, omitting layers for which skip returns true.
// A nil skip keeps every layer.
func LayoutOf(s StyleSpace, skip func(name string) bool) Layout {
	var l Layout
	for i, layer := range s {
		if skip != nil && skip(layer.Name) {
			continue
		}
		l.entries = append(l.entries, LayoutEntry{
			Layer:    i,
			Name:     layer.Name,
			Channels: len(layer.Values),
			Offset:   l.total,
		})
		l.total += len(layer.Values)
	}
	return l
}

// Len returns the number of flat channels.
func (l Layout) Len() int {
	return l.total
}

// Entries returns a copy of the layout entries.
func (l Layout) Entries() []LayoutEntry {
	return slices.Clone(l.entries)
}

// Locate returns the style layer index and channel of flat index i.
func (l Layout) Locate(i int) (layer, channel int, ok bool) {
	if i < 0 || i >= l.total {
		return 0, 0, false
	}
	j, found := slices.BinarySearchFunc(l.entries, i, func(e LayoutEntry, target int) int {
		switch {
		case target < e.Offset:
			return 1
		case target >= e.Offset+e.Channels:
			return -1
		default:
			return 0
		}
	})
	if !found {
		return 0, 0, false
	}
	e := l.entries[j]
	return e.Layer, i - e.Offset, true
}

// Check verifies that s has the layer names and channel counts of l.
func (l Layout) Check(s StyleSpace) error {
	for _, e := range l.entries {
		if e.Layer >= len(s) {
			return &LayoutMismatchError{Layer: e.Name, Expected: e.Channels}
		}
		got := s[e.Layer]
		if got.Name != e.Name || len(got.Values) != e.Channels {
			return &LayoutMismatchError{Layer: e.Name, Expected: e.Channels, Actual: len(got.Values)}
		}
	}
	return nil
}
