package syntax

import (
	"sort"
	"strings"
)

// Fragment represents verbatim source text with the rewritable spans found in it
type Fragment struct {
	Text  string
	Paths []*Path        // qualified paths, in document order
	Uses  []*EmbeddedUse // use declarations nested in the text (e.g. inside a function body)
}

// EmbeddedUse represents a use declaration nested inside a verbatim fragment
type EmbeddedUse struct {
	Vis     string
	Tree    UseTree
	Start   int
	End     int
	changed bool
	removed bool
}

// Replace sets a new tree for the declaration
func (u *EmbeddedUse) Replace(tree UseTree) {
	u.Tree = tree
	u.changed = true
}

// Remove drops the declaration from the rendered fragment
func (u *EmbeddedUse) Remove() {
	u.removed = true
	u.changed = true
}

// Removed reports whether the declaration was dropped
func (u *EmbeddedUse) Removed() bool {
	return u.removed
}

func (u *EmbeddedUse) String() string {
	if u.removed {
		return ""
	}
	return u.Vis + "use " + u.Tree.String() + ";"
}

// String renders the fragment, applying changed spans only
func (f *Fragment) String() string {
	type edit struct {
		start, end int
		text       string
	}
	var edits []edit
	for _, p := range f.Paths {
		if p.Changed() {
			edits = append(edits, edit{start: p.Start, end: p.End, text: p.String()})
		}
	}
	for _, u := range f.Uses {
		if u.changed {
			edits = append(edits, edit{start: u.Start, end: u.End, text: u.String()})
		}
	}
	if len(edits) == 0 {
		return f.Text
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })
	builder := strings.Builder{}
	offset := 0
	for _, e := range edits {
		if e.start < offset { //overlapping span, first one wins
			continue
		}
		builder.WriteString(f.Text[offset:e.start])
		builder.WriteString(e.text)
		offset = e.end
	}
	builder.WriteString(f.Text[offset:])
	return builder.String()
}
