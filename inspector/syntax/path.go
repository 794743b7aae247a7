package syntax

import "strings"

// PathSeparator separates qualified path segments
const PathSeparator = "::"

// Path represents a qualified path reference found in verbatim source,
// e.g. my_lib::util::read. A leading "::" is kept as an empty first segment.
type Path struct {
	Segments []string
	Start    int // byte offset relative to the enclosing fragment
	End      int
	changed  bool
}

// Head returns the first segment
func (p *Path) Head() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[0]
}

// TrimHead removes the first segment when it equals name. A path is trimmed at most once
// and single segment paths are never trimmed.
func (p *Path) TrimHead(name string) bool {
	if p.changed || len(p.Segments) < 2 || p.Segments[0] != name {
		return false
	}
	p.Segments = p.Segments[1:]
	p.changed = true
	return true
}

// Changed reports whether the path was rewritten
func (p *Path) Changed() bool {
	return p.changed
}

func (p *Path) String() string {
	return strings.Join(p.Segments, PathSeparator)
}
