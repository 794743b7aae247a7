package rust

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const maxSnippet = 40

// ParseError reports source text that is not a valid Rust document
type ParseError struct {
	Path    string
	Line    int // 1-based
	Column  int // 1-based
	Snippet string
}

func (e *ParseError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("failed to parse %s: syntax error at %d:%d", e.Path, e.Line, e.Column)
	}
	return fmt.Sprintf("failed to parse %s: syntax error at %d:%d near %q", e.Path, e.Line, e.Column, e.Snippet)
}

func newParseError(root *sitter.Node, src []byte, path string) *ParseError {
	node := firstError(root)
	point := node.StartPoint()
	snippet := node.Content(src)
	if index := strings.IndexByte(snippet, '\n'); index != -1 {
		snippet = snippet[:index]
	}
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}
	return &ParseError{
		Path:    path,
		Line:    int(point.Row) + 1,
		Column:  int(point.Column) + 1,
		Snippet: strings.TrimSpace(snippet),
	}
}

// firstError returns the first ERROR or MISSING node in document order
func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child == nil {
			continue
		}
		if child.HasError() || child.IsMissing() {
			return firstError(child)
		}
	}
	return node
}
