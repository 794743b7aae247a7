package rust

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/rsbundle/inspector/syntax"
)

// parseItems splits a source_file or declaration_list into inner attributes and items.
// Outer attributes and comments are attached to the item that follows them.
func parseItems(node *sitter.Node, src []byte) ([]*syntax.Fragment, []syntax.Item) {
	var inner []*syntax.Fragment
	var items []syntax.Item
	var pending []*syntax.Fragment
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "inner_attribute_item":
			inner = append(inner, newFragment(child, src))
			continue
		case "line_comment", "block_comment":
			if isInnerDoc(child.Content(src)) {
				inner = append(inner, newFragment(child, src))
				continue
			}
			pending = append(pending, newFragment(child, src))
			continue
		case "attribute_item":
			pending = append(pending, newFragment(child, src))
			continue
		}
		items = append(items, parseItem(child, src, pending))
		pending = nil
	}
	for _, fragment := range pending {
		items = append(items, &syntax.Verbatim{Fragment: fragment})
	}
	return inner, items
}

func parseItem(node *sitter.Node, src []byte, attrs []*syntax.Fragment) syntax.Item {
	switch node.Type() {
	case "mod_item":
		if mod := parseMod(node, src); mod != nil {
			mod.Attrs = attrs
			return mod
		}
	case "use_declaration":
		if tree, ok := parseUse(node, src); ok {
			return &syntax.Use{Attrs: attrs, Vis: prefix(node, "use", src), Tree: tree}
		}
	case "extern_crate_declaration":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			crate := &syntax.ExternCrate{Attrs: attrs, Vis: prefix(node, "extern", src), Name: nameNode.Content(src)}
			if aliasNode := node.ChildByFieldName("alias"); aliasNode != nil {
				crate.Alias = aliasNode.Content(src)
			}
			return crate
		}
	}
	return &syntax.Verbatim{Attrs: attrs, Fragment: newFragment(node, src)}
}

func parseMod(node *sitter.Node, src []byte) *syntax.Mod {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	mod := &syntax.Mod{
		Vis:  prefix(node, "mod", src),
		Name: nameNode.Content(src),
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		mod.Stub = true
		return mod
	}
	mod.Inner, mod.Items = parseItems(bodyNode, src)
	return mod
}

func parseUse(node *sitter.Node, src []byte) (syntax.UseTree, bool) {
	argument := node.ChildByFieldName("argument")
	if argument == nil {
		return nil, false
	}
	return parseUseClause(argument, src)
}

func parseUseClause(node *sitter.Node, src []byte) (syntax.UseTree, bool) {
	switch node.Type() {
	case "identifier", "self", "super", "crate", "metavariable":
		return &syntax.UseName{Ident: node.Content(src)}, true
	case "scoped_identifier":
		segments, ok := pathSegments(node, src)
		if !ok {
			return nil, false
		}
		last := len(segments) - 1
		return syntax.NewUsePath(segments[:last], &syntax.UseName{Ident: segments[last]}), true
	case "use_as_clause":
		segments, ok := pathSegments(node.ChildByFieldName("path"), src)
		aliasNode := node.ChildByFieldName("alias")
		if !ok || aliasNode == nil {
			return nil, false
		}
		last := len(segments) - 1
		return syntax.NewUsePath(segments[:last], &syntax.UseRename{Ident: segments[last], Rename: aliasNode.Content(src)}), true
	case "use_wildcard":
		var segments []string
		for j := 0; j < int(node.NamedChildCount()); j++ {
			child := node.NamedChild(j)
			if isComment(child) {
				continue
			}
			var ok bool
			if segments, ok = pathSegments(child, src); !ok {
				return nil, false
			}
			break
		}
		return syntax.NewUsePath(segments, &syntax.UseGlob{}), true
	case "use_list":
		group := &syntax.UseGroup{}
		for j := 0; j < int(node.NamedChildCount()); j++ {
			child := node.NamedChild(j)
			if isComment(child) {
				continue
			}
			item, ok := parseUseClause(child, src)
			if !ok {
				return nil, false
			}
			group.Items = append(group.Items, item)
		}
		return group, true
	case "scoped_use_list":
		listNode := node.ChildByFieldName("list")
		if listNode == nil {
			return nil, false
		}
		group, ok := parseUseClause(listNode, src)
		if !ok {
			return nil, false
		}
		pathNode := node.ChildByFieldName("path")
		if pathNode == nil {
			return syntax.NewUsePath([]string{""}, group), true
		}
		segments, ok := pathSegments(pathNode, src)
		if !ok {
			return nil, false
		}
		return syntax.NewUsePath(segments, group), true
	}
	return nil, false
}

// pathSegments flattens a plain path chain; paths rooted in generics or qualified types are not plain
func pathSegments(node *sitter.Node, src []byte) ([]string, bool) {
	if node == nil {
		return nil, false
	}
	switch node.Type() {
	case "identifier", "type_identifier", "self", "super", "crate", "metavariable":
		return []string{node.Content(src)}, true
	case "scoped_identifier", "scoped_type_identifier":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return nil, false
		}
		var segments []string
		pathNode := node.ChildByFieldName("path")
		if pathNode == nil {
			segments = []string{""}
		} else {
			var ok bool
			if segments, ok = pathSegments(pathNode, src); !ok {
				return nil, false
			}
		}
		return append(segments, nameNode.Content(src)), true
	}
	return nil, false
}

// newFragment captures node text with its qualified paths and nested use declarations
func newFragment(node *sitter.Node, src []byte) *syntax.Fragment {
	fragment := &syntax.Fragment{Text: node.Content(src)}
	if isComment(node) {
		// line comments may carry their terminating newline
		fragment.Text = strings.TrimRight(fragment.Text, "\r\n")
		return fragment
	}
	collectSpans(node, node.StartByte(), src, fragment)
	return fragment
}

func collectSpans(node *sitter.Node, base uint32, src []byte, fragment *syntax.Fragment) {
	switch node.Type() {
	case "scoped_identifier", "scoped_type_identifier":
		if segments, ok := pathSegments(node, src); ok {
			fragment.Paths = append(fragment.Paths, &syntax.Path{
				Segments: segments,
				Start:    int(node.StartByte() - base),
				End:      int(node.EndByte() - base),
			})
			return
		}
	case "use_declaration":
		if tree, ok := parseUse(node, src); ok {
			fragment.Uses = append(fragment.Uses, &syntax.EmbeddedUse{
				Vis:   prefix(node, "use", src),
				Tree:  tree,
				Start: int(node.StartByte() - base),
				End:   int(node.EndByte() - base),
			})
		}
		return
	case "token_tree", "line_comment", "block_comment", "string_literal", "raw_string_literal", "char_literal":
		return
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		collectSpans(node.NamedChild(j), base, src, fragment)
	}
}

// prefix returns the text between the node start and its keyword, i.e. the visibility modifier
func prefix(node *sitter.Node, keyword string, src []byte) string {
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child.Type() == keyword {
			return string(src[node.StartByte():child.StartByte()])
		}
	}
	return ""
}

func isComment(node *sitter.Node) bool {
	return node.Type() == "line_comment" || node.Type() == "block_comment"
}

func isInnerDoc(comment string) bool {
	return strings.HasPrefix(comment, "//!") || strings.HasPrefix(comment, "/*!")
}
