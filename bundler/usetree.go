package bundler

import (
	"github.com/viant/rsbundle/inspector/syntax"
)

const (
	crateKeyword = "crate"
	selfKeyword  = "self"
	allowAll     = "*"
)

// AdaptUseTree adapts a use tree to the merge of the library crate into the binary.
// It returns the adapted tree and whether it is still a valid non-empty use tree.
func AdaptUseTree(tree syntax.UseTree, crateName string, topScope bool) (syntax.UseTree, bool) {
	return adaptUseTree(tree, crateName, topScope, false)
}

// anchored is set for the sub-tree directly under a crate:: head
func adaptUseTree(tree syntax.UseTree, crateName string, topScope, anchored bool) (syntax.UseTree, bool) {
	switch actual := tree.(type) {
	case *syntax.UsePath:
		switch {
		case actual.Ident == crateName && topScope:
			// library items land in the top scope, the crate segment goes away
			return RetainUseTree(actual.Tree)
		case actual.Ident == crateName && anchored:
			// crate::my_lib::x, only the library segment is trimmed
			return actual.Tree, true
		case actual.Ident == crateName:
			return RetainUseTree(&syntax.UsePath{Ident: crateKeyword, Tree: actual.Tree})
		case actual.Ident == crateKeyword:
			inner, keep := adaptUseTree(actual.Tree, crateName, topScope, true)
			return &syntax.UsePath{Ident: crateKeyword, Tree: inner}, keep
		}
		return tree, true
	case *syntax.UseName, *syntax.UseGlob:
		return tree, true
	case *syntax.UseRename:
		// renaming of the expanded library is not supported
		return tree, true
	case *syntax.UseGroup:
		group := &syntax.UseGroup{}
		for _, item := range actual.Items {
			if adapted, keep := adaptUseTree(item, crateName, topScope, anchored); keep {
				group.Items = append(group.Items, adapted)
			}
		}
		return group, len(group.Items) > 0
	}
	return tree, true
}

// RetainUseTree is called on an adapted use tree and returns the retained part and whether it should be kept
func RetainUseTree(tree syntax.UseTree) (syntax.UseTree, bool) {
	switch actual := tree.(type) {
	case *syntax.UsePath:
		return tree, true
	case *syntax.UseName, *syntax.UseGlob:
		return tree, false
	case *syntax.UseRename:
		return tree, false
	case *syntax.UseGroup:
		group := &syntax.UseGroup{}
		for _, item := range actual.Items {
			if retained, keep := RetainUseTree(item); keep {
				group.Items = append(group.Items, retained)
			}
		}
		return group, len(group.Items) > 0
	}
	return tree, false
}

// AllowList returns names of modules imported by top level use declarations of the document.
// A glob imported directly from the library allows every module.
func AllowList(doc *syntax.Document, crateName string) map[string]bool {
	result := map[string]bool{}
	for _, use := range doc.Uses() {
		for _, name := range extractModNames(use.Tree, crateName, true) {
			result[name] = true
		}
	}
	return result
}

func extractModNames(tree syntax.UseTree, crateName string, root bool) []string {
	switch actual := tree.(type) {
	case *syntax.UsePath:
		if root && (actual.Ident == crateName || actual.Ident == crateKeyword || actual.Ident == "") {
			return extractModNames(actual.Tree, crateName, actual.Ident != crateName)
		}
		return []string{actual.Ident}
	case *syntax.UseName:
		if actual.Ident == selfKeyword {
			return nil
		}
		return []string{actual.Ident}
	case *syntax.UseRename:
		return []string{actual.Ident}
	case *syntax.UseGlob:
		if !root {
			return []string{allowAll}
		}
		return nil
	case *syntax.UseGroup:
		var result []string
		for _, item := range actual.Items {
			result = append(result, extractModNames(item, crateName, root)...)
		}
		return result
	}
	return nil
}

// renamedCrate reports a rename of the library crate itself, which is kept unadapted
func renamedCrate(tree syntax.UseTree, crateName string) bool {
	switch actual := tree.(type) {
	case *syntax.UseRename:
		return actual.Ident == crateName
	case *syntax.UsePath:
		if actual.Ident == crateKeyword {
			return renamedCrate(actual.Tree, crateName)
		}
	case *syntax.UseGroup:
		for _, item := range actual.Items {
			if renamedCrate(item, crateName) {
				return true
			}
		}
	}
	return false
}
