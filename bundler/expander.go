package bundler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/rsbundle/inspector/syntax"
)

// Expander expands one document: it inlines the library crate and module files, and adapts
// use declarations and qualified paths to the merged layout.
type Expander struct {
	session    *session
	basePath   string // directory module files are resolved against
	parentName string // name of the module being expanded, empty for crate roots
	crateName  string // name the library crate is referred to by
	topScope   bool   // set for the binary crate root only
}

// owned is an item with the expander that resolves its module stubs
type owned struct {
	item     syntax.Item
	expander *Expander
}

func (e *Expander) expandDocument(ctx context.Context, doc *syntax.Document) error {
	e.session.logger.Debug("expanding document", "path", doc.Path, "items", len(doc.Items))
	for _, attr := range doc.Attrs {
		e.expandFragment(attr)
	}
	items, err := e.expandItems(ctx, doc.Items)
	if err != nil {
		return err
	}
	doc.Items = make([]syntax.Item, 0, len(items))
	for _, it := range items {
		if err := it.expander.walk(ctx, it.item); err != nil {
			return err
		}
		doc.Items = append(doc.Items, it.item)
	}
	return nil
}

func (e *Expander) expandItems(ctx context.Context, items []syntax.Item) ([]owned, error) {
	result, err := e.expandExternCrate(ctx, items)
	if err != nil {
		return nil, err
	}
	return e.expandUses(result, e.topScope), nil
}

// expandExternCrate replaces the library crate marker with the library top level items
func (e *Expander) expandExternCrate(ctx context.Context, items []syntax.Item) ([]owned, error) {
	var result []owned
	for _, it := range items {
		crate, ok := it.(*syntax.ExternCrate)
		if !ok || crate.Name != e.crateName || e.session.library == nil {
			result = append(result, owned{item: it, expander: e})
			continue
		}
		if e.session.libraryInlined {
			e.session.logger.Warn("skipping repeated crate marker", "crate", e.crateName, "dir", e.basePath)
			continue
		}
		e.session.libraryInlined = true
		location := e.session.library.SrcPath
		e.session.logger.Info("expanding crate", "crate", e.crateName, "path", location)
		lib, err := e.session.parse(ctx, location)
		if err != nil {
			return nil, err
		}
		if len(lib.Attrs) > 0 {
			e.session.logger.Debug("dropping crate attributes", "crate", e.crateName, "count", len(lib.Attrs))
		}
		libExpander := e.session.newExpander(filepath.Dir(location), "", e.crateName, false)
		for _, libItem := range lib.Items {
			if !e.session.isAllowed(libItem) {
				e.session.logger.Debug("mod has been skipped", "mod", libItem.(*syntax.Mod).Name)
				continue
			}
			result = append(result, owned{item: libItem, expander: libExpander})
		}
	}
	return result, nil
}

func (e *Expander) expandUses(items []owned, topScope bool) []owned {
	result := items[:0]
	for _, it := range items {
		if use, ok := it.item.(*syntax.Use); ok {
			tree, keep := e.adaptUseTree(use.Tree, topScope)
			if !keep {
				e.session.logger.Debug("dropping use", "use", use.Tree.String())
				continue
			}
			use.Tree = tree
		}
		result = append(result, it)
	}
	return result
}

func (e *Expander) adaptUseTree(tree syntax.UseTree, topScope bool) (syntax.UseTree, bool) {
	if renamedCrate(tree, e.crateName) {
		e.session.logger.Warn("unsupported renamed import of merged crate", "use", tree.String())
	}
	return AdaptUseTree(tree, e.crateName, topScope)
}

// walk visits every node of the item once, resolving module stubs and trimming crate paths
func (e *Expander) walk(ctx context.Context, item syntax.Item) error {
	for _, attr := range item.Leading() {
		e.expandFragment(attr)
	}
	switch actual := item.(type) {
	case *syntax.Mod:
		if actual.Stub {
			return e.expandMod(ctx, actual)
		}
		for _, attr := range actual.Inner {
			e.expandFragment(attr)
		}
		body := make([]owned, 0, len(actual.Items))
		for _, child := range actual.Items {
			body = append(body, owned{item: child, expander: e})
		}
		body = e.expandUses(body, false)
		actual.Items = actual.Items[:0]
		for _, child := range body {
			if err := e.walk(ctx, child.item); err != nil {
				return err
			}
			actual.Items = append(actual.Items, child.item)
		}
	case *syntax.Verbatim:
		e.expandFragment(actual.Fragment)
	}
	return nil
}

func (e *Expander) expandFragment(fragment *syntax.Fragment) {
	for _, path := range fragment.Paths {
		e.expandCratePath(path)
	}
	for _, use := range fragment.Uses {
		tree, keep := e.adaptUseTree(use.Tree, false)
		if !keep {
			use.Remove()
			continue
		}
		if tree.String() != use.Tree.String() {
			use.Replace(tree)
		}
	}
}

func (e *Expander) expandCratePath(path *syntax.Path) {
	path.TrimHead(e.crateName)
}

// expandMod resolves a module stub to its file, expands the file and inlines its items
func (e *Expander) expandMod(ctx context.Context, mod *syntax.Mod) error {
	type candidate struct {
		dir  string
		file string
	}
	candidates := []candidate{
		{dir: e.basePath, file: mod.Name + ".rs"},
		{dir: filepath.Join(e.basePath, e.parentName), file: mod.Name + ".rs"},
		{dir: filepath.Join(e.basePath, mod.Name), file: "mod.rs"},
	}
	var tried []string
	seen := map[string]bool{}
	for _, c := range candidates {
		location := filepath.Join(c.dir, c.file)
		if seen[location] {
			continue
		}
		seen[location] = true
		tried = append(tried, location)
		if ok, _ := e.session.fs.Exists(ctx, location); !ok {
			continue
		}
		e.session.logger.Info("expanding mod", "mod", mod.Name, "path", location)
		doc, err := e.session.parse(ctx, location)
		if err != nil {
			return err
		}
		child := e.session.newExpander(c.dir, mod.Name, e.crateName, false)
		if err := child.expandDocument(ctx, doc); err != nil {
			return fmt.Errorf("failed to expand mod %s: %w", mod.Name, err)
		}
		mod.Inner = append(mod.Inner, doc.Attrs...)
		mod.Items = doc.Items
		mod.Stub = false
		return nil
	}
	return &ResolutionError{Module: mod.Name, Candidates: tried}
}
