package syntax

import "strings"

// UseTree represents the tree of a use declaration: UsePath, UseName, UseRename, UseGlob or UseGroup
type UseTree interface {
	String() string
	useTree()
}

type (
	// UsePath is a path segment followed by a sub-tree, e.g. a::<tree>
	UsePath struct {
		Ident string
		Tree  UseTree
	}

	// UseName is a terminal name, e.g. the Foo of a::Foo
	UseName struct {
		Ident string
	}

	// UseRename is a terminal renamed name, e.g. Foo as Bar
	UseRename struct {
		Ident  string
		Rename string
	}

	// UseGlob is the * wildcard
	UseGlob struct{}

	// UseGroup is a braced set of sub-trees
	UseGroup struct {
		Items []UseTree
	}
)

func (*UsePath) useTree()   {}
func (*UseName) useTree()   {}
func (*UseRename) useTree() {}
func (*UseGlob) useTree()   {}
func (*UseGroup) useTree()  {}

func (t *UsePath) String() string {
	return t.Ident + PathSeparator + t.Tree.String()
}

func (t *UseName) String() string {
	return t.Ident
}

func (t *UseRename) String() string {
	return t.Ident + " as " + t.Rename
}

func (t *UseGlob) String() string {
	return "*"
}

func (t *UseGroup) String() string {
	items := make([]string, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, item.String())
	}
	return "{" + strings.Join(items, ", ") + "}"
}

// NewUsePath builds a path tree from segments ending with the supplied tail
func NewUsePath(segments []string, tail UseTree) UseTree {
	result := tail
	for i := len(segments) - 1; i >= 0; i-- {
		result = &UsePath{Ident: segments[i], Tree: result}
	}
	return result
}
