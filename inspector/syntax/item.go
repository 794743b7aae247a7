package syntax

// Item represents a declaration: *Mod, *Use, *ExternCrate or *Verbatim
type Item interface {
	// Leading returns attributes and comments attached in front of the item
	Leading() []*Fragment
	item()
}

type (
	// Mod represents a module declaration; a Stub has no body, its content lives in another file
	Mod struct {
		Attrs []*Fragment
		Vis   string // visibility prefix as written, e.g. "pub "
		Name  string
		Inner []*Fragment // inner attributes of the body
		Items []Item
		Stub  bool
	}

	// Use represents a use declaration
	Use struct {
		Attrs []*Fragment
		Vis   string
		Tree  UseTree
	}

	// ExternCrate represents an extern crate declaration
	ExternCrate struct {
		Attrs []*Fragment
		Vis   string
		Name  string
		Alias string
	}

	// Verbatim represents any other item, passed through unchanged except for its rewritable spans
	Verbatim struct {
		Attrs []*Fragment
		*Fragment
	}
)

func (m *Mod) Leading() []*Fragment         { return m.Attrs }
func (u *Use) Leading() []*Fragment         { return u.Attrs }
func (e *ExternCrate) Leading() []*Fragment { return e.Attrs }
func (v *Verbatim) Leading() []*Fragment    { return v.Attrs }

func (*Mod) item()         {}
func (*Use) item()         {}
func (*ExternCrate) item() {}
func (*Verbatim) item()    {}

// Document represents a parsed source file
type Document struct {
	Path  string
	Attrs []*Fragment // inner attributes and inner doc comments
	Items []Item
}

// Mods returns module declarations of the document top level
func (d *Document) Mods() []*Mod {
	var result []*Mod
	for _, it := range d.Items {
		if mod, ok := it.(*Mod); ok {
			result = append(result, mod)
		}
	}
	return result
}

// Uses returns use declarations of the document top level
func (d *Document) Uses() []*Use {
	var result []*Use
	for _, it := range d.Items {
		if use, ok := it.(*Use); ok {
			result = append(result, use)
		}
	}
	return result
}
