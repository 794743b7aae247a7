package syntax

import (
	"bytes"
)

// Emitter represents generator
type Emitter interface {
	Emit(doc *Document) ([]byte, error)
}

// Printer emits documents as Rust source, one item per line; layout is left to the formatter
type Printer struct{}

// Emit renders the document
func (p *Printer) Emit(doc *Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	p.fragments(buf, doc.Attrs)
	p.items(buf, doc.Items)
	return buf.Bytes(), nil
}

// Print renders the document as a string
func Print(doc *Document) string {
	data, _ := (&Printer{}).Emit(doc)
	return string(data)
}

func (p *Printer) fragments(buf *bytes.Buffer, fragments []*Fragment) {
	for _, fragment := range fragments {
		buf.WriteString(fragment.String())
		buf.WriteByte('\n')
	}
}

func (p *Printer) items(buf *bytes.Buffer, items []Item) {
	for _, it := range items {
		p.fragments(buf, it.Leading())
		switch actual := it.(type) {
		case *Mod:
			buf.WriteString(actual.Vis)
			buf.WriteString("mod ")
			buf.WriteString(actual.Name)
			if actual.Stub {
				buf.WriteString(";\n")
				continue
			}
			buf.WriteString(" {\n")
			p.fragments(buf, actual.Inner)
			p.items(buf, actual.Items)
			buf.WriteString("}\n")
		case *Use:
			buf.WriteString(actual.Vis)
			buf.WriteString("use ")
			buf.WriteString(actual.Tree.String())
			buf.WriteString(";\n")
		case *ExternCrate:
			buf.WriteString(actual.Vis)
			buf.WriteString("extern crate ")
			buf.WriteString(actual.Name)
			if actual.Alias != "" {
				buf.WriteString(" as ")
				buf.WriteString(actual.Alias)
			}
			buf.WriteString(";\n")
		case *Verbatim:
			buf.WriteString(actual.Fragment.String())
			buf.WriteByte('\n')
		}
	}
}
