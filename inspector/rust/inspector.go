package rust

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/viant/afs"
	"github.com/viant/rsbundle/inspector/syntax"
)

const defaultFilename = "source.rs"

// Inspector parses Rust source code into syntax documents
type Inspector struct {
	fs afs.Service
}

// NewInspector creates a new Rust Inspector reading files with the supplied storage service
func NewInspector(fs afs.Service) *Inspector {
	if fs == nil {
		fs = afs.New()
	}
	return &Inspector{fs: fs}
}

// InspectSource parses Rust source code from a byte slice
func (i *Inspector) InspectSource(src []byte) (*syntax.Document, error) {
	return i.parse(context.Background(), src, defaultFilename)
}

// InspectFile reads and parses a Rust source file
func (i *Inspector) InspectFile(ctx context.Context, location string) (*syntax.Document, error) {
	src, err := i.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", location, err)
	}
	return i.parse(ctx, src, location)
}

func (i *Inspector) parse(ctx context.Context, src []byte, filename string) (*syntax.Document, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, newParseError(rootNode, src, filename)
	}
	doc := &syntax.Document{Path: filename}
	doc.Attrs, doc.Items = parseItems(rootNode, src)
	return doc, nil
}
