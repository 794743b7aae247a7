package inspector

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/rsbundle/inspector/rust"
	"github.com/viant/rsbundle/inspector/syntax"
)

// Inspector provides an interface for parsing source code into syntax documents
type Inspector interface {
	// InspectSource parses source code from a byte slice
	InspectSource(src []byte) (*syntax.Document, error)

	// InspectFile reads and parses a source file
	InspectFile(ctx context.Context, location string) (*syntax.Document, error)
}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	fs afs.Service
}

// NewFactory creates a new inspector factory reading files with the given storage service
func NewFactory(fs afs.Service) *Factory {
	if fs == nil {
		fs = afs.New()
	}
	return &Factory{
		fs: fs,
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(path.Ext(filename))

	switch ext {
	case ".rs":
		return rust.NewInspector(f.fs), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(ctx context.Context, filename string) (*syntax.Document, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}

	return inspector.InspectFile(ctx, filename)
}
