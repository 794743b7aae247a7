package bundler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/rsbundle/inspector"
	"github.com/viant/rsbundle/inspector/repository"
	"github.com/viant/rsbundle/inspector/syntax"
)

// Bundler merges a Cargo binary and its library into a single source file
type Bundler struct {
	fs           afs.Service
	factory      *inspector.Factory
	emitter      syntax.Emitter
	formatter    Formatter
	logger       *log.Logger
	edition      string
	removeUnused bool
}

// Output represents a bundling result
type Output struct {
	Code     string
	Binary   string   // selected binary target name
	Crate    string   // library crate name
	Files    []string // source files read, in expansion order
	Checksum uint64   // highwayhash of Code
}

// session holds state shared by all expanders of one bundling run
type session struct {
	fs             afs.Service
	factory        *inspector.Factory
	logger         *log.Logger
	library        *repository.Target
	removeUnused   bool
	allowList      map[string]bool // computed before inlining, read-only afterwards
	libraryInlined bool
	files          []string
}

// New creates a bundler
func New(options ...Option) *Bundler {
	ret := &Bundler{
		formatter: &Rustfmt{},
		emitter:   &syntax.Printer{},
	}
	for _, option := range options {
		option(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.factory == nil {
		ret.factory = inspector.NewFactory(ret.fs)
	}
	if ret.logger == nil {
		ret.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "rsbundle",
			Level:  log.WarnLevel,
		})
	}
	return ret
}

// Bundle creates a single-source-file version of a Cargo package binary
func Bundle(ctx context.Context, projectPath string, binary string, options ...Option) (string, error) {
	output, err := New(options...).Run(ctx, projectPath, binary)
	if err != nil {
		return "", err
	}
	return output.Code, nil
}

// Run bundles the selected binary (default-run or the only binary when empty) of the package at projectPath
func (b *Bundler) Run(ctx context.Context, projectPath string, binary string) (*Output, error) {
	selection, err := repository.SelectTargets(ctx, b.fs, projectPath, binary)
	if err != nil {
		return nil, err
	}
	crateName := selection.Library.Name
	sess := &session{
		fs:           b.fs,
		factory:      b.factory,
		logger:       b.logger,
		library:      selection.Library,
		removeUnused: b.removeUnused,
	}

	b.logger.Info("expanding binary", "bin", selection.Binary.Name, "path", selection.Binary.SrcPath)
	doc, err := sess.parse(ctx, selection.Binary.SrcPath)
	if err != nil {
		return nil, err
	}
	if b.removeUnused {
		sess.allowList = AllowList(doc, crateName)
		b.logger.Debug("allow list of library modules", "mods", sess.allowList)
	}
	expander := sess.newExpander(filepath.Dir(selection.Binary.SrcPath), "", crateName, true)
	if err = expander.expandDocument(ctx, doc); err != nil {
		return nil, err
	}

	code, err := b.emitter.Emit(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to emit merged source: %w", err)
	}
	edition := b.edition
	if edition == "" {
		edition = selection.Edition
	}
	if code, err = b.formatter.Format(ctx, code, edition); err != nil {
		return nil, err
	}
	checksum, err := syntax.Hash(code)
	if err != nil {
		return nil, fmt.Errorf("failed to hash merged source: %w", err)
	}
	return &Output{
		Code:     string(code),
		Binary:   selection.Binary.Name,
		Crate:    crateName,
		Files:    sess.files,
		Checksum: checksum,
	}, nil
}

func (s *session) newExpander(basePath, parentName, crateName string, topScope bool) *Expander {
	return &Expander{
		session:    s,
		basePath:   basePath,
		parentName: parentName,
		crateName:  crateName,
		topScope:   topScope,
	}
}

func (s *session) parse(ctx context.Context, location string) (*syntax.Document, error) {
	s.logger.Debug("parsing", "path", location)
	doc, err := s.factory.InspectFile(ctx, location)
	if err != nil {
		return nil, err
	}
	s.files = append(s.files, location)
	return doc, nil
}

// isAllowed reports whether a library item survives unused module removal
func (s *session) isAllowed(item syntax.Item) bool {
	if !s.removeUnused {
		return true
	}
	mod, ok := item.(*syntax.Mod)
	if !ok {
		return true
	}
	return s.allowList[mod.Name] || s.allowList[allowAll]
}
