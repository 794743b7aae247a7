package bundler

import (
	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/rsbundle/inspector"
	"github.com/viant/rsbundle/inspector/syntax"
)

type Option func(*Bundler)

// WithRemoveUnusedModules drops library modules that the binary never imports
func WithRemoveUnusedModules(flag bool) Option {
	return func(b *Bundler) {
		b.removeUnused = flag
	}
}

// WithFormatter sets the formatter applied to the merged source, NoFormat disables formatting
func WithFormatter(formatter Formatter) Option {
	return func(b *Bundler) {
		b.formatter = formatter
	}
}

// WithEdition overrides the Rust edition passed to the formatter (defaults to the manifest edition)
func WithEdition(edition string) Option {
	return func(b *Bundler) {
		b.edition = edition
	}
}

// WithFS sets the storage service used to read sources
func WithFS(fs afs.Service) Option {
	return func(b *Bundler) {
		b.fs = fs
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(b *Bundler) {
		b.logger = logger
	}
}

// WithFactory sets the inspector factory used to parse sources
func WithFactory(factory *inspector.Factory) Option {
	return func(b *Bundler) {
		b.factory = factory
	}
}

// WithEmitter sets the emitter printing the merged document
func WithEmitter(emitter syntax.Emitter) Option {
	return func(b *Bundler) {
		b.emitter = emitter
	}
}
