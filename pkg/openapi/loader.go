package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoaderOptions configures Load.
type LoaderOptions struct {
	// FileSystem serves SourceKindFS sources.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// Load reads the document identified by src.
func Load(ctx context.Context, src Source, options ...LoaderOption) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if src == nil {
		return Document{}, errors.New("openapi loader: source is nil")
	}
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if cfg.FileSystem == nil {
			return Document{}, errors.New("openapi loader: fs source requires a file system")
		}
		data, err = fs.ReadFile(cfg.FileSystem, src.Location())
	default:
		return Document{}, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("openapi loader: read %s: %w", src.Location(), err)
	}
	return NewDocument(src, data)
}
