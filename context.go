package xbind

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/goliatone/go-xbind/internal/logging"
	"github.com/goliatone/go-xbind/pkg/binder"
	"github.com/goliatone/go-xbind/pkg/block"
	"github.com/goliatone/go-xbind/pkg/dom"
	"github.com/goliatone/go-xbind/pkg/reference"
	"github.com/goliatone/go-xbind/pkg/state"
)

// Context is a binding context: one state root, one normalizer table and the
// directive controllers bound to one document. The first Build binds the
// document; later calls reuse everything and only apply their params. The
// caller ends the lifecycle with Close.
//
// Build and Close are serialised, but the bound state itself must only be
// driven from one goroutine at a time.
type Context struct {
	mu sync.Mutex

	logger      *slog.Logger
	registry    *binder.Registry
	prefix      string
	normalizers binder.Normalizers

	root   *state.Object
	doc    dom.Document
	binder *block.Binder
	block  *block.Block
	closed bool
}

// New constructs an unbound context.
func New(options ...Option) *Context {
	c := &Context{
		logger: logging.NewNop(),
		prefix: block.DefaultPrefix,
		root:   state.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Build binds doc on the first call and returns the state root. Every call
// deep-merges params.State onto the root and pushes params.Push entries.
// Calls after the first ignore doc and params.Normalizers.
func (c *Context) Build(doc dom.Document, params Params) (*state.Object, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.binder == nil {
		if doc == nil {
			return nil, ErrNoDocument
		}
		c.bind(doc, params.Normalizers)
	}

	state.Assign(c.root, params.State)
	if err := c.push(params.Push); err != nil {
		return c.root, err
	}
	return c.root, nil
}

func (c *Context) bind(doc dom.Document, normalizers binder.Normalizers) {
	options := []block.Option{
		block.WithLogger(c.logger),
		block.WithPrefix(c.prefix),
		block.WithNormalizers(c.normalizers.Merge(normalizers)),
	}
	if c.registry != nil {
		options = append(options, block.WithRegistry(c.registry))
	}
	preserved := c.root.Snapshot()
	c.doc = doc
	c.binder = block.New(options...)
	c.block = c.binder.BindBlock(doc, reference.NewScope(c.root))
	state.Assign(c.root, preserved)
	c.logger.Debug("document bound", "elements", len(c.block.Elements()))
}

func (c *Context) push(entries map[string][]map[string]any) error {
	if len(entries) == 0 {
		return nil
	}
	refs := make([]string, 0, len(entries))
	for ref := range entries {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	for _, ref := range refs {
		items, err := c.container(ref)
		if err != nil {
			return err
		}
		srcs := make([]any, 0, len(entries[ref]))
		for _, entry := range entries[ref] {
			srcs = append(srcs, entry)
		}
		items.Push(srcs...)
	}
	return nil
}

// Container returns the repeat-for container installed at ref.
func (c *Context) Container(ref string) (*block.Items, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	return c.container(ref)
}

func (c *Context) container(ref string) (*block.Items, error) {
	target := reference.Resolve(reference.NewScope(c.root), ref)
	items, ok := target.Obj.Get(target.Key).(*block.Items)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotContainer, ref)
	}
	return items, nil
}

// Field returns the state field ref denotes on the root. Intermediate
// objects are created as needed.
func (c *Context) Field(ref string) state.Field {
	return reference.Resolve(reference.NewScope(c.root), ref).Field()
}

// Root returns the state root. It is usable before the first Build; values
// set on it are written through the bindings Build installs.
func (c *Context) Root() *state.Object {
	return c.root
}

// Document returns the bound document, or nil before the first Build.
func (c *Context) Document() dom.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// Decode copies the current state into out (a pointer to a struct or map).
func (c *Context) Decode(out any) error {
	return state.Decode(c.root, out)
}

// Close destroys every binding and directive installed by Build. Closing an
// unbound or already closed context is a no-op.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.block != nil {
		c.block.Destroy()
		c.logger.Debug("context closed")
	}
	return nil
}
