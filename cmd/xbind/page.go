package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-xbind"
	"github.com/goliatone/go-xbind/pkg/dom"
	"github.com/goliatone/go-xbind/pkg/openapi"
)

type pageOptions struct {
	Params    string
	Schema    string
	Component string
	SchemaAt  string
	Prefix    string
}

func addPageFlags(cmd *cobra.Command, opts *pageOptions) {
	cmd.Flags().StringVar(&opts.Params, "params", "", "YAML file with state and push entries")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "OpenAPI document supplying normalizers and defaults")
	cmd.Flags().StringVar(&opts.Component, "component", "", "Component schema name inside --schema")
	cmd.Flags().StringVar(&opts.SchemaAt, "schema-at", "", "Reference the schema defaults are applied under (root if empty)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "xb-", "Directive attribute prefix")
}

// boundPage is a parsed page bound to its own context.
type boundPage struct {
	ctx *xbind.Context
	doc *dom.HTMLDocument
}

// loadPage parses path and binds it. Schema defaults are applied before the
// params state so params win.
func loadPage(ctx context.Context, logger *slog.Logger, path string, opts pageOptions) (*boundPage, error) {
	doc, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	params := xbind.Params{}
	if opts.Params != "" {
		params, err = xbind.LoadParamsFile(opts.Params)
		if err != nil {
			return nil, err
		}
	}

	seed := xbind.Params{Normalizers: builtinNormalizers()}
	if opts.Schema != "" {
		if opts.Component == "" {
			return nil, fmt.Errorf("xbind: --component is required with --schema")
		}
		document, err := openapi.Load(ctx, openapi.SourceFromFile(opts.Schema))
		if err != nil {
			return nil, err
		}
		schema, err := openapi.Component(ctx, document, opts.Component)
		if err != nil {
			return nil, err
		}
		seed.Normalizers = seed.Normalizers.Merge(openapi.Normalizers(schema))
		seed.State = nestUnder(opts.SchemaAt, openapi.Defaults(schema))
	}

	bindCtx := xbind.New(xbind.WithLogger(logger), xbind.WithPrefix(opts.Prefix))
	if _, err := bindCtx.Build(doc, seed); err != nil {
		bindCtx.Close()
		return nil, err
	}
	if _, err := bindCtx.Build(nil, params); err != nil {
		bindCtx.Close()
		return nil, err
	}
	return &boundPage{ctx: bindCtx, doc: doc}, nil
}

func (p *boundPage) Close() error {
	return p.ctx.Close()
}

// nestUnder wraps values so they deep-merge at the dotted ref.
func nestUnder(ref string, values map[string]any) map[string]any {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return values
	}
	segments := strings.Split(ref, ".")
	out := values
	for i := len(segments) - 1; i >= 0; i-- {
		out = map[string]any{segments[i]: out}
	}
	return out
}

func parseFile(path string) (*dom.HTMLDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xbind: open page: %w", err)
	}
	defer f.Close()
	return dom.Parse(f)
}
