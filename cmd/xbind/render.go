package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-xbind/pkg/render"
)

type renderOptions struct {
	pageOptions
	Output   string
	Strip    bool
	BodyOnly bool
	Sanitize bool
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render <page.html>",
	Short: "Bind a page, apply params and print the resulting HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := loggerFor(cmd)
		if err != nil {
			return err
		}
		page, err := loadPage(cmd.Context(), logger, args[0], renderOpts.pageOptions)
		if err != nil {
			return err
		}
		defer page.Close()

		if renderOpts.Output == "" {
			return writePage(cmd.OutOrStdout(), page, renderOpts)
		}
		f, err := os.Create(renderOpts.Output)
		if err != nil {
			return fmt.Errorf("xbind: create output: %w", err)
		}
		if err := writePage(f, page, renderOpts); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	addPageFlags(renderCmd, &renderOpts.pageOptions)
	renderCmd.Flags().StringVarP(&renderOpts.Output, "output", "o", "", "Output file (stdout if empty)")
	renderCmd.Flags().BoolVar(&renderOpts.Strip, "strip", false, "Drop directive attributes and templates")
	renderCmd.Flags().BoolVar(&renderOpts.BodyOnly, "body", false, "Print the body content only")
	renderCmd.Flags().BoolVar(&renderOpts.Sanitize, "sanitize", false, "Sanitise the output with the default policy")
	rootCmd.AddCommand(renderCmd)
}

func writePage(w io.Writer, page *boundPage, opts renderOptions) error {
	var options []render.Option
	if opts.Strip {
		options = append(options, render.WithStripDirectives(opts.Prefix))
	}
	if opts.BodyOnly {
		options = append(options, render.WithBodyOnly())
	}
	if opts.Sanitize {
		options = append(options, render.WithSanitizer(nil))
	}
	if err := render.Document(w, page.doc, options...); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
