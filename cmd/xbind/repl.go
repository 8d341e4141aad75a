package main

import (
	"github.com/spf13/cobra"
)

var replOpts pageOptions

var replCmd = &cobra.Command{
	Use:   "repl <page.html>",
	Short: "Edit the state of a bound page interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := loggerFor(cmd)
		if err != nil {
			return err
		}
		page, err := loadPage(cmd.Context(), logger, args[0], replOpts)
		if err != nil {
			return err
		}
		defer page.Close()

		s := &session{
			page:   page,
			driver: newSurveyDriver(cmd.OutOrStdout()),
			prefix: replOpts.Prefix,
		}
		return s.run(cmd.Context())
	},
}

func init() {
	addPageFlags(replCmd, &replOpts)
	rootCmd.AddCommand(replCmd)
}
