package main

import (
	"github.com/spf13/cobra"
)

var coverCmd = &cobra.Command{
	Use:   "cover <url>",
	Short: "Resolve an image URL, including deferred search covers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newContainer(cmd.Context())
		if err != nil {
			return err
		}

		req, err := app.Client.GetImageRequest(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), flagOutput, req)
	},
}
