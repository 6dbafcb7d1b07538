package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deeplinkCmd = &cobra.Command{
	Use:   "deeplink <url>",
	Short: "Map a site URL to a manga or chapter key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newContainer(cmd.Context())
		if err != nil {
			return err
		}

		result, err := app.Client.HandleDeepLink(args[0])
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%s is not a manga or chapter link", args[0])
		}

		return printResult(cmd.OutOrStdout(), flagOutput, result)
	},
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Print the home screen layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newContainer(cmd.Context())
		if err != nil {
			return err
		}

		layout, err := app.Client.GetHome(cmd.Context())
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), flagOutput, layout)
	},
}
