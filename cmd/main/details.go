package main

import (
	"github.com/spf13/cobra"
)

var detailsChapters bool

var detailsCmd = &cobra.Command{
	Use:   "details <key>...",
	Short: "Fetch manga details by key, e.g. series/citrus",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newContainer(cmd.Context())
		if err != nil {
			return err
		}

		mangas, err := app.Client.GetMangaDetails(cmd.Context(), args)
		if err != nil {
			return err
		}

		if !detailsChapters {
			for i := range mangas {
				mangas[i].Chapters = nil
			}
		}

		return printResult(cmd.OutOrStdout(), flagOutput, mangas)
	},
}

func init() {
	detailsCmd.Flags().BoolVar(&detailsChapters, "chapters", false, "include the chapter list")
}
