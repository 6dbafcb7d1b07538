package main

import (
	"fmt"
	"strings"

	"github.com/sigidayo/sources/internal/domain"
	"github.com/sigidayo/sources/internal/query"

	"github.com/spf13/cobra"
)

var (
	searchPage    int
	searchSort    int
	searchWith    []string
	searchWithout []string
	searchEager   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			text = args[0]
		}

		app, err := newContainer(cmd.Context())
		if err != nil {
			return err
		}

		result, err := app.Client.GetSearchMangaList(cmd.Context(), text, searchPage, searchFilters(cmd))
		if err != nil {
			return err
		}

		if searchEager {
			result, err = app.Client.ResolveDetails(cmd.Context(), result)
			if err != nil {
				return err
			}
		}

		return printResult(cmd.OutOrStdout(), flagOutput, result)
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "result page")
	searchCmd.Flags().IntVarP(&searchSort, "sort", "s", int(query.DefaultSort), sortHelp())
	searchCmd.Flags().StringSliceVar(&searchWith, "with", nil, "tags to include")
	searchCmd.Flags().StringSliceVar(&searchWithout, "without", nil, "tags to exclude")
	searchCmd.Flags().BoolVar(&searchEager, "eager", false, "fetch details and real covers for every entry")
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the filters accepted by search",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newContainer(cmd.Context())
		if err != nil {
			return err
		}

		filters, err := app.Client.GetSearchFilters(cmd.Context())
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), flagOutput, filters)
	},
}

func sortHelp() string {
	options := make([]string, len(query.SortOptions))
	for i, sort := range query.SortOptions {
		options[i] = fmt.Sprintf("%d %s", int(sort), strings.ToLower(sort.String()))
	}
	return "sort: " + strings.Join(options, ", ")
}

func searchFilters(cmd *cobra.Command) []domain.FilterValue {
	var filters []domain.FilterValue
	if cmd.Flags().Changed("sort") {
		filters = append(filters, domain.SortFilter{ID: query.SortFilterID, Index: searchSort})
	}
	if len(searchWith) > 0 || len(searchWithout) > 0 {
		filters = append(filters, domain.MultiSelectFilter{
			ID:       query.TagFilterID,
			Included: searchWith,
			Excluded: searchWithout,
		})
	}
	return filters
}
