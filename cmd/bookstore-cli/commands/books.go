package commands

import (
	"fmt"

	"bookstore-client/cmd/bookstore-cli/globals"
	"bookstore-client/internal/actions"
	"bookstore-client/internal/catalog"
	"bookstore-client/internal/termui"

	"github.com/spf13/cobra"
)

var (
	booksKeyword  string
	booksCategory string
	booksPage     int
)

func init() {
	booksCmd.Flags().StringVarP(&booksKeyword, "keyword", "k", "", "search by keyword, takes precedence over --category")
	booksCmd.Flags().StringVarP(&booksCategory, "category", "c", "", "filter by category")
	booksCmd.Flags().IntVarP(&booksPage, "page", "p", 1, "page to show, starting at 1")
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Print one page of the catalog.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		query := catalog.NewHolder(g.Config.PageSize)
		query.SetKeyword(booksKeyword)
		query.SetCategory(booksCategory)
		err := query.SetPage(booksPage - 1)
		if err != nil {
			return fmt.Errorf("--page must be at least 1")
		}

		route := catalog.Resolve(query.Current())
		page, err := catalog.NewRouter(g.Client, g.Config.Timeout()).Fetch(cmd.Context(), route)
		if err != nil {
			return globals.Report(cmd.Context(), err, actions.Messages{Failure: "Error loading books"})
		}
		termui.NewCatalogView(g.Out).Show(catalog.Render(page))
		return nil
	},
}
