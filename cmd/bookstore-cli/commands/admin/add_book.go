package admin

import (
	"fmt"

	"bookstore-client/cmd/bookstore-cli/globals"
	"bookstore-client/internal/actions"
	"bookstore-client/internal/bookstore"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var newBook struct {
	author      string
	category    string
	price       string
	stock       int
	description string
}

func init() {
	addBookCmd.Flags().StringVar(&newBook.author, "author", "", "author of the book")
	addBookCmd.Flags().StringVar(&newBook.category, "category", "", "catalog category")
	addBookCmd.Flags().StringVar(&newBook.price, "price", "0", "unit price, ex. 12.99")
	addBookCmd.Flags().IntVar(&newBook.stock, "stock", 0, "copies available")
	addBookCmd.Flags().StringVar(&newBook.description, "description", "", "short description")
	addBookCmd.MarkFlagRequired("author")
}

var addBookCmd = &cobra.Command{
	Use:   "add-book <title>",
	Short: "Add a book to the catalog.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := decimal.NewFromString(newBook.price)
		if err != nil {
			return fmt.Errorf("invalid --price %q: %w", newBook.price, err)
		}

		book := bookstore.NewBook{
			Title:       args[0],
			Author:      newBook.author,
			Category:    newBook.category,
			Price:       price,
			Stock:       newBook.stock,
			Description: newBook.description,
		}
		if err := book.Validate(); err != nil {
			return err
		}

		created, err := globals.Get(cmd.Context()).Client.AddBook(cmd.Context(), book)
		return globals.Report(cmd.Context(), err, actions.Messages{
			Success: fmt.Sprintf("Added %q as book #%d.", created.Title, created.Id),
			Failure: "Failed to add book",
		})
	},
}
