package commands

import (
	"fmt"
	"strconv"

	"bookstore-client/cmd/bookstore-cli/globals"
	"bookstore-client/internal/actions"
	"bookstore-client/internal/termui"

	"github.com/spf13/cobra"
)

func init() {
	cartCmd.AddCommand(cartAddCmd)
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the contents of your cart.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		items, err := g.Client.Cart(cmd.Context())
		if err != nil {
			return globals.Report(cmd.Context(), err, actions.Messages{Failure: "Failed to load cart"})
		}
		termui.RenderCart(g.Out, items)
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <book id>",
	Short: "Add a book to your cart.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookId, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}
		err = globals.Get(cmd.Context()).Client.AddToCart(cmd.Context(), bookId)
		return globals.Report(cmd.Context(), err, actions.Messages{
			Success: "Added to cart!",
			Failure: "Failed to add to cart",
		})
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for everything in your cart.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		order, err := g.Client.Checkout(cmd.Context())
		if err != nil {
			return globals.Report(cmd.Context(), err, actions.Messages{Failure: "Checkout failed"})
		}
		g.Notifier.Notify(fmt.Sprintf(
			"Order #%d placed, total $%s (%s).",
			order.Id, order.TotalAmount.StringFixed(2), order.Status,
		))
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show your order history.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		orders, err := g.Client.Orders(cmd.Context())
		if err != nil {
			return globals.Report(cmd.Context(), err, actions.Messages{Failure: "Failed to load orders"})
		}
		termui.RenderOrders(g.Out, orders)
		return nil
	},
}
