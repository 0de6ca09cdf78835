package termui

import (
	"fmt"
	"io"
	"strings"

	"bookstore-client/internal/bookstore"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

const (
	EmptyCartMessage = "Your cart is empty."
	NoOrdersMessage  = "No orders yet."
)

func money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func RenderCart(out io.Writer, items []bookstore.CartItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, EmptyCartMessage)
		return
	}

	t := NewTable(out)
	t.AppendHeader(table.Row{"Book", "Price", "Qty", "Subtotal"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Price", Align: text.AlignRight},
		{Name: "Qty", Align: text.AlignRight},
		{Name: "Subtotal", Align: text.AlignRight},
	})
	for _, item := range items {
		t.AppendRow(table.Row{
			plainText(item.Book.Title),
			money(item.Book.Price),
			item.Quantity,
			money(item.Subtotal()),
		})
	}
	t.AppendFooter(table.Row{"", "", "Total", money(bookstore.CartTotal(items))})
	t.Render()
}

func RenderOrders(out io.Writer, orders []bookstore.OrderSummary) {
	if len(orders) == 0 {
		fmt.Fprintln(out, NoOrdersMessage)
		return
	}

	t := NewTable(out)
	t.AppendHeader(table.Row{"Order", "Status", "Items", "Total"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Total", Align: text.AlignRight},
	})
	for _, order := range orders {
		lines := make([]string, len(order.Items))
		for i, line := range order.Items {
			lines[i] = fmt.Sprintf("%s x%d (%s)", plainText(line.BookTitle), line.Quantity, money(line.Price))
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("#%d", order.OrderId),
			string(order.Status),
			strings.Join(lines, "\n"),
			money(order.TotalAmount),
		})
	}
	t.Render()
}

// RenderSession prints who is signed in and which commands they can use, `user`
// is nil for a guest.
func RenderSession(out io.Writer, user *bookstore.User, cliName string) {
	if user == nil {
		fmt.Fprintln(out, "Browsing as a guest.")
		fmt.Fprintf(out, "Sign in with `%s login <username> <password>` or create an account with `%s register`.\n", cliName, cliName)
		return
	}

	t := NewTable(out)
	t.AppendRow(table.Row{"User", plainText(user.UserName)})
	if user.Email != "" {
		t.AppendRow(table.Row{"Email", plainText(user.Email)})
	}
	t.AppendRow(table.Row{"Role", string(user.Role)})
	t.Render()

	switch user.Role {
	case bookstore.RoleAdmin:
		fmt.Fprintf(out, "Admin commands: `%s admin add-book`, `%s admin add-user`.\n", cliName, cliName)
	default:
		fmt.Fprintf(out, "Commands: `%s browse`, `%s cart`, `%s checkout`, `%s orders`.\n", cliName, cliName, cliName, cliName)
	}
}
