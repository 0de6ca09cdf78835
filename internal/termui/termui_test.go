package termui

import (
	"bytes"
	"strings"
	"testing"

	"bookstore-client/internal/bookstore"
	"bookstore-client/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestControlsLine(t *testing.T) {
	table := []struct {
		name     string
		controls catalog.Controls
		expected string
	}{
		{
			name:     "middle",
			controls: catalog.Controls{PreviousEnabled: true, NextEnabled: true, Label: "Page 2 of 3"},
			expected: "[< Previous]  Page 2 of 3  [Next >]",
		},
		{
			name:     "first",
			controls: catalog.Controls{NextEnabled: true, Label: "Page 1 of 3"},
			expected: "( Previous )  Page 1 of 3  [Next >]",
		},
		{
			name:     "last",
			controls: catalog.Controls{PreviousEnabled: true, Label: "Page 3 of 3"},
			expected: "[< Previous]  Page 3 of 3  ( Next )",
		},
	}

	for _, row := range table {
		require.Equal(t, row.expected, ControlsLine(row.controls), row.name)
	}
}

func TestCatalogViewShow(t *testing.T) {
	description := "<p>A <b>desert</b> planet &amp; spice.</p><script>alert(1)</script>"
	vm := catalog.Render(catalog.PageResult{
		Items: []catalog.Item{
			{Id: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Price: decimal.RequireFromString("9.5"), Stock: 3, Description: &description},
			{Id: 2, Title: "Emma", Author: "Jane Austen", Category: "Classic", Price: decimal.RequireFromString("4"), Stock: 0},
		},
		PageNumber: 0,
		TotalPages: 2,
		IsFirst:    true,
	})

	var out bytes.Buffer
	NewCatalogView(&out).Show(vm)
	printed := out.String()

	require.Contains(t, printed, "Dune")
	require.Contains(t, printed, "$9.50")
	require.Contains(t, printed, "$4.00")
	require.Equal(t, 1, strings.Count(printed, catalog.AddToCartLabel))
	require.Equal(t, 1, strings.Count(printed, catalog.OutOfStockLabel))
	require.Contains(t, printed, "A desert planet & spice.")
	require.Contains(t, printed, catalog.NoDescription)
	require.NotContains(t, printed, "<b>")
	require.NotContains(t, printed, "alert")
	require.True(t, strings.HasSuffix(printed, "( Previous )  Page 1 of 2  [Next >]\n"))
}

func TestCatalogViewShowEmpty(t *testing.T) {
	var out bytes.Buffer
	NewCatalogView(&out).Show(catalog.Render(catalog.PageResult{TotalPages: 0, IsFirst: true, IsLast: true}))
	require.Equal(t, "No books found.\n( Previous )  Page 1 of 0  ( Next )\n", out.String())
}

func TestNotifier(t *testing.T) {
	var out bytes.Buffer
	n := NewNotifier(&out)

	n.Notify("Added to cart!")
	n.Fail("Failed to add to cart")
	n.RedirectToLogin("bookstore-cli login")

	printed := out.String()
	require.Contains(t, printed, "Added to cart!")
	require.Contains(t, printed, "Failed to add to cart")
	require.Contains(t, printed, "Please login first: bookstore-cli login")
	require.Equal(t, 3, strings.Count(printed, "\n"))
}

func TestRenderCart(t *testing.T) {
	var out bytes.Buffer
	RenderCart(&out, nil)
	require.Equal(t, EmptyCartMessage+"\n", out.String())

	out.Reset()
	RenderCart(&out, []bookstore.CartItem{
		{Id: 1, Quantity: 2, Book: bookstore.Book{Title: "Dune", Price: decimal.RequireFromString("9.99")}},
		{Id: 2, Quantity: 1, Book: bookstore.Book{Title: "Emma", Price: decimal.RequireFromString("0.01")}},
	})
	printed := out.String()
	require.Contains(t, printed, "$19.98")
	require.Contains(t, printed, "$19.99")
}

func TestRenderOrders(t *testing.T) {
	var out bytes.Buffer
	RenderOrders(&out, nil)
	require.Equal(t, NoOrdersMessage+"\n", out.String())

	out.Reset()
	RenderOrders(&out, []bookstore.OrderSummary{{
		OrderId:     42,
		Status:      bookstore.OrderShipped,
		TotalAmount: decimal.RequireFromString("19.99"),
		Items: []bookstore.OrderLine{
			{BookTitle: "Dune", Quantity: 2, Price: decimal.RequireFromString("9.99")},
		},
	}})
	printed := out.String()
	require.Contains(t, printed, "#42")
	require.Contains(t, printed, "SHIPPED")
	require.Contains(t, printed, "Dune x2 ($9.99)")
	require.Contains(t, printed, "$19.99")
}

func TestRenderSession(t *testing.T) {
	table := []struct {
		name     string
		user     *bookstore.User
		contains []string
		absent   []string
	}{
		{
			name:     "guest",
			contains: []string{"guest", "bookstore-cli login"},
			absent:   []string{"admin add-book"},
		},
		{
			name:     "user",
			user:     &bookstore.User{UserName: "ana", Role: bookstore.RoleUser},
			contains: []string{"ana", "ROLE_USER", "bookstore-cli cart"},
			absent:   []string{"admin add-book"},
		},
		{
			name:     "admin",
			user:     &bookstore.User{UserName: "root", Role: bookstore.RoleAdmin},
			contains: []string{"root", "ROLE_ADMIN", "bookstore-cli admin add-book"},
			absent:   []string{"bookstore-cli cart"},
		},
	}

	for _, row := range table {
		var out bytes.Buffer
		RenderSession(&out, row.user, "bookstore-cli")
		for _, s := range row.contains {
			require.Contains(t, out.String(), s, row.name)
		}
		for _, s := range row.absent {
			require.NotContains(t, out.String(), s, row.name)
		}
	}
}
