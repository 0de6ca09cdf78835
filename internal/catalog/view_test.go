package catalog

import (
	"testing"

	"bookstore-client/internal/bookstore"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestRenderCards(t *testing.T) {
	page := PageResult{
		Items: []Item{
			{Id: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Price: decimal.RequireFromString("9.5"), Stock: 3, Description: strPtr("Spice.")},
			{Id: 2, Title: "Emma", Author: "Jane Austen", Category: "Classic", Price: decimal.RequireFromString("4"), Stock: 0},
			{Id: 3, Title: "Ulysses", Author: "James Joyce", Category: "Classic", Price: decimal.RequireFromString("12.345"), Stock: 1, Description: strPtr("")},
		},
		PageNumber: 2,
		TotalPages: 5,
	}

	expected := ViewModel{
		Cards: []Card{
			{Id: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Price: "$9.50", Stock: 3, Description: "Spice.", CanAddToCart: true},
			{Id: 2, Title: "Emma", Author: "Jane Austen", Category: "Classic", Price: "$4.00", Stock: 0, Description: NoDescription},
			{Id: 3, Title: "Ulysses", Author: "James Joyce", Category: "Classic", Price: "$12.35", Stock: 1, Description: NoDescription, CanAddToCart: true},
		},
		Controls: Controls{PreviousEnabled: true, NextEnabled: true, Label: "Page 3 of 5"},
	}

	vm := Render(page)
	if diff := cmp.Diff(expected, vm); diff != "" {
		t.Fatalf("unexpected view model (-want +got):\n%s", diff)
	}

	require.Equal(t, AddToCartLabel, vm.Cards[0].ActionLabel())
	require.Equal(t, OutOfStockLabel, vm.Cards[1].ActionLabel())
}

func TestRenderControls(t *testing.T) {
	table := []struct {
		name     string
		page     PageResult
		expected Controls
	}{
		{
			name:     "first page",
			page:     PageResult{PageNumber: 0, TotalPages: 3, IsFirst: true},
			expected: Controls{NextEnabled: true, Label: "Page 1 of 3"},
		},
		{
			name:     "last page",
			page:     PageResult{PageNumber: 2, TotalPages: 3, IsLast: true},
			expected: Controls{PreviousEnabled: true, Label: "Page 3 of 3"},
		},
		{
			name:     "only page",
			page:     PageResult{PageNumber: 0, TotalPages: 1, IsFirst: true, IsLast: true},
			expected: Controls{Label: "Page 1 of 1"},
		},
	}

	for _, row := range table {
		require.Equal(t, row.expected, Render(row.page).Controls, row.name)
	}
}

func TestRenderEmptyPage(t *testing.T) {
	vm := Render(PageResult{PageNumber: 0, TotalPages: 0, IsFirst: true, IsLast: true})
	require.Empty(t, vm.Cards)
	require.Equal(t, NoResultsMessage, vm.Message)
	require.Equal(t, "Page 1 of 0", vm.Controls.Label)
	require.False(t, vm.Controls.PreviousEnabled)
	require.False(t, vm.Controls.NextEnabled)
}

func TestRenderFromResponse(t *testing.T) {
	vm := Render(pageFromResponse(bookstore.Page[bookstore.Book]{
		Content:    []bookstore.Book{{Id: 9, Title: "Beloved", Price: decimal.NewFromInt(7), Stock: 2}},
		Number:     0,
		TotalPages: 1,
		First:      true,
		Last:       true,
	}))
	require.Len(t, vm.Cards, 1)
	require.Equal(t, "$7.00", vm.Cards[0].Price)
	require.Empty(t, vm.Message)
}
