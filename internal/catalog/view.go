package catalog

import "fmt"

const (
	NoResultsMessage  = "No books found."
	NoDescription     = "No description available."
	AddToCartLabel    = "Add to Cart"
	OutOfStockLabel   = "Out of Stock"
	PreviousLabel     = "Previous"
	NextLabel         = "Next"
	pageLabelTemplate = "Page %d of %d"
)

// Card is one rendered item. Exactly one of the add to cart action or the
// out of stock label is present, depending on CanAddToCart.
type Card struct {
	Id           int64
	Title        string
	Author       string
	Category     string
	Price        string
	Stock        int
	Description  string
	CanAddToCart bool
}

func (c Card) ActionLabel() string {
	if c.CanAddToCart {
		return AddToCartLabel
	}
	return OutOfStockLabel
}

type Controls struct {
	PreviousEnabled bool
	NextEnabled     bool
	// "Page N of M", N is 1-indexed
	Label string
}

// ViewModel is everything a View needs to draw a page of the catalog.
type ViewModel struct {
	Cards []Card
	// set when there are no cards, the controls are still drawn
	Message  string
	Controls Controls
}

// View is the rendering surface, it replaces whatever it displayed before with `vm`.
type View interface {
	Show(vm ViewModel)
}

func renderCard(item Item) Card {
	description := NoDescription
	if item.Description != nil && *item.Description != "" {
		description = *item.Description
	}
	return Card{
		Id:           item.Id,
		Title:        item.Title,
		Author:       item.Author,
		Category:     item.Category,
		Price:        "$" + item.Price.StringFixed(2),
		Stock:        item.Stock,
		Description:  description,
		CanAddToCart: item.Stock > 0,
	}
}

// Render builds the view model of `page`, preserving item order.
func Render(page PageResult) ViewModel {
	vm := ViewModel{
		Cards: make([]Card, 0, len(page.Items)),
		Controls: Controls{
			PreviousEnabled: !page.IsFirst,
			NextEnabled:     !page.IsLast,
			Label:           fmt.Sprintf(pageLabelTemplate, page.PageNumber+1, page.TotalPages),
		},
	}
	if len(page.Items) == 0 {
		vm.Message = NoResultsMessage
		return vm
	}
	for _, item := range page.Items {
		vm.Cards = append(vm.Cards, renderCard(item))
	}
	return vm
}
