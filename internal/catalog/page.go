package catalog

import "bookstore-client/internal/bookstore"

// Item is an immutable snapshot of a book as the server reported it.
type Item = bookstore.Book

// PageResult is produced fresh by every fetch and only ever replaced wholesale.
type PageResult struct {
	Items      []Item
	PageNumber int
	TotalPages int
	IsFirst    bool
	IsLast     bool
}

func pageFromResponse(page bookstore.Page[bookstore.Book]) PageResult {
	items := make([]Item, len(page.Content))
	copy(items, page.Content)
	return PageResult{
		Items:      items,
		PageNumber: page.Number,
		TotalPages: page.TotalPages,
		IsFirst:    page.First,
		IsLast:     page.Last,
	}
}

func (p PageResult) find(id int64) (Item, bool) {
	for _, item := range p.Items {
		if item.Id == id {
			return item, true
		}
	}
	return Item{}, false
}
