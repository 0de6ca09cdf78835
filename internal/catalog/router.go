package catalog

import (
	"context"
	"fmt"
	"time"

	"bookstore-client/internal/bookstore"
)

type RouteKind int

const (
	ListAll RouteKind = iota
	SearchByKeyword
	FilterByCategory
)

func (k RouteKind) String() string {
	switch k {
	case ListAll:
		return "list-all"
	case SearchByKeyword:
		return "search-by-keyword"
	case FilterByCategory:
		return "filter-by-category"
	}
	return fmt.Sprintf("route-kind(%d)", int(k))
}

// Route is the single remote call a QueryState maps to.
type Route struct {
	Kind RouteKind
	// the keyword or category, empty for ListAll
	Text string
	Page int
	Size int
}

func (r Route) String() string {
	if r.Kind == ListAll {
		return fmt.Sprintf("%s(page=%d, size=%d)", r.Kind, r.Page, r.Size)
	}
	return fmt.Sprintf("%s(%q, page=%d, size=%d)", r.Kind, r.Text, r.Page, r.Size)
}

// Resolve picks the endpoint for `q`: a keyword wins over a category, no filter lists everything.
func Resolve(q QueryState) Route {
	route := Route{Kind: ListAll, Page: q.PageIndex, Size: q.PageSize}
	switch {
	case q.Keyword != "":
		route.Kind = SearchByKeyword
		route.Text = q.Keyword
	case q.Category != "":
		route.Kind = FilterByCategory
		route.Text = q.Category
	}
	return route
}

// Source is the read side of the catalog service, implemented by *bookstore.Client.
type Source interface {
	ListBooks(ctx context.Context, page, size int) (bookstore.Page[bookstore.Book], error)
	SearchBooks(ctx context.Context, keyword string, page, size int) (bookstore.Page[bookstore.Book], error)
	BooksByCategory(ctx context.Context, category string, page, size int) (bookstore.Page[bookstore.Book], error)
}

type Router struct {
	source  Source
	timeout time.Duration
}

// NewRouter creates a Router, every fetch is bounded by `timeout` (0 means 30 seconds).
func NewRouter(source Source, timeout time.Duration) Router {
	if timeout <= 0 {
		timeout = time.Second * 30
	}
	return Router{source: source, timeout: timeout}
}

// Fetch issues the call for `route`. It does not retry.
func (r Router) Fetch(ctx context.Context, route Route) (PageResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		page bookstore.Page[bookstore.Book]
		err  error
	)
	switch route.Kind {
	case SearchByKeyword:
		page, err = r.source.SearchBooks(ctx, route.Text, route.Page, route.Size)
	case FilterByCategory:
		page, err = r.source.BooksByCategory(ctx, route.Text, route.Page, route.Size)
	default:
		page, err = r.source.ListBooks(ctx, route.Page, route.Size)
	}
	if err != nil {
		return PageResult{}, &FetchFailedError{Route: route, Err: err}
	}
	return pageFromResponse(page), nil
}
