package bookstore

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
)

const (
	report_client_list_books        = "client.list-books"
	report_client_search_books      = "client.search-books"
	report_client_books_by_category = "client.books-by-category"
)

const (
	catalogPath         = "/catalog"
	catalogSearchPath   = "/catalog/search"
	catalogCategoryPath = "/catalog/category"
)

func pageParams(page, size int) map[string]string {
	return map[string]string{
		"page": strconv.Itoa(page),
		"size": strconv.Itoa(size),
	}
}

func (c *Client) fetchPage(ctx context.Context, path string, req *resty.Request) (Page[Book], error) {
	res, err := c.execute(ctx, req, http.MethodGet, path)
	if err != nil {
		return Page[Book]{}, err
	}
	page, err := decode[Page[Book]](res)
	if err != nil {
		return Page[Book]{}, err
	}
	if page.Content == nil {
		page.Content = []Book{}
	}
	return page, nil
}

// ListBooks returns the `page`th page of the whole catalog.
func (c *Client) ListBooks(ctx context.Context, page, size int) (Page[Book], error) {
	ctx, span := tracer.Start(ctx, "client:ListBooks")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page), attribute.Int("size", size))

	req := c.http.R().SetQueryParams(pageParams(page, size))
	result, err := c.fetchPage(ctx, catalogPath, req)
	if err != nil {
		return result, c.fail(span, report_client_list_books, err, page, size)
	}
	return result, nil
}

// SearchBooks returns the `page`th page of books whose title or author matches `keyword`.
func (c *Client) SearchBooks(ctx context.Context, keyword string, page, size int) (Page[Book], error) {
	ctx, span := tracer.Start(ctx, "client:SearchBooks")
	defer span.End()
	span.SetAttributes(
		attribute.String("keyword", keyword),
		attribute.Int("page", page),
		attribute.Int("size", size),
	)

	req := c.http.R().
		SetQueryParams(pageParams(page, size)).
		SetQueryParam("keyword", keyword)
	result, err := c.fetchPage(ctx, catalogSearchPath, req)
	if err != nil {
		return result, c.fail(span, report_client_search_books, err, keyword, page, size)
	}
	return result, nil
}

// BooksByCategory returns the `page`th page of books in `category`.
func (c *Client) BooksByCategory(ctx context.Context, category string, page, size int) (Page[Book], error) {
	ctx, span := tracer.Start(ctx, "client:BooksByCategory")
	defer span.End()
	span.SetAttributes(
		attribute.String("category", category),
		attribute.Int("page", page),
		attribute.Int("size", size),
	)

	req := c.http.R().
		SetQueryParams(pageParams(page, size)).
		SetQueryParam("category", category)
	result, err := c.fetchPage(ctx, catalogCategoryPath, req)
	if err != nil {
		return result, c.fail(span, report_client_books_by_category, err, category, page, size)
	}
	return result, nil
}
