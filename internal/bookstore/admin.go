package bookstore

import (
	"context"
	"fmt"
	"net/http"
)

const (
	report_client_add_book      = "client.add-book"
	report_client_register_user = "client.register-user"
)

func (b NewBook) Validate() error {
	if b.Title == "" {
		return fmt.Errorf("title is required")
	}
	if b.Author == "" {
		return fmt.Errorf("author is required")
	}
	if b.Price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if b.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}

// AddBook creates a catalog entry, it requires an admin session.
func (c *Client) AddBook(ctx context.Context, book NewBook) (Book, error) {
	ctx, span := tracer.Start(ctx, "client:AddBook")
	defer span.End()

	if err := book.Validate(); err != nil {
		return Book{}, fmt.Errorf("add book: %w", err)
	}

	req := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(book)
	res, err := c.execute(ctx, req, http.MethodPost, "/admin/books")
	if err != nil {
		return Book{}, c.fail(span, report_client_add_book, err, book.Title)
	}
	created, err := decode[Book](res)
	if err != nil {
		return Book{}, c.fail(span, report_client_add_book, err, book.Title)
	}
	return created, nil
}

// RegisterUser creates a user with an explicit role, it requires an admin session.
func (c *Client) RegisterUser(ctx context.Context, req RegisterRequest) (User, error) {
	ctx, span := tracer.Start(ctx, "client:RegisterUser")
	defer span.End()

	if req.Role == "" {
		req.Role = RoleUser
	}
	r := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(req)
	res, err := c.execute(ctx, r, http.MethodPost, "/admin/users")
	if err != nil {
		return User{}, c.fail(span, report_client_register_user, err, req.UserName, req.Role)
	}
	user, err := decode[User](res)
	if err != nil {
		return User{}, c.fail(span, report_client_register_user, err, req.UserName, req.Role)
	}
	return user, nil
}
