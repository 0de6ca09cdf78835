package bookstore

import (
	"context"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
)

const (
	report_client_add_to_cart = "client.add-to-cart"
	report_client_cart        = "client.cart"
	report_client_checkout    = "client.checkout"
)

// AddToCart adds one copy of `bookId` to the signed in user's cart.
func (c *Client) AddToCart(ctx context.Context, bookId int64) error {
	ctx, span := tracer.Start(ctx, "client:AddToCart")
	defer span.End()
	span.SetAttributes(attribute.Int64("book_id", bookId))

	req := c.http.R().SetQueryParam("bookId", strconv.FormatInt(bookId, 10))
	_, err := c.execute(ctx, req, http.MethodPost, "/cart/add")
	if err != nil {
		return c.fail(span, report_client_add_to_cart, err, bookId)
	}
	return nil
}

func (c *Client) Cart(ctx context.Context) ([]CartItem, error) {
	ctx, span := tracer.Start(ctx, "client:Cart")
	defer span.End()

	res, err := c.execute(ctx, c.http.R(), http.MethodGet, "/cart")
	if err != nil {
		return nil, c.fail(span, report_client_cart, err)
	}
	items, err := decode[[]CartItem](res)
	if err != nil {
		return nil, c.fail(span, report_client_cart, err)
	}
	return items, nil
}

// Checkout turns the signed in user's cart into an order.
func (c *Client) Checkout(ctx context.Context) (Order, error) {
	ctx, span := tracer.Start(ctx, "client:Checkout")
	defer span.End()

	res, err := c.execute(ctx, c.http.R(), http.MethodPost, "/checkout")
	if err != nil {
		return Order{}, c.fail(span, report_client_checkout, err)
	}
	order, err := decode[Order](res)
	if err != nil {
		return Order{}, c.fail(span, report_client_checkout, err)
	}
	return order, nil
}
