package bookstore

import (
	"context"
	"net/http"
)

const report_client_orders = "client.orders"

// Orders returns the signed in user's order history.
func (c *Client) Orders(ctx context.Context) ([]OrderSummary, error) {
	ctx, span := tracer.Start(ctx, "client:Orders")
	defer span.End()

	res, err := c.execute(ctx, c.http.R(), http.MethodGet, "/orders")
	if err != nil {
		return nil, c.fail(span, report_client_orders, err)
	}
	orders, err := decode[[]OrderSummary](res)
	if err != nil {
		return nil, c.fail(span, report_client_orders, err)
	}
	return orders, nil
}
