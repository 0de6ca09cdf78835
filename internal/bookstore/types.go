package bookstore

import (
	"github.com/shopspring/decimal"
)

type Book struct {
	Id          int64           `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description *string         `json:"description,omitempty"`
}

// NewBook is the payload of an admin book creation.
type NewBook struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description,omitempty"`
}

// Page is one page of a paginated listing, `Number` is 0-indexed.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

type User struct {
	Id       int64  `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// only honored by the admin registration endpoint
	Role Role `json:"role,omitempty"`
}

type CartItem struct {
	Id       int64 `json:"id"`
	Book     Book  `json:"book"`
	Quantity int   `json:"quantity"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Book.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

type OrderStatus string

const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is the record returned by checkout.
type Order struct {
	Id          int64           `json:"id"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type OrderLine struct {
	BookTitle string          `json:"bookTitle"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderSummary is an entry of the signed in user's order history.
type OrderSummary struct {
	OrderId     int64           `json:"orderId"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []OrderLine     `json:"items"`
}
