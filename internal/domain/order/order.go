// Package order implements checkout: validating order input, notifying the
// operator, and issuing the payment QR. The cart is cleared only after the
// notifier acknowledges the order, never before.
package order

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/ngducnhatt/muacode.com/internal/domain/cart"
)

// ErrEmptyCart is returned when checkout is attempted with no items.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports structurally invalid order input, per field.
// Orders failing validation never reach the notifier.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order input: %d field(s)", len(e.Fields))
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Notice is the payload sent to the operator for a direct (buy/sell form)
// order. Amounts are in đồng.
type Notice struct {
	OrderID     string
	VariantID   string
	ProductName string
	UnitPrice   int64
	Quantity    int
	TotalAmount int64
	SellID      string
	Bank        string
	Account     string
	AccountName string
}

// CheckoutNotice is the payload sent to the operator for a cart checkout.
type CheckoutNotice struct {
	OrderID string
	Email   string
	Note    string
	Total   int64
	Items   []cart.Item
}

// Notifier delivers order notices to the operator. A non-acknowledged
// delivery must be reported as an error; callers treat it exactly like a
// transport failure.
type Notifier interface {
	SendOrder(ctx context.Context, n Notice) error
	SendCheckout(ctx context.Context, n CheckoutNotice) error
}
