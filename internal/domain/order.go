package domain

import (
	"math"
	"strings"
)

// OrderStatus represents lifecycle states for an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is a known value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single order line.
type OrderItem struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Order is the body stored in the orders collection.
type Order struct {
	Customer   string      `json:"customer"`
	Items      []OrderItem `json:"items"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Notes      string      `json:"notes,omitempty"`
}

// Normalize trims fields, defaults the status and recomputes the total.
func (o Order) Normalize() Order {
	o.Customer = strings.TrimSpace(o.Customer)
	o.Notes = strings.TrimSpace(o.Notes)
	o.Status = OrderStatus(strings.ToLower(strings.TrimSpace(string(o.Status))))
	if o.Status == "" {
		o.Status = OrderStatusPending
	}

	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		item.ProductID = strings.TrimSpace(item.ProductID)
		items[i] = item
	}
	o.Items = items
	// An overflowing total is left at zero; Validate rejects the order.
	o.TotalCents, _ = orderTotal(items)
	return o
}

// orderTotal sums quantity * unit price over non-negative lines. ok is false
// when the sum does not fit in int64.
func orderTotal(items []OrderItem) (total int64, ok bool) {
	for _, item := range items {
		qty, price := int64(item.Quantity), item.UnitPriceCents
		if qty <= 0 || price <= 0 {
			continue
		}
		if qty > math.MaxInt64/price {
			return 0, false
		}
		line := qty * price
		if total > math.MaxInt64-line {
			return 0, false
		}
		total += line
	}
	return total, true
}

// Validate checks required fields and item amounts.
func (o Order) Validate() error {
	errs := FieldErrors{}
	if o.Customer == "" {
		errs["customer"] = "required"
	}
	if len(o.Items) == 0 {
		errs["items"] = "at least one item required"
	}
	for _, item := range o.Items {
		if item.ProductID == "" {
			errs["items"] = "product_id required"
			break
		}
		if item.Quantity <= 0 {
			errs["items"] = "quantity must be positive"
			break
		}
		if item.UnitPriceCents < 0 {
			errs["items"] = "unit_price_cents must not be negative"
			break
		}
	}
	if _, ok := orderTotal(o.Items); !ok {
		errs["items"] = "order total is too large"
	}
	if !o.Status.Valid() {
		errs["status"] = "must be one of pending, paid, shipped, cancelled"
	}
	return errs.errOrNil()
}
