package domain

import "strings"

// Product is the body stored in the products collection.
type Product struct {
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
}

// Normalize trims text fields and upper-cases the SKU.
func (p Product) Normalize() Product {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	return p
}

func (p Product) Validate() error {
	errs := FieldErrors{}
	if p.Name == "" {
		errs["name"] = "required"
	}
	if p.SKU == "" {
		errs["sku"] = "required"
	}
	if p.PriceCents < 0 {
		errs["price_cents"] = "must not be negative"
	}
	if p.Stock < 0 {
		errs["stock"] = "must not be negative"
	}
	return errs.errOrNil()
}
