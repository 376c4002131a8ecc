package repository

import (
	"context"
	"strings"
	"time"

	"chatbot-service/internal/model"
)

// ProductFilter narrows a product query. Zero values leave a field unconstrained.
// Substring matches are case-insensitive.
type ProductFilter struct {
	NameContains     string
	CategoryContains string
	// StockBelow keeps products with Stock strictly less than the value
	StockBelow *int
	Status     model.ProductStatus
	// ExpiresFrom and ExpiresTo bound ExpiryDate inclusively
	ExpiresFrom  time.Time
	ExpiresTo    time.Time
	ArrivedSince time.Time
	Limit        int
}

// InvoiceFilter narrows an invoice query
type InvoiceFilter struct {
	ProductNameContains string
	Limit               int
}

// Repository is the read-only view of the product and invoice dataset.
// FindProducts keeps dataset order; FindInvoices returns the newest invoice first.
type Repository interface {
	FindProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	CountProducts(ctx context.Context, filter ProductFilter) (int64, error)
	FindInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error)
}

// StockBelow is a helper for building a ProductFilter literal
func StockBelow(n int) *int {
	return &n
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (f ProductFilter) matches(p model.Product) bool {
	if f.NameContains != "" && !containsFold(p.Name, f.NameContains) {
		return false
	}
	if f.CategoryContains != "" && !containsFold(p.Category, f.CategoryContains) {
		return false
	}
	if f.StockBelow != nil && p.Stock >= *f.StockBelow {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if !f.ExpiresFrom.IsZero() && p.ExpiryDate.Before(f.ExpiresFrom) {
		return false
	}
	if !f.ExpiresTo.IsZero() && p.ExpiryDate.After(f.ExpiresTo) {
		return false
	}
	if !f.ArrivedSince.IsZero() && p.ArrivalDate.Before(f.ArrivedSince) {
		return false
	}
	return true
}

func (f InvoiceFilter) matches(i model.Invoice) bool {
	return f.ProductNameContains == "" || containsFold(i.ProductName, f.ProductNameContains)
}
