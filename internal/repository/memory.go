package repository

import (
	"context"
	"sort"

	"chatbot-service/internal/model"
)

// MemoryRepository serves a fixed seed from memory. It is never mutated after
// construction, so concurrent readers need no locking.
type MemoryRepository struct {
	products []model.Product
	invoices []model.Invoice
}

// NewMemoryRepository copies the seed so later changes to it are not observed
func NewMemoryRepository(seed Seed) *MemoryRepository {
	products := make([]model.Product, len(seed.Products))
	copy(products, seed.Products)

	// newest first; on equal dates the later seed entry wins, like id DESC
	invoices := make([]model.Invoice, len(seed.Invoices))
	for i, inv := range seed.Invoices {
		invoices[len(invoices)-1-i] = inv
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})

	return &MemoryRepository{products: products, invoices: invoices}
}

func (r *MemoryRepository) FindProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []model.Product
	for _, p := range r.products {
		if !filter.matches(p) {
			continue
		}
		out = append(out, p)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepository) CountProducts(ctx context.Context, filter ProductFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	filter.Limit = 0
	var n int64
	for _, p := range r.products {
		if filter.matches(p) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) FindInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []model.Invoice
	for _, i := range r.invoices {
		if !filter.matches(i) {
			continue
		}
		out = append(out, i)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
