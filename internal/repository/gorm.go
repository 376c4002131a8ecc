package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatbot-service/internal/model"
	"chatbot-service/prometheus"

	"gorm.io/gorm"
)

// GormRepository reads the dataset from the relational store
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a lowercased %substr% pattern for LOWER(col) LIKE ?,
// which works the same on postgres and sqlite (ILIKE is postgres only).
func likePattern(substr string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(substr)) + "%"
}

func (r *GormRepository) productQuery(ctx context.Context, f ProductFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Product{})
	if f.NameContains != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(f.NameContains))
	}
	if f.CategoryContains != "" {
		q = q.Where(`LOWER(category) LIKE ? ESCAPE '\'`, likePattern(f.CategoryContains))
	}
	if f.StockBelow != nil {
		q = q.Where("stock < ?", *f.StockBelow)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if !f.ExpiresFrom.IsZero() {
		q = q.Where("expiry_date >= ?", f.ExpiresFrom)
	}
	if !f.ExpiresTo.IsZero() {
		q = q.Where("expiry_date <= ?", f.ExpiresTo)
	}
	if !f.ArrivedSince.IsZero() {
		q = q.Where("arrival_date >= ?", f.ArrivedSince)
	}
	return q
}

func (r *GormRepository) FindProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("find_products")(time.Now())

	q := r.productQuery(ctx, filter).Order("id")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var products []model.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}

func (r *GormRepository) CountProducts(ctx context.Context, filter ProductFilter) (int64, error) {
	defer prometheus.TrackDBOperation("count_products")(time.Now())

	var count int64
	if err := r.productQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (r *GormRepository) FindInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error) {
	defer prometheus.TrackDBOperation("find_invoices")(time.Now())

	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.ProductNameContains != "" {
		q = q.Where(`LOWER(product_name) LIKE ? ESCAPE '\'`, likePattern(filter.ProductNameContains))
	}
	q = q.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var invoices []model.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("find invoices: %w", err)
	}
	return invoices, nil
}
