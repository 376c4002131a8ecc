package repository

import (
	"context"
	"testing"
	"time"

	"chatbot-service/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed() Seed {
	return Seed{
		Products: []model.Product{
			{
				Name: "Milk", Stock: 15, Price: decimal.NewFromInt(25),
				ExpiryDate: model.Date(2025, time.June, 30), ArrivalDate: model.Date(2025, time.June, 25),
				LastUpdated: model.Date(2025, time.June, 28), Location: "shelf",
				Status: model.StatusOK, Category: "dairy",
			},
			{
				Name: "Rice", Stock: 4, Price: decimal.NewFromInt(55),
				ExpiryDate: model.Date(2025, time.July, 1), ArrivalDate: model.Date(2025, time.June, 20),
				LastUpdated: model.Date(2025, time.June, 27), Location: "warehouse",
				Status: model.StatusDamaged, Category: "grain",
			},
			{
				Name: "Brown Rice", Stock: 30, Price: decimal.RequireFromString("72.5"),
				ExpiryDate: model.Date(2025, time.December, 1), ArrivalDate: model.Date(2025, time.June, 27),
				LastUpdated: model.Date(2025, time.June, 27),
				Status: model.StatusOK, Category: "Grain",
			},
		},
		Invoices: []model.Invoice{
			{
				InvoiceNo: "INV100", ProductName: "Rice", Amount: decimal.NewFromInt(400),
				CreatedAt: model.Date(2025, time.May, 2), PDFLink: "http://example.com/invoice100.pdf",
			},
			{
				InvoiceNo: "INV123", ProductName: "Rice", Amount: decimal.NewFromInt(550),
				CreatedAt: model.Date(2025, time.June, 25), PDFLink: "http://example.com/invoice123.pdf",
			},
			{
				InvoiceNo: "INV124", ProductName: "Milk", Amount: decimal.NewFromInt(250),
				CreatedAt: model.Date(2025, time.June, 1), PDFLink: "http://example.com/invoice124.pdf",
			},
			{
				InvoiceNo: "INV125", ProductName: "Milk", Amount: decimal.NewFromInt(260),
				CreatedAt: model.Date(2025, time.June, 1), PDFLink: "http://example.com/invoice125.pdf",
			},
		},
	}
}

func productNames(products []model.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

func invoiceNumbers(invoices []model.Invoice) []string {
	nos := make([]string, 0, len(invoices))
	for _, i := range invoices {
		nos = append(nos, i.InvoiceNo)
	}
	return nos
}

// runRepositoryContract checks behaviour every Repository must share. repo
// must hold testSeed().
func runRepositoryContract(t *testing.T, repo Repository) {
	ctx := context.Background()

	productCases := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{name: "no filter keeps dataset order", filter: ProductFilter{}, want: []string{"Milk", "Rice", "Brown Rice"}},
		{name: "name substring ignores case", filter: ProductFilter{NameContains: "RICE"}, want: []string{"Rice", "Brown Rice"}},
		{name: "name with limit", filter: ProductFilter{NameContains: "rice", Limit: 1}, want: []string{"Rice"}},
		{name: "name without match", filter: ProductFilter{NameContains: "pump"}, want: []string{}},
		{name: "like wildcards are literal", filter: ProductFilter{NameContains: "_"}, want: []string{}},
		{name: "category", filter: ProductFilter{CategoryContains: "grain"}, want: []string{"Rice", "Brown Rice"}},
		{name: "stock below", filter: ProductFilter{StockBelow: StockBelow(10)}, want: []string{"Rice"}},
		{name: "stock below is strict", filter: ProductFilter{StockBelow: StockBelow(4)}, want: []string{}},
		{name: "status", filter: ProductFilter{Status: model.StatusDamaged}, want: []string{"Rice"}},
		{
			name: "expiry window is inclusive",
			filter: ProductFilter{
				ExpiresFrom: model.Date(2025, time.June, 30),
				ExpiresTo:   model.Date(2025, time.July, 1),
			},
			want: []string{"Milk", "Rice"},
		},
		{
			name:   "expiry window excludes past",
			filter: ProductFilter{ExpiresFrom: model.Date(2025, time.July, 1), ExpiresTo: model.Date(2025, time.July, 4)},
			want:   []string{"Rice"},
		},
		{name: "arrived since", filter: ProductFilter{ArrivedSince: model.Date(2025, time.June, 21)}, want: []string{"Milk", "Brown Rice"}},
		{
			name:   "filters combine",
			filter: ProductFilter{CategoryContains: "grain", Status: model.StatusOK},
			want:   []string{"Brown Rice"},
		},
	}

	for _, tc := range productCases {
		t.Run("FindProducts/"+tc.name, func(t *testing.T) {
			products, err := repo.FindProducts(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, productNames(products))
		})
	}

	t.Run("FindProducts returns full records", func(t *testing.T) {
		products, err := repo.FindProducts(ctx, ProductFilter{NameContains: "milk", Limit: 1})
		require.NoError(t, err)
		require.Len(t, products, 1)

		milk := products[0]
		assert.Equal(t, 15, milk.Stock)
		assert.Equal(t, "25", milk.Price.String())
		assert.Equal(t, "2025-06-30", model.FormatDate(milk.ExpiryDate))
		assert.Equal(t, "2025-06-28", model.FormatDate(milk.LastUpdated))
		assert.Equal(t, "shelf", milk.Location)
		assert.Equal(t, model.StatusOK, milk.Status)
	})

	t.Run("CountProducts", func(t *testing.T) {
		n, err := repo.CountProducts(ctx, ProductFilter{CategoryContains: "GRAIN"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		n, err = repo.CountProducts(ctx, ProductFilter{CategoryContains: "tech"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)

		// limit does not cap a count
		n, err = repo.CountProducts(ctx, ProductFilter{Limit: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
	})

	t.Run("FindInvoices newest first", func(t *testing.T) {
		invoices, err := repo.FindInvoices(ctx, InvoiceFilter{ProductNameContains: "rice"})
		require.NoError(t, err)
		assert.Equal(t, []string{"INV123", "INV100"}, invoiceNumbers(invoices))

		invoices, err = repo.FindInvoices(ctx, InvoiceFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"INV123", "INV125"}, invoiceNumbers(invoices))

		invoices, err = repo.FindInvoices(ctx, InvoiceFilter{ProductNameContains: "milk"})
		require.NoError(t, err)
		assert.Equal(t, []string{"INV125", "INV124"}, invoiceNumbers(invoices), "same day, later entry first")

		invoices, err = repo.FindInvoices(ctx, InvoiceFilter{ProductNameContains: "pump"})
		require.NoError(t, err)
		assert.Empty(t, invoices)
	})

	t.Run("FindInvoices returns full records", func(t *testing.T) {
		invoices, err := repo.FindInvoices(ctx, InvoiceFilter{ProductNameContains: "rice", Limit: 1})
		require.NoError(t, err)
		require.Len(t, invoices, 1)

		inv := invoices[0]
		assert.Equal(t, "Rice", inv.ProductName)
		assert.Equal(t, "550", inv.Amount.String())
		assert.Equal(t, "2025-06-25", model.FormatDate(inv.CreatedAt))
		assert.Equal(t, "http://example.com/invoice123.pdf", inv.PDFLink)
	})
}
