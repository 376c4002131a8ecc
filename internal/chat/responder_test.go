package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"chatbot-service/internal/model"
	"chatbot-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var june28 = time.Date(2025, time.June, 28, 12, 0, 0, 0, time.UTC)

func newTestResponder(t *testing.T, now time.Time, mutate ...func(*Settings)) *Responder {
	t.Helper()

	seed, err := repository.DefaultSeed()
	require.NoError(t, err)

	settings := DefaultSettings()
	settings.Location = time.UTC
	for _, m := range mutate {
		m(&settings)
	}
	return NewResponder(repository.NewMemoryRepository(seed),
		WithSettings(settings),
		WithClock(func() time.Time { return now }),
	)
}

func TestResponderReplies(t *testing.T) {
	r := newTestResponder(t, june28)

	tests := []struct {
		message    string
		wantIntent Intent
		wantEntity string
		want       string
	}{
		{
			message:    "stock of milk",
			wantIntent: StockQuery,
			wantEntity: "milk",
			want:       "Product: Milk\nStock: 15 units\nPrice: ₹25\nExpiry: 2025-06-30\nLocation: shelf",
		},
		{
			message:    "Price for Rice?",
			wantIntent: StockQuery,
			wantEntity: "rice",
			want:       "Product: Rice\nStock: 4 units\nPrice: ₹55\nExpiry: 2025-07-01\nLocation: warehouse",
		},
		{message: "stock of pump", wantIntent: StockQuery, wantEntity: "pump", want: "Product not found in inventory."},
		{message: "price for the pump", wantIntent: StockQuery, wantEntity: "the", want: "Product not found in inventory."},
		{message: "what is in stock", wantIntent: StockQuery, want: "Product not found in inventory."},
		{
			message:    "products expiring soon",
			wantIntent: ExpiryQuery,
			want:       "Products expiring soon:\n- Milk (Exp: 2025-06-30)\n- Rice (Exp: 2025-07-01)",
		},
		{message: "low stock items", wantIntent: LowStockQuery, want: "Low Stock Items:\n- Rice: 4 units"},
		{message: "show damaged items", wantIntent: DamagedQuery, want: "Damaged Items:\n- Rice"},
		{
			message:    "invoice for rice",
			wantIntent: InvoiceQuery,
			wantEntity: "rice",
			want: "Last Invoice for rice:\n- Invoice No: INV123\n- Amount: ₹550\n- Date: 2025-06-25\n" +
				"- Download: http://example.com/invoice123.pdf",
		},
		{message: "invoice for milk", wantIntent: InvoiceQuery, wantEntity: "milk", want: "No invoice found for that product."},
		{message: "last invoice", wantIntent: InvoiceQuery, want: "No invoice found for that product."},
		{message: "show new arrivals", wantIntent: NewArrivalsQuery, want: "Newly Arrived Items:\n- Milk (Arrived: 2025-06-25)"},
		{
			message:    "how many in category of dairy",
			wantIntent: CategoryQuery,
			wantEntity: "dairy",
			want:       "There are 1 products in category 'dairy'.",
		},
		{
			message:    "how many about tech",
			wantIntent: CategoryQuery,
			wantEntity: "tech",
			want:       "There are 0 products in category 'tech'.",
		},
		{message: "how many dairy items", wantIntent: CategoryQuery, want: "Please mention a category name like dairy, tech, etc."},
		{
			message:    "last updated of milk",
			wantIntent: LastUpdatedQuery,
			wantEntity: "milk",
			want:       "Milk was last updated on 2025-06-28",
		},
		{message: "last updated of pump", wantIntent: LastUpdatedQuery, wantEntity: "pump", want: "Product not found."},
		{message: "what can you do", wantIntent: Help, want: HelpText()},
		{message: "help", wantIntent: Help, want: HelpText()},
		{message: "hello there", wantIntent: Unknown, want: UnknownText()},
		{message: "", wantIntent: Unknown, want: UnknownText()},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			reply, err := r.Reply(context.Background(), tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntent, reply.Intent)
			assert.Equal(t, tt.wantEntity, reply.Entity)
			assert.Equal(t, tt.want, reply.Text)
		})
	}
}

func TestResponderIsRepeatable(t *testing.T) {
	r := newTestResponder(t, june28)

	first, err := r.Reply(context.Background(), "low stock items")
	require.NoError(t, err)
	second, err := r.Reply(context.Background(), "low stock items")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResponderEmptyReplies(t *testing.T) {
	t.Run("nothing expiring", func(t *testing.T) {
		r := newTestResponder(t, time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC))
		reply, err := r.Reply(context.Background(), "what will expire")
		require.NoError(t, err)
		assert.Equal(t, "No products are expiring in the next 3 days.", reply.Text)
	})

	t.Run("nothing arrived", func(t *testing.T) {
		r := newTestResponder(t, time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC))
		reply, err := r.Reply(context.Background(), "anything new")
		require.NoError(t, err)
		assert.Equal(t, "No new products added in the last 7 days.", reply.Text)
	})

	t.Run("threshold is strict", func(t *testing.T) {
		r := newTestResponder(t, june28, func(s *Settings) { s.LowStockThreshold = 4 })
		reply, err := r.Reply(context.Background(), "low stock")
		require.NoError(t, err)
		assert.Equal(t, "All items are above the minimum stock level.", reply.Text)
	})

	t.Run("no damaged products", func(t *testing.T) {
		r := NewResponder(repository.NewMemoryRepository(repository.Seed{}))
		reply, err := r.Reply(context.Background(), "damaged")
		require.NoError(t, err)
		assert.Equal(t, "No damaged products found.", reply.Text)
	})
}

func TestResponderSettings(t *testing.T) {
	t.Run("wider expiry window", func(t *testing.T) {
		r := newTestResponder(t, time.Date(2025, time.June, 20, 9, 0, 0, 0, time.UTC),
			func(s *Settings) { s.ExpiryWindowDays = 10 })
		reply, err := r.Reply(context.Background(), "expiring soon")
		require.NoError(t, err)
		assert.Equal(t, "Products expiring soon:\n- Milk (Exp: 2025-06-30)", reply.Text)
	})

	t.Run("window end is inclusive", func(t *testing.T) {
		r := newTestResponder(t, time.Date(2025, time.June, 27, 23, 59, 0, 0, time.UTC))
		reply, err := r.Reply(context.Background(), "expiring soon")
		require.NoError(t, err)
		assert.Equal(t, "Products expiring soon:\n- Milk (Exp: 2025-06-30)", reply.Text)
	})

	t.Run("currency", func(t *testing.T) {
		r := newTestResponder(t, june28, func(s *Settings) { s.Currency = "$" })
		reply, err := r.Reply(context.Background(), "price of milk")
		require.NoError(t, err)
		assert.Contains(t, reply.Text, "Price: $25")
	})

	t.Run("today follows the configured zone", func(t *testing.T) {
		// 20:00 UTC on July 1st is already July 2nd in IST
		now := time.Date(2025, time.July, 1, 20, 0, 0, 0, time.UTC)

		utc := newTestResponder(t, now)
		reply, err := utc.Reply(context.Background(), "expiring soon")
		require.NoError(t, err)
		assert.Equal(t, "Products expiring soon:\n- Rice (Exp: 2025-07-01)", reply.Text)

		ist := newTestResponder(t, now, func(s *Settings) {
			s.Location = time.FixedZone("IST", 5*60*60+30*60)
		})
		reply, err = ist.Reply(context.Background(), "expiring soon")
		require.NoError(t, err)
		assert.Equal(t, "No products are expiring in the next 3 days.", reply.Text)
	})

	t.Run("nil location falls back", func(t *testing.T) {
		r := NewResponder(repository.NewMemoryRepository(repository.Seed{}), WithSettings(Settings{}))
		assert.Equal(t, time.Local, r.settings.Location)
	})
}

func TestResponderMissingDates(t *testing.T) {
	repo := repository.NewMemoryRepository(repository.Seed{
		Products: []model.Product{{Name: "Pump", Stock: 2, Status: model.StatusOK, Category: "tech"}},
	})
	r := NewResponder(repo, WithClock(func() time.Time { return june28 }))

	reply, err := r.Reply(context.Background(), "stock of pump")
	require.NoError(t, err)
	assert.Equal(t, "Product: Pump\nStock: 2 units\nPrice: ₹0\nExpiry: N/A\nLocation: N/A", reply.Text)

	reply, err = r.Reply(context.Background(), "last updated of pump")
	require.NoError(t, err)
	assert.Equal(t, "Pump was last updated on N/A", reply.Text)
}

var errDatasetDown = errors.New("dataset down")

type failingRepository struct{}

func (failingRepository) FindProducts(context.Context, repository.ProductFilter) ([]model.Product, error) {
	return nil, errDatasetDown
}

func (failingRepository) CountProducts(context.Context, repository.ProductFilter) (int64, error) {
	return 0, errDatasetDown
}

func (failingRepository) FindInvoices(context.Context, repository.InvoiceFilter) ([]model.Invoice, error) {
	return nil, errDatasetDown
}

func TestResponderRepositoryErrors(t *testing.T) {
	r := NewResponder(failingRepository{})

	for _, msg := range []string{
		"stock of milk",
		"expiring soon",
		"low stock",
		"damaged",
		"invoice for rice",
		"new items",
		"category of dairy",
		"last updated of milk",
	} {
		t.Run(msg, func(t *testing.T) {
			_, err := r.Reply(context.Background(), msg)
			require.Error(t, err)
			assert.ErrorIs(t, err, errDatasetDown)
		})
	}

	// replies that never touch the dataset still succeed
	for _, msg := range []string{"help", "hello there", "stock", "invoice", "how many dairy items"} {
		t.Run(msg, func(t *testing.T) {
			_, err := r.Reply(context.Background(), msg)
			assert.NoError(t, err)
		})
	}
}
