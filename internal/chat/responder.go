package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatbot-service/internal/model"
	"chatbot-service/internal/repository"
	"chatbot-service/prometheus"
)

// Settings tunes the fixed predicates used by the list-style intents
type Settings struct {
	LowStockThreshold   int
	ExpiryWindowDays    int
	ArrivalLookbackDays int
	Currency            string
	Location            *time.Location
}

// DefaultSettings mirrors the defaults in pkg/config
func DefaultSettings() Settings {
	return Settings{
		LowStockThreshold:   10,
		ExpiryWindowDays:    3,
		ArrivalLookbackDays: 7,
		Currency:            "₹",
		Location:            time.Local,
	}
}

// Reply is the outcome of one message
type Reply struct {
	Intent Intent
	Entity string
	Text   string
}

// Option configures a Responder
type Option func(*Responder)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(r *Responder) { r.now = now }
}

// WithSettings overrides DefaultSettings
func WithSettings(s Settings) Option {
	return func(r *Responder) { r.settings = s }
}

// Responder turns a message into a text reply using the dataset
type Responder struct {
	repo     repository.Repository
	settings Settings
	now      func() time.Time
}

func NewResponder(repo repository.Repository, opts ...Option) *Responder {
	r := &Responder{
		repo:     repo,
		settings: DefaultSettings(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.settings.Location == nil {
		r.settings.Location = time.Local
	}
	return r
}

// Reply classifies message, looks up what the intent asks for and formats
// the answer. Nothing found is a normal reply; only dataset failures are errors.
func (r *Responder) Reply(ctx context.Context, message string) (Reply, error) {
	message = strings.ToLower(message)
	intent := Classify(message)
	prometheus.RecordIntent(intent.String())

	reply := Reply{Intent: intent}
	if intent.NeedsEntity() {
		entity, ok := Extract(message)
		if !ok {
			prometheus.RecordEntityMissing(intent.String())
		}
		reply.Entity = entity
	}

	var (
		text string
		err  error
	)
	switch intent {
	case StockQuery:
		text, err = r.stock(ctx, reply.Entity)
	case ExpiryQuery:
		text, err = r.expiring(ctx)
	case LowStockQuery:
		text, err = r.lowStock(ctx)
	case DamagedQuery:
		text, err = r.damaged(ctx)
	case InvoiceQuery:
		text, err = r.invoice(ctx, reply.Entity)
	case NewArrivalsQuery:
		text, err = r.newArrivals(ctx)
	case CategoryQuery:
		text, err = r.category(ctx, reply.Entity)
	case LastUpdatedQuery:
		text, err = r.lastUpdated(ctx, reply.Entity)
	case Help:
		text = helpText
	default:
		text = unknownText
	}
	if err != nil {
		return Reply{}, fmt.Errorf("%s: %w", intent, err)
	}

	reply.Text = text
	return reply, nil
}

// today is the current calendar date in the configured zone
func (r *Responder) today() time.Time {
	return model.DateOf(r.now().In(r.settings.Location))
}

func (r *Responder) firstProductNamed(ctx context.Context, name string) (*model.Product, error) {
	if name == "" {
		return nil, nil
	}
	products, err := r.repo.FindProducts(ctx, repository.ProductFilter{NameContains: name, Limit: 1})
	if err != nil || len(products) == 0 {
		return nil, err
	}
	return &products[0], nil
}

func (r *Responder) stock(ctx context.Context, name string) (string, error) {
	p, err := r.firstProductNamed(ctx, name)
	if err != nil {
		return "", err
	}
	if p == nil {
		return productNotFoundText, nil
	}
	location := p.Location
	if location == "" {
		location = "N/A"
	}
	return strings.Join([]string{
		"Product: " + p.Name,
		fmt.Sprintf("Stock: %d units", p.Stock),
		"Price: " + r.settings.Currency + p.Price.String(),
		"Expiry: " + model.FormatDate(p.ExpiryDate),
		"Location: " + location,
	}, "\n"), nil
}

func (r *Responder) expiring(ctx context.Context) (string, error) {
	today := r.today()
	products, err := r.repo.FindProducts(ctx, repository.ProductFilter{
		ExpiresFrom: today,
		ExpiresTo:   today.AddDate(0, 0, r.settings.ExpiryWindowDays),
	})
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return fmt.Sprintf("No products are expiring in the next %d days.", r.settings.ExpiryWindowDays), nil
	}
	return bulletList("Products expiring soon:", products, func(p model.Product) string {
		return fmt.Sprintf("%s (Exp: %s)", p.Name, model.FormatDate(p.ExpiryDate))
	}), nil
}

func (r *Responder) lowStock(ctx context.Context) (string, error) {
	products, err := r.repo.FindProducts(ctx, repository.ProductFilter{
		StockBelow: repository.StockBelow(r.settings.LowStockThreshold),
	})
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "All items are above the minimum stock level.", nil
	}
	return bulletList("Low Stock Items:", products, func(p model.Product) string {
		return fmt.Sprintf("%s: %d units", p.Name, p.Stock)
	}), nil
}

func (r *Responder) damaged(ctx context.Context) (string, error) {
	products, err := r.repo.FindProducts(ctx, repository.ProductFilter{Status: model.StatusDamaged})
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "No damaged products found.", nil
	}
	return bulletList("Damaged Items:", products, func(p model.Product) string {
		return p.Name
	}), nil
}

func (r *Responder) invoice(ctx context.Context, name string) (string, error) {
	if name == "" {
		return invoiceNotFoundText, nil
	}
	invoices, err := r.repo.FindInvoices(ctx, repository.InvoiceFilter{ProductNameContains: name, Limit: 1})
	if err != nil {
		return "", err
	}
	if len(invoices) == 0 {
		return invoiceNotFoundText, nil
	}
	inv := invoices[0]
	return strings.Join([]string{
		fmt.Sprintf("Last Invoice for %s:", name),
		"- Invoice No: " + inv.InvoiceNo,
		"- Amount: " + r.settings.Currency + inv.Amount.String(),
		"- Date: " + model.FormatDate(inv.CreatedAt),
		"- Download: " + inv.PDFLink,
	}, "\n"), nil
}

func (r *Responder) newArrivals(ctx context.Context) (string, error) {
	since := r.today().AddDate(0, 0, -r.settings.ArrivalLookbackDays)
	products, err := r.repo.FindProducts(ctx, repository.ProductFilter{ArrivedSince: since})
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return fmt.Sprintf("No new products added in the last %d days.", r.settings.ArrivalLookbackDays), nil
	}
	return bulletList("Newly Arrived Items:", products, func(p model.Product) string {
		return fmt.Sprintf("%s (Arrived: %s)", p.Name, model.FormatDate(p.ArrivalDate))
	}), nil
}

func (r *Responder) category(ctx context.Context, category string) (string, error) {
	if category == "" {
		return "Please mention a category name like dairy, tech, etc.", nil
	}
	count, err := r.repo.CountProducts(ctx, repository.ProductFilter{CategoryContains: category})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("There are %d products in category '%s'.", count, category), nil
}

func (r *Responder) lastUpdated(ctx context.Context, name string) (string, error) {
	p, err := r.firstProductNamed(ctx, name)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "Product not found.", nil
	}
	return fmt.Sprintf("%s was last updated on %s", p.Name, model.FormatDate(p.LastUpdated)), nil
}

func bulletList(header string, products []model.Product, line func(model.Product) string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, p := range products {
		b.WriteString("\n- ")
		b.WriteString(line(p))
	}
	return b.String()
}
