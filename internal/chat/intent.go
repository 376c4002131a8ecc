package chat

import "strings"

// Intent is the classified purpose of a message
type Intent string

const (
	StockQuery       Intent = "stock_query"
	ExpiryQuery      Intent = "expiry_query"
	LowStockQuery    Intent = "low_stock_query"
	DamagedQuery     Intent = "damaged_query"
	InvoiceQuery     Intent = "invoice_query"
	NewArrivalsQuery Intent = "new_arrivals_query"
	CategoryQuery    Intent = "category_query"
	LastUpdatedQuery Intent = "last_updated_query"
	Help             Intent = "help"
	Unknown          Intent = "unknown"
)

func (i Intent) String() string { return string(i) }

// NeedsEntity reports whether the intent looks something up by an extracted keyword
func (i Intent) NeedsEntity() bool {
	switch i {
	case StockQuery, InvoiceQuery, CategoryQuery, LastUpdatedQuery:
		return true
	}
	return false
}

// Rule maps a set of trigger substrings to an intent
type Rule struct {
	Intent   Intent
	Keywords []string
}

func (r Rule) matches(message string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

// rules are tried top to bottom and the first hit wins. Keywords overlap
// ("low stock" contains "stock"), so the order is part of the behaviour:
// LowStockQuery has to sit above StockQuery, and the "what can you do"
// phrase answers with help whatever else the message mentions.
var rules = []Rule{
	{Intent: Help, Keywords: []string{"what can you do"}},
	{Intent: LowStockQuery, Keywords: []string{"low stock", "below threshold"}},
	{Intent: StockQuery, Keywords: []string{"stock", "available", "price"}},
	{Intent: ExpiryQuery, Keywords: []string{"expire", "expiring soon"}},
	{Intent: DamagedQuery, Keywords: []string{"damaged"}},
	{Intent: InvoiceQuery, Keywords: []string{"invoice"}},
	{Intent: NewArrivalsQuery, Keywords: []string{"new", "arrived"}},
	{Intent: CategoryQuery, Keywords: []string{"category", "how many"}},
	{Intent: LastUpdatedQuery, Keywords: []string{"last updated"}},
	{Intent: Help, Keywords: []string{"help"}},
}

// Rules returns a copy of the classification table in evaluation order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Intent: r.Intent, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Classify returns the intent of the first rule with a keyword contained in
// message, or Unknown
func Classify(message string) Intent {
	message = strings.ToLower(message)
	if strings.TrimSpace(message) == "" {
		return Unknown
	}
	for _, r := range rules {
		if r.matches(message) {
			return r.Intent
		}
	}
	return Unknown
}
