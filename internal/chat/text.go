package chat

const (
	productNotFoundText = "Product not found in inventory."
	invoiceNotFoundText = "No invoice found for that product."

	unknownText = "Sorry, I didn't understand. Try asking about stock, expiry, damage, invoice, or category."

	helpText = `You can ask me:
• Stock of a product (e.g. "Stock of Milk")
• Products expiring soon
• Low stock items
• Damaged items
• Last invoice for a product
• Newly arrived items
• Category-wise count (e.g. "How many dairy items?")
• Last updated date of a product`
)

// HelpText is the fixed reply for the Help intent
func HelpText() string { return helpText }

// UnknownText is the fallback reply when no rule matches
func UnknownText() string { return unknownText }
