package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a supplier invoice. ProductName is matched by text, it is not a foreign key.
type Invoice struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	InvoiceNo   string          `json:"invoice_no" gorm:"type:varchar(50);uniqueIndex;not null"`
	ProductName string          `json:"product_name" gorm:"type:varchar(255);index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"type:date;index"`
	PDFLink     string          `json:"pdf_link" gorm:"type:varchar(1024)"`
}
