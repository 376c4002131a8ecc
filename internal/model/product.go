package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the condition of the stock on hand
type ProductStatus string

const (
	StatusOK      ProductStatus = "ok"
	StatusDamaged ProductStatus = "damaged"
)

// Valid reports whether s is a known status
func (s ProductStatus) Valid() bool {
	return s == StatusOK || s == StatusDamaged
}

// Product represents an inventory item the chatbot can answer questions about
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Name        string          `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	ExpiryDate  time.Time       `json:"expiry_date" gorm:"type:date;index"`
	ArrivalDate time.Time       `json:"arrival_date" gorm:"type:date;index"`
	LastUpdated time.Time       `json:"last_updated" gorm:"type:date"`
	Location    string          `json:"location" gorm:"type:varchar(100)"`
	Status      ProductStatus   `json:"status" gorm:"type:varchar(20);not null;default:'ok'"`
	Category    string          `json:"category" gorm:"type:varchar(100);index"`
}
