package models

import "github.com/shopspring/decimal"

// Vendor represents a party the business owes money to. Field-for-field it
// mirrors Customer; only the direction of the money and the transactions
// that reference it differ.
type Vendor struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string          `gorm:"not null" json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Type         PartyType       `gorm:"default:'business'" json:"type"`
	PaymentTerms int             `gorm:"default:30" json:"payment_terms"`
	CreditLimit  decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"credit_limit"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"balance"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:VendorID" json:"transactions,omitempty"`
}
