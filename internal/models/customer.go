package models

import "github.com/shopspring/decimal"

// PartyType tags a customer or vendor as an individual or a business.
type PartyType string

const (
	PartyTypeIndividual PartyType = "individual"
	PartyTypeBusiness   PartyType = "business"
)

// Customer represents a party that owes money to the business.
type Customer struct {
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
	Transactions []Transaction `gorm:"foreignKey:CustomerID" json:"transactions,omitempty"`
}
