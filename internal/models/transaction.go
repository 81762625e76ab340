package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle status of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusCleared    TransactionStatus = "cleared"
	TransactionStatusReconciled TransactionStatus = "reconciled"
)

// Transaction represents a financial transaction. Amounts are signed:
// negative is an expense, positive is income or an asset inflow. The sign
// convention is advisory and not enforced at the storage layer.
type Transaction struct {
	Base
	UserID         string            `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID      string            `gorm:"type:uuid;not null" json:"account_id"`
	CategoryID     *string           `gorm:"type:uuid" json:"category_id,omitempty"`
	CustomerID     *string           `gorm:"type:uuid" json:"customer_id,omitempty"`
	VendorID       *string           `gorm:"type:uuid" json:"vendor_id,omitempty"`
	ConversationID *string           `gorm:"type:uuid" json:"conversation_id,omitempty"`
	Amount         decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"amount"`
	Description    string            `json:"description"`
	Date           time.Time         `gorm:"not null;index" json:"date"`
	Status         TransactionStatus `gorm:"default:'pending'" json:"status"`

	// Relationships
	Account  Account   `gorm:"foreignKey:AccountID" json:"account"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vendor   *Vendor   `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}
