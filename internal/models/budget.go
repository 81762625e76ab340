package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the period type for a budget
type BudgetPeriod string

const (
	BudgetPeriodMonthly   BudgetPeriod = "monthly"
	BudgetPeriodQuarterly BudgetPeriod = "quarterly"
	BudgetPeriodYearly    BudgetPeriod = "yearly"
)

// Budget represents a spending target over a date range, optionally scoped
// to one category and/or one account. SpentAmount is derived: it must equal
// the sum of absolute values of the owner's negative transactions in the
// budget's category and date window, and is recomputed on every transaction
// write. Budgets without a category are not rolled up.
type Budget struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	AccountID   *string         `gorm:"type:uuid" json:"account_id,omitempty"`
	Name        string          `gorm:"not null" json:"name"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	SpentAmount decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"spent_amount"`
	Period      BudgetPeriod    `gorm:"not null" json:"period"`
	StartDate   time.Time       `gorm:"not null" json:"start_date"`
	EndDate     time.Time       `gorm:"not null" json:"end_date"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Account  *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
