package models

// AccountType classifies an account in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Account represents one entry in a user's chart of accounts. The optional
// parent reference allows a hierarchy; no balancing logic depends on it.
type Account struct {
	Base
	UserID      string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string      `gorm:"not null" json:"name"`
	Code        string      `gorm:"not null" json:"code"`
	Type        AccountType `gorm:"not null" json:"type"`
	Description string      `json:"description"`
	IsActive    bool        `gorm:"default:true" json:"is_active"`
	ParentID    *string     `gorm:"type:uuid" json:"parent_id,omitempty"`

	// Relationships
	Parent       *Account      `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children     []Account     `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
