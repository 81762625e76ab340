package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// AccountServicer defines the contract for chart-of-accounts business logic.
type AccountServicer interface {
	CreateAccount(userID, name, code string, accountType models.AccountType, description string, parentID *string) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID, name, description string, isActive *bool) (*models.Account, error)
	DeleteAccount(userID, accountID string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name, color, description string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, color, description string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// PartyInput holds the shared field set for creating or updating a customer
// or vendor.
type PartyInput struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	Type         models.PartyType
	PaymentTerms *int
	CreditLimit  *decimal.Decimal
}

// CustomerServicer defines the contract for customer-related business logic.
type CustomerServicer interface {
	CreateCustomer(userID string, input PartyInput) (*models.Customer, error)
	GetUserCustomers(userID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Customer], error)
	GetCustomerByID(userID, customerID string) (*models.Customer, error)
	UpdateCustomer(userID, customerID string, input PartyInput, isActive *bool) (*models.Customer, error)
	DeleteCustomer(userID, customerID string) error
}

// VendorServicer defines the contract for vendor-related business logic.
type VendorServicer interface {
	CreateVendor(userID string, input PartyInput) (*models.Vendor, error)
	GetUserVendors(userID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Vendor], error)
	GetVendorByID(userID, vendorID string) (*models.Vendor, error)
	UpdateVendor(userID, vendorID string, input PartyInput, isActive *bool) (*models.Vendor, error)
	DeleteVendor(userID, vendorID string) error
}

// TransactionInput carries the writable field set for a transaction. Optional
// references stay nil when not supplied.
type TransactionInput struct {
	AccountID      string
	CategoryID     *string
	CustomerID     *string
	VendorID       *string
	ConversationID *string
	Amount         decimal.Decimal
	Description    string
	Date           time.Time
	Status         models.TransactionStatus
}

// TransactionUpdate carries optional field updates; nil fields are left as-is.
type TransactionUpdate struct {
	AccountID   *string
	CategoryID  *string
	CustomerID  *string
	VendorID    *string
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
	Status      *models.TransactionStatus
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Status     *models.TransactionStatus
	AccountID  *string
	CategoryID *string
	CustomerID *string
	VendorID   *string
}

// TransactionServicer defines the contract for transaction-related business
// logic. Every mutation recomputes the owner's budget spent amounts within
// the same database transaction, so a failed recompute rolls the write back.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetRecentTransactions(userID string, limit int) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BudgetProgress contains spending vs budget data for a budget.
type BudgetProgress struct {
	BudgetID   string          `json:"budget_id"`
	Budgeted   decimal.Decimal `json:"budgeted"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
}

// BudgetServicer defines the contract for budget-related business logic,
// including the spent-amount rollup invoked on every transaction write.
type BudgetServicer interface {
	CreateBudget(userID, name string, amount decimal.Decimal, period models.BudgetPeriod, startDate, endDate time.Time, categoryID, accountID *string) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID, name string, amount *decimal.Decimal, period *models.BudgetPeriod, endDate *time.Time) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	GetBudgetProgress(userID, budgetID string) (*BudgetProgress, error)

	// RecomputeSpentAmounts recomputes spent_amount for every category-scoped
	// budget owned by the user, reading post-mutation state through tx. It is
	// idempotent and safe to re-run at any time.
	RecomputeSpentAmounts(tx *gorm.DB, userID string) error
}

// ConversationServicer defines the contract for conversation and message
// persistence. Messages are append-only.
type ConversationServicer interface {
	EnsureConversation(userID string, conversationID *string, title string) (*models.Conversation, error)
	AppendMessage(conversationID string, role models.MessageRole, content string) (*models.Message, error)
	GetUserConversations(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Conversation], error)
	GetConversationByID(userID, conversationID string) (*models.Conversation, error)
	DeleteConversation(userID, conversationID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
