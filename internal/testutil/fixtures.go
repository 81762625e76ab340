package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shahan-erptechnicals/accu-chat/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an account of the given type with a unique code.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string, accountType models.AccountType) *models.Account {
	t.Helper()

	n := nextID()
	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Account %d", n),
		Code:     fmt.Sprintf("9%03d", n%1000),
		Type:     accountType,
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Color:  "#3B82F6",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestCustomer creates an active business customer.
func CreateTestCustomer(t *testing.T, db *gorm.DB, userID string) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Customer %d", nextID()),
		Type:         models.PartyTypeBusiness,
		PaymentTerms: 30,
		IsActive:     true,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}
	return customer
}

// CreateTestVendor creates an active business vendor.
func CreateTestVendor(t *testing.T, db *gorm.DB, userID string) *models.Vendor {
	t.Helper()

	vendor := &models.Vendor{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Vendor %d", nextID()),
		Type:         models.PartyTypeBusiness,
		PaymentTerms: 30,
		IsActive:     true,
	}
	if err := db.Create(vendor).Error; err != nil {
		t.Fatalf("failed to create test vendor: %v", err)
	}
	return vendor
}

// CreateTestTransaction creates a cleared transaction on the given account,
// optionally scoped to a category. Negative amounts are expenses.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID string, categoryID *string, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Date:        date,
		Status:      models.TransactionStatusCleared,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates an active monthly budget over the given window,
// optionally scoped to a category.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID string, categoryID *string, amount decimal.Decimal, start, end time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Name:       fmt.Sprintf("Test Budget %d", nextID()),
		Amount:     amount,
		Period:     models.BudgetPeriodMonthly,
		StartDate:  start,
		EndDate:    end,
		IsActive:   true,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestConversation creates a conversation for the given user.
func CreateTestConversation(t *testing.T, db *gorm.DB, userID string) *models.Conversation {
	t.Helper()

	conversation := &models.Conversation{
		UserID: userID,
		Title:  fmt.Sprintf("Test Conversation %d", nextID()),
	}
	if err := db.Create(conversation).Error; err != nil {
		t.Fatalf("failed to create test conversation: %v", err)
	}
	return conversation
}
