package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
)

// transactionService handles transaction-related business logic. Every
// mutation runs the budget rollup in the same database transaction.
type transactionService struct {
	db            *gorm.DB
	budgetService BudgetServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, budgetService BudgetServicer) TransactionServicer {
	return &transactionService{
		db:            db,
		budgetService: budgetService,
	}
}

// CreateTransaction creates a new transaction for the user. All referenced
// entities must belong to the same user.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	if input.Amount.IsZero() {
		return nil, apperrors.ErrZeroAmount
	}
	if input.AccountID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account ID is required")
	}

	if err := s.verifyReferences(userID, input.AccountID, input.CategoryID, input.CustomerID, input.VendorID); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	status := input.Status
	if status == "" {
		status = models.TransactionStatusPending
	}

	transaction := &models.Transaction{
		UserID:         userID,
		AccountID:      input.AccountID,
		CategoryID:     input.CategoryID,
		CustomerID:     input.CustomerID,
		VendorID:       input.VendorID,
		ConversationID: input.ConversationID,
		Amount:         input.Amount,
		Description:    input.Description,
		Date:           date,
		Status:         status,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.budgetService.RecomputeSpentAmounts(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of transactions for the user.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRecentTransactions returns the user's most recent transactions with
// their account, category, customer, and vendor references preloaded.
func (s *transactionService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}

	var transactions []models.Transaction
	err := s.db.Where("user_id = ?", userID).
		Preload("Account").
		Preload("Category").
		Preload("Customer").
		Preload("Vendor").
		Order("date DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.VendorID != nil {
		q = q.Where("vendor_id = ?", *f.VendorID)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction updates a transaction and re-rolls the owner's budgets.
func (s *transactionService) UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if update.Amount != nil && update.Amount.IsZero() {
		return nil, apperrors.ErrZeroAmount
	}

	var accountID string
	if update.AccountID != nil {
		accountID = *update.AccountID
	}
	if err := s.verifyReferences(userID, accountID, update.CategoryID, update.CustomerID, update.VendorID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.AccountID != nil {
		updates["account_id"] = *update.AccountID
	}
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if update.CustomerID != nil {
		updates["customer_id"] = *update.CustomerID
	}
	if update.VendorID != nil {
		updates["vendor_id"] = *update.VendorID
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}

	if len(updates) > 0 {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(transaction).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return s.budgetService.RecomputeSpentAmounts(tx, userID)
		})
		if err != nil {
			return nil, err
		}
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction soft-deletes a transaction and re-rolls the owner's budgets.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.budgetService.RecomputeSpentAmounts(tx, userID)
	})
}

// verifyReferences checks that every supplied reference exists and belongs
// to the user. An empty accountID is skipped (updates may leave it alone).
func (s *transactionService) verifyReferences(userID, accountID string, categoryID, customerID, vendorID *string) error {
	if accountID != "" {
		var count int64
		if err := s.db.Model(&models.Account{}).Where("id = ? AND user_id = ?", accountID, userID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrAccountNotFound
		}
	}
	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ? AND user_id = ?", *categoryID, userID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrCategoryNotFound
		}
	}
	if customerID != nil {
		var count int64
		if err := s.db.Model(&models.Customer{}).Where("id = ? AND user_id = ?", *customerID, userID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrCustomerNotFound
		}
	}
	if vendorID != nil {
		var count int64
		if err := s.db.Model(&models.Vendor{}).Where("id = ? AND user_id = ?", *vendorID, userID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrVendorNotFound
		}
	}
	return nil
}
