package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
)

// budgetService handles budget-related business logic, including the
// spent-amount rollup that keeps each budget consistent with the owner's
// transaction set.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new budget, optionally scoped to a category and/or
// an account owned by the same user.
func (s *budgetService) CreateBudget(
	userID, name string,
	amount decimal.Decimal,
	period models.BudgetPeriod,
	startDate, endDate time.Time,
	categoryID, accountID *string,
) (*models.Budget, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget name is required")
	}
	if !endDate.After(startDate) {
		return nil, apperrors.ErrInvalidBudgetRange
	}

	if categoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if accountID != nil {
		var account models.Account
		if err := s.db.Where("id = ? AND user_id = ?", *accountID, userID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrAccountNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		AccountID:  accountID,
		Name:       name,
		Amount:     amount,
		Period:     period,
		StartDate:  startDate,
		EndDate:    endDate,
		IsActive:   true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// A new category-scoped budget picks up pre-existing spending.
		return s.RecomputeSpentAmounts(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// GetUserBudgets returns a paginated list of budgets for the user with optional filters.
func (s *budgetService) GetUserBudgets(
	userID string,
	page pagination.PageRequest,
	isActive *bool,
	period *models.BudgetPeriod,
) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}
	if period != nil {
		base = base.Where("period = ?", *period)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Category").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Category").Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates an existing budget's fields.
func (s *budgetService) UpdateBudget(
	userID, budgetID, name string,
	amount *decimal.Decimal,
	period *models.BudgetPeriod,
	endDate *time.Time,
) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if period != nil {
		updates["period"] = *period
	}
	if endDate != nil {
		if !endDate.After(budget.StartDate) {
			return nil, apperrors.ErrInvalidBudgetRange
		}
		updates["end_date"] = *endDate
	}

	if len(updates) > 0 {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(budget).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			// A widened or narrowed window changes which transactions count.
			return s.RecomputeSpentAmounts(tx, userID)
		})
		if err != nil {
			return nil, err
		}
	}

	return s.GetBudgetByID(userID, budgetID)
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetProgress reports spending against the budget target.
func (s *budgetService) GetBudgetProgress(userID, budgetID string) (*BudgetProgress, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	remaining := budget.Amount.Sub(budget.SpentAmount)
	var percentage float64
	if budget.Amount.IsPositive() {
		percentage, _ = budget.SpentAmount.Div(budget.Amount).Mul(decimal.NewFromInt(100)).Float64()
	}

	return &BudgetProgress{
		BudgetID:   budget.ID,
		Budgeted:   budget.Amount,
		Spent:      budget.SpentAmount,
		Remaining:  remaining,
		Percentage: percentage,
	}, nil
}

// RecomputeSpentAmounts recomputes spent_amount for every category-scoped
// budget owned by the user, each against its own date window. Only negative
// amounts count, and they count by absolute value. Budgets without a
// category are left untouched. The recompute reads through tx, so when it
// runs inside a transaction write it sees post-mutation state and a failure
// rolls the whole write back.
//
// Recomputing from the full current transaction set makes this idempotent
// and convergent under concurrent writes: whichever recompute commits last
// reflects all settled transactions.
func (s *budgetService) RecomputeSpentAmounts(tx *gorm.DB, userID string) error {
	var budgets []models.Budget
	if err := tx.Where("user_id = ? AND category_id IS NOT NULL", userID).Find(&budgets).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range budgets {
		spent, err := s.computeSpent(tx, &budgets[i])
		if err != nil {
			return err
		}
		if err := tx.Model(&budgets[i]).Update("spent_amount", spent).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return nil
}

// computeSpent sums |amount| over the owner's negative transactions in the
// budget's category and date window.
func (s *budgetService) computeSpent(tx *gorm.DB, budget *models.Budget) (decimal.Decimal, error) {
	var txns []models.Transaction
	err := tx.
		Where("user_id = ? AND category_id = ? AND amount < 0 AND date >= ? AND date <= ?",
			budget.UserID, *budget.CategoryID, budget.StartDate, budget.EndDate).
		Find(&txns).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spent := decimal.Zero
	for i := range txns {
		spent = spent.Add(txns[i].Amount.Abs())
	}
	return spent, nil
}
