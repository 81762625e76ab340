package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
	"github.com/shahan-erptechnicals/accu-chat/internal/testutil"
)

func paginationDefaults() pagination.PageRequest {
	return pagination.PageRequest{Page: 1, PageSize: 20}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("creates a transaction and rolls up the budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		budgetSvc := NewBudgetService(db)
		svc := NewTransactionService(db, budgetSvc)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeAsset)
		category := testutil.CreateTestCategory(t, db, user.ID)
		budget := testutil.CreateTestBudget(t, db, user.ID, &category.ID,
			decimal.NewFromInt(500), windowStart, windowEnd)

		tx, err := svc.CreateTransaction(user.ID, TransactionInput{
			AccountID:   account.ID,
			CategoryID:  &category.ID,
			Amount:      decimal.RequireFromString("-25.00"),
			Description: "Lunch",
			Date:        windowStart.AddDate(0, 0, 14),
			Status:      models.TransactionStatusCleared,
		})
		testutil.AssertNoError(t, err)
		if tx.ID == "" {
			t.Error("expected transaction ID to be set")
		}

		got, err := budgetSvc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(25), got.SpentAmount)
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeAsset)

		_, err := svc.CreateTransaction(user.ID, TransactionInput{
			AccountID: account.ID,
			Amount:    decimal.Zero,
			Date:      windowStart,
		})
		testutil.AssertAppError(t, err, "ZERO_AMOUNT")
	})

	t.Run("rejects another user's account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreignAccount := testutil.CreateTestAccount(t, db, other.ID, models.AccountTypeAsset)

		_, err := svc.CreateTransaction(user.ID, TransactionInput{
			AccountID: foreignAccount.ID,
			Amount:    decimal.NewFromInt(-10),
			Date:      windowStart,
		})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("rejects another user's category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeAsset)
		foreignCategory := testutil.CreateTestCategory(t, db, other.ID)

		_, err := svc.CreateTransaction(user.ID, TransactionInput{
			AccountID:  account.ID,
			CategoryID: &foreignCategory.ID,
			Amount:     decimal.NewFromInt(-10),
			Date:       windowStart,
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("moves spending between budgets when the category changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		budgetSvc := NewBudgetService(db)
		svc := NewTransactionService(db, budgetSvc)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeAsset)
		foodCategory := testutil.CreateTestCategory(t, db, user.ID)
		travelCategory := testutil.CreateTestCategory(t, db, user.ID)
		foodBudget := testutil.CreateTestBudget(t, db, user.ID, &foodCategory.ID,
			decimal.NewFromInt(500), windowStart, windowEnd)
		travelBudget := testutil.CreateTestBudget(t, db, user.ID, &travelCategory.ID,
			decimal.NewFromInt(500), windowStart, windowEnd)

		tx, err := svc.CreateTransaction(user.ID, TransactionInput{
			AccountID:  account.ID,
			CategoryID: &foodCategory.ID,
			Amount:     decimal.NewFromInt(-50),
			Date:       windowStart.AddDate(0, 0, 7),
		})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{
			CategoryID: &travelCategory.ID,
		})
		testutil.AssertNoError(t, err)

		food, err := budgetSvc.GetBudgetByID(user.ID, foodBudget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, food.SpentAmount)

		travel, err := budgetSvc.GetBudgetByID(user.ID, travelBudget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(50), travel.SpentAmount)
	})

	t.Run("recomputes when the amount changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		budgetSvc := NewBudgetService(db)
		svc := NewTransactionService(db, budgetSvc)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeAsset)
		category := testutil.CreateTestCategory(t, db, user.ID)
		budget := testutil.CreateTestBudget(t, db, user.ID, &category.ID,
			decimal.NewFromInt(500), windowStart, windowEnd)

		tx, err := svc.CreateTransaction(user.ID, TransactionInput{
			AccountID:  account.ID,
			CategoryID: &category.ID,
			Amount:     decimal.NewFromInt(-20),
			Date:       windowStart.AddDate(0, 0, 7),
		})
		testutil.AssertNoError(t, err)

		newAmount := decimal.NewFromInt(-75)
		_, err = svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{Amount: &newAmount})
		testutil.AssertNoError(t, err)

		got, err := budgetSvc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(75), got.SpentAmount)
	})

	t.Run("rejects another user's transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherAccount := testutil.CreateTestAccount(t, db, other.ID, models.AccountTypeAsset)
		tx := testutil.CreateTestTransaction(t, db, other.ID, otherAccount.ID, nil,
			decimal.NewFromInt(-10), windowStart)

		desc := "hijacked"
		_, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{Description: &desc})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("deleting reduces the budget spent amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		budgetSvc := NewBudgetService(db)
		svc := NewTransactionService(db, budgetSvc)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeAsset)
		category := testutil.CreateTestCategory(t, db, user.ID)
		budget := testutil.CreateTestBudget(t, db, user.ID, &category.ID,
			decimal.NewFromInt(500), windowStart, windowEnd)

		tx, err := svc.CreateTransaction(user.ID, TransactionInput{
			AccountID:  account.ID,
			CategoryID: &category.ID,
			Amount:     decimal.NewFromInt(-90),
			Date:       windowStart.AddDate(0, 0, 3),
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, tx.ID))

		got, err := budgetSvc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, got.SpentAmount)
	})
}

func TestGetUserTransactions(t *testing.T) {
	t.Run("filters by date range and status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeAsset)

		testutil.CreateTestTransaction(t, db, user.ID, account.ID, nil,
			decimal.NewFromInt(-10), windowStart.AddDate(0, 0, 1))
		testutil.CreateTestTransaction(t, db, user.ID, account.ID, nil,
			decimal.NewFromInt(-20), windowEnd.AddDate(0, 1, 0))

		from := windowStart
		to := windowEnd
		result, err := svc.GetUserTransactions(user.ID, paginationDefaults(), TransactionFilter{
			FromDate: &from,
			ToDate:   &to,
		})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 transaction in window, got %d", result.TotalItems)
		}
	})

	t.Run("does not return other users' transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherAccount := testutil.CreateTestAccount(t, db, other.ID, models.AccountTypeAsset)
		testutil.CreateTestTransaction(t, db, other.ID, otherAccount.ID, nil,
			decimal.NewFromInt(-10), windowStart)

		result, err := svc.GetUserTransactions(user.ID, paginationDefaults(), TransactionFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no transactions, got %d", result.TotalItems)
		}
	})
}

func TestGetRecentTransactions(t *testing.T) {
	t.Run("returns newest first up to the limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeAsset)

		var newest time.Time
		for i := 0; i < 7; i++ {
			date := windowStart.AddDate(0, 0, i)
			testutil.CreateTestTransaction(t, db, user.ID, account.ID, nil,
				decimal.NewFromInt(-1), date)
			newest = date
		}

		recent, err := svc.GetRecentTransactions(user.ID, 5)
		testutil.AssertNoError(t, err)
		if len(recent) != 5 {
			t.Fatalf("expected 5 transactions, got %d", len(recent))
		}
		if !recent[0].Date.Equal(newest) {
			t.Errorf("expected newest transaction first, got %v", recent[0].Date)
		}
	})
}
