package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("creates a category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Travel", "#0EA5E9", "Flights and hotels")
		testutil.AssertNoError(t, err)
		if category.ID == "" {
			t.Error("expected category ID to be set")
		}
	})

	t.Run("rejects a duplicate name for the same user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Travel", "#0EA5E9", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Travel", "#10B981", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("allows the same name across users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Travel", "#0EA5E9", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(other.ID, "Travel", "#0EA5E9", "")
		testutil.AssertNoError(t, err)
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rejects renaming onto an existing name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Travel", "#0EA5E9", "")
		testutil.AssertNoError(t, err)
		second, err := svc.CreateCategory(user.ID, "Meals", "#F59E0B", "")
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(user.ID, second.ID, "Travel", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("keeps transaction references after deletion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeAsset)
		category := testutil.CreateTestCategory(t, db, user.ID)
		tx := testutil.CreateTestTransaction(t, db, user.ID, account.ID, &category.ID,
			decimal.NewFromInt(-10), windowStart)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, category.ID))

		_, err := svc.GetCategoryByID(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		var got models.Transaction
		testutil.AssertNoError(t, db.First(&got, "id = ?", tx.ID).Error)
		if got.CategoryID == nil || *got.CategoryID != category.ID {
			t.Error("expected transaction to keep its category reference")
		}
	})
}
