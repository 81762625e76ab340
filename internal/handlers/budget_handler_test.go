package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
	"github.com/shahan-erptechnicals/accu-chat/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn      func(userID, name string, amount decimal.Decimal, period models.BudgetPeriod, startDate, endDate time.Time, categoryID, accountID *string) (*models.Budget, error)
	getUserBudgetsFn    func(userID string, page pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	getBudgetByIDFn     func(userID, budgetID string) (*models.Budget, error)
	updateBudgetFn      func(userID, budgetID, name string, amount *decimal.Decimal, period *models.BudgetPeriod, endDate *time.Time) (*models.Budget, error)
	deleteBudgetFn      func(userID, budgetID string) error
	getBudgetProgressFn func(userID, budgetID string) (*services.BudgetProgress, error)
}

func (m *mockBudgetService) CreateBudget(userID, name string, amount decimal.Decimal, period models.BudgetPeriod, startDate, endDate time.Time, categoryID, accountID *string) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, name, amount, period, startDate, endDate, categoryID, accountID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetUserBudgets(userID string, page pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID, page, isActive, period)
	}
	resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(userID, budgetID, name string, amount *decimal.Decimal, period *models.BudgetPeriod, endDate *time.Time) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, name, amount, period, endDate)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeleteBudget(userID, budgetID string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

func (m *mockBudgetService) GetBudgetProgress(userID, budgetID string) (*services.BudgetProgress, error) {
	if m.getBudgetProgressFn != nil {
		return m.getBudgetProgressFn(userID, budgetID)
	}
	return &services.BudgetProgress{}, nil
}

func (m *mockBudgetService) RecomputeSpentAmounts(_ *gorm.DB, _ string) error { return nil }

var _ services.BudgetServicer = (*mockBudgetService)(nil)

const testBudgetID = "01936b2a-2222-7000-8000-000000000002"

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudgets)
	auth.GET("/budgets/:id", handler.GetBudget)
	auth.GET("/budgets/:id/progress", handler.GetBudgetProgress)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(userID, name string, amount decimal.Decimal, period models.BudgetPeriod, _, _ time.Time, categoryID, _ *string) (*models.Budget, error) {
				return &models.Budget{
					Base:       models.Base{ID: testBudgetID},
					UserID:     userID,
					CategoryID: categoryID,
					Name:       name,
					Amount:     amount,
					Period:     period,
					IsActive:   true,
				}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"name":"Groceries","amount":"500.00","period":"monthly","start_date":"2026-08-01T00:00:00Z","end_date":"2026-08-31T00:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["name"] != "Groceries" {
			t.Errorf("expected Groceries, got %v", budget["name"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"amount":"500.00","period":"monthly","start_date":"2026-08-01T00:00:00Z","end_date":"2026-08-31T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on invalid period", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"name":"Groceries","amount":"500.00","period":"weekly","start_date":"2026-08-01T00:00:00Z","end_date":"2026-08-31T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid date range", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_, _ string, _ decimal.Decimal, _ models.BudgetPeriod, _, _ time.Time, _, _ *string) (*models.Budget, error) {
				return nil, apperrors.ErrInvalidBudgetRange
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"name":"Groceries","amount":"500.00","period":"monthly","start_date":"2026-08-31T00:00:00Z","end_date":"2026-08-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_BUDGET_RANGE")
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("returns 400 on invalid is_active", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?is_active=maybe", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("passes period filter through", func(t *testing.T) {
		var gotPeriod *models.BudgetPeriod
		svc := &mockBudgetService{
			getUserBudgetsFn: func(_ string, _ pagination.PageRequest, _ *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error) {
				gotPeriod = period
				resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?period=quarterly", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotPeriod == nil || *gotPeriod != models.BudgetPeriodQuarterly {
			t.Errorf("expected quarterly filter, got %v", gotPeriod)
		}
	})
}

func TestBudgetHandler_GetBudgetProgress(t *testing.T) {
	t.Run("returns progress figures", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetProgressFn: func(_, budgetID string) (*services.BudgetProgress, error) {
				return &services.BudgetProgress{
					BudgetID:   budgetID,
					Budgeted:   decimal.NewFromInt(500),
					Spent:      decimal.NewFromInt(125),
					Remaining:  decimal.NewFromInt(375),
					Percentage: 25,
				}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/progress", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		progress := result["progress"].(map[string]interface{})
		if progress["percentage"].(float64) != 25 {
			t.Errorf("expected 25 percent, got %v", progress["percentage"])
		}
	})

	t.Run("returns 404 when budget is missing", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetProgressFn: func(_, _ string) (*services.BudgetProgress, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/progress", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed budget id", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/not-a-uuid/progress", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID, "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when budget is missing", func(t *testing.T) {
		svc := &mockBudgetService{
			deleteBudgetFn: func(_, _ string) error { return apperrors.ErrBudgetNotFound },
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
