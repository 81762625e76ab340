package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
	"github.com/shahan-erptechnicals/accu-chat/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn     func(userID string, input services.TransactionInput) (*models.Transaction, error)
	getUserTransactionsFn   func(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getRecentTransactionsFn func(userID string, limit int) ([]models.Transaction, error)
	getTransactionByIDFn    func(userID, transactionID string) (*models.Transaction, error)
	updateTransactionFn     func(userID, transactionID string, update services.TransactionUpdate) (*models.Transaction, error)
	deleteTransactionFn     func(userID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(userID string, input services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if m.getRecentTransactionsFn != nil {
		return m.getRecentTransactionsFn(userID, limit)
	}
	return nil, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, transactionID string, update services.TransactionUpdate) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, update)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

const (
	testAccountID     = "01936b2a-3333-7000-8000-000000000003"
	testTransactionID = "01936b2a-4444-7000-8000-000000000004"
)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.GetTransactions)
	auth.GET("/transactions/:id", handler.GetTransaction)
	auth.PUT("/transactions/:id", handler.UpdateTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(userID string, input services.TransactionInput) (*models.Transaction, error) {
				return &models.Transaction{
					Base:        models.Base{ID: testTransactionID},
					UserID:      userID,
					AccountID:   input.AccountID,
					Amount:      input.Amount,
					Description: input.Description,
					Date:        input.Date,
					Status:      models.TransactionStatusPending,
				}, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testAccountID+`","amount":"-42.50","description":"Office supplies","date":"2026-08-30T00:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		transaction := result["transaction"].(map[string]interface{})
		if transaction["description"] != "Office supplies" {
			t.Errorf("expected description, got %v", transaction["description"])
		}
	})

	t.Run("returns 400 on missing account", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":"-42.50","date":"2026-08-30T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(_ string, _ services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrZeroAmount
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testAccountID+`","amount":"0","date":"2026-08-30T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ZERO_AMOUNT")
	})

	t.Run("returns 400 on invalid status", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testAccountID+`","amount":"-5","date":"2026-08-30T00:00:00Z","status":"posted"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes date filters through", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		svc := &mockTransactionService{
			getUserTransactionsFn: func(_ string, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?from_date=2026-08-01&to_date=2026-08-31&status=cleared", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.FromDate == nil || gotFilter.ToDate == nil {
			t.Fatal("expected date filters to be set")
		}
		if gotFilter.Status == nil || *gotFilter.Status != models.TransactionStatusCleared {
			t.Errorf("expected cleared status filter, got %v", gotFilter.Status)
		}
	})

	t.Run("returns 400 on malformed from_date", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?from_date=Aug-1", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown status", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?status=posted", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			updateTransactionFn: func(_, transactionID string, update services.TransactionUpdate) (*models.Transaction, error) {
				tx := &models.Transaction{Base: models.Base{ID: transactionID}}
				if update.Amount != nil {
					tx.Amount = *update.Amount
				}
				return tx, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "PUT", "/transactions/"+testTransactionID, `{"amount":"-99.99"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		transaction := result["transaction"].(map[string]interface{})
		amount, _ := decimal.NewFromString(transaction["amount"].(string))
		if !amount.Equal(decimal.RequireFromString("-99.99")) {
			t.Errorf("expected -99.99, got %v", transaction["amount"])
		}
	})

	t.Run("returns 404 when transaction is missing", func(t *testing.T) {
		svc := &mockTransactionService{
			updateTransactionFn: func(_, _ string, _ services.TransactionUpdate) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "PUT", "/transactions/"+testTransactionID, `{"description":"gone"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "PUT", "/transactions/42", `{"description":"x"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "DELETE", "/transactions/"+testTransactionID, "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})
}
