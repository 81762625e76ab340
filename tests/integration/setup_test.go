package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shahan-erptechnicals/accu-chat/internal/assistant"
	"github.com/shahan-erptechnicals/accu-chat/internal/handlers"
	"github.com/shahan-erptechnicals/accu-chat/internal/logger"
	"github.com/shahan-erptechnicals/accu-chat/internal/middleware"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/services"
	"github.com/shahan-erptechnicals/accu-chat/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Completer *scriptedCompleter
}

// scriptedCompleter returns canned model replies in order, so chat flows are
// deterministic without a live model.
type scriptedCompleter struct {
	replies []string
	calls   int
	err     error
}

func (s *scriptedCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.replies) {
		return "I'm not sure how to help with that.", nil
	}
	reply := s.replies[s.calls]
	s.calls++
	return reply, nil
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Customer{},
		&models.Vendor{},
		&models.Transaction{},
		&models.Budget{},
		&models.Conversation{},
		&models.Message{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	completer := &scriptedCompleter{}

	// Services
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	customerService := services.NewCustomerService(db)
	vendorService := services.NewVendorService(db)
	budgetService := services.NewBudgetService(db)
	transactionService := services.NewTransactionService(db, budgetService)
	conversationService := services.NewConversationService(db)
	auditService := services.NewAuditService(db)

	dispatcher := assistant.NewDispatcher(
		completer,
		assistant.NewReceiptExtractor(completer),
		accountService,
		categoryService,
		customerService,
		vendorService,
		transactionService,
		budgetService,
		conversationService,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	customerHandler := handlers.NewCustomerHandler(customerService, auditService)
	vendorHandler := handlers.NewVendorHandler(vendorService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	chatHandler := handlers.NewChatHandler(dispatcher, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)

	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	customers := protected.Group("/customers")
	customers.POST("", customerHandler.CreateCustomer)
	customers.GET("", customerHandler.GetCustomers)
	customers.GET("/:id", customerHandler.GetCustomer)
	customers.PUT("/:id", customerHandler.UpdateCustomer)
	customers.DELETE("/:id", customerHandler.DeleteCustomer)

	vendors := protected.Group("/vendors")
	vendors.POST("", vendorHandler.CreateVendor)
	vendors.GET("", vendorHandler.GetVendors)
	vendors.GET("/:id", vendorHandler.GetVendor)
	vendors.PUT("/:id", vendorHandler.UpdateVendor)
	vendors.DELETE("/:id", vendorHandler.DeleteVendor)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.GET("/:id/progress", budgetHandler.GetBudgetProgress)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	conversations := protected.Group("/conversations")
	conversations.GET("", conversationHandler.GetConversations)
	conversations.GET("/:id", conversationHandler.GetConversation)
	conversations.DELETE("/:id", conversationHandler.DeleteConversation)

	protected.POST("/chat", chatHandler.Chat)

	return &testApp{DB: db, Router: router, Completer: completer}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// seededAccountID returns the ID of the seeded account with the given name.
func (app *testApp) seededAccountID(t *testing.T, token, name string) string {
	t.Helper()
	rec := app.request("GET", "/api/v1/accounts", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list accounts failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	for _, raw := range result["data"].([]interface{}) {
		account := raw.(map[string]interface{})
		if account["name"] == name {
			return account["id"].(string)
		}
	}
	t.Fatalf("seeded account %q not found", name)
	return ""
}

// seededCategoryID returns the ID of the seeded category with the given name.
func (app *testApp) seededCategoryID(t *testing.T, token, name string) string {
	t.Helper()
	rec := app.request("GET", "/api/v1/categories", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list categories failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	for _, raw := range result["data"].([]interface{}) {
		category := raw.(map[string]interface{})
		if category["name"] == name {
			return category["id"].(string)
		}
	}
	t.Fatalf("seeded category %q not found", name)
	return ""
}
