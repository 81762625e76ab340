package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/shahan-erptechnicals/accu-chat/internal/assistant"
	"github.com/shahan-erptechnicals/accu-chat/internal/config"
	"github.com/shahan-erptechnicals/accu-chat/internal/database"
	_ "github.com/shahan-erptechnicals/accu-chat/internal/docs" // Import swagger docs
	"github.com/shahan-erptechnicals/accu-chat/internal/handlers"
	"github.com/shahan-erptechnicals/accu-chat/internal/logger"
	"github.com/shahan-erptechnicals/accu-chat/internal/middleware"
	"github.com/shahan-erptechnicals/accu-chat/internal/services"
	"github.com/shahan-erptechnicals/accu-chat/internal/validator"
)

// @title           AccuChat API
// @version         1.0
// @description     AccuChat is a personal bookkeeping application with a conversational AI accountant that records transactions, budgets, and contacts on the user's behalf.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	customerService := services.NewCustomerService(db)
	vendorService := services.NewVendorService(db)
	budgetService := services.NewBudgetService(db)
	transactionService := services.NewTransactionService(db, budgetService)
	conversationService := services.NewConversationService(db)
	auditService := services.NewAuditService(db)

	// Initialize the assistant. The dispatcher is the only consumer of the
	// model client, so a missing API key only disables the chat endpoint.
	var dispatcher *assistant.Dispatcher
	if appConfig.GeminiAPIKey != "" {
		completer, err := assistant.NewGeminiCompleter(
			context.Background(),
			appConfig.GeminiAPIKey,
			appConfig.GeminiModel,
			appConfig.ChatTimeout,
		)
		if err != nil {
			return fmt.Errorf("failed to create assistant completer: %w", err)
		}
		extractor := assistant.NewReceiptExtractor(completer)
		dispatcher = assistant.NewDispatcher(
			completer,
			extractor,
			accountService,
			categoryService,
			customerService,
			vendorService,
			transactionService,
			budgetService,
			conversationService,
		)
	} else {
		log.Warn("GEMINI_API_KEY not set, chat endpoint disabled")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	customerHandler := handlers.NewCustomerHandler(customerService, auditService)
	vendorHandler := handlers.NewVendorHandler(vendorService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	conversationHandler := handlers.NewConversationHandler(conversationService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Current user
	protected.GET("/auth/me", authHandler.Me)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Customer routes
	customers := protected.Group("/customers")
	customers.POST("", customerHandler.CreateCustomer)
	customers.GET("", customerHandler.GetCustomers)
	customers.GET("/:id", customerHandler.GetCustomer)
	customers.PUT("/:id", customerHandler.UpdateCustomer)
	customers.DELETE("/:id", customerHandler.DeleteCustomer)

	// Vendor routes
	vendors := protected.Group("/vendors")
	vendors.POST("", vendorHandler.CreateVendor)
	vendors.GET("", vendorHandler.GetVendors)
	vendors.GET("/:id", vendorHandler.GetVendor)
	vendors.PUT("/:id", vendorHandler.UpdateVendor)
	vendors.DELETE("/:id", vendorHandler.DeleteVendor)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.GET("/:id/progress", budgetHandler.GetBudgetProgress)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Conversation routes
	conversations := protected.Group("/conversations")
	conversations.GET("", conversationHandler.GetConversations)
	conversations.GET("/:id", conversationHandler.GetConversation)
	conversations.DELETE("/:id", conversationHandler.DeleteConversation)

	// Chat endpoint
	if dispatcher != nil {
		chatHandler := handlers.NewChatHandler(dispatcher, auditService)
		protected.POST("/chat", chatHandler.Chat)
	}

	log.Infof("Starting AccuChat backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
