package main

import (
	"fmt"
	"net/http"
	"os"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fintrack/internal/docs" // Import swagger docs
)

// @title           Fintrack API
// @version         1.0
// @description     Fintrack is a personal finance API for tracking bank accounts, transactions, budgets, and recurring payments, with delegated mentor access.
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

	// Register custom validation tags
	validator.Register()

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

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	bankAccountService := services.NewBankAccountService(db, userService)
	categoryService := services.NewCategoryService(db, userService)
	transactionService := services.NewTransactionService(db, userService, bankAccountService, categoryService)
	notificationService := services.NewNotificationService(db)
	budgetService := services.NewBudgetService(db, userService, categoryService, notificationService)
	recurringService := services.NewRecurringService(db, bankAccountService, categoryService)
	analyticsService := services.NewAnalyticsService(db, userService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	bankAccountHandler := handlers.NewBankAccountHandler(bankAccountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

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
	auth.POST("/refresh", authHandler.Refresh)

	// Sweep endpoint for schedulers, guarded by an API key when configured
	v1.POST("/recurring-transactions/generate",
		middleware.SweepAuthMiddleware(appConfig.SweepAPIKey),
		recurringHandler.GenerateTransactions)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Mentor management routes (admin only)
	users := protected.Group("/users")
	users.GET("/mentees", userHandler.GetMentees)
	users.GET("/assignable", userHandler.GetAssignableUsers)
	users.POST("/:id/mentor", userHandler.AssignMentor)
	users.DELETE("/:id/mentor", userHandler.RemoveMentor)

	// Bank account routes
	bankAccounts := protected.Group("/bank-accounts")
	bankAccounts.POST("", bankAccountHandler.CreateBankAccount)
	bankAccounts.GET("", bankAccountHandler.GetBankAccounts)
	bankAccounts.PUT("/:id", bankAccountHandler.UpdateBankAccount)
	bankAccounts.DELETE("/:id", bankAccountHandler.DeleteBankAccount)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
	notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
	notifications.PATCH("/read-all", notificationHandler.MarkAllAsRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)

	// Recurring transaction routes
	recurring := protected.Group("/recurring-transactions")
	recurring.POST("", recurringHandler.CreateRecurringTransaction)
	recurring.GET("", recurringHandler.GetRecurringTransactions)
	recurring.PUT("/:id", recurringHandler.UpdateRecurringTransaction)
	recurring.PATCH("/:id/toggle", recurringHandler.ToggleRecurringTransaction)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurringTransaction)

	// Analytics routes
	analytics := protected.Group("/analytics")
	analytics.GET("/expenses-by-category", analyticsHandler.GetExpensesByCategory)
	analytics.GET("/income-by-category", analyticsHandler.GetIncomeByCategory)
	analytics.GET("/monthly-trend", analyticsHandler.GetMonthlyTrend)
	analytics.GET("/yearly-summary", analyticsHandler.GetYearlySummary)

	log.Infof("Starting Fintrack API server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
