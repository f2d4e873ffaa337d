package integration

import (
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

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
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
		&models.BankAccount{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
		&models.Notification{},
		&models.RecurringTransaction{},
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

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	bankAccountService := services.NewBankAccountService(db, userService)
	categoryService := services.NewCategoryService(db, userService)
	transactionService := services.NewTransactionService(db, userService, bankAccountService, categoryService)
	notificationService := services.NewNotificationService(db)
	budgetService := services.NewBudgetService(db, userService, categoryService, notificationService)
	recurringService := services.NewRecurringService(db, bankAccountService, categoryService)
	analyticsService := services.NewAnalyticsService(db, userService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	bankAccountHandler := handlers.NewBankAccountHandler(bankAccountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Sweep endpoint, open in tests
	v1.POST("/recurring-transactions/generate",
		middleware.SweepAuthMiddleware(""),
		recurringHandler.GenerateTransactions)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	users := protected.Group("/users")
	users.GET("/mentees", userHandler.GetMentees)
	users.GET("/assignable", userHandler.GetAssignableUsers)
	users.POST("/:id/mentor", userHandler.AssignMentor)
	users.DELETE("/:id/mentor", userHandler.RemoveMentor)

	bankAccounts := protected.Group("/bank-accounts")
	bankAccounts.POST("", bankAccountHandler.CreateBankAccount)
	bankAccounts.GET("", bankAccountHandler.GetBankAccounts)
	bankAccounts.PUT("/:id", bankAccountHandler.UpdateBankAccount)
	bankAccounts.DELETE("/:id", bankAccountHandler.DeleteBankAccount)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
	notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
	notifications.PATCH("/read-all", notificationHandler.MarkAllAsRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)

	recurring := protected.Group("/recurring-transactions")
	recurring.POST("", recurringHandler.CreateRecurringTransaction)
	recurring.GET("", recurringHandler.GetRecurringTransactions)
	recurring.PUT("/:id", recurringHandler.UpdateRecurringTransaction)
	recurring.PATCH("/:id/toggle", recurringHandler.ToggleRecurringTransaction)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurringTransaction)

	analytics := protected.Group("/analytics")
	analytics.GET("/expenses-by-category", analyticsHandler.GetExpensesByCategory)
	analytics.GET("/income-by-category", analyticsHandler.GetIncomeByCategory)
	analytics.GET("/monthly-trend", analyticsHandler.GetMonthlyTrend)
	analytics.GET("/yearly-summary", analyticsHandler.GetYearlySummary)

	return &testApp{DB: db, Router: router}
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

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Test User","email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createBankAccount creates a checking account and returns its ID.
func (app *testApp) createBankAccount(t *testing.T, token, name, initialBalance string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"color":"#336699","type":"checking","initial_balance":%q}`, name, initialBalance)
	rec := app.request("POST", "/api/v1/bank-accounts", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bank account failed: %d %s", rec.Code, rec.Body.String())
	}
	account := parseJSON(t, rec)["bank_account"].(map[string]interface{})
	return account["id"].(float64)
}

// accountBalance fetches the current balance string for an account.
func (app *testApp) accountBalance(t *testing.T, token string, accountID float64) string {
	t.Helper()
	rec := app.request("GET", "/api/v1/bank-accounts", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list bank accounts failed: %d %s", rec.Code, rec.Body.String())
	}
	accounts := parseJSON(t, rec)["bank_accounts"].([]interface{})
	for _, raw := range accounts {
		account := raw.(map[string]interface{})
		if account["id"].(float64) == accountID {
			return account["current_balance"].(string)
		}
	}
	t.Fatalf("account %.0f not found in listing", accountID)
	return ""
}
