package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic,
// including the mentor/mentee delegated-access model.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)

	// CanAccessUserData reports whether the requesting user may view the
	// target user's data: always true for the same user, otherwise only for
	// an admin mentoring the target.
	CanAccessUserData(requestingUserID, targetUserID uint) (bool, error)

	// ResolveUser returns the effective user ID for an operation. With a nil
	// target it is the requester. With a target it enforces the delegation
	// check, and for writes additionally the FULL_ACCESS permission.
	ResolveUser(requestingUserID uint, targetUserID *uint, write bool) (uint, error)

	AssignMentor(adminID, menteeID uint, permission models.MentorPermission) (*models.User, error)
	RemoveMentor(adminID, menteeID uint) (*models.User, error)
	GetMentees(adminID uint) ([]models.User, error)
	GetAssignableUsers(adminID uint) ([]models.User, error)
}

// BankAccountWithBalance is a bank account together with its computed
// current balance (initial balance plus the signed sum of its transactions).
type BankAccountWithBalance struct {
	models.BankAccount
	CurrentBalance int64 `json:"current_balance"`
}

// BankAccountServicer defines the contract for bank-account business logic.
type BankAccountServicer interface {
	CreateBankAccount(requestingUserID uint, targetUserID *uint, name, color string, accountType models.BankAccountType, initialBalance int64) (*models.BankAccount, error)
	GetUserBankAccounts(requestingUserID uint, targetUserID *uint) ([]BankAccountWithBalance, error)
	UpdateBankAccount(requestingUserID, bankAccountID uint, name, color string, accountType *models.BankAccountType, initialBalance *int64) (*models.BankAccount, error)
	DeleteBankAccount(requestingUserID, bankAccountID uint) error

	// ValidateOwnership returns the account if it exists and belongs to the
	// user, and ErrBankAccountNotFound otherwise. Absence and foreign
	// ownership are indistinguishable to the caller.
	ValidateOwnership(userID, bankAccountID uint) (*models.BankAccount, error)
}

// CategoryServicer defines the contract for category business logic.
type CategoryServicer interface {
	CreateCategory(requestingUserID uint, targetUserID *uint, name, icon string, categoryType models.CategoryType) (*models.Category, error)
	GetUserCategories(requestingUserID uint, targetUserID *uint) ([]models.Category, error)
	UpdateCategory(requestingUserID, categoryID uint, name, icon string, categoryType *models.CategoryType) (*models.Category, error)
	DeleteCategory(requestingUserID, categoryID uint) error
	ValidateOwnership(userID, categoryID uint) (*models.Category, error)
}

// CreateTransactionInput holds the fields for creating a transaction.
// Type may be transfer, in which case ToBankAccountID is required and the
// result is the expense leg of the created pair. Installments above one turn
// the creation into an installment series.
type CreateTransactionInput struct {
	BankAccountID        uint
	ToBankAccountID      *uint
	CategoryID           *uint
	Name                 string
	Amount               int64
	Date                 time.Time
	Type                 models.TransactionType
	Installments         int
	TotalAmount          *int64
	FirstInstallmentDate *time.Time
}

// UpdateTransactionInput holds the fields for updating a transaction.
// Nil (or empty, for Name) fields are left unchanged.
type UpdateTransactionInput struct {
	BankAccountID *uint
	CategoryID    *uint
	Name          string
	Amount        *int64
	Date          *time.Time
	Type          *models.TransactionType
}

// TransactionFilter holds optional filter parameters for listing transactions.
// Month/Year select a calendar month unless an explicit StartDate/EndDate
// range is given.
type TransactionFilter struct {
	Month         *int
	Year          *int
	StartDate     *time.Time
	EndDate       *time.Time
	BankAccountID *uint
	CategoryIDs   []uint
	Name          string
	MinAmount     *int64
	MaxAmount     *int64
	Type          *models.TransactionType
}

// TransactionServicer defines the contract for transaction business logic.
type TransactionServicer interface {
	CreateTransaction(requestingUserID uint, targetUserID *uint, input CreateTransactionInput) (*models.Transaction, error)
	GetUserTransactions(requestingUserID uint, targetUserID *uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(requestingUserID, transactionID uint, input UpdateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(requestingUserID, transactionID uint) error
}

// RecurringTransactionInput holds the fields for creating or updating a
// recurring transaction definition.
type RecurringTransactionInput struct {
	Name          string
	Amount        int64
	Type          models.TransactionType
	CategoryID    *uint
	BankAccountID uint
	Frequency     models.RecurringFrequency
	StartDate     time.Time
	EndDate       *time.Time
	NextDueDate   time.Time
	IsActive      *bool
}

// GeneratedTransaction reports one transaction materialized by a sweep.
type GeneratedTransaction struct {
	RecurringTransactionID uint `json:"recurring_transaction_id"`
	TransactionID          uint `json:"transaction_id"`
}

// RecurringServicer defines the contract for recurring-transaction logic.
type RecurringServicer interface {
	CreateRecurringTransaction(userID uint, input RecurringTransactionInput) (*models.RecurringTransaction, error)
	GetUserRecurringTransactions(userID uint) ([]models.RecurringTransaction, error)
	UpdateRecurringTransaction(userID, recurringID uint, input RecurringTransactionInput) (*models.RecurringTransaction, error)
	ToggleActive(userID, recurringID uint) (*models.RecurringTransaction, error)
	DeleteRecurringTransaction(userID, recurringID uint) error

	// GenerateTransactions materializes every active definition due at now,
	// advancing each by one frequency step. Definitions past their end date
	// are deactivated instead.
	GenerateTransactions(now time.Time) ([]GeneratedTransaction, error)
}

// BudgetUsage is a budget together with its computed period usage.
// For expense budgets Remaining is limit minus spent; for income budgets the
// sign flips because the limit is a goal to reach, not a cap.
type BudgetUsage struct {
	models.Budget
	Spent      int64   `json:"spent"`
	Remaining  int64   `json:"remaining"`
	Percentage float64 `json:"percentage"`
	IsIncome   bool    `json:"is_income"`
}

// BudgetServicer defines the contract for budget business logic.
type BudgetServicer interface {
	CreateBudget(requestingUserID uint, targetUserID *uint, categoryID *uint, month, year int, limitAmount int64) (*models.Budget, error)

	// GetUserBudgets returns the budgets for a month with usage computed.
	// Reading current-month budgets emits threshold notifications as a side
	// effect, at most one per budget and type per calendar month.
	GetUserBudgets(requestingUserID uint, targetUserID *uint, month, year int) ([]BudgetUsage, error)

	UpdateBudget(requestingUserID, budgetID uint, limitAmount *int64, month, year *int) (*models.Budget, error)
	DeleteBudget(requestingUserID, budgetID uint) error
}

// NotificationServicer defines the contract for in-app notifications.
type NotificationServicer interface {
	// CreateIfAbsent creates a notification unless one of the same type for
	// the same budget already exists inside the given time window.
	CreateIfAbsent(userID uint, budgetID uint, notificationType models.NotificationType, message string, windowStart, windowEnd time.Time) error

	GetUserNotifications(userID uint, read *bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
	MarkAsRead(userID, notificationID uint) (*models.Notification, error)
	MarkAllAsRead(userID uint) (int64, error)
	CountUnread(userID uint) (int64, error)
	DeleteNotification(userID, notificationID uint) error
}

// CategoryTotal is an aggregated transaction total for one category.
type CategoryTotal struct {
	CategoryID   *uint  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Icon         string `json:"icon,omitempty"`
	Total        int64  `json:"total"`
}

// MonthTotal is an aggregated transaction total for one zero-based month.
type MonthTotal struct {
	Month int   `json:"month"`
	Total int64 `json:"total"`
}

// YearlySummary aggregates a year of income and expenses.
type YearlySummary struct {
	Year          int   `json:"year"`
	TotalIncome   int64 `json:"total_income"`
	TotalExpenses int64 `json:"total_expenses"`
	Balance       int64 `json:"balance"`
}

// AnalyticsServicer defines the contract for analytics queries. Transfer
// legs are never counted in any aggregate.
type AnalyticsServicer interface {
	GetExpensesByCategory(requestingUserID uint, targetUserID *uint, month, year int) ([]CategoryTotal, error)
	GetIncomeByCategory(requestingUserID uint, targetUserID *uint, month, year int) ([]CategoryTotal, error)
	GetMonthlyTrend(requestingUserID uint, targetUserID *uint, year int, transactionType *models.TransactionType) ([]MonthTotal, error)
	GetYearlySummary(requestingUserID uint, targetUserID *uint, year int) (*YearlySummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
