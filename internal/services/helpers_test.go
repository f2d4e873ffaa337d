package services

import (
	"gorm.io/gorm"
)

// testServices wires the full service graph against a test database.
type testServices struct {
	users         UserServicer
	bankAccounts  BankAccountServicer
	categories    CategoryServicer
	transactions  TransactionServicer
	recurring     RecurringServicer
	notifications NotificationServicer
	budgets       BudgetServicer
	analytics     AnalyticsServicer
}

func newTestServices(db *gorm.DB) *testServices {
	users := NewUserService(db)
	bankAccounts := NewBankAccountService(db, users)
	categories := NewCategoryService(db, users)
	notifications := NewNotificationService(db)
	return &testServices{
		users:         users,
		bankAccounts:  bankAccounts,
		categories:    categories,
		transactions:  NewTransactionService(db, users, bankAccounts, categories),
		recurring:     NewRecurringService(db, bankAccounts, categories),
		notifications: notifications,
		budgets:       NewBudgetService(db, users, categories, notifications),
		analytics:     NewAnalyticsService(db, users),
	}
}
