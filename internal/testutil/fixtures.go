package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		Role:     models.UserRoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates a user with the admin role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("role", models.UserRoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote test user to admin: %v", err)
	}
	user.Role = models.UserRoleAdmin
	return user
}

// CreateTestMentee creates a user mentored by the given admin.
func CreateTestMentee(t *testing.T, db *gorm.DB, mentorID uint, permission models.MentorPermission) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	updates := map[string]interface{}{
		"mentor_id":         mentorID,
		"mentor_permission": permission,
	}
	if err := db.Model(user).Updates(updates).Error; err != nil {
		t.Fatalf("failed to assign mentor to test user: %v", err)
	}
	user.MentorID = &mentorID
	user.MentorPermission = permission
	return user
}

// CreateTestBankAccount creates a checking account with zero initial balance.
func CreateTestBankAccount(t *testing.T, db *gorm.DB, userID uint) *models.BankAccount {
	t.Helper()
	return CreateTestBankAccountWithType(t, db, userID, models.BankAccountTypeChecking, 0)
}

// CreateTestBankAccountWithType creates an account of the given type and
// initial balance (in cents).
func CreateTestBankAccountWithType(t *testing.T, db *gorm.DB, userID uint, accountType models.BankAccountType, initialBalance int64) *models.BankAccount {
	t.Helper()

	account := &models.BankAccount{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Account %d", nextID()),
		Color:          "#3366ff",
		Type:           accountType,
		InitialBalance: initialBalance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test bank account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Icon:   "tag",
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction dated now with the given
// type and amount (in cents).
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, bankAccountID uint, transactionType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, userID, bankAccountID, transactionType, amount, time.Now().UTC())
}

// CreateTestTransactionAt creates a transaction with an explicit date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, userID, bankAccountID uint, transactionType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:        userID,
		BankAccountID: bankAccountID,
		Name:          fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:        amount,
		Date:          date,
		Type:          transactionType,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for the current month with a limit
// of 10000 cents.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, categoryID *uint) *models.Budget {
	t.Helper()

	now := time.Now().UTC()
	budget := &models.Budget{
		UserID:      userID,
		CategoryID:  categoryID,
		Month:       int(now.Month()) - 1,
		Year:        now.Year(),
		LimitAmount: 10000,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestRecurring creates an active monthly recurring transaction
// due at the given date.
func CreateTestRecurring(t *testing.T, db *gorm.DB, userID, bankAccountID uint, nextDue time.Time) *models.RecurringTransaction {
	t.Helper()

	recurring := &models.RecurringTransaction{
		UserID:        userID,
		BankAccountID: bankAccountID,
		Name:          fmt.Sprintf("Test Recurring %d", nextID()),
		Amount:        2500,
		Type:          models.TransactionTypeExpense,
		Frequency:     models.RecurringFrequencyMonthly,
		StartDate:     nextDue,
		NextDueDate:   nextDue,
		IsActive:      true,
	}
	if err := db.Create(recurring).Error; err != nil {
		t.Fatalf("failed to create test recurring transaction: %v", err)
	}
	return recurring
}
