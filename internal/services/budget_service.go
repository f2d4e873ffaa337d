package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/money"
)

// Notification thresholds as a fraction of the budget limit.
const (
	nearLimitThreshold = 0.8
	exceededThreshold  = 1.0
)

// budgetService handles budget business logic and threshold notifications.
type budgetService struct {
	db            *gorm.DB
	users         UserServicer
	categories    CategoryServicer
	notifications NotificationServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, users UserServicer, categories CategoryServicer, notifications NotificationServicer) BudgetServicer {
	return &budgetService{db: db, users: users, categories: categories, notifications: notifications}
}

// CreateBudget creates a monthly budget for the effective user. A nil
// category makes it a general budget over all expenses. One budget per
// (user, category, month, year).
func (s *budgetService) CreateBudget(requestingUserID uint, targetUserID *uint, categoryID *uint, month, year int, limitAmount int64) (*models.Budget, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, true)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		if _, err := s.categories.ValidateOwnership(userID, *categoryID); err != nil {
			return nil, err
		}
	}

	query := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	} else {
		query = query.Where("category_id IS NULL")
	}
	var count int64
	query.Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		UserID:      userID,
		CategoryID:  categoryID,
		Month:       month,
		Year:        year,
		LimitAmount: limitAmount,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetUserBudgets returns the effective user's budgets for a month with
// computed usage, emitting threshold notifications as a side effect.
func (s *budgetService) GetUserBudgets(requestingUserID uint, targetUserID *uint, month, year int) ([]BudgetUsage, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, false)
	if err != nil {
		return nil, err
	}

	var budgets []models.Budget
	err = s.db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Preload("Category").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make([]BudgetUsage, 0, len(budgets))
	for i := range budgets {
		usage, err := s.computeUsage(&budgets[i])
		if err != nil {
			return nil, err
		}
		s.notifyThresholds(usage)
		result = append(result, *usage)
	}
	return result, nil
}

// computeUsage sums the month's relevant transactions against the
// budget limit. Income budgets track contributions into investment
// accounts toward a goal, so their remaining amount measures progress
// past the goal rather than headroom under a cap.
func (s *budgetService) computeUsage(budget *models.Budget) (*BudgetUsage, error) {
	start := time.Date(budget.Year, time.Month(budget.Month+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	isIncome := budget.CategoryID != nil &&
		budget.Category != nil &&
		budget.Category.Type == models.CategoryTypeIncome

	query := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND date >= ? AND date < ?", budget.UserID, start, end)
	if budget.CategoryID != nil {
		query = query.Where("category_id = ?", *budget.CategoryID)
	}
	if isIncome {
		query = query.Where("type = ?", models.TransactionTypeIncome).
			Joins("JOIN bank_accounts ON bank_accounts.id = transactions.bank_account_id").
			Where("bank_accounts.type = ?", models.BankAccountTypeInvestment)
	} else {
		// General budgets exclude transfer legs so moving money
		// between accounts does not count as spending.
		query = query.Where("type = ? AND related_transaction_id IS NULL", models.TransactionTypeExpense)
	}

	var spent int64
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&spent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	remaining := budget.LimitAmount - spent
	if isIncome {
		remaining = spent - budget.LimitAmount
	}
	percentage := 0.0
	if budget.LimitAmount > 0 {
		percentage = float64(spent) / float64(budget.LimitAmount) * 100
	}

	return &BudgetUsage{
		Budget:     *budget,
		Spent:      spent,
		Remaining:  remaining,
		Percentage: percentage,
		IsIncome:   isIncome,
	}, nil
}

// notifyThresholds emits at most one notification of each type per
// budget per month. Only budgets for the current calendar month notify;
// reviewing past months stays silent. Notification failures are logged,
// never surfaced.
func (s *budgetService) notifyThresholds(usage *BudgetUsage) {
	if usage.LimitAmount <= 0 {
		return
	}
	now := time.Now()
	if usage.Month != int(now.Month())-1 || usage.Year != now.Year() {
		return
	}
	windowStart := time.Date(usage.Year, time.Month(usage.Month+1), 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 1, 0)

	name := "Overall"
	if usage.Category != nil {
		name = usage.Category.Name
	}
	ratio := float64(usage.Spent) / float64(usage.LimitAmount)

	var notificationType models.NotificationType
	var message string
	switch {
	case usage.IsIncome && ratio >= exceededThreshold:
		notificationType = models.NotificationTypeBudgetGoalReached
		message = fmt.Sprintf("Congratulations! You reached your %s goal of %s", name, money.FormatCents(usage.LimitAmount))
	case !usage.IsIncome && ratio > exceededThreshold:
		notificationType = models.NotificationTypeBudgetExceeded
		message = fmt.Sprintf("You exceeded your %s budget of %s", name, money.FormatCents(usage.LimitAmount))
	case !usage.IsIncome && ratio >= nearLimitThreshold && ratio < exceededThreshold:
		notificationType = models.NotificationTypeBudgetNearLimit
		message = fmt.Sprintf("You used %.0f%% of your %s budget", usage.Percentage, name)
	default:
		return
	}

	err := s.notifications.CreateIfAbsent(usage.UserID, usage.Budget.ID, notificationType, message, windowStart, windowEnd)
	if err != nil {
		logger.Get().Errorw("Failed to create budget notification",
			"budget_id", usage.Budget.ID, "type", notificationType, "error", err)
	}
}

// UpdateBudget edits a budget's limit or period.
func (s *budgetService) UpdateBudget(requestingUserID, budgetID uint, limitAmount *int64, month, year *int) (*models.Budget, error) {
	budget, err := s.getOwned(requestingUserID, budgetID, true)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if limitAmount != nil {
		updates["limit_amount"] = *limitAmount
	}
	if month != nil {
		updates["month"] = *month
	}
	if year != nil {
		updates["year"] = *year
	}
	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return budget, nil
}

// DeleteBudget removes a budget.
func (s *budgetService) DeleteBudget(requestingUserID, budgetID uint) error {
	budget, err := s.getOwned(requestingUserID, budgetID, true)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *budgetService) getOwned(requestingUserID, budgetID uint, write bool) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if _, err := s.users.ResolveUser(requestingUserID, &budget.UserID, write); err != nil {
		return nil, err
	}
	return &budget, nil
}
