package services

import (
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// analyticsService computes aggregates over transactions. Transfer legs
// are excluded everywhere so internal moves never look like income or
// spending.
type analyticsService struct {
	db    *gorm.DB
	users UserServicer
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, users UserServicer) AnalyticsServicer {
	return &analyticsService{db: db, users: users}
}

// GetExpensesByCategory returns expense totals per category for a
// month, largest first. Uncategorized expenses group under a nil
// category.
func (s *analyticsService) GetExpensesByCategory(requestingUserID uint, targetUserID *uint, month, year int) ([]CategoryTotal, error) {
	return s.byCategory(requestingUserID, targetUserID, month, year, models.TransactionTypeExpense)
}

// GetIncomeByCategory returns income totals per category for a month.
func (s *analyticsService) GetIncomeByCategory(requestingUserID uint, targetUserID *uint, month, year int) ([]CategoryTotal, error) {
	return s.byCategory(requestingUserID, targetUserID, month, year, models.TransactionTypeIncome)
}

func (s *analyticsService) byCategory(requestingUserID uint, targetUserID *uint, month, year int, transactionType models.TransactionType) ([]CategoryTotal, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, false)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var totals []CategoryTotal
	err = s.db.Model(&models.Transaction{}).
		Select("transactions.category_id AS category_id, COALESCE(categories.name, 'Uncategorized') AS category_name, COALESCE(categories.icon, '') AS icon, SUM(transactions.amount) AS total").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id AND categories.deleted_at IS NULL").
		Where("transactions.user_id = ? AND transactions.type = ?", userID, transactionType).
		Where("transactions.related_transaction_id IS NULL").
		Where("transactions.date >= ? AND transactions.date < ?", start, end).
		Where("transactions.deleted_at IS NULL").
		Group("transactions.category_id, categories.name, categories.icon").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// GetMonthlyTrend returns one total per month of the year, zero-filled
// for months without transactions. The twelve monthly sums run
// concurrently.
func (s *analyticsService) GetMonthlyTrend(requestingUserID uint, targetUserID *uint, year int, transactionType *models.TransactionType) ([]MonthTotal, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, false)
	if err != nil {
		return nil, err
	}

	totals := make([]MonthTotal, 12)
	var g errgroup.Group
	for month := 0; month < 12; month++ {
		month := month
		g.Go(func() error {
			start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 1, 0)

			query := s.db.Model(&models.Transaction{}).
				Where("user_id = ?", userID).
				Where("related_transaction_id IS NULL").
				Where("date >= ? AND date < ?", start, end)
			if transactionType != nil {
				query = query.Where("type = ?", *transactionType)
			}

			var total int64
			if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
				return err
			}
			totals[month] = MonthTotal{Month: month, Total: total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// GetYearlySummary returns the year's income, expenses, and balance.
func (s *analyticsService) GetYearlySummary(requestingUserID uint, targetUserID *uint, year int) (*YearlySummary, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, false)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	type row struct {
		Type  models.TransactionType
		Total int64
	}
	var rows []row
	err = s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND related_transaction_id IS NULL", userID).
		Where("date >= ? AND date < ?", start, end).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &YearlySummary{Year: year}
	for _, r := range rows {
		switch r.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome = r.Total
		case models.TransactionTypeExpense:
			summary.TotalExpenses = r.Total
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpenses
	return summary, nil
}
