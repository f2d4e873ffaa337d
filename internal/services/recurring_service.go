package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// recurringService handles recurring transaction templates and the
// sweep that materializes them into real transactions.
type recurringService struct {
	db           *gorm.DB
	bankAccounts BankAccountServicer
	categories   CategoryServicer
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB, bankAccounts BankAccountServicer, categories CategoryServicer) RecurringServicer {
	return &recurringService{db: db, bankAccounts: bankAccounts, categories: categories}
}

// CreateRecurringTransaction creates a recurring template for the user.
func (s *recurringService) CreateRecurringTransaction(userID uint, input RecurringTransactionInput) (*models.RecurringTransaction, error) {
	if input.Type == models.TransactionTypeTransfer {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidTransactionType, "Recurring transfers are not supported")
	}
	if _, err := s.bankAccounts.ValidateOwnership(userID, input.BankAccountID); err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		if _, err := s.categories.ValidateOwnership(userID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	nextDue := input.NextDueDate
	if nextDue.IsZero() {
		nextDue = input.StartDate
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	recurring := &models.RecurringTransaction{
		UserID:        userID,
		BankAccountID: input.BankAccountID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Amount:        input.Amount,
		Type:          input.Type,
		Frequency:     input.Frequency,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		NextDueDate:   nextDue,
		IsActive:      active,
	}
	if err := s.db.Create(recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recurring, nil
}

// GetUserRecurringTransactions lists the user's recurring templates.
func (s *recurringService) GetUserRecurringTransactions(userID uint) ([]models.RecurringTransaction, error) {
	var recurring []models.RecurringTransaction
	err := s.db.Where("user_id = ?", userID).
		Preload("BankAccount").
		Preload("Category").
		Order("next_due_date ASC").
		Find(&recurring).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recurring, nil
}

// UpdateRecurringTransaction edits a recurring template.
func (s *recurringService) UpdateRecurringTransaction(userID, recurringID uint, input RecurringTransactionInput) (*models.RecurringTransaction, error) {
	recurring, err := s.getOwned(userID, recurringID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Amount > 0 {
		updates["amount"] = input.Amount
	}
	if input.Type != "" {
		if input.Type == models.TransactionTypeTransfer {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidTransactionType, "Recurring transfers are not supported")
		}
		updates["type"] = input.Type
	}
	if input.BankAccountID != 0 {
		if _, err := s.bankAccounts.ValidateOwnership(userID, input.BankAccountID); err != nil {
			return nil, err
		}
		updates["bank_account_id"] = input.BankAccountID
	}
	if input.CategoryID != nil {
		if _, err := s.categories.ValidateOwnership(userID, *input.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.Frequency != "" {
		updates["frequency"] = input.Frequency
	}
	if !input.StartDate.IsZero() {
		updates["start_date"] = input.StartDate
	}
	if input.EndDate != nil {
		updates["end_date"] = *input.EndDate
	}
	if !input.NextDueDate.IsZero() {
		updates["next_due_date"] = input.NextDueDate
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.Model(recurring).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return recurring, nil
}

// ToggleActive flips a template's active flag.
func (s *recurringService) ToggleActive(userID, recurringID uint) (*models.RecurringTransaction, error) {
	recurring, err := s.getOwned(userID, recurringID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(recurring).Update("is_active", !recurring.IsActive).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	recurring.IsActive = !recurring.IsActive
	return recurring, nil
}

// DeleteRecurringTransaction removes a template. Already generated
// transactions are untouched.
func (s *recurringService) DeleteRecurringTransaction(userID, recurringID uint) error {
	recurring, err := s.getOwned(userID, recurringID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(recurring).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GenerateTransactions sweeps all active templates whose NextDueDate is
// not after now. Each due template yields one transaction dated now and
// advances one frequency step; templates past their end date are
// deactivated instead. A failing template is logged and skipped so one
// bad row cannot stall the whole sweep.
func (s *recurringService) GenerateTransactions(now time.Time) ([]GeneratedTransaction, error) {
	var due []models.RecurringTransaction
	err := s.db.Where("is_active = ? AND next_due_date <= ?", true, now).Find(&due).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	generated := make([]GeneratedTransaction, 0, len(due))
	for i := range due {
		recurring := &due[i]

		if recurring.EndDate != nil && recurring.EndDate.Before(now) {
			if err := s.db.Model(recurring).Update("is_active", false).Error; err != nil {
				logger.Get().Errorw("Failed to deactivate expired recurring transaction",
					"recurring_id", recurring.ID, "error", err)
			}
			continue
		}

		tx := &models.Transaction{
			UserID:        recurring.UserID,
			BankAccountID: recurring.BankAccountID,
			CategoryID:    recurring.CategoryID,
			Name:          recurring.Name,
			Amount:        recurring.Amount,
			Date:          now,
			Type:          recurring.Type,
		}
		err := s.db.Transaction(func(db *gorm.DB) error {
			if err := db.Create(tx).Error; err != nil {
				return err
			}
			return db.Model(recurring).
				Update("next_due_date", nextDueDate(recurring.NextDueDate, recurring.Frequency)).Error
		})
		if err != nil {
			logger.Get().Errorw("Failed to generate recurring transaction",
				"recurring_id", recurring.ID, "error", err)
			continue
		}
		generated = append(generated, GeneratedTransaction{
			RecurringTransactionID: recurring.ID,
			TransactionID:          tx.ID,
		})
	}
	return generated, nil
}

// nextDueDate advances a due date by one frequency step. Monthly and
// yearly steps clamp to the last day of the target month.
func nextDueDate(from time.Time, frequency models.RecurringFrequency) time.Time {
	switch frequency {
	case models.RecurringFrequencyDaily:
		return from.AddDate(0, 0, 1)
	case models.RecurringFrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case models.RecurringFrequencyYearly:
		return addMonths(from, 12)
	default:
		return addMonths(from, 1)
	}
}

func (s *recurringService) getOwned(userID, recurringID uint) (*models.RecurringTransaction, error) {
	var recurring models.RecurringTransaction
	if err := s.db.Where("id = ? AND user_id = ?", recurringID, userID).First(&recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &recurring, nil
}
