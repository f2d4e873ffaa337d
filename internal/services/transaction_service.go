package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/pagination"
	"fintrack/internal/uuid"
)

// transactionService handles transaction business logic, including
// transfer pairs and installment groups.
type transactionService struct {
	db           *gorm.DB
	users        UserServicer
	bankAccounts BankAccountServicer
	categories   CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, users UserServicer, bankAccounts BankAccountServicer, categories CategoryServicer) TransactionServicer {
	return &transactionService{
		db:           db,
		users:        users,
		bankAccounts: bankAccounts,
		categories:   categories,
	}
}

// CreateTransaction creates a plain transaction, a transfer pair, or an
// installment group depending on the input. All rows of a multi-row
// create are written in a single database transaction.
func (s *transactionService) CreateTransaction(requestingUserID uint, targetUserID *uint, input CreateTransactionInput) (*models.Transaction, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, true)
	if err != nil {
		return nil, err
	}

	if _, err := s.bankAccounts.ValidateOwnership(userID, input.BankAccountID); err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		if _, err := s.categories.ValidateOwnership(userID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	switch input.Type {
	case models.TransactionTypeTransfer:
		return s.createTransfer(userID, input)
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		if input.Installments > 1 {
			return s.createInstallments(userID, input)
		}
		return s.createPlain(userID, input)
	default:
		return nil, apperrors.ErrInvalidTransactionType
	}
}

func (s *transactionService) createPlain(userID uint, input CreateTransactionInput) (*models.Transaction, error) {
	tx := &models.Transaction{
		UserID:        userID,
		BankAccountID: input.BankAccountID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Amount:        input.Amount,
		Date:          input.Date,
		Type:          input.Type,
	}
	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// createTransfer writes both legs of a transfer: an expense on the
// source account and an income on the destination, cross-linked through
// RelatedTransactionID.
func (s *transactionService) createTransfer(userID uint, input CreateTransactionInput) (*models.Transaction, error) {
	if input.ToBankAccountID == nil {
		return nil, apperrors.ErrMissingTransferAccount
	}
	if *input.ToBankAccountID == input.BankAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}
	if input.Installments > 1 {
		return nil, apperrors.ErrTransferInstallments
	}
	if _, err := s.bankAccounts.ValidateOwnership(userID, *input.ToBankAccountID); err != nil {
		return nil, err
	}

	// Transfer legs never carry a category, so they stay out of
	// category-filtered listings and category budgets.
	source := &models.Transaction{
		UserID:        userID,
		BankAccountID: input.BankAccountID,
		Name:          input.Name,
		Amount:        input.Amount,
		Date:          input.Date,
		Type:          models.TransactionTypeExpense,
	}
	dest := &models.Transaction{
		UserID:        userID,
		BankAccountID: *input.ToBankAccountID,
		Name:          input.Name,
		Amount:        input.Amount,
		Date:          input.Date,
		Type:          models.TransactionTypeIncome,
	}

	err := s.db.Transaction(func(db *gorm.DB) error {
		if err := db.Create(source).Error; err != nil {
			return err
		}
		if err := db.Create(dest).Error; err != nil {
			return err
		}
		if err := db.Model(source).Update("related_transaction_id", dest.ID).Error; err != nil {
			return err
		}
		return db.Model(dest).Update("related_transaction_id", source.ID).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	source.RelatedTransactionID = &dest.ID
	return source, nil
}

// createInstallments splits a total into N monthly parts. The cent
// remainder goes to the earliest installments so the parts always sum
// back to the total.
func (s *transactionService) createInstallments(userID uint, input CreateTransactionInput) (*models.Transaction, error) {
	if input.Installments > 120 {
		return nil, apperrors.ErrInvalidInstallmentCount
	}

	total := input.Amount
	if input.TotalAmount != nil {
		total = *input.TotalAmount
	}
	parts := money.SplitCents(total, input.Installments)

	firstDate := input.Date
	if input.FirstInstallmentDate != nil {
		firstDate = *input.FirstInstallmentDate
	}

	groupID := uuid.New()
	rows := make([]*models.Transaction, input.Installments)
	for i := range rows {
		n := i + 1
		totalInstallments := input.Installments
		totalAmount := total
		rows[i] = &models.Transaction{
			UserID:                 userID,
			BankAccountID:          input.BankAccountID,
			CategoryID:             input.CategoryID,
			Name:                   fmt.Sprintf("%s (%d/%d)", input.Name, n, input.Installments),
			Amount:                 parts[i],
			Date:                   addMonths(firstDate, i),
			Type:                   input.Type,
			InstallmentGroupID:     &groupID,
			InstallmentNumber:      &n,
			TotalInstallments:      &totalInstallments,
			InstallmentTotalAmount: &totalAmount,
		}
	}

	err := s.db.Transaction(func(db *gorm.DB) error {
		for _, row := range rows {
			if err := db.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows[0], nil
}

// addMonths advances a date by whole months, clamping to the last day
// of the target month so Jan 31 + 1 month is Feb 28/29, not Mar 2/3.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// GetUserTransactions returns a filtered, paginated page of the
// effective user's transactions, newest first.
func (s *transactionService) GetUserTransactions(requestingUserID uint, targetUserID *uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, false)
	if err != nil {
		return nil, err
	}
	page.Defaults()

	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	query = s.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	err = query.
		Preload("BankAccount").
		Preload("Category").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(transactions, page.Page, page.PageSize, total)
	return &resp, nil
}

// applyFilter narrows the transaction query. Transfer visibility:
// asking for transfers returns only the expense legs of linked pairs;
// asking for income hides transfer legs; no type filter hides the
// income leg of each pair so transfers are not double-counted.
func (s *transactionService) applyFilter(query *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.Month != nil && filter.Year != nil {
		start := time.Date(*filter.Year, time.Month(*filter.Month+1), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	} else if filter.Year != nil {
		start := time.Date(*filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(1, 0, 0))
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.BankAccountID != nil {
		query = query.Where("bank_account_id = ?", *filter.BankAccountID)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Name != "" {
		// LOWER on both sides keeps the match case-insensitive on
		// postgres; sqlite LIKE is already case-insensitive for ASCII.
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	switch {
	case filter.Type != nil && *filter.Type == models.TransactionTypeTransfer:
		query = query.Where("type = ? AND related_transaction_id IS NOT NULL", models.TransactionTypeExpense)
	case filter.Type != nil && *filter.Type == models.TransactionTypeIncome:
		query = query.Where("type = ? AND related_transaction_id IS NULL", models.TransactionTypeIncome)
	case filter.Type != nil:
		query = query.Where("type = ?", *filter.Type)
	default:
		query = query.Where("NOT (type = ? AND related_transaction_id IS NOT NULL)", models.TransactionTypeIncome)
	}
	return query
}

// GetTransactionByID retrieves a transaction visible to the user.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.Preload("BankAccount").Preload("Category").
		First(&tx, transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.users.ResolveUser(userID, &tx.UserID, false); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction edits a transaction. Transfer legs update in
// lockstep with their pair; installment members cannot be edited
// individually so the group stays arithmetically consistent.
func (s *transactionService) UpdateTransaction(requestingUserID, transactionID uint, input UpdateTransactionInput) (*models.Transaction, error) {
	tx, err := s.getOwned(requestingUserID, transactionID, true)
	if err != nil {
		return nil, err
	}

	if tx.InstallmentGroupID != nil {
		return nil, apperrors.ErrInstallmentNotEditable
	}
	if tx.IsTransferLeg() && input.Type != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Cannot change the type of a transfer")
	}
	if tx.IsTransferLeg() && input.CategoryID != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Transfers cannot have a category")
	}

	if input.BankAccountID != nil {
		if _, err := s.bankAccounts.ValidateOwnership(tx.UserID, *input.BankAccountID); err != nil {
			return nil, err
		}
	}
	if input.CategoryID != nil {
		if _, err := s.categories.ValidateOwnership(tx.UserID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	pairUpdates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
		pairUpdates["name"] = input.Name
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}
	if input.Amount != nil {
		updates["amount"] = *input.Amount
		pairUpdates["amount"] = *input.Amount
	}
	if input.Date != nil {
		updates["date"] = *input.Date
		pairUpdates["date"] = *input.Date
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.BankAccountID != nil {
		updates["bank_account_id"] = *input.BankAccountID
	}
	if len(updates) == 0 {
		return tx, nil
	}

	err = s.db.Transaction(func(db *gorm.DB) error {
		if err := db.Model(tx).Updates(updates).Error; err != nil {
			return err
		}
		if tx.IsTransferLeg() && len(pairUpdates) > 0 {
			return db.Model(&models.Transaction{}).
				Where("id = ?", *tx.RelatedTransactionID).
				Updates(pairUpdates).Error
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// DeleteTransaction removes a transaction. Deleting a transfer leg also
// deletes its pair; deleting an installment member deletes the whole group.
func (s *transactionService) DeleteTransaction(requestingUserID, transactionID uint) error {
	tx, err := s.getOwned(requestingUserID, transactionID, true)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(db *gorm.DB) error {
		switch {
		case tx.InstallmentGroupID != nil:
			return db.Where("installment_group_id = ?", *tx.InstallmentGroupID).
				Delete(&models.Transaction{}).Error
		case tx.IsTransferLeg():
			return db.Where("id IN ?", []uint{tx.ID, *tx.RelatedTransactionID}).
				Delete(&models.Transaction{}).Error
		default:
			return db.Delete(tx).Error
		}
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *transactionService) getOwned(requestingUserID, transactionID uint, write bool) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.First(&tx, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.users.ResolveUser(requestingUserID, &tx.UserID, write); err != nil {
		return nil, err
	}
	return &tx, nil
}
