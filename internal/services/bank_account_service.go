package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// bankAccountService handles bank account business logic.
type bankAccountService struct {
	db    *gorm.DB
	users UserServicer
}

// NewBankAccountService creates a new BankAccountServicer.
func NewBankAccountService(db *gorm.DB, users UserServicer) BankAccountServicer {
	return &bankAccountService{db: db, users: users}
}

// CreateBankAccount creates an account for the effective user.
func (s *bankAccountService) CreateBankAccount(requestingUserID uint, targetUserID *uint, name, color string, accountType models.BankAccountType, initialBalance int64) (*models.BankAccount, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, true)
	if err != nil {
		return nil, err
	}

	account := &models.BankAccount{
		UserID:         userID,
		Name:           name,
		Color:          color,
		Type:           accountType,
		InitialBalance: initialBalance,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetUserBankAccounts returns the effective user's accounts with their
// current balances. A balance is the initial balance plus all signed
// transaction amounts on the account.
func (s *bankAccountService) GetUserBankAccounts(requestingUserID uint, targetUserID *uint) ([]BankAccountWithBalance, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, false)
	if err != nil {
		return nil, err
	}

	var accounts []models.BankAccount
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make([]BankAccountWithBalance, 0, len(accounts))
	for _, account := range accounts {
		balance, err := s.currentBalance(&account)
		if err != nil {
			return nil, err
		}
		result = append(result, BankAccountWithBalance{
			BankAccount:    account,
			CurrentBalance: balance,
		})
	}
	return result, nil
}

func (s *bankAccountService) currentBalance(account *models.BankAccount) (int64, error) {
	type row struct {
		Type  models.TransactionType
		Total int64
	}
	var rows []row
	err := s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("bank_account_id = ?", account.ID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	balance := account.InitialBalance
	for _, r := range rows {
		if r.Type == models.TransactionTypeIncome {
			balance += r.Total
		} else {
			balance -= r.Total
		}
	}
	return balance, nil
}

// UpdateBankAccount updates an account owned by a user the requester can write to.
func (s *bankAccountService) UpdateBankAccount(requestingUserID, bankAccountID uint, name, color string, accountType *models.BankAccountType, initialBalance *int64) (*models.BankAccount, error) {
	account, err := s.getOwned(requestingUserID, bankAccountID, true)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}
	if accountType != nil {
		updates["type"] = *accountType
	}
	if initialBalance != nil {
		updates["initial_balance"] = *initialBalance
	}
	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return account, nil
}

// DeleteBankAccount soft-deletes an account and its transactions.
func (s *bankAccountService) DeleteBankAccount(requestingUserID, bankAccountID uint) error {
	account, err := s.getOwned(requestingUserID, bankAccountID, true)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bank_account_id = ?", account.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(account).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ValidateOwnership checks that a bank account belongs to a user.
func (s *bankAccountService) ValidateOwnership(userID, bankAccountID uint) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := s.db.Where("id = ? AND user_id = ?", bankAccountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// getOwned loads an account and verifies the requester may act on its
// owner's data via the delegated-access rules.
func (s *bankAccountService) getOwned(requestingUserID, bankAccountID uint, write bool) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := s.db.First(&account, bankAccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.users.ResolveUser(requestingUserID, &account.UserID, write); err != nil {
		return nil, err
	}
	return &account, nil
}
