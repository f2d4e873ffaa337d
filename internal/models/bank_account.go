package models

// BankAccountType represents the type of bank account
type BankAccountType string

const (
	BankAccountTypeCash       BankAccountType = "cash"
	BankAccountTypeInvestment BankAccountType = "investment"
	BankAccountTypeChecking   BankAccountType = "checking"
)

// BankAccount represents a financial account owned by a user.
// The stored InitialBalance never changes with transactions; the current
// balance is computed by folding the account's transaction history.
type BankAccount struct {
	Base
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	Name           string          `gorm:"not null" json:"name"`
	Color          string          `gorm:"not null" json:"color"`
	Type           BankAccountType `gorm:"not null" json:"type"`
	InitialBalance int64           `gorm:"not null;default:0" json:"initial_balance"`

	Transactions []Transaction `gorm:"foreignKey:BankAccountID" json:"transactions,omitempty"`
}
