package models

import "time"

// TransactionType represents the stored type of a transaction. A transfer is
// never stored directly: it becomes an expense row on the source account and
// an income row on the destination account, linked through
// RelatedTransactionID so that each leg points at the other.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"

	// TransactionTypeTransfer is accepted on requests and list filters only.
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a financial transaction. Amount is in cents and
// always positive; the sign is implied by Type.
type Transaction struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	BankAccountID uint            `gorm:"not null;index" json:"bank_account_id"`
	CategoryID    *uint           `gorm:"index" json:"category_id,omitempty"`
	Name          string          `gorm:"not null" json:"name"`
	Amount        int64           `gorm:"not null" json:"amount"`
	Date          time.Time       `gorm:"not null;index" json:"date"`
	Type          TransactionType `gorm:"not null" json:"type"`

	// Transfer legs point at each other, forming a 2-cycle.
	RelatedTransactionID *uint `gorm:"index" json:"related_transaction_id,omitempty"`

	// Installment-series members share a group ID and are numbered 1..N.
	InstallmentGroupID     *string `gorm:"type:uuid;index" json:"installment_group_id,omitempty"`
	InstallmentNumber      *int    `json:"installment_number,omitempty"`
	TotalInstallments      *int    `json:"total_installments,omitempty"`
	InstallmentTotalAmount *int64  `json:"installment_total_amount,omitempty"`

	BankAccount        *BankAccount `gorm:"foreignKey:BankAccountID" json:"bank_account,omitempty"`
	Category           *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	RelatedTransaction *Transaction `gorm:"foreignKey:RelatedTransactionID" json:"related_transaction,omitempty"`
}

// IsTransferLeg reports whether the transaction is one leg of a transfer.
func (t *Transaction) IsTransferLeg() bool {
	return t.RelatedTransactionID != nil
}

// SignedAmount returns the amount with income positive and expense negative.
func (t *Transaction) SignedAmount() int64 {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return -t.Amount
}
