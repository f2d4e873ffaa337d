package models

import "time"

// RecurringFrequency represents how often a recurring transaction repeats
type RecurringFrequency string

const (
	RecurringFrequencyDaily   RecurringFrequency = "daily"
	RecurringFrequencyWeekly  RecurringFrequency = "weekly"
	RecurringFrequencyMonthly RecurringFrequency = "monthly"
	RecurringFrequencyYearly  RecurringFrequency = "yearly"
)

// RecurringTransaction is a template that the sweep materializes into
// concrete transactions whenever NextDueDate is reached. The sweep advances
// NextDueDate by one frequency step per invocation and deactivates the
// definition once EndDate has passed.
type RecurringTransaction struct {
	Base
	UserID        uint               `gorm:"not null;index" json:"user_id"`
	Name          string             `gorm:"not null" json:"name"`
	Amount        int64              `gorm:"not null" json:"amount"`
	Type          TransactionType    `gorm:"not null" json:"type"`
	CategoryID    *uint              `gorm:"index" json:"category_id,omitempty"`
	BankAccountID uint               `gorm:"not null;index" json:"bank_account_id"`
	Frequency     RecurringFrequency `gorm:"not null" json:"frequency"`
	StartDate     time.Time          `gorm:"not null" json:"start_date"`
	EndDate       *time.Time         `json:"end_date,omitempty"`
	NextDueDate   time.Time          `gorm:"not null;index" json:"next_due_date"`
	IsActive      bool               `gorm:"not null;default:true" json:"is_active"`

	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	BankAccount *BankAccount `gorm:"foreignKey:BankAccountID" json:"bank_account,omitempty"`
}
