package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. Names are unique per user;
// categories are never shared across users.
type Category struct {
	Base
	UserID uint         `gorm:"not null;index:idx_categories_user_name,unique" json:"user_id"`
	Name   string       `gorm:"not null;index:idx_categories_user_name,unique" json:"name"`
	Icon   string       `json:"icon"`
	Type   CategoryType `gorm:"not null" json:"type"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}
