package models

// Budget represents a monthly spending cap (expense categories, or general
// when CategoryID is nil) or an income goal (income categories, matched
// against investment accounts). Month is zero-based (0 = January).
// At most one budget exists per (user, month, year, category), the
// nil-category general budget included.
type Budget struct {
	Base
	UserID      uint  `gorm:"not null;index" json:"user_id"`
	CategoryID  *uint `gorm:"index" json:"category_id,omitempty"`
	Month       int   `gorm:"not null" json:"month"`
	Year        int   `gorm:"not null" json:"year"`
	LimitAmount int64 `gorm:"not null" json:"limit_amount"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
