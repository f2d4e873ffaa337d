package models

// NotificationType represents the kind of budget event being reported
type NotificationType string

const (
	NotificationTypeBudgetNearLimit   NotificationType = "budget_near_limit"
	NotificationTypeBudgetExceeded    NotificationType = "budget_exceeded"
	NotificationTypeBudgetGoalReached NotificationType = "budget_goal_reached"
)

// Notification is an in-app notification row. Creation is idempotent per
// (user, budget, type) within a calendar month, guarded by a time-windowed
// existence check rather than a unique constraint.
type Notification struct {
	Base
	UserID   uint             `gorm:"not null;index" json:"user_id"`
	BudgetID *uint            `gorm:"index" json:"budget_id,omitempty"`
	Type     NotificationType `gorm:"not null" json:"type"`
	Message  string           `gorm:"not null" json:"message"`
	Read     bool             `gorm:"not null;default:false" json:"read"`

	Budget *Budget `gorm:"foreignKey:BudgetID" json:"budget,omitempty"`
}
