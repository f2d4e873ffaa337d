package models

// UserRole represents the role of a user
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// MentorPermission controls what a mentor may do with a mentee's data
type MentorPermission string

const (
	MentorPermissionReadOnly   MentorPermission = "read_only"
	MentorPermissionFullAccess MentorPermission = "full_access"
)

// User represents the user model in the database.
// MentorID links a mentee to the admin user mentoring them; it is a
// back-reference only and does not imply ownership of the mentee's data.
type User struct {
	Base
	Name             string           `gorm:"not null" json:"name"`
	Email            string           `gorm:"uniqueIndex;not null" json:"email"`
	Password         string           `gorm:"not null" json:"-"`
	Role             UserRole         `gorm:"not null;default:'user'" json:"role"`
	MentorID         *uint            `gorm:"index" json:"mentor_id,omitempty"`
	MentorPermission MentorPermission `gorm:"default:'read_only'" json:"mentor_permission,omitempty"`
	RefreshTokenHash string           `gorm:"size:64" json:"-"`

	BankAccounts          []BankAccount          `gorm:"foreignKey:UserID" json:"bank_accounts,omitempty"`
	Categories            []Category             `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions          []Transaction          `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Budgets               []Budget               `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Notifications         []Notification         `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
	RecurringTransactions []RecurringTransaction `gorm:"foreignKey:UserID" json:"recurring_transactions,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
