package models

// AuditLog records a mutating operation against a user's financial data,
// including writes a mentor performed on a mentee's behalf. Changes holds a
// JSON snapshot of the fields that were touched.
type AuditLog struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
