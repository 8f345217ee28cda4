package model

import "time"

// UserActionLog is one append-only audit record of a user-visible action.
// Rows are created as a side effect of catalog operations and never updated
// or deleted afterwards.
type UserActionLog struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"userId" gorm:"size:64;not null;default:'Unknown'"`
	ActionType string    `json:"actionType" gorm:"size:32;not null;index"`
	EntityType string    `json:"entityType" gorm:"size:32;not null;index"`
	EntityID   int64     `json:"entityId" gorm:"not null;default:0"` // 0 for list-level actions
	Details    string    `json:"details" gorm:"type:text"`
	Timestamp  time.Time `json:"timestamp" gorm:"not null"`
	IPAddress  string    `json:"ipAddress" gorm:"size:64"`
	UserAgent  string    `json:"userAgent" gorm:"size:255"`
}

// TableName specifies the table name.
func (UserActionLog) TableName() string {
	return "user_action_logs"
}
