package models

import "time"

// ActivityLog records one mutating action for the audit trail.
type ActivityLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"type:varchar(100);not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
