package models

import "time"

// Invitation is a single-use signup code. Consumed atomically with the
// account it creates.
type Invitation struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Code        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	IsUsed      bool      `gorm:"not null;default:false" json:"is_used"`
	CreatedByID uint64    `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Creator User `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
}
