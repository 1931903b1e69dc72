package models

import "time"

// Personnel is a directory entry assignable to tasks. Names are unique.
type Personnel struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
