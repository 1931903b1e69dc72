package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
	CanAdd       bool           `gorm:"not null;default:false" json:"can_add"`
	CanEdit      bool           `gorm:"not null;default:false" json:"can_edit"`
	CanDelete    bool           `gorm:"not null;default:false" json:"can_delete"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks           []ScheduleTask `gorm:"foreignKey:AuthorID" json:"-"`
	Logs            []ActivityLog  `gorm:"foreignKey:UserID" json:"-"`
	SentInvitations []Invitation   `gorm:"foreignKey:CreatedByID" json:"-"`
}

// Operation categories gated per user.
const (
	PermissionAdd    = "add"
	PermissionEdit   = "edit"
	PermissionDelete = "delete"
)

// HasPermission reports whether the user may perform the given operation
// category. Administrators hold every permission implicitly.
func (u *User) HasPermission(permission string) bool {
	if u.IsAdmin {
		return true
	}
	switch permission {
	case PermissionAdd:
		return u.CanAdd
	case PermissionEdit:
		return u.CanEdit
	case PermissionDelete:
		return u.CanDelete
	default:
		return false
	}
}
