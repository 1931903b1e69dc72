package dto

import (
	"time"

	"github.com/hld/work-schedule-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	CanAdd    bool   `json:"can_add"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
}

// InvitationDTO represents an invitation in API responses
type InvitationDTO struct {
	ID        uint64    `json:"id"`
	Code      string    `json:"code"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityLogDTO represents an audit entry in API responses
type ActivityLogDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// PersonnelDTO represents a personnel directory entry in API responses
type PersonnelDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		CanAdd:    user.CanAdd,
		CanEdit:   user.CanEdit,
		CanDelete: user.CanDelete,
	}
}

// ToInvitationDTO converts an Invitation model to InvitationDTO
func ToInvitationDTO(invitation models.Invitation) InvitationDTO {
	return InvitationDTO{
		ID:        invitation.ID,
		Code:      invitation.Code,
		IsUsed:    invitation.IsUsed,
		CreatedAt: invitation.CreatedAt,
	}
}

// ToActivityLogDTO converts an ActivityLog model to ActivityLogDTO
func ToActivityLogDTO(entry models.ActivityLog) ActivityLogDTO {
	dto := ActivityLogDTO{
		ID:        entry.ID,
		Action:    entry.Action,
		Details:   entry.Details,
		Timestamp: entry.Timestamp,
	}
	if entry.User.ID != 0 {
		dto.Username = entry.User.Username
	}
	return dto
}

// ToPersonnelDTO converts a Personnel model to PersonnelDTO
func ToPersonnelDTO(person models.Personnel) PersonnelDTO {
	return PersonnelDTO{
		ID:   person.ID,
		Name: person.Name,
	}
}
