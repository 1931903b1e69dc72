package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hld/work-schedule-api/internal/audit"
	"github.com/hld/work-schedule-api/internal/dto"
	apierrors "github.com/hld/work-schedule-api/internal/errors"
	"github.com/hld/work-schedule-api/internal/middleware"
	"github.com/hld/work-schedule-api/internal/repository"
	"gorm.io/gorm"
)

// AdminHandler serves user administration.
type AdminHandler struct {
	userRepo repository.UserRepository
	auditor  audit.Recorder
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repository.UserRepository, auditor audit.Recorder) *AdminHandler {
	return &AdminHandler{
		userRepo: userRepo,
		auditor:  auditor,
	}
}

// ListUsers returns all accounts with their permission flags.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	items := make([]dto.UserDTO, len(users))
	for i, user := range users {
		items[i] = dto.ToUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{"users": items})
}

// UpdatePermissions overwrites one user's permission flags.
func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdatePermissionsRequest struct {
		IsAdmin   *bool `json:"is_admin" binding:"required"`
		CanAdd    *bool `json:"can_add" binding:"required"`
		CanEdit   *bool `json:"can_edit" binding:"required"`
		CanDelete *bool `json:"can_delete" binding:"required"`
	}

	var req UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// An administrator stripping their own admin flag would lock the
	// instance out of user management.
	if targetID == actorID && !*req.IsAdmin {
		apierrors.InvalidOperation(c, "Cannot revoke your own administrator flag")
		return
	}

	user, err := h.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	err = h.userRepo.UpdatePermissions(targetID, *req.IsAdmin, *req.CanAdd, *req.CanEdit, *req.CanDelete)
	if err != nil {
		apierrors.InternalError(c, "Failed to update permissions")
		return
	}

	if h.auditor != nil {
		h.auditor.Record(actorID, "Update Permissions",
			fmt.Sprintf("updated permissions for user %s", user.Username))
	}

	user.IsAdmin = *req.IsAdmin
	user.CanAdd = *req.CanAdd
	user.CanEdit = *req.CanEdit
	user.CanDelete = *req.CanDelete

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
