package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hld/work-schedule-api/internal/dto"
	apierrors "github.com/hld/work-schedule-api/internal/errors"
	"github.com/hld/work-schedule-api/internal/middleware"
	"github.com/hld/work-schedule-api/internal/services"
)

// PersonnelHandler serves the personnel directory.
type PersonnelHandler struct {
	personnelService *services.PersonnelService
}

// NewPersonnelHandler creates a new PersonnelHandler
func NewPersonnelHandler(personnelService *services.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{
		personnelService: personnelService,
	}
}

// ListPersonnel returns the directory ordered by name.
func (h *PersonnelHandler) ListPersonnel(c *gin.Context) {
	personnel, err := h.personnelService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch personnel")
		return
	}

	items := make([]dto.PersonnelDTO, len(personnel))
	for i, person := range personnel {
		items[i] = dto.ToPersonnelDTO(person)
	}

	c.JSON(http.StatusOK, gin.H{"personnel": items})
}

// CreatePersonnel adds a directory entry.
func (h *PersonnelHandler) CreatePersonnel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePersonnelRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	person, err := h.personnelService.Create(req.Name, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPersonnelNameRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrPersonnelExists):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create personnel")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPersonnelDTO(*person))
}

// DeletePersonnel removes a directory entry.
func (h *PersonnelHandler) DeletePersonnel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	personID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid personnel ID")
		return
	}

	if err := h.personnelService.Delete(personID, userID); err != nil {
		if errors.Is(err, services.ErrPersonnelNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete personnel")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Personnel deleted successfully"})
}
